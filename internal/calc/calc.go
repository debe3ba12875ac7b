// Package calc implements the cash reconciliation calculator: a keypad
// state machine over a text buffer plus an infix expression evaluator.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
)

// errorDisplay is how long the Error marker stays on screen before the
// buffer resets to empty.
const errorDisplay = time.Second

// Calculator holds the keypad buffer and the operation trail shown
// above it. Safe for concurrent use.
type Calculator struct {
	mu         sync.Mutex
	buffer     string
	trail      []string
	errorUntil time.Time
	now        func() time.Time
}

func New() *Calculator {
	return &Calculator{now: time.Now}
}

// SetClock overrides the time source. Test hook.
func (c *Calculator) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// expire clears a stale Error marker. Callers hold the lock.
func (c *Calculator) expire() {
	if !c.errorUntil.IsZero() && !c.now().Before(c.errorUntil) {
		c.buffer = ""
		c.errorUntil = time.Time{}
	}
}

func (c *Calculator) fail() {
	c.buffer = "Error"
	c.errorUntil = c.now().Add(errorDisplay)
}

// Press feeds one keypad key into the buffer. Digits, the decimal
// point, and the four operators append as-is; "C" clears everything,
// "⌫" removes the last rune, "=" evaluates the buffer, and "%" divides
// the evaluated buffer by one hundred. A failed evaluation shows the
// Error marker, which expires on its own or on the next keypress.
func (c *Calculator) Press(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expire()

	// an unexpired Error marker is opaque text, not an editable buffer:
	// any key dismisses it and starts over
	if !c.errorUntil.IsZero() {
		c.buffer = ""
		c.errorUntil = time.Time{}
	}

	switch key {
	case "C":
		c.buffer = ""
		c.trail = nil
		c.errorUntil = time.Time{}
	case "⌫":
		if r := []rune(c.buffer); len(r) > 0 {
			c.buffer = string(r[:len(r)-1])
		}
	case "=":
		expr := c.buffer
		result, err := Evaluate(expr)
		if err != nil {
			c.fail()
			return
		}
		c.trail = append(c.trail, expr, "=")
		c.buffer = formatNumber(result)
	case "%":
		result, err := Evaluate(c.buffer)
		if err != nil {
			c.fail()
			return
		}
		c.buffer = formatNumber(result / 100)
	default:
		c.buffer += key
	}
}

// AutoFill computes expected cash on hand and replaces the buffer and
// trail with the breakdown the operator reads back during the count.
func (c *Calculator) AutoFill(cashInBox, sales, expenses float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffer = formatNumber(cashInBox + sales - expenses)
	c.trail = []string{
		fmt.Sprintf("Caja:$%.2f", cashInBox),
		fmt.Sprintf("+Ventas:$%.2f", sales),
		fmt.Sprintf("-Egresos:$%.2f", expenses),
		"=",
	}
	c.errorUntil = time.Time{}
}

// Copy returns the buffer for the clipboard. An empty buffer or the
// Error marker yields ok=false and copies nothing.
func (c *Calculator) Copy() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expire()
	if c.buffer == "" || c.buffer == "Error" {
		return "", false
	}
	return c.buffer, true
}

func (c *Calculator) Buffer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expire()
	return c.buffer
}

func (c *Calculator) Trail() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.trail))
	copy(out, c.trail)
	return out
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var errBadExpression = errors.New("bad expression")

// Evaluate computes an infix expression over + - × ÷ with the usual
// precedence, via shunting-yard. The display glyphs × and ÷ are
// accepted alongside * and /. A leading minus, or one directly after
// an operator, negates the following number.
func Evaluate(expr string) (float64, error) {
	expr = strings.NewReplacer("×", "*", "÷", "/").Replace(expr)
	tokens, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, errBadExpression
	}

	var output []float64
	var ops []byte
	apply := func() error {
		if len(output) < 2 {
			return errBadExpression
		}
		b := output[len(output)-1]
		a := output[len(output)-2]
		output = output[:len(output)-2]
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		var r float64
		switch op {
		case '+':
			r = a + b
		case '-':
			r = a - b
		case '*':
			r = a * b
		case '/':
			if b == 0 {
				return errBadExpression
			}
			r = a / b
		}
		output = append(output, r)
		return nil
	}

	wantOperand := true
	for _, tok := range tokens {
		if tok.op == 0 {
			if !wantOperand {
				return 0, errBadExpression
			}
			output = append(output, tok.value)
			wantOperand = false
			continue
		}
		if wantOperand {
			return 0, errBadExpression
		}
		for len(ops) > 0 && precedence(ops[len(ops)-1]) >= precedence(tok.op) {
			if err := apply(); err != nil {
				return 0, err
			}
		}
		ops = append(ops, tok.op)
		wantOperand = true
	}
	if wantOperand {
		return 0, errBadExpression
	}
	for len(ops) > 0 {
		if err := apply(); err != nil {
			return 0, err
		}
	}
	if len(output) != 1 {
		return 0, errBadExpression
	}
	r := output[0]
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, errBadExpression
	}
	return r, nil
}

func precedence(op byte) int {
	if op == '*' || op == '/' {
		return 2
	}
	return 1
}

type token struct {
	value float64
	op    byte
}

func tokenize(expr string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(expr) {
		ch := expr[i]
		switch {
		case ch == ' ':
			i++
		case ch == '+' || ch == '*' || ch == '/':
			tokens = append(tokens, token{op: ch})
			i++
		case ch == '-':
			// a minus that cannot follow an operand negates the
			// number after it
			if len(tokens) > 0 && tokens[len(tokens)-1].op == 0 {
				tokens = append(tokens, token{op: ch})
				i++
				continue
			}
			num, next, err := scanNumber(expr, i+1)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{value: -num})
			i = next
		case ch >= '0' && ch <= '9' || ch == '.':
			num, next, err := scanNumber(expr, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{value: num})
			i = next
		default:
			return nil, errBadExpression
		}
	}
	return tokens, nil
}

func scanNumber(expr string, start int) (float64, int, error) {
	end := start
	for end < len(expr) && (expr[end] >= '0' && expr[end] <= '9' || expr[end] == '.') {
		end++
	}
	if end == start {
		return 0, 0, errBadExpression
	}
	num, err := strconv.ParseFloat(expr[start:end], 64)
	if err != nil {
		return 0, 0, errBadExpression
	}
	return num, end, nil
}
