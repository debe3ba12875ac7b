// Package order keeps the in-progress order and applies the 3x2 sushi
// promotion as items arrive.
package order

import (
	"sync"
	"time"

	"ryusushi/pos/internal/domain"
)

// Accumulator is the single open order being assembled at the counter.
// Safe for concurrent use.
type Accumulator struct {
	mu    sync.Mutex
	items []domain.LineItem
	promo bool
	now   func() time.Time
}

func New() *Accumulator {
	return &Accumulator{now: time.Now}
}

// SetClock overrides the time source. Test hook.
func (a *Accumulator) SetClock(now func() time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.now = now
}

// Append stamps the item and adds it to the order. While the 3x2
// promotion is active, every third sushi item counted across the whole
// order is converted to a free line at the moment it lands: its price
// moves to OriginalPrice and drops to zero. Items already in the order
// are never revisited, so toggling the promotion later changes only
// subsequent appends.
func (a *Accumulator) Append(item domain.LineItem) domain.LineItem {
	a.mu.Lock()
	defer a.mu.Unlock()

	item.Time = a.now()
	item.ClientID = ""
	item.ClientName = ""
	if a.promo && item.Type == domain.TypeSushi {
		sushi := 1
		for _, it := range a.items {
			if it.Type == domain.TypeSushi {
				sushi++
			}
		}
		if sushi%3 == 0 {
			item.OriginalPrice = item.Price
			item.Price = 0
			item.IsPromotional = true
		}
	}
	a.items = append(a.items, item)
	return item
}

func (a *Accumulator) SetPromo(active bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.promo = active
}

func (a *Accumulator) PromoActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.promo
}

func (a *Accumulator) Items() []domain.LineItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.LineItem, len(a.items))
	copy(out, a.items)
	return out
}

func (a *Accumulator) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.items)
}

// Total sums current line prices, so promotional lines contribute zero.
func (a *Accumulator) Total() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	var total float64
	for _, it := range a.items {
		total += it.Price
	}
	return total
}

func (a *Accumulator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.items = nil
}

// Drain closes out the order for a client: every line is stamped with
// the client identity and a fresh finalization time, the order empties,
// and the stamped lines are returned for persistence. Draining an empty
// order returns nil.
func (a *Accumulator) Drain(client domain.Client) []domain.LineItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.items) == 0 {
		return nil
	}
	at := a.now()
	out := make([]domain.LineItem, len(a.items))
	for i, it := range a.items {
		it.ClientID = client.ID
		it.ClientName = domain.ClientName(client.Name)
		it.Time = at
		out[i] = it
	}
	a.items = nil
	return out
}
