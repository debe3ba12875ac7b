// Package aggregate derives the read views over finalized order lines:
// per-client groups, category and product rollups, and ticket totals.
// Everything here is pure computation over persisted history.
package aggregate

import (
	"strconv"
	"strings"

	"ryusushi/pos/internal/domain"
)

type OrderGroup struct {
	ClientID   string                   `json:"client_id"`
	Name       string                   `json:"name"`
	Items      []domain.LineItem        `json:"items"`
	Total      float64                  `json:"total"`
	Categories map[string]CategoryTotal `json:"categories"`
}

// GroupByClient buckets history lines by client id, preserving the
// order in which each client first appears. A group whose lines carry
// no usable name falls back to "Cliente N" by position.
func GroupByClient(items []domain.LineItem) []OrderGroup {
	var groups []OrderGroup
	index := map[string]int{}
	for _, it := range items {
		key := it.ClientID
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, OrderGroup{ClientID: key})
		}
		groups[i].Items = append(groups[i].Items, it)
		groups[i].Total += it.Price
		if groups[i].Name == "" {
			groups[i].Name = strings.TrimSpace(it.ClientName.String())
		}
	}
	for i := range groups {
		if groups[i].Name == "" {
			groups[i].Name = "Cliente " + strconv.Itoa(i+1)
		}
		groups[i].Categories = OrderTotals(groups[i].Items)
	}
	return groups
}

type CategoryTotal struct {
	Full  int     `json:"full"`
	Half  int     `json:"half"`
	Total float64 `json:"total"`
}

// OrderTotals breaks a single client's group down by category: money
// charged plus line counts. Wings and boneless sold as "media orden"
// count as half portions and are reported separately so the history
// view can show "2 órdenes (1 media)".
func OrderTotals(items []domain.LineItem) map[string]CategoryTotal {
	totals := map[string]CategoryTotal{}
	for _, it := range items {
		t := totals[it.Type]
		t.Total += it.Price
		half := (it.Type == domain.TypeAlitas || it.Type == domain.TypeBoneless) &&
			strings.Contains(strings.ToLower(it.Name), "media")
		if half {
			t.Half++
		} else {
			t.Full++
		}
		totals[it.Type] = t
	}
	return totals
}

type ProductTotal struct {
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// ProductTotals rolls the whole history up by category: unit count and
// money actually charged (promotional lines add quantity but no money).
func ProductTotals(items []domain.LineItem) map[string]ProductTotal {
	totals := map[string]ProductTotal{}
	for _, it := range items {
		t := totals[it.Type]
		t.Quantity++
		t.Total += it.Price
		totals[it.Type] = t
	}
	return totals
}

func GrandTotal(items []domain.LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price
	}
	return total
}

// PromoCount reports how many lines were given away under the 3x2.
func PromoCount(items []domain.LineItem) int {
	n := 0
	for _, it := range items {
		if it.IsPromotional {
			n++
		}
	}
	return n
}

type TicketTotals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// TotalsForTicket reconstructs what the order would have cost without
// the promotion: the discount is the sum of original prices on
// promotional lines, and the subtotal is the charged total plus that
// discount. Orders without promotional lines get a zero discount.
func TotalsForTicket(items []domain.LineItem) TicketTotals {
	var t TicketTotals
	for _, it := range items {
		t.Total += it.Price
		if it.IsPromotional {
			t.Discount += it.OriginalPrice
		}
	}
	t.Subtotal = t.Total + t.Discount
	return t
}
