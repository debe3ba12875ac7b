package order

import (
	"testing"
	"time"

	"ryusushi/pos/internal/domain"
)

func sushiLine(name string, price float64) domain.LineItem {
	return domain.LineItem{Type: domain.TypeSushi, Name: name, Price: price}
}

func TestAppendPromoConvertsEveryThirdSushi(t *testing.T) {
	acc := New()
	acc.SetPromo(true)

	acc.Append(sushiLine("Torrelo", 100))
	acc.Append(sushiLine("Vaquero", 100))
	third := acc.Append(sushiLine("Vegetariano", 95))

	if !third.IsPromotional {
		t.Fatalf("expected third sushi to be promotional")
	}
	if third.Price != 0 {
		t.Fatalf("expected promotional price 0, got %v", third.Price)
	}
	if third.OriginalPrice != 95 {
		t.Fatalf("expected original price 95, got %v", third.OriginalPrice)
	}
	if got := acc.Total(); got != 200 {
		t.Fatalf("expected total 200, got %v", got)
	}
}

func TestAppendPromoCountsSushiAcrossWholeOrder(t *testing.T) {
	acc := New()
	acc.SetPromo(true)

	acc.Append(sushiLine("Torrelo", 100))
	acc.Append(domain.LineItem{Type: domain.TypeBebida, Name: "Coca-Cola", Price: 20})
	acc.Append(sushiLine("Vaquero", 100))
	third := acc.Append(sushiLine("Camaron", 100))

	if !third.IsPromotional {
		t.Fatalf("expected third sushi promotional even with a drink in between")
	}

	sixth := func() domain.LineItem {
		acc.Append(sushiLine("Surimi", 100))
		acc.Append(sushiLine("Res", 100))
		return acc.Append(sushiLine("Goliat", 110))
	}()
	if !sixth.IsPromotional || sixth.OriginalPrice != 110 {
		t.Fatalf("expected sixth sushi promotional at original 110, got %+v", sixth)
	}
}

func TestPromoToggleDoesNotRewriteExistingLines(t *testing.T) {
	acc := New()

	acc.Append(sushiLine("Torrelo", 100))
	acc.Append(sushiLine("Vaquero", 100))
	acc.Append(sushiLine("Camaron", 100))

	acc.SetPromo(true)

	for _, item := range acc.Items() {
		if item.IsPromotional {
			t.Fatalf("enabling the promo must not rewrite lines already in the order")
		}
	}

	// The next sushi appended is the fourth: not a multiple of three.
	fourth := acc.Append(sushiLine("Surimi", 100))
	if fourth.IsPromotional {
		t.Fatalf("fourth sushi should not be promotional")
	}
}

func TestDrainStampsClientAndEmptiesOrder(t *testing.T) {
	acc := New()
	acc.SetClock(func() time.Time { return time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC) })

	acc.Append(sushiLine("Torrelo", 100))
	acc.Append(domain.LineItem{Type: domain.TypePapas, Name: "Papas", Price: 50})

	client := domain.Client{ID: "client-1", Name: "Ana"}
	drained := acc.Drain(client)

	if len(drained) != 2 {
		t.Fatalf("expected 2 drained lines, got %d", len(drained))
	}
	for _, item := range drained {
		if item.ClientID != "client-1" || string(item.ClientName) != "Ana" {
			t.Fatalf("expected client stamped on every line, got %+v", item)
		}
		if item.Time != drained[0].Time {
			t.Fatalf("expected a shared checkout time on all lines")
		}
	}
	if acc.Count() != 0 {
		t.Fatalf("expected order empty after drain, got %d items", acc.Count())
	}
}

func TestDrainEmptyOrderReturnsNil(t *testing.T) {
	acc := New()
	if drained := acc.Drain(domain.Client{ID: "c", Name: "X"}); drained != nil {
		t.Fatalf("expected nil for empty order, got %v", drained)
	}
}

func TestClearResetsItemsButKeepsPromoFlag(t *testing.T) {
	acc := New()
	acc.SetPromo(true)
	acc.Append(sushiLine("Torrelo", 100))

	acc.Clear()

	if acc.Count() != 0 {
		t.Fatalf("expected empty order after clear")
	}
	if !acc.PromoActive() {
		t.Fatalf("clearing the order must not reset the promo toggle")
	}
}
