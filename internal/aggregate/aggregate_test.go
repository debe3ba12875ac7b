package aggregate

import (
	"testing"

	"ryusushi/pos/internal/domain"
)

func line(clientID, clientName, itemType, name string, price float64) domain.LineItem {
	return domain.LineItem{
		Type:       itemType,
		Name:       name,
		Price:      price,
		ClientID:   clientID,
		ClientName: domain.ClientName(clientName),
	}
}

func TestGroupByClientPreservesFirstSeenOrder(t *testing.T) {
	items := []domain.LineItem{
		line("c2", "Beto", domain.TypeSushi, "Torrelo", 100),
		line("c1", "Ana", domain.TypeSushi, "Vaquero", 100),
		line("c2", "Beto", domain.TypeBebida, "Sprite", 25),
	}

	groups := GroupByClient(items)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].ClientID != "c2" || groups[1].ClientID != "c1" {
		t.Fatalf("expected first-seen ordering c2,c1 got %s,%s", groups[0].ClientID, groups[1].ClientID)
	}
	if groups[0].Total != 125 {
		t.Fatalf("expected c2 total 125, got %v", groups[0].Total)
	}
	if groups[0].Name != "Beto" {
		t.Fatalf("expected group name Beto, got %q", groups[0].Name)
	}
}

func TestGroupByClientFallsBackToPositionalName(t *testing.T) {
	items := []domain.LineItem{
		line("c1", "", domain.TypeSushi, "Torrelo", 100),
		line("c2", "  ", domain.TypePapas, "Papas", 50),
	}

	groups := GroupByClient(items)
	if groups[0].Name != "Cliente 1" {
		t.Fatalf("expected Cliente 1, got %q", groups[0].Name)
	}
	if groups[1].Name != "Cliente 2" {
		t.Fatalf("expected Cliente 2, got %q", groups[1].Name)
	}
}

func TestOrderTotalsTracksHalfOrdersAndMoney(t *testing.T) {
	items := []domain.LineItem{
		line("c1", "Ana", domain.TypeAlitas, "BBQ", 100),
		line("c1", "Ana", domain.TypeAlitas, "Media orden BBQ", 70),
		line("c1", "Ana", domain.TypeBoneless, "Media orden Buffalo", 85),
		line("c1", "Ana", domain.TypeSushi, "Media noche", 100),
	}

	totals := OrderTotals(items)
	wings := totals[domain.TypeAlitas]
	if wings.Full != 1 || wings.Half != 1 || wings.Total != 170 {
		t.Fatalf("unexpected wings breakdown: %+v", wings)
	}
	if totals[domain.TypeBoneless].Half != 1 {
		t.Fatalf("expected 1 half boneless, got %+v", totals[domain.TypeBoneless])
	}
	// "media" in a sushi name never counts as a half portion.
	sushi := totals[domain.TypeSushi]
	if sushi.Full != 1 || sushi.Half != 0 || sushi.Total != 100 {
		t.Fatalf("unexpected sushi breakdown: %+v", sushi)
	}
}

func TestGroupByClientCarriesCategoryBreakdown(t *testing.T) {
	items := []domain.LineItem{
		line("c1", "Ana", domain.TypeSushi, "Torrelo", 100),
		line("c1", "Ana", domain.TypeAlitas, "Media orden BBQ", 50),
		line("c2", "Beto", domain.TypeBebida, "Sprite", 25),
	}

	groups := GroupByClient(items)
	if groups[0].Total != 150 {
		t.Fatalf("expected group total 150, got %v", groups[0].Total)
	}
	cats := groups[0].Categories
	if cats[domain.TypeSushi].Total != 100 {
		t.Fatalf("expected sushi total 100, got %+v", cats[domain.TypeSushi])
	}
	if cats[domain.TypeAlitas].Total != 50 || cats[domain.TypeAlitas].Half != 1 {
		t.Fatalf("expected half wings order at 50, got %+v", cats[domain.TypeAlitas])
	}
	if _, ok := groups[1].Categories[domain.TypeSushi]; ok {
		t.Fatalf("expected no sushi bucket for a drinks-only group")
	}
}

func TestProductTotalsCountPromotionalUnitsWithoutMoney(t *testing.T) {
	promo := line("c1", "Ana", domain.TypeSushi, "Camaron", 0)
	promo.OriginalPrice = 100
	promo.IsPromotional = true

	items := []domain.LineItem{
		line("c1", "Ana", domain.TypeSushi, "Torrelo", 100),
		promo,
	}

	totals := ProductTotals(items)
	sushi := totals[domain.TypeSushi]
	if sushi.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", sushi.Quantity)
	}
	if sushi.Total != 100 {
		t.Fatalf("expected total 100, got %v", sushi.Total)
	}
}

func TestTotalsForTicketReconstructsSubtotal(t *testing.T) {
	promo := line("c1", "Ana", domain.TypeSushi, "Vegetariano", 0)
	promo.OriginalPrice = 95
	promo.IsPromotional = true

	items := []domain.LineItem{
		line("c1", "Ana", domain.TypeSushi, "Torrelo", 100),
		line("c1", "Ana", domain.TypeSushi, "Vaquero", 100),
		promo,
	}

	totals := TotalsForTicket(items)
	if totals.Total != 200 {
		t.Fatalf("expected total 200, got %v", totals.Total)
	}
	if totals.Discount != 95 {
		t.Fatalf("expected discount 95, got %v", totals.Discount)
	}
	if totals.Subtotal != 295 {
		t.Fatalf("expected subtotal 295, got %v", totals.Subtotal)
	}
}

func TestTotalsForTicketZeroDiscountWithoutPromo(t *testing.T) {
	items := []domain.LineItem{
		line("c1", "Ana", domain.TypePapas, "Papas con queso", 60),
	}
	totals := TotalsForTicket(items)
	if totals.Discount != 0 || totals.Subtotal != totals.Total {
		t.Fatalf("expected zero discount, got %+v", totals)
	}
}

func TestPromoCountAndGrandTotal(t *testing.T) {
	promo := line("c1", "Ana", domain.TypeSushi, "Camaron", 0)
	promo.IsPromotional = true
	items := []domain.LineItem{
		line("c1", "Ana", domain.TypeSushi, "Torrelo", 100),
		promo,
		line("c2", "Beto", domain.TypeBebida, "Coca-Cola", 20),
	}
	if got := PromoCount(items); got != 1 {
		t.Fatalf("expected 1 promo line, got %d", got)
	}
	if got := GrandTotal(items); got != 120 {
		t.Fatalf("expected grand total 120, got %v", got)
	}
}
