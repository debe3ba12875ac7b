package catalog

import (
	"testing"

	"ryusushi/pos/internal/domain"
)

func TestResolveSushiCarriesOptionInName(t *testing.T) {
	item, err := Resolve(domain.TypeSushi, "Torrelo", "Empanizado")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if item.Name != "Torrelo (Empanizado)" {
		t.Fatalf("unexpected name: %q", item.Name)
	}
	if item.Price != 100 {
		t.Fatalf("expected price 100, got %v", item.Price)
	}
	if item.Details != "Empanizado" {
		t.Fatalf("expected option in details, got %q", item.Details)
	}
}

func TestResolveFlaminOptionAddsSurcharge(t *testing.T) {
	item, err := Resolve(domain.TypeSushi, "Torrelo", "Flamin")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if item.Price != 105 {
		t.Fatalf("expected 100+5 for Flamin preparation, got %v", item.Price)
	}

	// The Flamin roll itself already includes the preparation in its price.
	flamin, err := Resolve(domain.TypeSushi, "Flamin", "Flamin")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if flamin.Price != 105 {
		t.Fatalf("expected no surcharge on the Flamin roll, got %v", flamin.Price)
	}
}

func TestResolveSushiRejectsUnknownOption(t *testing.T) {
	if _, err := Resolve(domain.TypeSushi, "Torrelo", "Frito"); err == nil {
		t.Fatalf("expected unknown option to be rejected")
	}
	if _, err := Resolve(domain.TypeSushi, "Torrelo", ""); err == nil {
		t.Fatalf("expected missing option to be rejected")
	}
}

func TestResolveNonSushiIgnoresOption(t *testing.T) {
	item, err := Resolve(domain.TypeBebida, "Coca-Cola", "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if item.Name != "Coca-Cola" || item.Price != 20 {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestResolveUnknownCategoryAndItem(t *testing.T) {
	if _, err := Resolve("Tacos", "Pastor", ""); err == nil {
		t.Fatalf("expected unknown category error")
	}
	if _, err := Resolve(domain.TypePapas, "Papas gajo", ""); err == nil {
		t.Fatalf("expected unknown item error")
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	items, ok := Items(domain.TypeBebida)
	if !ok || len(items) != 4 {
		t.Fatalf("expected 4 drinks, got %d ok=%v", len(items), ok)
	}
	items[0].Price = 999

	again, _ := Items(domain.TypeBebida)
	if again[0].Price == 999 {
		t.Fatalf("Items must return a copy of the menu")
	}
}

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	if len(cats) != 6 {
		t.Fatalf("expected 6 static categories, got %d", len(cats))
	}
	if cats[0] != domain.TypeSushi || cats[len(cats)-1] != domain.TypeExtra {
		t.Fatalf("unexpected category order: %v", cats)
	}
}
