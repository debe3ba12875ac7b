// Package catalog holds the static menu and resolves an item pick
// (category, name, optional preparation) into a priced order line.
package catalog

import (
	"fmt"

	"ryusushi/pos/internal/domain"
)

type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Type  string  `json:"type"`
}

// RollOptions are the preparations offered for every sushi roll.
// "Flamin" on a roll that is not already a Flamin roll costs extra.
var RollOptions = []string{"Empanizado", "Natural", "Alga fuera", "Flamin"}

const flaminSurcharge = 5

var sushiRolls = []Item{
	{Name: "Torrelo", Price: 100, Type: domain.TypeSushi},
	{Name: "Vaquero", Price: 100, Type: domain.TypeSushi},
	{Name: "Mar y tierra", Price: 100, Type: domain.TypeSushi},
	{Name: "Camaron", Price: 100, Type: domain.TypeSushi},
	{Name: "Surimi", Price: 100, Type: domain.TypeSushi},
	{Name: "Costeño", Price: 100, Type: domain.TypeSushi},
	{Name: "Vegetariano", Price: 95, Type: domain.TypeSushi},
	{Name: "Gallinazo", Price: 100, Type: domain.TypeSushi},
	{Name: "Res", Price: 100, Type: domain.TypeSushi},
	{Name: "Ryu burro", Price: 105, Type: domain.TypeSushi},
	{Name: "Flamin", Price: 105, Type: domain.TypeSushi},
	{Name: "Goliat", Price: 110, Type: domain.TypeSushi},
}

var wings = []Item{
	{Name: "Alitas BBQ", Price: 100, Type: domain.TypeAlitas},
	{Name: "Alitas Buffalo", Price: 105, Type: domain.TypeAlitas},
	{Name: "Alitas Mango habanero", Price: 110, Type: domain.TypeAlitas},
	{Name: "Media orden BBQ", Price: 70, Type: domain.TypeAlitas},
	{Name: "Media orden Buffalo", Price: 75, Type: domain.TypeAlitas},
	{Name: "Media orden Mango habanero", Price: 80, Type: domain.TypeAlitas},
}

var boneless = []Item{
	{Name: "Boneless BBQ", Price: 130, Type: domain.TypeBoneless},
	{Name: "Boneless Buffalo", Price: 135, Type: domain.TypeBoneless},
	{Name: "Boneless Mango habanero", Price: 140, Type: domain.TypeBoneless},
	{Name: "Media orden boneless BBQ", Price: 80, Type: domain.TypeBoneless},
	{Name: "Media orden boneless Buffalo", Price: 85, Type: domain.TypeBoneless},
	{Name: "Media orden boneless Mango habanero", Price: 90, Type: domain.TypeBoneless},
}

var drinks = []Item{
	{Name: "Coca-Cola", Price: 20, Type: domain.TypeBebida},
	{Name: "Jugo del Valle", Price: 10, Type: domain.TypeBebida},
	{Name: "Sprite", Price: 25, Type: domain.TypeBebida},
	{Name: "Agua de Jamaica", Price: 15, Type: domain.TypeBebida},
}

var fries = []Item{
	{Name: "Papas", Price: 50, Type: domain.TypePapas},
	{Name: "Papas con queso", Price: 60, Type: domain.TypePapas},
}

var extras = []Item{
	{Name: "Palillos", Price: 10, Type: domain.TypeExtra},
}

var byType = map[string][]Item{
	domain.TypeSushi:    sushiRolls,
	domain.TypeAlitas:   wings,
	domain.TypeBoneless: boneless,
	domain.TypeBebida:   drinks,
	domain.TypePapas:    fries,
	domain.TypeExtra:    extras,
}

// Categories lists the static menu categories in menu order. Desserts
// are store-managed and intentionally absent here.
func Categories() []string {
	return []string{
		domain.TypeSushi,
		domain.TypeAlitas,
		domain.TypeBoneless,
		domain.TypeBebida,
		domain.TypePapas,
		domain.TypeExtra,
	}
}

func Items(category string) ([]Item, bool) {
	items, ok := byType[category]
	if !ok {
		return nil, false
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out, true
}

func validOption(option string) bool {
	for _, o := range RollOptions {
		if o == option {
			return true
		}
	}
	return false
}

// Resolve prices a menu pick. Sushi requires a preparation option and
// the resulting name carries it, e.g. "Torrelo (Empanizado)".
func Resolve(category, name, option string) (domain.LineItem, error) {
	items, ok := byType[category]
	if !ok {
		return domain.LineItem{}, fmt.Errorf("unknown category %q", category)
	}
	for _, it := range items {
		if it.Name != name {
			continue
		}
		if category != domain.TypeSushi {
			return domain.LineItem{Type: it.Type, Name: it.Name, Price: it.Price}, nil
		}
		if !validOption(option) {
			return domain.LineItem{}, fmt.Errorf("unknown roll option %q", option)
		}
		price := it.Price
		if option == "Flamin" && it.Name != "Flamin" {
			price += flaminSurcharge
		}
		return domain.LineItem{
			Type:    it.Type,
			Name:    fmt.Sprintf("%s (%s)", it.Name, option),
			Price:   price,
			Details: option,
		}, nil
	}
	return domain.LineItem{}, fmt.Errorf("unknown item %q in %s", name, category)
}
