// Package sugar prices the added sugar of a coffee order.
package sugar

import (
	"strings"
)

// Beverage is one menu item. BaseGrams is per regular (~350ml) serving.
type Beverage struct {
	ID        string
	BaseGrams float64
}

// Additive is an optional topping or mix-in.
type Additive struct {
	Key   string
	Label string
}

// Menu is the static beverage catalog in display order.
var Menu = []Beverage{
	{"Kopi Kenangan Mantan", 16.0},
	{"Kopi Susu", 9.5},
	{"Kopi Susu Black Aren", 14.0},
	{"Salted Caramel Macchiato", 28.0},
	{"Caffe Latte", 31.5},
	{"Matcha Latte", 17.5},
	{"Butterscotch Latte", 24.4},
	{"Americano", 0.0},
	{"Doubleshot Espresso Latte", 25.5},
	{"Vanilla Latte", 25.7},
	{"Caffe Mocha", 25.7},
	{"Aren Latte", 21.0},
	{"Iced Buttercream Latte", 31.5},
	{"Soy Matcha Latte", 36.8},
	{"Cappuccino", 13.6},
}

// Additives lists the accepted additive keys in display order.
var Additives = []Additive{
	{"nata_de_coco", "Nata De Coco"},
	{"salted_caramel", "Salted Caramel"},
	{"whipped_cream", "Whipped Cream"},
	{"brown_sugar_jelly", "Brown Sugar Jelly"},
	{"oat_milk", "Oat Milk"},
	{"extra_shot", "Extra Shot Espresso"},
}

var (
	beverageIndex = func() map[string]Beverage {
		idx := make(map[string]Beverage, len(Menu))
		for _, b := range Menu {
			idx[normalize(b.ID)] = b
		}
		return idx
	}()
	additiveIndex = func() map[string]Additive {
		idx := make(map[string]Additive, len(Additives))
		for _, a := range Additives {
			idx[a.Key] = a
		}
		return idx
	}()
)

// LookupBeverage resolves a beverage by ID. Matching ignores case and treats
// spaces, hyphens and underscores alike, so "caffe-latte" finds "Caffe Latte".
func LookupBeverage(id string) (Beverage, bool) {
	b, ok := beverageIndex[normalize(id)]
	return b, ok
}

// LookupAdditive resolves an additive key.
func LookupAdditive(key string) (Additive, bool) {
	a, ok := additiveIndex[normalize(key)]
	return a, ok
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return '_'
		}
		return r
	}, s)
}
