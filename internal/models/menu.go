package models

import "strings"

// Category classifies a menu item. It is a closed enumeration: anything the
// extraction pipeline cannot recognize resolves to CategoryOther.
type Category string

const (
	CategoryAppetizer  Category = "appetizer"
	CategoryMainCourse Category = "main_course"
	CategoryDessert    Category = "dessert"
	CategoryBeverage   Category = "beverage"
	CategorySide       Category = "side"
	CategorySpecial    Category = "special"
	CategoryBreakfast  Category = "breakfast"
	CategoryLunch      Category = "lunch"
	CategoryDinner     Category = "dinner"
	CategorySnack      Category = "snack"
	CategoryOther      Category = "other"
)

// MenuItem represents one sellable item on a shop's menu.
type MenuItem struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Size        string   `json:"size,omitempty"`
	Allergens   []string `json:"allergens"`
	Available   bool     `json:"available"`
	Seasonal    bool     `json:"seasonal"`
}

// HasAllergen checks if the item contains a specific allergen
func (mi *MenuItem) HasAllergen(allergen string) bool {
	for _, alg := range mi.Allergens {
		if strings.EqualFold(alg, allergen) {
			return true
		}
	}
	return false
}

// IsInCategory checks if the item belongs to a specific category
func (mi *MenuItem) IsInCategory(category Category) bool {
	return mi.Category == category
}
