package menu

import (
	"fmt"
	"strings"

	"shopfront/internal/models"
)

// categoryKeywords maps each category to the words that identify it. The
// order of this table is significant: DetectCategory walks it top to bottom
// and the first match wins.
var categoryKeywords = []struct {
	Category models.Category
	Keywords []string
}{
	{models.CategoryAppetizer, []string{"appetizer", "starter", "app", "small plate", "tapas", "antipasti"}},
	{models.CategoryMainCourse, []string{"main", "entree", "entrée", "dinner", "meal", "course"}},
	{models.CategoryDessert, []string{"dessert", "sweet", "cake", "chocolate", "ice cream", "pie", "pudding"}},
	{models.CategoryBeverage, []string{"drink", "beverage", "coffee", "tea", "juice", "soda", "cocktail"}},
	{models.CategorySide, []string{"side", "accompaniment", "salad", "soup", "fries"}},
	{models.CategorySpecial, []string{"special", "chef", "daily", "featured", "seasonal"}},
	{models.CategoryBreakfast, []string{"breakfast", "brunch", "morning", "egg", "pancake", "waffle"}},
	{models.CategoryLunch, []string{"lunch", "sandwich", "wrap", "burger"}},
	{models.CategoryDinner, []string{"dinner", "evening", "steak", "pasta", "seafood"}},
	{models.CategorySnack, []string{"snack", "small", "bite", "finger food"}},
}

// seasonalKeywords flag items that are only offered part of the year.
var seasonalKeywords = []string{
	"seasonal", "holiday", "christmas", "easter", "valentine",
	"summer", "winter", "spring", "fall",
}

// AllCategories lists every category in display order.
var AllCategories = []models.Category{
	models.CategoryAppetizer,
	models.CategoryMainCourse,
	models.CategoryDessert,
	models.CategoryBeverage,
	models.CategorySide,
	models.CategorySpecial,
	models.CategoryBreakfast,
	models.CategoryLunch,
	models.CategoryDinner,
	models.CategorySnack,
	models.CategoryOther,
}

// DetectCategory classifies an item from its name and description. It always
// returns a valid category, falling back to CategoryOther.
func DetectCategory(name, description string) models.Category {
	text := strings.ToLower(name + " " + description)
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.Keywords {
			if strings.Contains(text, keyword) {
				return entry.Category
			}
		}
	}
	return models.CategoryOther
}

// CategoryFromSection maps a menu section heading, as written on the menu, to
// a category.
func CategoryFromSection(section string) models.Category {
	s := strings.ToLower(section)
	switch {
	case strings.Contains(s, "appetizer") || strings.Contains(s, "starter"):
		return models.CategoryAppetizer
	case strings.Contains(s, "main") || strings.Contains(s, "entree"):
		return models.CategoryMainCourse
	case strings.Contains(s, "special"):
		return models.CategorySpecial
	case strings.Contains(s, "dessert") || strings.Contains(s, "sweet"):
		return models.CategoryDessert
	case strings.Contains(s, "beverage") || strings.Contains(s, "drink"):
		return models.CategoryBeverage
	case strings.Contains(s, "side"):
		return models.CategorySide
	case strings.Contains(s, "breakfast"):
		return models.CategoryBreakfast
	case strings.Contains(s, "lunch"):
		return models.CategoryLunch
	case strings.Contains(s, "dinner"):
		return models.CategoryDinner
	}
	return models.CategoryOther
}

// DetectSeasonal reports whether an item looks like a seasonal offering.
func DetectSeasonal(name, description string) bool {
	text := strings.ToLower(name + " " + description)
	for _, keyword := range seasonalKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// GroupByCategory buckets items by category, preserving first-seen order
// within each bucket. It does not sort or dedupe.
func GroupByCategory(items []models.MenuItem) map[models.Category][]models.MenuItem {
	grouped := make(map[models.Category][]models.MenuItem)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}

// CategoryDisplayName returns the human-readable heading for a category.
func CategoryDisplayName(category models.Category) string {
	names := map[models.Category]string{
		models.CategoryAppetizer:  "Appetizers",
		models.CategoryMainCourse: "Main Courses",
		models.CategoryDessert:    "Desserts",
		models.CategoryBeverage:   "Beverages",
		models.CategorySide:       "Sides",
		models.CategorySpecial:    "Specials",
		models.CategoryBreakfast:  "Breakfast",
		models.CategoryLunch:      "Lunch",
		models.CategoryDinner:     "Dinner",
		models.CategorySnack:      "Snacks",
		models.CategoryOther:      "Other Items",
	}
	if name, ok := names[category]; ok {
		return name
	}
	return string(category)
}

// FormatForDisplay renders items as a grouped, human-readable text block.
// Auxiliary output for debugging and previews, not business critical.
func FormatForDisplay(items []models.MenuItem) string {
	grouped := GroupByCategory(items)
	var sb strings.Builder

	for _, category := range AllCategories {
		categoryItems, ok := grouped[category]
		if !ok {
			continue
		}
		sb.WriteString("\n" + CategoryDisplayName(category) + "\n")
		sb.WriteString(strings.Repeat("─", 30) + "\n")

		for _, item := range categoryItems {
			sb.WriteString(fmt.Sprintf("%s - $%.2f", item.Name, item.Price))
			if item.Size != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", item.Size))
			}
			if item.Description != "" {
				sb.WriteString("\n  " + item.Description)
			}
			if len(item.Allergens) > 0 {
				sb.WriteString("\n  Contains: " + strings.Join(item.Allergens, ", "))
			}
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}
