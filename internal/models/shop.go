package models

import (
	"strings"

	"github.com/jinzhu/gorm"
)

// Shop is one tenant storefront.
type Shop struct {
	gorm.Model
	Slug    string `gorm:"unique_index"`
	Name    string
	Tagline string
	Address string
	Phone   string
	Email   string
	Hours   string
}

// MenuItemRecord is the persisted form of a MenuItem, scoped to its shop.
// Allergens are stored as a comma-separated column.
type MenuItemRecord struct {
	gorm.Model
	ShopID      uint `gorm:"index"`
	Name        string
	Price       float64
	Description string
	Category    string
	Size        string
	Allergens   string
	Available   bool
	Seasonal    bool
	SortOrder   int
}

// NewMenuItemRecord converts an extracted menu item into its persisted form.
func NewMenuItemRecord(shopID uint, sortOrder int, item MenuItem) MenuItemRecord {
	return MenuItemRecord{
		ShopID:      shopID,
		Name:        item.Name,
		Price:       item.Price,
		Description: item.Description,
		Category:    string(item.Category),
		Size:        item.Size,
		Allergens:   strings.Join(item.Allergens, ","),
		Available:   item.Available,
		Seasonal:    item.Seasonal,
		SortOrder:   sortOrder,
	}
}

// ToMenuItem converts a stored record back into the pipeline type.
func (r *MenuItemRecord) ToMenuItem() MenuItem {
	allergens := []string{}
	if r.Allergens != "" {
		allergens = strings.Split(r.Allergens, ",")
	}
	return MenuItem{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Category:    Category(r.Category),
		Size:        r.Size,
		Allergens:   allergens,
		Available:   r.Available,
		Seasonal:    r.Seasonal,
	}
}
