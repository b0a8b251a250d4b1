package database

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"shopfront/internal/models"
)

// Store is the tenant-scoped persistence layer over the relational database.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over an open database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateShop registers a new tenant storefront.
func (s *Store) CreateShop(shop *models.Shop) error {
	if shop.Name == "" {
		return fmt.Errorf("shop name is required")
	}
	if shop.Slug == "" {
		return fmt.Errorf("shop slug is required")
	}
	if err := s.db.Create(shop).Error; err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}
	return nil
}

// GetShop fetches a shop by ID.
func (s *Store) GetShop(id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.First(&shop, id).Error; err != nil {
		return nil, fmt.Errorf("shop %d not found: %w", id, err)
	}
	return &shop, nil
}

// GetShopBySlug fetches a shop by its public storefront slug.
func (s *Store) GetShopBySlug(slug string) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		return nil, fmt.Errorf("shop %q not found: %w", slug, err)
	}
	return &shop, nil
}

// ReplaceMenu clears a shop's stored menu and inserts the extracted items in
// order.
func (s *Store) ReplaceMenu(shopID uint, items []models.MenuItem) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if err := tx.Where("shop_id = ?", shopID).Delete(&models.MenuItemRecord{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear menu: %w", err)
	}
	for i, item := range items {
		record := models.NewMenuItemRecord(shopID, i, item)
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save menu item %q: %w", item.Name, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit menu: %w", err)
	}
	return nil
}

// AppendMenu adds extracted items to a shop's menu without clearing it.
func (s *Store) AppendMenu(shopID uint, items []models.MenuItem) error {
	var offset int
	s.db.Model(&models.MenuItemRecord{}).Where("shop_id = ?", shopID).Count(&offset)

	for i, item := range items {
		record := models.NewMenuItemRecord(shopID, offset+i, item)
		if err := s.db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to save menu item %q: %w", item.Name, err)
		}
	}
	return nil
}

// GetMenu returns a shop's menu in stored order. With onlyAvailable set,
// unavailable items are filtered out (the storefront chat uses this).
func (s *Store) GetMenu(shopID uint, onlyAvailable bool) ([]models.MenuItem, error) {
	query := s.db.Where("shop_id = ?", shopID).Order("sort_order")
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}

	var records []models.MenuItemRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	items := make([]models.MenuItem, len(records))
	for i := range records {
		items[i] = records[i].ToMenuItem()
	}
	return items, nil
}

// ClearMenu removes every menu item for a shop.
func (s *Store) ClearMenu(shopID uint) error {
	if err := s.db.Where("shop_id = ?", shopID).Delete(&models.MenuItemRecord{}).Error; err != nil {
		return fmt.Errorf("failed to clear menu: %w", err)
	}
	return nil
}

// CountMenuItems reports how many items a shop has on its menu.
func (s *Store) CountMenuItems(shopID uint) (int, error) {
	var count int
	if err := s.db.Model(&models.MenuItemRecord{}).Where("shop_id = ?", shopID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return count, nil
}

// SaveOrder persists an order extracted from a chat turn.
func (s *Store) SaveOrder(shopID uint, details models.OrderDetails) (*models.Order, error) {
	order := models.NewOrder(shopID, details)
	if err := s.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	return order, nil
}

// ListOrders returns a shop's orders, newest first.
func (s *Store) ListOrders(shopID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("shop_id = ?", shopID).Order("created_at desc").Preload("Items").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
