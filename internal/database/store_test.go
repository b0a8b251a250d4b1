package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/config"
	"shopfront/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	// A named shared-cache DSN keeps every pooled connection on the same
	// in-memory database.
	db, err := Open(config.DatabaseConfig{Driver: "sqlite3", DSN: "file:" + t.Name() + "?mode=memory&cache=shared"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func createTestShop(t *testing.T, store *Store) *models.Shop {
	t.Helper()
	shop := &models.Shop{Slug: "choco-lane", Name: "Choco Lane", Address: "12 Main St"}
	require.NoError(t, store.CreateShop(shop))
	return shop
}

func TestCreateShop(t *testing.T) {
	store := newTestStore(t)
	shop := createTestShop(t, store)
	assert.NotZero(t, shop.ID)

	found, err := store.GetShopBySlug("choco-lane")
	require.NoError(t, err)
	assert.Equal(t, shop.ID, found.ID)
	assert.Equal(t, "Choco Lane", found.Name)

	byID, err := store.GetShop(shop.ID)
	require.NoError(t, err)
	assert.Equal(t, "choco-lane", byID.Slug)
}

func TestCreateShopValidation(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.CreateShop(&models.Shop{Slug: "no-name"}))
	assert.Error(t, store.CreateShop(&models.Shop{Name: "No Slug"}))
}

func TestGetShopBySlugNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetShopBySlug("missing")
	assert.Error(t, err)
}

func TestReplaceMenuRoundTrip(t *testing.T) {
	store := newTestStore(t)
	shop := createTestShop(t, store)

	items := []models.MenuItem{
		{Name: "Truffle Box", Price: 24.99, Category: models.CategoryDessert, Allergens: []string{"milk", "nuts"}, Available: true},
		{Name: "Espresso", Price: 3.5, Category: models.CategoryBeverage, Allergens: []string{}, Available: true},
	}
	require.NoError(t, store.ReplaceMenu(shop.ID, items))

	got, err := store.GetMenu(shop.ID, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Truffle Box", got[0].Name)
	assert.Equal(t, []string{"milk", "nuts"}, got[0].Allergens)
	assert.Equal(t, "Espresso", got[1].Name)
	assert.Equal(t, []string{}, got[1].Allergens)

	// Replacing again drops the old rows.
	require.NoError(t, store.ReplaceMenu(shop.ID, items[:1]))
	got, err = store.GetMenu(shop.ID, false)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAppendMenuKeepsExisting(t *testing.T) {
	store := newTestStore(t)
	shop := createTestShop(t, store)

	first := []models.MenuItem{{Name: "A", Category: models.CategoryOther, Allergens: []string{}, Available: true}}
	second := []models.MenuItem{{Name: "B", Category: models.CategoryOther, Allergens: []string{}, Available: true}}
	require.NoError(t, store.AppendMenu(shop.ID, first))
	require.NoError(t, store.AppendMenu(shop.ID, second))

	got, err := store.GetMenu(shop.ID, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
}

func TestGetMenuOnlyAvailable(t *testing.T) {
	store := newTestStore(t)
	shop := createTestShop(t, store)

	items := []models.MenuItem{
		{Name: "In Stock", Category: models.CategoryOther, Allergens: []string{}, Available: true},
		{Name: "Sold Out", Category: models.CategoryOther, Allergens: []string{}, Available: false},
	}
	require.NoError(t, store.ReplaceMenu(shop.ID, items))

	got, err := store.GetMenu(shop.ID, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "In Stock", got[0].Name)
}

func TestMenuIsTenantScoped(t *testing.T) {
	store := newTestStore(t)
	shopA := createTestShop(t, store)
	shopB := &models.Shop{Slug: "other", Name: "Other"}
	require.NoError(t, store.CreateShop(shopB))

	require.NoError(t, store.ReplaceMenu(shopA.ID, []models.MenuItem{
		{Name: "Only A", Category: models.CategoryOther, Allergens: []string{}, Available: true},
	}))

	gotB, err := store.GetMenu(shopB.ID, false)
	require.NoError(t, err)
	assert.Empty(t, gotB)

	count, err := store.CountMenuItems(shopA.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestClearMenu(t *testing.T) {
	store := newTestStore(t)
	shop := createTestShop(t, store)
	require.NoError(t, store.ReplaceMenu(shop.ID, []models.MenuItem{
		{Name: "X", Category: models.CategoryOther, Allergens: []string{}, Available: true},
	}))

	require.NoError(t, store.ClearMenu(shop.ID))
	count, err := store.CountMenuItems(shop.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSaveOrderDerivesTotal(t *testing.T) {
	store := newTestStore(t)
	shop := createTestShop(t, store)

	details := models.OrderDetails{
		CustomerName: "Sam",
		Items: []models.OrderItemDetail{
			{ItemName: "Truffle Box", Quantity: 2, Price: 24.99},
		},
	}
	order, err := store.SaveOrder(shop.ID, details)
	require.NoError(t, err)
	assert.InDelta(t, 49.98, order.TotalAmount, 0.001)
	assert.Equal(t, string(models.OrderStatusReceived), order.Status)

	orders, err := store.ListOrders(shop.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Truffle Box", orders[0].Items[0].ItemName)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
}

func TestSaveOrderKeepsExplicitTotal(t *testing.T) {
	store := newTestStore(t)
	shop := createTestShop(t, store)

	details := models.OrderDetails{
		TotalAmount: 99.5,
		Items: []models.OrderItemDetail{
			{ItemName: "Gift Basket", Quantity: 1, Price: 80},
		},
	}
	order, err := store.SaveOrder(shop.ID, details)
	require.NoError(t, err)
	assert.Equal(t, 99.5, order.TotalAmount)
}
