package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/orderseed/internal/composer"
	"github.com/dshills/orderseed/internal/storage"
	"github.com/dshills/orderseed/pkg/types"
)

func setupTestDB(t *testing.T) *storage.SQLiteStorage {
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestDefault_CoversWeightTables(t *testing.T) {
	m := Default()
	ref := m.Reference()
	tables := composer.DefaultTables()

	for _, combo := range tables.Combos {
		for _, category := range combo.Categories {
			assert.NotEmpty(t, ref.SellablesIn(category), "category %s has no sellables", category)
		}
	}
	for category, weights := range tables.Sellables {
		names := make(map[string]bool)
		for _, s := range ref.SellablesIn(category) {
			names[s.Name] = true
		}
		for _, w := range weights {
			assert.True(t, names[w.Name], "%s/%s missing from menu", category, w.Name)
		}
	}
	for _, s := range m.Sellables {
		for _, c := range s.Components {
			assert.NotEmpty(t, ref.ItemsWithFeature(c.Feature), "feature %s has no items", c.Feature)
		}
	}
}

func TestReference_AssignsIDs(t *testing.T) {
	ref := Default().Reference()

	meals := ref.SellablesIn("Meal")
	require.Len(t, meals, 4)
	assert.Equal(t, int64(1), meals[0].ID)
	assert.Equal(t, int64(1), meals[0].CategoryID)
	for _, c := range meals[1].Components {
		assert.Equal(t, meals[1].ID, c.SellableID)
	}
	assert.Len(t, ref.Employees(), 6)
}

func TestSeed(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	m := Default()

	seeded, err := Seed(ctx, store, m)
	require.NoError(t, err)
	assert.True(t, seeded)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(m.Categories), status.CategoriesCount)
	assert.Equal(t, len(m.Sellables), status.SellablesCount)
	assert.Equal(t, len(m.Items), status.ItemsCount)
	assert.Equal(t, len(m.Employees), status.EmployeesCount)

	plates, err := store.ListSellables(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bowl", plates[0].Name)
	assert.Equal(t, "Meal", plates[0].Category)
	assert.Len(t, plates[0].Components, 2)

	// The caller's menu is left untouched
	assert.Zero(t, m.Sellables[0].CategoryID)

	t.Run("second seed is a no-op", func(t *testing.T) {
		seeded, err := Seed(ctx, store, m)
		require.NoError(t, err)
		assert.False(t, seeded)

		status, err := store.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(m.Sellables), status.SellablesCount)
	})
}

func TestSeed_UnknownCategoryRollsBack(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	m := Default()
	m.Sellables = append(m.Sellables, types.Sellable{Name: "Mystery", Category: "Dessert", Price: 1, Active: true})

	_, err := Seed(ctx, store, m)
	require.Error(t, err)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Zero(t, status.CategoriesCount)
	assert.Zero(t, status.SellablesCount)
}
