package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSumPrices(t *testing.T) {
	t.Run("bowl and free drink", func(t *testing.T) {
		sold := []SoldSellable{
			{Name: "Bowl", Price: 8.30},
			{Name: "Drink", Price: 0.00},
		}
		assert.Equal(t, 8.30, SumPrices(sold))
	})

	t.Run("rounds float noise to cents", func(t *testing.T) {
		sold := []SoldSellable{{Price: 0.1}, {Price: 0.2}}
		assert.Equal(t, 0.3, SumPrices(sold))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, SumPrices(nil))
	})
}

func TestOrderSpec_Validate(t *testing.T) {
	valid := OrderSpec{
		CustomerName: "Grace",
		EmployeeID:   1,
		OrderedAt:    time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC),
		Sellables:    []SoldSellable{{SellableID: 1, Price: 8.30}},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(o *OrderSpec)
		want   error
	}{
		{"missing name", func(o *OrderSpec) { o.CustomerName = "" }, ErrEmptyName},
		{"missing employee", func(o *OrderSpec) { o.EmployeeID = 0 }, ErrMissingEmployee},
		{"missing timestamp", func(o *OrderSpec) { o.OrderedAt = time.Time{} }, ErrMissingTimestamp},
		{"no sellables", func(o *OrderSpec) { o.Sellables = nil }, ErrEmptyOrder},
		{"bad status", func(o *OrderSpec) { o.Recent = &RecentOrderMarker{Status: "lost"} }, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			assert.ErrorIs(t, o.Validate(), tt.want)
		})
	}
}

func TestOrderSpec_IsRecent(t *testing.T) {
	o := OrderSpec{}
	assert.False(t, o.IsRecent())
	o.Recent = &RecentOrderMarker{Status: StatusCompleted}
	assert.True(t, o.IsRecent())
}

func TestNewReference(t *testing.T) {
	categories := []Category{{ID: 1, Name: "Meal"}, {ID: 2, Name: "Drink"}}
	sellables := []Sellable{
		{ID: 10, Name: "Bowl", CategoryID: 1, Price: 8.30, Active: true},
		{ID: 11, Name: "Retired Combo", CategoryID: 1, Price: 5.00, Active: false},
		{ID: 12, Name: "Fountain Drink", CategoryID: 2, Category: "Drink", Active: true},
	}
	items := []Item{
		{ID: 100, Name: "Orange Chicken", Feature: "entree", Active: true},
		{ID: 101, Name: "Seasonal Special", Feature: "entree", Active: false},
	}
	ref := NewReference(categories, sellables, items, []Employee{{ID: 7, Name: "Sam"}})

	meals := ref.SellablesIn("Meal")
	if assert.Len(t, meals, 1) {
		assert.Equal(t, "Bowl", meals[0].Name)
		assert.Equal(t, "Meal", meals[0].Category)
	}
	assert.Len(t, ref.SellablesIn("Drink"), 1)
	assert.Empty(t, ref.SellablesIn("Dessert"))
	assert.Len(t, ref.ItemsWithFeature("entree"), 1)
	assert.Len(t, ref.Employees(), 1)
	assert.Len(t, ref.Categories(), 2)
}
