// Package menu provides the default store menu and staff used to seed an
// empty database before orders are generated.
package menu

import (
	"context"
	"fmt"

	"github.com/dshills/orderseed/internal/storage"
	"github.com/dshills/orderseed/pkg/types"
)

// Menu is a complete set of reference data. Sellables name their category
// through Sellable.Category; ids are assigned when the menu is seeded.
type Menu struct {
	Categories []types.Category
	Sellables  []types.Sellable
	Items      []types.Item
	Employees  []types.Employee
}

func slot(feature string, quantity int) types.Component {
	return types.Component{Feature: feature, Quantity: quantity}
}

func sellable(category, name string, price float64, components ...types.Component) types.Sellable {
	return types.Sellable{Name: name, Category: category, Price: price, Active: true, Components: components}
}

func item(feature, name string, surcharge float64) types.Item {
	return types.Item{Name: name, Feature: feature, AdditionalPrice: surcharge, Active: true}
}

// Default returns the demo store menu
func Default() Menu {
	return Menu{
		Categories: []types.Category{
			{Name: "Meal", Importance: 1.0},
			{Name: "A la Carte", Importance: 0.8},
			{Name: "Appetizer", Importance: 0.6},
			{Name: "Drink", Importance: 0.5},
			{Name: "Kids Meal", Importance: 0.3},
		},
		Sellables: []types.Sellable{
			sellable("Meal", "Bowl", 8.30, slot("side", 1), slot("entree", 1)),
			sellable("Meal", "Plate", 9.80, slot("side", 1), slot("entree", 2)),
			sellable("Meal", "Bigger Plate", 11.30, slot("side", 1), slot("entree", 3)),
			sellable("Meal", "Family Meal", 38.00, slot("side", 2), slot("entree", 3)),

			sellable("A la Carte", "Small Entree", 5.20, slot("entree", 1)),
			sellable("A la Carte", "Medium Entree", 8.50, slot("entree", 1)),
			sellable("A la Carte", "Large Entree", 11.20, slot("entree", 1)),
			sellable("A la Carte", "Side", 4.40, slot("side", 1)),

			sellable("Appetizer", "Small Appetizer", 2.00, slot("appetizer", 1)),
			sellable("Appetizer", "Large Appetizer", 8.00, slot("appetizer", 1)),

			sellable("Drink", "Small Drink", 2.10, slot("drink", 1)),
			sellable("Drink", "Medium Drink", 2.40, slot("drink", 1)),
			sellable("Drink", "Large Drink", 2.70, slot("drink", 1)),
			sellable("Drink", "Water Cup", 0.00),

			sellable("Kids Meal", "Kids Meal", 6.60, slot("side", 1), slot("entree", 1), slot("drink", 1)),
		},
		Items: []types.Item{
			item("entree", "Orange Chicken", 0),
			item("entree", "Beijing Beef", 0),
			item("entree", "Broccoli Beef", 0),
			item("entree", "Kung Pao Chicken", 0),
			item("entree", "Honey Walnut Shrimp", 1.50),
			item("entree", "Black Pepper Angus Steak", 1.50),
			item("entree", "Grilled Teriyaki Chicken", 0),

			item("side", "Chow Mein", 0),
			item("side", "Fried Rice", 0),
			item("side", "Super Greens", 0),
			item("side", "Steamed White Rice", 0),

			item("appetizer", "Chicken Egg Roll", 0),
			item("appetizer", "Veggie Spring Roll", 0),
			item("appetizer", "Cream Cheese Rangoon", 0),

			item("drink", "Fountain Soda", 0),
			item("drink", "Lemonade", 0),
			item("drink", "Iced Tea", 0),
		},
		Employees: []types.Employee{
			{Name: "Self-Service Kiosk", AccessLevel: types.AccessCustomer},
			{Name: "Maria Lopez", AccessLevel: types.AccessCashier},
			{Name: "James Chen", AccessLevel: types.AccessCashier},
			{Name: "Priya Patel", AccessLevel: types.AccessKitchen},
			{Name: "Tom Becker", AccessLevel: types.AccessKitchen},
			{Name: "Alex Morgan", AccessLevel: types.AccessManager},
		},
	}
}

// Reference builds an in-memory snapshot of the menu with sequential ids,
// as if it had been seeded into an empty database
func (m Menu) Reference() *types.Reference {
	categories := make([]types.Category, len(m.Categories))
	ids := make(map[string]int64, len(m.Categories))
	for i, c := range m.Categories {
		c.ID = int64(i + 1)
		ids[c.Name] = c.ID
		categories[i] = c
	}

	var componentID int64
	sellables := make([]types.Sellable, len(m.Sellables))
	for i, s := range m.Sellables {
		s.ID = int64(i + 1)
		s.CategoryID = ids[s.Category]
		components := make([]types.Component, len(s.Components))
		for j, c := range s.Components {
			componentID++
			c.ID = componentID
			c.SellableID = s.ID
			components[j] = c
		}
		s.Components = components
		sellables[i] = s
	}

	items := make([]types.Item, len(m.Items))
	for i, it := range m.Items {
		it.ID = int64(i + 1)
		items[i] = it
	}

	employees := make([]types.Employee, len(m.Employees))
	for i, e := range m.Employees {
		e.ID = int64(i + 1)
		employees[i] = e
	}

	return types.NewReference(categories, sellables, items, employees)
}

// Seed writes the menu into store unless it already holds sellables.
// Everything is written in one transaction. It reports whether anything
// was written.
func Seed(ctx context.Context, store storage.Storage, m Menu) (bool, error) {
	existing, err := store.ListSellables(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check existing menu: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	tx, err := store.BeginTx(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := write(ctx, tx, m); err != nil {
		_ = tx.Rollback()
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit menu: %w", err)
	}
	return true, nil
}

func write(ctx context.Context, tx storage.Tx, m Menu) error {
	ids := make(map[string]int64, len(m.Categories))
	for _, c := range m.Categories {
		c := c
		if err := tx.CreateCategory(ctx, &c); err != nil {
			return fmt.Errorf("category %s: %w", c.Name, err)
		}
		ids[c.Name] = c.ID
	}

	for _, s := range m.Sellables {
		s := s
		id, ok := ids[s.Category]
		if !ok {
			return fmt.Errorf("sellable %s: unknown category %q", s.Name, s.Category)
		}
		s.CategoryID = id
		s.Components = append([]types.Component(nil), s.Components...)
		if err := tx.CreateSellable(ctx, &s); err != nil {
			return fmt.Errorf("sellable %s: %w", s.Name, err)
		}
	}

	for _, it := range m.Items {
		it := it
		if err := tx.CreateItem(ctx, &it); err != nil {
			return fmt.Errorf("item %s: %w", it.Name, err)
		}
	}

	for _, e := range m.Employees {
		e := e
		if err := tx.CreateEmployee(ctx, &e); err != nil {
			return fmt.Errorf("employee %s: %w", e.Name, err)
		}
	}
	return nil
}
