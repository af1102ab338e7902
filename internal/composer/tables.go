package composer

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTables is returned for weight tables that cannot be sampled
var ErrInvalidTables = errors.New("invalid weight tables")

// ComboTemplate is one possible shape of an order: the categories it
// contains and how likely that shape is
type ComboTemplate struct {
	Name        string
	Categories  []string
	Probability float64
}

// Weight assigns a selection probability to a sellable or item by name.
// A zero Probability makes the entry a catch-all.
type Weight struct {
	Name        string
	Probability float64
}

// Tables holds every weight table the composer samples from
type Tables struct {
	Combos    []ComboTemplate
	Sellables map[string][]Weight // Category name -> sellable weights
	Items     map[string][]Weight // Item feature -> item weights
}

// Validate checks the tables can be sampled
func (t Tables) Validate() error {
	if len(t.Combos) == 0 {
		return fmt.Errorf("%w: no combo templates", ErrInvalidTables)
	}
	for i, c := range t.Combos {
		if len(c.Categories) == 0 {
			return fmt.Errorf("%w: combo %d (%s) has no categories", ErrInvalidTables, i, c.Name)
		}
		if err := checkProbability(c.Probability); err != nil {
			return fmt.Errorf("%w: combo %s: %v", ErrInvalidTables, c.Name, err)
		}
	}
	for category, weights := range t.Sellables {
		for _, w := range weights {
			if err := checkProbability(w.Probability); err != nil {
				return fmt.Errorf("%w: %s/%s: %v", ErrInvalidTables, category, w.Name, err)
			}
		}
	}
	for feature, weights := range t.Items {
		for _, w := range weights {
			if err := checkProbability(w.Probability); err != nil {
				return fmt.Errorf("%w: %s/%s: %v", ErrInvalidTables, feature, w.Name, err)
			}
		}
	}
	return nil
}

func checkProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("probability %v outside [0, 1]", p)
	}
	return nil
}

// DefaultTables returns the weights used to seed the demo store.
//
// The combo table sums to exactly 1. Some nested tables do not; their
// remainder mass falls to the last listed entry present in the menu.
func DefaultTables() Tables {
	return Tables{
		Combos: []ComboTemplate{
			{Name: "meal", Categories: []string{"Meal"}, Probability: 0.4},
			{Name: "meal+drink", Categories: []string{"Meal", "Drink"}, Probability: 0.2},
			{Name: "meal+appetizer", Categories: []string{"Meal", "Appetizer"}, Probability: 0.2},
			{Name: "meal+drink+appetizer", Categories: []string{"Meal", "Drink", "Appetizer"}, Probability: 0.1},
			{Name: "a-la-carte+drink", Categories: []string{"A la Carte", "Drink"}, Probability: 0.075},
			{Name: "kids", Categories: []string{"Kids Meal"}, Probability: 0.025},
		},
		Sellables: map[string][]Weight{
			"Meal": {
				{Name: "Bowl", Probability: 0.4},
				{Name: "Plate", Probability: 0.3},
				{Name: "Bigger Plate", Probability: 0.2},
				{Name: "Family Meal", Probability: 0.1},
			},
			"Drink": {
				{Name: "Small Drink", Probability: 0.5},
				{Name: "Medium Drink", Probability: 0.3},
				{Name: "Large Drink", Probability: 0.15},
			},
			"Appetizer": {
				{Name: "Small Appetizer", Probability: 0.7},
				{Name: "Large Appetizer", Probability: 0.2},
			},
			"A la Carte": {
				{Name: "Small Entree", Probability: 0.5},
				{Name: "Medium Entree", Probability: 0.3},
				{Name: "Large Entree", Probability: 0.1},
				{Name: "Side", Probability: 0.1},
			},
			"Kids Meal": {
				{Name: "Kids Meal", Probability: 1},
			},
		},
		Items: map[string][]Weight{
			"entree": {
				{Name: "Orange Chicken", Probability: 0.35},
				{Name: "Beijing Beef", Probability: 0.15},
				{Name: "Broccoli Beef", Probability: 0.1},
				{Name: "Kung Pao Chicken", Probability: 0.1},
				{Name: "Honey Walnut Shrimp", Probability: 0.1},
				{Name: "Grilled Teriyaki Chicken", Probability: 0.1},
			},
			"side": {
				{Name: "Chow Mein", Probability: 0.4},
				{Name: "Fried Rice", Probability: 0.35},
				{Name: "Steamed White Rice", Probability: 0.15},
			},
		},
	}
}
