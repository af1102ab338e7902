package types

// Reference is a read-only snapshot of the menu and staff data a generator
// run samples from. It is built once per run and shared by every draw.
type Reference struct {
	categories []Category
	byCategory map[string][]Sellable
	byFeature  map[string][]Item
	employees  []Employee
}

// NewReference indexes the fetched collections. Inactive sellables and items
// are dropped; sellables keep the order they were fetched in.
func NewReference(categories []Category, sellables []Sellable, items []Item, employees []Employee) *Reference {
	ref := &Reference{
		categories: append([]Category(nil), categories...),
		byCategory: make(map[string][]Sellable),
		byFeature:  make(map[string][]Item),
		employees:  append([]Employee(nil), employees...),
	}

	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	for _, s := range sellables {
		if !s.Active {
			continue
		}
		name := s.Category
		if name == "" {
			name = names[s.CategoryID]
		}
		s.Category = name
		ref.byCategory[name] = append(ref.byCategory[name], s)
	}

	for _, it := range items {
		if !it.Active {
			continue
		}
		ref.byFeature[it.Feature] = append(ref.byFeature[it.Feature], it)
	}

	return ref
}

// Categories returns the fetched categories
func (r *Reference) Categories() []Category {
	return r.categories
}

// SellablesIn returns the active sellables of the named category
func (r *Reference) SellablesIn(category string) []Sellable {
	return r.byCategory[category]
}

// ItemsWithFeature returns the active items carrying feature
func (r *Reference) ItemsWithFeature(feature string) []Item {
	return r.byFeature[feature]
}

// Employees returns the eligible employees
func (r *Reference) Employees() []Employee {
	return r.employees
}
