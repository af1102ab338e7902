package types

// AccessLevel ranks what an employee account may do in the store. The
// zero value means unset.
type AccessLevel int

const (
	AccessCustomer AccessLevel = iota + 1
	AccessCashier
	AccessKitchen
	AccessManager
)

// String returns the lowercase name of the access level
func (a AccessLevel) String() string {
	switch a {
	case AccessCustomer:
		return "customer"
	case AccessCashier:
		return "cashier"
	case AccessKitchen:
		return "kitchen"
	case AccessManager:
		return "manager"
	default:
		return "unknown"
	}
}

// Category groups sellables that serve the same purpose (Meal, Drink, ...)
type Category struct {
	ID         int64
	Name       string
	Importance float64 // Weight annotation used for menu ordering
}

// Component is one slot of a sellable, filled with Quantity units of items
// that carry Feature (e.g. two "entree" units on a Plate)
type Component struct {
	ID         int64
	SellableID int64
	Feature    string
	Quantity   int
}

// Sellable is a purchasable menu offering such as "Bowl" or "Fountain Drink"
type Sellable struct {
	// Identification
	ID         int64
	Name       string
	CategoryID int64
	Category   string // Category name, denormalized for sampling

	// Pricing
	Price  float64
	Active bool

	// Composition
	Components []Component
}

// Validate checks that the sellable can be stored
func (s *Sellable) Validate() error {
	if s.Name == "" {
		return ErrEmptyName
	}
	if s.CategoryID == 0 {
		return ErrMissingCategory
	}
	if s.Price < 0 {
		return ErrNegativePrice
	}
	for _, c := range s.Components {
		if c.Feature == "" {
			return ErrEmptyFeature
		}
		if c.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// Item is a concrete menu item that fills sellable components
type Item struct {
	ID              int64
	Name            string
	Feature         string // e.g. "entree", "side", "drink"
	AdditionalPrice float64
	Active          bool
}

// Validate checks that the item can be stored
func (i *Item) Validate() error {
	if i.Name == "" {
		return ErrEmptyName
	}
	if i.Feature == "" {
		return ErrEmptyFeature
	}
	if i.AdditionalPrice < 0 {
		return ErrNegativePrice
	}
	return nil
}

// Employee is a staff account orders can be attributed to
type Employee struct {
	ID          int64
	Name        string
	AccessLevel AccessLevel
}
