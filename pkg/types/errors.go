package types

import "errors"

// Domain errors for type validation
var (
	// Menu errors
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrEmptyFeature    = errors.New("feature cannot be empty")
	ErrMissingCategory = errors.New("category is required")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrInvalidQuantity = errors.New("quantity must be >= 1")

	// Order errors
	ErrMissingEmployee  = errors.New("employee is required")
	ErrMissingTimestamp = errors.New("order timestamp is required")
	ErrEmptyOrder       = errors.New("order must contain at least one sellable")
	ErrInvalidStatus    = errors.New("invalid order status")
)
