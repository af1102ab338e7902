package types

import (
	"math"
	"time"
)

// OrderStatus is the fulfillment state shown on the kitchen board
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// RecentOrderMarker tags orders generated for today with an initial
// fulfillment status. Historical orders carry no marker.
type RecentOrderMarker struct {
	Status OrderStatus
}

// SoldItem is one resolved line entry inside a sold sellable
type SoldItem struct {
	ItemID          int64
	Name            string
	Quantity        int
	AdditionalPrice float64 // Per unit
}

// SoldSellable is a sellable chosen for an order, optionally with its
// resolved items. Price is what the order is charged for it.
type SoldSellable struct {
	SellableID int64
	Name       string
	Category   string
	Price      float64
	Items      []SoldItem
}

// OrderSpec is a fully composed order that has not been persisted yet.
// It is built once by the synthesizer and consumed once by the seeder.
type OrderSpec struct {
	BatchID      string
	CustomerName string
	EmployeeID   int64
	OrderedAt    time.Time
	TotalPrice   float64
	Sellables    []SoldSellable
	Recent       *RecentOrderMarker // nil for historical orders
}

// IsRecent reports whether the order belongs to today's in-flight batch
func (o *OrderSpec) IsRecent() bool {
	return o.Recent != nil
}

// Validate checks that the order can be persisted
func (o *OrderSpec) Validate() error {
	if o.CustomerName == "" {
		return ErrEmptyName
	}
	if o.EmployeeID == 0 {
		return ErrMissingEmployee
	}
	if o.OrderedAt.IsZero() {
		return ErrMissingTimestamp
	}
	if len(o.Sellables) == 0 {
		return ErrEmptyOrder
	}
	if o.Recent != nil && !o.Recent.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// SumPrices returns the total charged for the given sellables, in cents precision
func SumPrices(sellables []SoldSellable) float64 {
	var total float64
	for _, s := range sellables {
		total += s.Price
	}
	return RoundCents(total)
}

// RoundCents rounds an amount to two decimal places
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
