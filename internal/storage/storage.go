package storage

import (
	"context"
	"time"

	"github.com/dshills/orderseed/pkg/types"
)

// Storage defines the interface for reading reference data and persisting
// generated orders
type Storage interface {
	// Category operations
	CreateCategory(ctx context.Context, category *types.Category) error
	ListCategories(ctx context.Context) ([]types.Category, error)

	// Sellable operations
	CreateSellable(ctx context.Context, sellable *types.Sellable) error
	ListSellables(ctx context.Context, filter *SellableFilter) ([]types.Sellable, error)

	// Item operations
	CreateItem(ctx context.Context, item *types.Item) error
	ListItems(ctx context.Context, filter *ItemFilter) ([]types.Item, error)

	// Employee operations
	CreateEmployee(ctx context.Context, employee *types.Employee) error
	ListEmployees(ctx context.Context, filter *EmployeeFilter) ([]types.Employee, error)

	// Order operations
	BulkCreateOrders(ctx context.Context, specs []types.OrderSpec) (ids []int64, err error)
	GetOrder(ctx context.Context, orderID int64) (*Order, error)
	ListOrders(ctx context.Context, filter *OrderFilter) ([]*Order, error)
	CountOrders(ctx context.Context, filter *OrderFilter) (int, error)

	// Status operations
	GetStatus(ctx context.Context) (*Status, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// SellableFilter narrows ListSellables
type SellableFilter struct {
	CategoryIDs []int64 // Only sellables in these categories
	ActiveOnly  bool
}

// ItemFilter narrows ListItems
type ItemFilter struct {
	Features   []string // Only items carrying one of these features
	ActiveOnly bool
}

// EmployeeFilter narrows ListEmployees
type EmployeeFilter struct {
	MinAccessLevel types.AccessLevel // Employees at this level or above
}

// OrderFilter narrows ListOrders and CountOrders
type OrderFilter struct {
	Since      time.Time // Inclusive, zero means unbounded
	Until      time.Time // Exclusive, zero means unbounded
	Status     types.OrderStatus
	RecentOnly bool // Only orders carrying a recent marker
	BatchID    string
	Limit      int // ListOrders only, 0 means no limit
}

// Order is a persisted order
type Order struct {
	ID           int64
	BatchID      string
	CustomerName string
	EmployeeID   int64
	OrderedAt    time.Time
	TotalPrice   float64
	Status       *types.OrderStatus // Nullable - historical orders have none
	Sellables    []types.SoldSellable
	CreatedAt    time.Time
}

// Status contains statistics about the seeded store
type Status struct {
	SchemaVersion   string
	CategoriesCount int
	SellablesCount  int
	ItemsCount      int
	EmployeesCount  int
	OrdersCount     int
	RecentCount     int
	BatchesCount    int
	Revenue         float64
	FirstOrderAt    time.Time
	LastOrderAt     time.Time
	DatabaseSizeMB  float64
	Health          HealthStatus
}

// HealthStatus represents the health of the store
type HealthStatus struct {
	DatabaseAccessible bool
	MenuSeeded         bool
	EmployeesAvailable bool
}
