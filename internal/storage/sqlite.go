package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/orderseed/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidOrder is returned when an order spec fails validation
	ErrInvalidOrder = errors.New("invalid order")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite benefits from single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Orders reference employees and sellables; keep those links enforced
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// atomically runs fn inside a fresh transaction on the DB
func (s *SQLiteStorage) atomically(ctx context.Context, fn func(q querier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Category operations

func (s *SQLiteStorage) createCategoryWithQuerier(ctx context.Context, q querier, category *types.Category) error {
	if category.Name == "" {
		return types.ErrEmptyName
	}
	result, err := q.ExecContext(ctx,
		"INSERT INTO categories (name, importance) VALUES (?, ?)",
		category.Name, category.Importance)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	category.ID = id
	return nil
}

func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *types.Category) error {
	return s.createCategoryWithQuerier(ctx, s.querier(), category)
}

func (s *SQLiteStorage) listCategoriesWithQuerier(ctx context.Context, q querier) ([]types.Category, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name, importance FROM categories ORDER BY importance DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []types.Category
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Importance); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]types.Category, error) {
	return s.listCategoriesWithQuerier(ctx, s.querier())
}

// Sellable operations

func (s *SQLiteStorage) createSellableWithQuerier(ctx context.Context, q querier, sellable *types.Sellable) error {
	if err := sellable.Validate(); err != nil {
		return err
	}
	result, err := q.ExecContext(ctx,
		"INSERT INTO sellables (category_id, name, price, active) VALUES (?, ?, ?, ?)",
		sellable.CategoryID, sellable.Name, sellable.Price, sellable.Active)
	if err != nil {
		return fmt.Errorf("failed to create sellable: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	sellable.ID = id

	for i := range sellable.Components {
		comp := &sellable.Components[i]
		comp.SellableID = id
		result, err := q.ExecContext(ctx,
			"INSERT INTO sellable_components (sellable_id, feature, quantity) VALUES (?, ?, ?)",
			id, comp.Feature, comp.Quantity)
		if err != nil {
			return fmt.Errorf("failed to create component %s: %w", comp.Feature, err)
		}
		if comp.ID, err = result.LastInsertId(); err != nil {
			return err
		}
	}
	return nil
}

// CreateSellable stores a sellable and its components atomically
func (s *SQLiteStorage) CreateSellable(ctx context.Context, sellable *types.Sellable) error {
	return s.atomically(ctx, func(q querier) error {
		return s.createSellableWithQuerier(ctx, q, sellable)
	})
}

func (s *SQLiteStorage) listSellablesWithQuerier(ctx context.Context, q querier, filter *SellableFilter) ([]types.Sellable, error) {
	query := `
		SELECT s.id, s.name, s.category_id, c.name, s.price, s.active
		FROM sellables s
		JOIN categories c ON c.id = s.category_id
		WHERE 1=1
	`
	var args []interface{}
	if filter != nil {
		if len(filter.CategoryIDs) > 0 {
			query += " AND s.category_id IN (" + placeholders(len(filter.CategoryIDs)) + ")"
			for _, id := range filter.CategoryIDs {
				args = append(args, id)
			}
		}
		if filter.ActiveOnly {
			query += " AND s.active = 1"
		}
	}
	query += " ORDER BY s.id"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sellables: %w", err)
	}

	var sellables []types.Sellable
	index := make(map[int64]int)
	for rows.Next() {
		var sl types.Sellable
		if err := rows.Scan(&sl.ID, &sl.Name, &sl.CategoryID, &sl.Category, &sl.Price, &sl.Active); err != nil {
			_ = rows.Close()
			return nil, err
		}
		index[sl.ID] = len(sellables)
		sellables = append(sellables, sl)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	if len(sellables) == 0 {
		return sellables, nil
	}

	// Attach components in one pass
	compRows, err := q.QueryContext(ctx,
		"SELECT id, sellable_id, feature, quantity FROM sellable_components ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	defer func() { _ = compRows.Close() }()
	for compRows.Next() {
		var c types.Component
		if err := compRows.Scan(&c.ID, &c.SellableID, &c.Feature, &c.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[c.SellableID]; ok {
			sellables[i].Components = append(sellables[i].Components, c)
		}
	}
	return sellables, compRows.Err()
}

func (s *SQLiteStorage) ListSellables(ctx context.Context, filter *SellableFilter) ([]types.Sellable, error) {
	return s.listSellablesWithQuerier(ctx, s.querier(), filter)
}

// Item operations

func (s *SQLiteStorage) createItemWithQuerier(ctx context.Context, q querier, item *types.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	result, err := q.ExecContext(ctx,
		"INSERT INTO items (name, feature, additional_price, active) VALUES (?, ?, ?, ?)",
		item.Name, item.Feature, item.AdditionalPrice, item.Active)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = id
	return nil
}

func (s *SQLiteStorage) CreateItem(ctx context.Context, item *types.Item) error {
	return s.createItemWithQuerier(ctx, s.querier(), item)
}

func (s *SQLiteStorage) listItemsWithQuerier(ctx context.Context, q querier, filter *ItemFilter) ([]types.Item, error) {
	query := "SELECT id, name, feature, additional_price, active FROM items WHERE 1=1"
	var args []interface{}
	if filter != nil {
		if len(filter.Features) > 0 {
			query += " AND feature IN (" + placeholders(len(filter.Features)) + ")"
			for _, f := range filter.Features {
				args = append(args, f)
			}
		}
		if filter.ActiveOnly {
			query += " AND active = 1"
		}
	}
	query += " ORDER BY id"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []types.Item
	for rows.Next() {
		var it types.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Feature, &it.AdditionalPrice, &it.Active); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQLiteStorage) ListItems(ctx context.Context, filter *ItemFilter) ([]types.Item, error) {
	return s.listItemsWithQuerier(ctx, s.querier(), filter)
}

// Employee operations

func (s *SQLiteStorage) createEmployeeWithQuerier(ctx context.Context, q querier, employee *types.Employee) error {
	if employee.Name == "" {
		return types.ErrEmptyName
	}
	result, err := q.ExecContext(ctx,
		"INSERT INTO employees (name, access_level) VALUES (?, ?)",
		employee.Name, int(employee.AccessLevel))
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	employee.ID = id
	return nil
}

func (s *SQLiteStorage) CreateEmployee(ctx context.Context, employee *types.Employee) error {
	return s.createEmployeeWithQuerier(ctx, s.querier(), employee)
}

func (s *SQLiteStorage) listEmployeesWithQuerier(ctx context.Context, q querier, filter *EmployeeFilter) ([]types.Employee, error) {
	minLevel := types.AccessCustomer
	if filter != nil {
		minLevel = filter.MinAccessLevel
	}
	rows, err := q.QueryContext(ctx,
		"SELECT id, name, access_level FROM employees WHERE access_level >= ? ORDER BY id",
		int(minLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var employees []types.Employee
	for rows.Next() {
		var e types.Employee
		var level int
		if err := rows.Scan(&e.ID, &e.Name, &level); err != nil {
			return nil, err
		}
		e.AccessLevel = types.AccessLevel(level)
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *SQLiteStorage) ListEmployees(ctx context.Context, filter *EmployeeFilter) ([]types.Employee, error) {
	return s.listEmployeesWithQuerier(ctx, s.querier(), filter)
}

// Order operations

// bulkCreateOrdersWithQuerier inserts every spec with prepared statements.
// It stops at the first failure; the caller's transaction decides whether
// anything is kept.
func (s *SQLiteStorage) bulkCreateOrdersWithQuerier(ctx context.Context, q querier, specs []types.OrderSpec) ([]int64, error) {
	for i := range specs {
		if err := specs[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: order %d: %v", ErrInvalidOrder, i, err)
		}
	}

	orderStmt, err := q.PrepareContext(ctx, `
		INSERT INTO orders (batch_id, customer_name, employee_id, ordered_at, total_price, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare order insert: %w", err)
	}
	defer func() { _ = orderStmt.Close() }()

	sellableStmt, err := q.PrepareContext(ctx, `
		INSERT INTO sold_sellables (order_id, sellable_id, position, price)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare sellable insert: %w", err)
	}
	defer func() { _ = sellableStmt.Close() }()

	itemStmt, err := q.PrepareContext(ctx, `
		INSERT INTO sold_items (sold_sellable_id, item_id, quantity, additional_price)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer func() { _ = itemStmt.Close() }()

	ids := make([]int64, 0, len(specs))
	for i, spec := range specs {
		var status sql.NullString
		if spec.Recent != nil {
			status = sql.NullString{String: string(spec.Recent.Status), Valid: true}
		}

		result, err := orderStmt.ExecContext(ctx,
			spec.BatchID, spec.CustomerName, spec.EmployeeID,
			spec.OrderedAt.UnixNano(), spec.TotalPrice, status)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order %d: %w", i, err)
		}
		orderID, err := result.LastInsertId()
		if err != nil {
			return nil, err
		}

		for pos, sold := range spec.Sellables {
			result, err := sellableStmt.ExecContext(ctx, orderID, sold.SellableID, pos, sold.Price)
			if err != nil {
				return nil, fmt.Errorf("failed to insert sellable %s of order %d: %w", sold.Name, i, err)
			}
			soldID, err := result.LastInsertId()
			if err != nil {
				return nil, err
			}
			for _, it := range sold.Items {
				if _, err := itemStmt.ExecContext(ctx, soldID, it.ItemID, it.Quantity, it.AdditionalPrice); err != nil {
					return nil, fmt.Errorf("failed to insert item %s of order %d: %w", it.Name, i, err)
				}
			}
		}
		ids = append(ids, orderID)
	}
	return ids, nil
}

// BulkCreateOrders stores every spec in one transaction: all or nothing
func (s *SQLiteStorage) BulkCreateOrders(ctx context.Context, specs []types.OrderSpec) ([]int64, error) {
	var ids []int64
	err := s.atomically(ctx, func(q querier) error {
		var err error
		ids, err = s.bulkCreateOrdersWithQuerier(ctx, q, specs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

const orderColumns = "id, batch_id, customer_name, employee_id, ordered_at, total_price, status, created_at"

func scanOrder(scan func(dest ...interface{}) error) (*Order, error) {
	var o Order
	var orderedAt int64
	var status sql.NullString
	var createdAt sql.NullTime
	if err := scan(&o.ID, &o.BatchID, &o.CustomerName, &o.EmployeeID,
		&orderedAt, &o.TotalPrice, &status, &createdAt); err != nil {
		return nil, err
	}
	o.OrderedAt = time.Unix(0, orderedAt).UTC()
	if status.Valid {
		st := types.OrderStatus(status.String)
		o.Status = &st
	}
	if createdAt.Valid {
		o.CreatedAt = createdAt.Time
	}
	return &o, nil
}

func (s *SQLiteStorage) getOrderWithQuerier(ctx context.Context, q querier, orderID int64) (*Order, error) {
	row := q.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = ?", orderID)
	order, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT ss.id, ss.sellable_id, s.name, c.name, ss.price
		FROM sold_sellables ss
		JOIN sellables s ON s.id = ss.sellable_id
		JOIN categories c ON c.id = s.category_id
		WHERE ss.order_id = ?
		ORDER BY ss.position
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order sellables: %w", err)
	}
	var soldIDs []int64
	for rows.Next() {
		var id int64
		var sold types.SoldSellable
		if err := rows.Scan(&id, &sold.SellableID, &sold.Name, &sold.Category, &sold.Price); err != nil {
			_ = rows.Close()
			return nil, err
		}
		soldIDs = append(soldIDs, id)
		order.Sellables = append(order.Sellables, sold)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for i, soldID := range soldIDs {
		items, err := s.listSoldItemsWithQuerier(ctx, q, soldID)
		if err != nil {
			return nil, err
		}
		order.Sellables[i].Items = items
	}
	return order, nil
}

func (s *SQLiteStorage) listSoldItemsWithQuerier(ctx context.Context, q querier, soldSellableID int64) ([]types.SoldItem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT si.item_id, i.name, si.quantity, si.additional_price
		FROM sold_items si
		JOIN items i ON i.id = si.item_id
		WHERE si.sold_sellable_id = ?
		ORDER BY si.id
	`, soldSellableID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sold items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []types.SoldItem
	for rows.Next() {
		var it types.SoldItem
		if err := rows.Scan(&it.ItemID, &it.Name, &it.Quantity, &it.AdditionalPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQLiteStorage) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	return s.getOrderWithQuerier(ctx, s.querier(), orderID)
}

// applyOrderFilter appends WHERE clauses for filter
func applyOrderFilter(query string, args []interface{}, filter *OrderFilter) (string, []interface{}) {
	if filter == nil {
		return query, args
	}
	if !filter.Since.IsZero() {
		query += " AND ordered_at >= ?"
		args = append(args, filter.Since.UnixNano())
	}
	if !filter.Until.IsZero() {
		query += " AND ordered_at < ?"
		args = append(args, filter.Until.UnixNano())
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if filter.RecentOnly {
		query += " AND status IS NOT NULL"
	}
	if filter.BatchID != "" {
		query += " AND batch_id = ?"
		args = append(args, filter.BatchID)
	}
	return query, args
}

func (s *SQLiteStorage) listOrdersWithQuerier(ctx context.Context, q querier, filter *OrderFilter) ([]*Order, error) {
	query, args := applyOrderFilter("SELECT "+orderColumns+" FROM orders WHERE 1=1", nil, filter)
	query += " ORDER BY ordered_at DESC, id DESC"
	if filter != nil && filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *SQLiteStorage) ListOrders(ctx context.Context, filter *OrderFilter) ([]*Order, error) {
	return s.listOrdersWithQuerier(ctx, s.querier(), filter)
}

func (s *SQLiteStorage) countOrdersWithQuerier(ctx context.Context, q querier, filter *OrderFilter) (int, error) {
	query, args := applyOrderFilter("SELECT COUNT(*) FROM orders WHERE 1=1", nil, filter)
	var count int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) CountOrders(ctx context.Context, filter *OrderFilter) (int, error) {
	return s.countOrdersWithQuerier(ctx, s.querier(), filter)
}

// Status operations

func (s *SQLiteStorage) getStatusWithQuerier(ctx context.Context, q querier) (*Status, error) {
	status := &Status{SchemaVersion: CurrentSchemaVersion}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM categories", &status.CategoriesCount},
		{"SELECT COUNT(*) FROM sellables", &status.SellablesCount},
		{"SELECT COUNT(*) FROM items", &status.ItemsCount},
		{"SELECT COUNT(*) FROM employees", &status.EmployeesCount},
		{"SELECT COUNT(*) FROM orders", &status.OrdersCount},
		{"SELECT COUNT(*) FROM orders WHERE status IS NOT NULL", &status.RecentCount},
		{"SELECT COUNT(DISTINCT batch_id) FROM orders", &status.BatchesCount},
	}
	for _, c := range counts {
		if err := q.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to get status: %w", err)
		}
	}

	var revenue sql.NullFloat64
	var first, last sql.NullInt64
	err := q.QueryRowContext(ctx,
		"SELECT SUM(total_price), MIN(ordered_at), MAX(ordered_at) FROM orders").Scan(&revenue, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("failed to get order totals: %w", err)
	}
	if revenue.Valid {
		status.Revenue = types.RoundCents(revenue.Float64)
	}
	if first.Valid {
		status.FirstOrderAt = time.Unix(0, first.Int64).UTC()
	}
	if last.Valid {
		status.LastOrderAt = time.Unix(0, last.Int64).UTC()
	}

	// Calculate database size
	var pageCount, pageSize int
	if err := q.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err == nil {
		_ = q.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
		status.DatabaseSizeMB = float64(pageCount*pageSize) / (1024 * 1024)
	}

	status.Health = HealthStatus{
		DatabaseAccessible: true,
		MenuSeeded:         status.SellablesCount > 0,
		EmployeesAvailable: status.EmployeesCount > 0,
	}
	return status, nil
}

func (s *SQLiteStorage) GetStatus(ctx context.Context) (*Status, error) {
	status, err := s.getStatusWithQuerier(ctx, s.querier())
	if err != nil {
		return nil, err
	}
	if v, err := SchemaVersion(ctx, s.db); err == nil {
		status.SchemaVersion = v
	}
	return status, nil
}

// placeholders returns "?, ?, ..." with n markers
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Transaction implementations. Every operation goes through the transaction
// querier: the pool holds a single connection, so touching s.db while the
// transaction is open would block.

func (t *sqliteTx) CreateCategory(ctx context.Context, category *types.Category) error {
	return t.storage.createCategoryWithQuerier(ctx, t.querier(), category)
}

func (t *sqliteTx) ListCategories(ctx context.Context) ([]types.Category, error) {
	return t.storage.listCategoriesWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) CreateSellable(ctx context.Context, sellable *types.Sellable) error {
	return t.storage.createSellableWithQuerier(ctx, t.querier(), sellable)
}

func (t *sqliteTx) ListSellables(ctx context.Context, filter *SellableFilter) ([]types.Sellable, error) {
	return t.storage.listSellablesWithQuerier(ctx, t.querier(), filter)
}

func (t *sqliteTx) CreateItem(ctx context.Context, item *types.Item) error {
	return t.storage.createItemWithQuerier(ctx, t.querier(), item)
}

func (t *sqliteTx) ListItems(ctx context.Context, filter *ItemFilter) ([]types.Item, error) {
	return t.storage.listItemsWithQuerier(ctx, t.querier(), filter)
}

func (t *sqliteTx) CreateEmployee(ctx context.Context, employee *types.Employee) error {
	return t.storage.createEmployeeWithQuerier(ctx, t.querier(), employee)
}

func (t *sqliteTx) ListEmployees(ctx context.Context, filter *EmployeeFilter) ([]types.Employee, error) {
	return t.storage.listEmployeesWithQuerier(ctx, t.querier(), filter)
}

func (t *sqliteTx) BulkCreateOrders(ctx context.Context, specs []types.OrderSpec) ([]int64, error) {
	return t.storage.bulkCreateOrdersWithQuerier(ctx, t.querier(), specs)
}

func (t *sqliteTx) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	return t.storage.getOrderWithQuerier(ctx, t.querier(), orderID)
}

func (t *sqliteTx) ListOrders(ctx context.Context, filter *OrderFilter) ([]*Order, error) {
	return t.storage.listOrdersWithQuerier(ctx, t.querier(), filter)
}

func (t *sqliteTx) CountOrders(ctx context.Context, filter *OrderFilter) (int, error) {
	return t.storage.countOrdersWithQuerier(ctx, t.querier(), filter)
}

func (t *sqliteTx) GetStatus(ctx context.Context) (*Status, error) {
	return t.storage.getStatusWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) Close() error {
	// Transactions don't close the underlying connection
	return nil
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	// SQLite does not support true nested transactions
	return nil, errors.New("nested transactions not supported")
}
