// Package storage provides SQLite-based persistence for menu reference data
// and generated orders.
//
// The storage layer manages:
//   - Menu categories, sellables and their component slots
//   - Items that fill component slots
//   - Employees
//   - Orders together with their sold sellables and sold items
//
// # Database Schema
//
// Tables:
//   - categories: Menu sections with an importance weight
//   - sellables: Priced menu entries belonging to a category
//   - sellable_components: Feature slots (e.g. 2 x "entree") of a sellable
//   - items: Concrete dishes, each carrying one feature
//   - employees: Staff with an access level
//   - orders: Order header; status is NULL for historical orders
//   - sold_sellables: Sellables of an order, in composition order
//   - sold_items: Items chosen for a sold sellable
//
// ordered_at is stored as Unix nanoseconds. Range filters compare integers
// and both drivers read the value back identically.
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("orders.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	sellables, err := db.ListSellables(ctx, &storage.SellableFilter{ActiveOnly: true})
//
// # Transactions
//
// A populate run writes its whole batch in one transaction:
//
//	tx, err := db.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	if _, err := tx.BulkCreateOrders(ctx, specs); err != nil {
//	    _ = tx.Rollback()
//	    return err
//	}
//	return tx.Commit()
//
// BulkCreateOrders called on the storage itself opens its own transaction,
// so a failing batch never leaves partial orders behind.
//
// # Build Tags
//
// Pure Go Build (default, or purego tag):
//
//   - Uses modernc.org/sqlite driver
//
//   - No C compiler needed
//
//     CGO_ENABLED=0 go build -tags "purego"
//
// CGO Build (sqlite_cgo tag):
//
//   - Uses github.com/mattn/go-sqlite3 driver
//
//   - Requires C compiler
//
//     CGO_ENABLED=1 go build -tags "sqlite_cgo"
package storage
