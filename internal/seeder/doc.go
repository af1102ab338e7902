// Package seeder populates a store with a batch of synthetic orders.
//
// A run executes a linear pipeline:
//
//  1. Ranges: history covers the last two years up to the end of yesterday,
//     starting on an open day; "recent" covers today only
//  2. Fetch: categories, sellables, items and eligible employees are loaded
//     concurrently into a read-only snapshot
//  3. Generate: historical orders, then today's orders carrying a status
//  4. Persist: one transaction for the whole batch
//
// # Basic Usage
//
//	cal, _ := calendar.New(calendar.DefaultSchedule())
//	s := seeder.New(store, cal, composer.DefaultTables())
//
//	stats, err := s.Populate(ctx, &seeder.Config{
//	    HistoricalCount: 10000,
//	    RecentCount:     50,
//	})
//	if errors.Is(err, seeder.ErrPersistenceFailure) {
//	    // nothing was written
//	}
//
// Every order of a run shares a UUID batch id, so runs can be told apart
// and counted after the fact.
//
// # Concurrency
//
// Only the reference fetch fans out. Sampling is single-threaded and a
// second Populate call while one is running fails fast with
// ErrPopulateInProgress.
package seeder
