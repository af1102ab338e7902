package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/orderseed/internal/calendar"
	"github.com/dshills/orderseed/internal/composer"
	"github.com/dshills/orderseed/internal/metrics"
	"github.com/dshills/orderseed/internal/sampler"
	"github.com/dshills/orderseed/internal/storage"
	"github.com/dshills/orderseed/internal/synthesizer"
	"github.com/dshills/orderseed/pkg/types"
)

var (
	// ErrPersistenceFailure is returned when the batch could not be written.
	// The transaction has been rolled back and the store is unchanged.
	ErrPersistenceFailure = errors.New("failed to persist orders")
	// ErrPopulateInProgress is returned when another populate run holds the lock
	ErrPopulateInProgress = errors.New("populate already in progress")
	// ErrInvalidCount is returned for negative order counts
	ErrInvalidCount = errors.New("order count must not be negative")
)

// Failure stages reported to metrics
const (
	stageFetch    = "fetch"
	stageGenerate = "generate"
	stagePersist  = "persist"
)

// Config contains configuration for a populate run
type Config struct {
	HistoricalCount int               // Orders spread over the history window (default: 10000)
	RecentCount     int               // Orders placed today (default: 50)
	HistoryYears    int               // Length of the history window (default: 2)
	RecentStatus    types.OrderStatus // Status given to today's orders (default: completed)
	MinAccessLevel  types.AccessLevel // Lowest access level an order can be attributed to (default: cashier)
	Composer        composer.Options  // Item resolution and surcharges (default: composer.DefaultOptions)
	Names           []string          // Customer name pool (default: synthesizer.DefaultNames)
	FetchTimeout    time.Duration     // Bound on the reference fetch (default: 30s)
	PersistTimeout  time.Duration     // Bound on the bulk write (default: 5m)
}

// DefaultConfig returns the configuration used when none is given
func DefaultConfig() *Config {
	return &Config{
		HistoricalCount: 10000,
		RecentCount:     50,
		HistoryYears:    2,
		RecentStatus:    types.StatusCompleted,
		MinAccessLevel:  types.AccessCashier,
		Composer:        composer.DefaultOptions(),
		FetchTimeout:    30 * time.Second,
		PersistTimeout:  5 * time.Minute,
	}
}

// withDefaults fills zero fields from DefaultConfig. Counts are left alone:
// zero is a valid count. A zero Composer means the default refinements; set
// CacheSize alone to compose without items or surcharges.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinAccessLevel == 0 {
		c.MinAccessLevel = d.MinAccessLevel
	}
	if c.Composer == (composer.Options{}) {
		c.Composer = d.Composer
	}
	if c.HistoryYears <= 0 {
		c.HistoryYears = d.HistoryYears
	}
	if c.RecentStatus == "" {
		c.RecentStatus = d.RecentStatus
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = d.FetchTimeout
	}
	if c.PersistTimeout <= 0 {
		c.PersistTimeout = d.PersistTimeout
	}
	return c
}

func (c Config) validate() error {
	if c.HistoricalCount < 0 {
		return fmt.Errorf("%w: historical count %d", ErrInvalidCount, c.HistoricalCount)
	}
	if c.RecentCount < 0 {
		return fmt.Errorf("%w: recent count %d", ErrInvalidCount, c.RecentCount)
	}
	if !c.RecentStatus.Valid() {
		return fmt.Errorf("%w: %q", types.ErrInvalidStatus, c.RecentStatus)
	}
	return nil
}

// Statistics contains statistics about a populate run
type Statistics struct {
	BatchID            string
	HistoricalOrders   int
	RecentOrders       int
	Revenue            float64
	CalendarRejections int
	FirstOrderAt       time.Time
	LastOrderAt        time.Time
	Duration           time.Duration
}

// Seeder coordinates a populate run: fetch -> generate -> persist
type Seeder struct {
	storage  storage.Storage
	calendar *calendar.Calendar
	tables   composer.Tables
	config   Config
	metrics  *metrics.Collector
	rng      sampler.Source
	now      func() time.Time

	// Prevents concurrent populate runs
	lock PopulateLock
}

// Option customizes a Seeder
type Option func(*Seeder)

// WithConfig replaces the default run configuration
func WithConfig(cfg *Config) Option {
	return func(s *Seeder) {
		if cfg != nil {
			s.config = cfg.withDefaults()
		}
	}
}

// WithMetrics records run metrics on m
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Seeder) { s.metrics = m }
}

// WithRand draws every random choice from rng
func WithRand(rng sampler.Source) Option {
	return func(s *Seeder) { s.rng = rng }
}

// WithClock replaces time.Now when deciding what "today" is
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

// New creates a new Seeder instance
func New(store storage.Storage, cal *calendar.Calendar, tables composer.Tables, opts ...Option) *Seeder {
	s := &Seeder{
		storage:  store,
		calendar: cal,
		tables:   tables,
		config:   DefaultConfig().withDefaults(),
		rng:      sampler.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the run configuration in effect
func (s *Seeder) Config() Config {
	return s.config
}

// batch is one generated, not yet persisted run
type batch struct {
	id         string
	historical []types.OrderSpec
	recent     []types.OrderSpec
	rejections int
}

func (b *batch) orders() []types.OrderSpec {
	all := make([]types.OrderSpec, 0, len(b.historical)+len(b.recent))
	all = append(all, b.historical...)
	return append(all, b.recent...)
}

// GenerateBatch synthesizes historicalCount orders dated over the history
// window and recentCount orders dated today, without writing anything.
// Today's orders carry the configured recent status; when the store is
// closed today none are generated.
func (s *Seeder) GenerateBatch(ctx context.Context, historicalCount, recentCount int) ([]types.OrderSpec, error) {
	cfg := s.config
	cfg.HistoricalCount = historicalCount
	cfg.RecentCount = recentCount

	b, err := s.generate(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return b.orders(), nil
}

// Populate generates a batch and writes it in one transaction. A nil cfg
// uses the seeder's configuration. Either every order of the batch is
// stored or none is.
func (s *Seeder) Populate(ctx context.Context, cfg *Config) (*Statistics, error) {
	if !s.lock.TryAcquire() {
		return nil, ErrPopulateInProgress
	}
	defer s.lock.Release()

	run := s.config
	if cfg != nil {
		run = cfg.withDefaults()
	}

	startTime := time.Now()
	b, err := s.generate(ctx, run)
	if err != nil {
		return nil, err
	}

	orders := b.orders()
	if err := s.persist(ctx, orders, run.PersistTimeout); err != nil {
		s.metrics.RecordFailure(stagePersist)
		return nil, err
	}
	s.metrics.RecordPersisted(len(orders))

	stats := &Statistics{
		BatchID:            b.id,
		HistoricalOrders:   len(b.historical),
		RecentOrders:       len(b.recent),
		CalendarRejections: b.rejections,
	}
	for _, o := range orders {
		stats.Revenue += o.TotalPrice
		if stats.FirstOrderAt.IsZero() || o.OrderedAt.Before(stats.FirstOrderAt) {
			stats.FirstOrderAt = o.OrderedAt
		}
		if o.OrderedAt.After(stats.LastOrderAt) {
			stats.LastOrderAt = o.OrderedAt
		}
	}
	stats.Revenue = types.RoundCents(stats.Revenue)
	stats.Duration = time.Since(startTime)
	s.metrics.RecordPopulate(stats.Duration)
	return stats, nil
}

// Running reports whether a populate run is in progress
func (s *Seeder) Running() bool {
	return s.lock.Held()
}

// generate runs the fetch and synthesis phases
func (s *Seeder) generate(ctx context.Context, cfg Config) (*batch, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	now := s.now().In(s.calendar.Location())
	today := s.calendar.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	historyStart, err := s.calendar.LastOpenDayOnOrBefore(now.AddDate(-cfg.HistoryYears, 0, 0))
	if err != nil {
		s.metrics.RecordFailure(stageGenerate)
		return nil, err
	}
	historyEnd := today.Add(-time.Nanosecond)

	ref, err := s.FetchReference(ctx, cfg.MinAccessLevel, cfg.FetchTimeout)
	if err != nil {
		s.metrics.RecordFailure(stageFetch)
		return nil, err
	}

	comp, err := composer.New(s.tables, cfg.Composer, s.rng)
	if err != nil {
		s.metrics.RecordFailure(stageGenerate)
		return nil, err
	}
	synth := synthesizer.New(comp, cfg.Names, s.rng)

	b := &batch{id: uuid.NewString()}

	b.historical, err = s.synthesize(ctx, synth, ref, b, cfg.HistoricalCount, historyStart, historyEnd, nil)
	if err != nil {
		s.metrics.RecordFailure(stageGenerate)
		return nil, fmt.Errorf("failed to generate historical orders: %w", err)
	}
	s.metrics.RecordGenerated(metrics.KindHistorical, len(b.historical))

	if s.calendar.IsOpen(today) {
		marker := &types.RecentOrderMarker{Status: cfg.RecentStatus}
		b.recent, err = s.synthesize(ctx, synth, ref, b, cfg.RecentCount, today, tomorrow.Add(-time.Nanosecond), marker)
		if err != nil {
			s.metrics.RecordFailure(stageGenerate)
			return nil, fmt.Errorf("failed to generate recent orders: %w", err)
		}
		s.metrics.RecordGenerated(metrics.KindRecent, len(b.recent))
	}

	s.metrics.RecordRejections(b.rejections)
	return b, nil
}

// synthesize builds count orders timestamped within [start, end]
func (s *Seeder) synthesize(ctx context.Context, synth *synthesizer.Synthesizer, ref *types.Reference, b *batch,
	count int, start, end time.Time, marker *types.RecentOrderMarker) ([]types.OrderSpec, error) {
	specs := make([]types.OrderSpec, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		draw, err := s.calendar.Draw(s.rng, start, end)
		b.rejections += draw.Rejections
		if err != nil {
			return nil, err
		}

		spec, err := synth.Synthesize(draw.At, ref)
		if err != nil {
			return nil, err
		}
		spec.BatchID = b.id
		if marker != nil {
			m := *marker
			spec.Recent = &m
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// FetchReference loads the menu and the eligible employees concurrently.
// The first failing query cancels the others.
func (s *Seeder) FetchReference(ctx context.Context, minLevel types.AccessLevel, timeout time.Duration) (*types.Reference, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var (
		categories []types.Category
		sellables  []types.Sellable
		items      []types.Item
		employees  []types.Employee
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.storage.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sellables, err = s.storage.ListSellables(gctx, &storage.SellableFilter{ActiveOnly: true})
		if err != nil {
			return fmt.Errorf("failed to fetch sellables: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		items, err = s.storage.ListItems(gctx, &storage.ItemFilter{ActiveOnly: true})
		if err != nil {
			return fmt.Errorf("failed to fetch items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		employees, err = s.storage.ListEmployees(gctx, &storage.EmployeeFilter{MinAccessLevel: minLevel})
		if err != nil {
			return fmt.Errorf("failed to fetch employees: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return types.NewReference(categories, sellables, items, employees), nil
}

// persist writes orders in a single transaction bounded by timeout
func (s *Seeder) persist(ctx context.Context, orders []types.OrderSpec, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tx, err := s.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	if _, err := tx.BulkCreateOrders(ctx, orders); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	return nil
}
