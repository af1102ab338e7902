// Package synthesizer assembles single orders: a customer, the employee who
// rang it up, a composition from the composer and the total price.
package synthesizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/orderseed/internal/composer"
	"github.com/dshills/orderseed/internal/sampler"
	"github.com/dshills/orderseed/pkg/types"
)

// ErrNoEmployees is returned when the snapshot has no eligible employee
var ErrNoEmployees = errors.New("no eligible employees")

// Synthesizer builds order specs. It never writes anything and, like the
// composer it wraps, is not safe for concurrent use.
type Synthesizer struct {
	composer *composer.Composer
	names    []string
	rng      sampler.Source
}

// New creates a synthesizer. Empty names fall back to DefaultNames and a nil
// rng uses the process-wide source.
func New(c *composer.Composer, names []string, rng sampler.Source) *Synthesizer {
	if len(names) == 0 {
		names = DefaultNames()
	}
	if rng == nil {
		rng = sampler.Default()
	}
	return &Synthesizer{composer: c, names: names, rng: rng}
}

// Synthesize builds one order dated orderDate from the snapshot. The
// employee is drawn from ref.Employees(), which the caller has already
// restricted to eligible staff.
func (s *Synthesizer) Synthesize(orderDate time.Time, ref *types.Reference) (types.OrderSpec, error) {
	customer, err := sampler.Select(s.rng, s.names)
	if err != nil {
		return types.OrderSpec{}, fmt.Errorf("failed to pick customer: %w", err)
	}

	employee, err := sampler.Select(s.rng, ref.Employees())
	if errors.Is(err, sampler.ErrEmptyDistribution) {
		return types.OrderSpec{}, fmt.Errorf("%w: %w", ErrNoEmployees, err)
	}
	if err != nil {
		return types.OrderSpec{}, err
	}

	picks, err := s.composer.Compose(ref)
	if err != nil {
		return types.OrderSpec{}, fmt.Errorf("failed to compose order: %w", err)
	}

	sold := make([]types.SoldSellable, 0, len(picks))
	for _, p := range picks {
		line, err := s.composer.Sell(ref, p)
		if err != nil {
			return types.OrderSpec{}, fmt.Errorf("failed to sell %s: %w", p.Sellable.Name, err)
		}
		sold = append(sold, line)
	}

	return types.OrderSpec{
		CustomerName: customer,
		EmployeeID:   employee.ID,
		OrderedAt:    orderDate,
		TotalPrice:   types.SumPrices(sold),
		Sellables:    sold,
	}, nil
}
