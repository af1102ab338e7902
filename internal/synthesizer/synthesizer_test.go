package synthesizer

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/orderseed/internal/composer"
	"github.com/dshills/orderseed/internal/menu"
	"github.com/dshills/orderseed/internal/sampler"
	"github.com/dshills/orderseed/pkg/types"
)

func newTestSynthesizer(t *testing.T, tables composer.Tables, options composer.Options) *Synthesizer {
	t.Helper()
	rng := rand.New(rand.NewPCG(3, 5))
	c, err := composer.New(tables, options, rng)
	require.NoError(t, err)
	return New(c, nil, rng)
}

func TestSynthesize(t *testing.T) {
	ref := menu.Default().Reference()
	s := newTestSynthesizer(t, composer.DefaultTables(), composer.Options{ResolveItems: true, ApplySurcharges: true})
	at := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)

	employees := make(map[int64]bool)
	for _, e := range ref.Employees() {
		employees[e.ID] = true
	}

	for i := 0; i < 1000; i++ {
		spec, err := s.Synthesize(at, ref)
		require.NoError(t, err)

		assert.Contains(t, defaultNames, spec.CustomerName)
		assert.True(t, employees[spec.EmployeeID])
		assert.Equal(t, at, spec.OrderedAt)
		assert.Nil(t, spec.Recent)
		assert.Empty(t, spec.BatchID)
		require.NotEmpty(t, spec.Sellables)
		assert.NoError(t, spec.Validate())

		var total float64
		for _, sold := range spec.Sellables {
			total += sold.Price
		}
		assert.InDelta(t, types.RoundCents(total), spec.TotalPrice, 1e-9)
	}
}

func TestSynthesize_PriceSum(t *testing.T) {
	// Always a Bowl with a Water Cup
	ref := types.NewReference(
		[]types.Category{{ID: 1, Name: "Meal"}, {ID: 2, Name: "Drink"}},
		[]types.Sellable{
			{ID: 1, Name: "Bowl", CategoryID: 1, Price: 8.30, Active: true},
			{ID: 2, Name: "Water Cup", CategoryID: 2, Price: 0.00, Active: true},
		},
		nil,
		[]types.Employee{{ID: 7, Name: "Dana", AccessLevel: types.AccessCashier}},
	)
	tables := composer.Tables{
		Combos: []composer.ComboTemplate{{Name: "meal+drink", Categories: []string{"Meal", "Drink"}, Probability: 1}},
	}
	s := newTestSynthesizer(t, tables, composer.Options{})

	spec, err := s.Synthesize(time.Now(), ref)
	require.NoError(t, err)
	require.Len(t, spec.Sellables, 2)
	assert.Equal(t, "Bowl", spec.Sellables[0].Name)
	assert.Equal(t, "Water Cup", spec.Sellables[1].Name)
	assert.Equal(t, 8.30, spec.TotalPrice)
	assert.Equal(t, int64(7), spec.EmployeeID)
}

func TestSynthesize_NoEmployees(t *testing.T) {
	m := menu.Default()
	m.Employees = nil
	s := newTestSynthesizer(t, composer.DefaultTables(), composer.Options{})

	_, err := s.Synthesize(time.Now(), m.Reference())
	assert.ErrorIs(t, err, ErrNoEmployees)
	assert.ErrorIs(t, err, sampler.ErrEmptyDistribution)
}

func TestSynthesize_EmptyCategory(t *testing.T) {
	ref := types.NewReference(nil, nil, nil, []types.Employee{{ID: 1, Name: "Dana"}})
	s := newTestSynthesizer(t, composer.DefaultTables(), composer.Options{})

	_, err := s.Synthesize(time.Now(), ref)
	assert.ErrorIs(t, err, sampler.ErrEmptyDistribution)
}

func TestNew_CustomNames(t *testing.T) {
	c, err := composer.New(composer.DefaultTables(), composer.Options{}, nil)
	require.NoError(t, err)
	s := New(c, []string{"Only"}, nil)

	spec, err := s.Synthesize(time.Now(), menu.Default().Reference())
	require.NoError(t, err)
	assert.Equal(t, "Only", spec.CustomerName)
}

func TestDefaultNames_ReturnsCopy(t *testing.T) {
	names := DefaultNames()
	require.NotEmpty(t, names)
	names[0] = "changed"
	assert.NotEqual(t, "changed", defaultNames[0])
}
