package sampler

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource returns the same draw every time
type fixedSource struct {
	f float64
	n int
}

func (s fixedSource) Float64() float64 { return s.f }
func (s fixedSource) IntN(int) int     { return s.n }

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestChoose_Convergence(t *testing.T) {
	options := []Option[string]{
		P(0.4, "bowl"),
		P(0.3, "plate"),
		P(0.2, "bigger plate"),
		P(0.1, "family meal"),
	}

	rng := seeded()
	const draws = 200000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		v, err := Choose(rng, options)
		require.NoError(t, err)
		counts[v]++
	}

	for _, o := range options {
		got := float64(counts[o.Value]) / draws
		assert.InDelta(t, o.Probability, got, 0.01, "proportion of %s", o.Value)
	}
}

func TestChoose_WalkBoundaries(t *testing.T) {
	options := []Option[string]{P(0.5, "a"), P(0.3, "b"), P(0.2, "c")}

	tests := []struct {
		p    float64
		want string
	}{
		{0.0, "a"},
		{0.49, "a"},
		{0.5, "b"},
		{0.79, "b"},
		{0.81, "c"},
		{0.999, "c"},
	}
	for _, tt := range tests {
		v, err := Choose(fixedSource{f: tt.p}, options)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v, "p=%v", tt.p)
	}
}

func TestChoose_RemainderGoesToLastOption(t *testing.T) {
	// Probabilities sum to 0.8; a draw in [0.8, 1) lands in the gap.
	// The last listed option is the documented outcome, not an accident.
	options := []Option[string]{P(0.5, "first"), P(0.3, "last")}

	for _, p := range []float64{0.8, 0.9, 0.999999} {
		v, err := Choose(fixedSource{f: p}, options)
		require.NoError(t, err)
		assert.Equal(t, "last", v, "p=%v", p)
	}

	t.Run("gap mass is observed", func(t *testing.T) {
		rng := seeded()
		const draws = 100000
		last := 0
		for i := 0; i < draws; i++ {
			v, err := Choose(rng, options)
			require.NoError(t, err)
			if v == "last" {
				last++
			}
		}
		// 0.3 explicit + 0.2 remainder
		assert.InDelta(t, 0.5, float64(last)/draws, 0.01)
	})
}

func TestChoose_Fallback(t *testing.T) {
	options := []Option[string]{P(0.25, "weighted"), Fallback("catch-all"), P(0.5, "unreachable")}

	v, err := Choose(fixedSource{f: 0.1}, options)
	require.NoError(t, err)
	assert.Equal(t, "weighted", v)

	v, err = Choose(fixedSource{f: 0.3}, options)
	require.NoError(t, err)
	assert.Equal(t, "catch-all", v)
}

func TestChoose_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := Choose[string](seeded(), nil)
		assert.ErrorIs(t, err, ErrEmptyDistribution)

		_, err = Choose(seeded(), []Option[int]{})
		assert.ErrorIs(t, err, ErrEmptyDistribution)
	})

	t.Run("invalid probability", func(t *testing.T) {
		_, err := Choose(seeded(), []Option[string]{P(1.5, "x")})
		assert.ErrorIs(t, err, ErrInvalidProbability)

		_, err = Choose(seeded(), []Option[string]{P(-0.1, "x")})
		assert.ErrorIs(t, err, ErrInvalidProbability)

		_, err = Choose(seeded(), []Option[string]{P(math.NaN(), "x"), P(0.5, "y")})
		assert.ErrorIs(t, err, ErrInvalidProbability)
	})
}

func TestSelect(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := Select[string](seeded(), nil)
		assert.ErrorIs(t, err, ErrEmptyDistribution)
	})

	t.Run("picks index from source", func(t *testing.T) {
		v, err := Select(fixedSource{n: 2}, []string{"a", "b", "c"})
		require.NoError(t, err)
		assert.Equal(t, "c", v)
	})

	t.Run("uniform", func(t *testing.T) {
		rng := seeded()
		items := []int{0, 1, 2, 3}
		counts := make([]int, len(items))
		const draws = 80000
		for i := 0; i < draws; i++ {
			v, err := Select(rng, items)
			require.NoError(t, err)
			counts[v]++
		}
		for _, c := range counts {
			assert.InDelta(t, 0.25, float64(c)/draws, 0.01)
		}
	})

	t.Run("nil source uses default", func(t *testing.T) {
		v, err := Select(nil, []string{"only"})
		require.NoError(t, err)
		assert.Equal(t, "only", v)
	})
}

func TestTotal(t *testing.T) {
	options := []Option[string]{P(0.4, "a"), P(0.2, "b"), Fallback("c")}
	assert.InDelta(t, 0.6, Total(options), 1e-9)
}
