package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var (
	// ErrEmptyDistribution is returned when there is nothing to choose from.
	// It always points at bad configuration or reference data.
	ErrEmptyDistribution = errors.New("empty distribution")
	// ErrInvalidProbability is returned for a probability outside [0, 1]
	ErrInvalidProbability = errors.New("probability must be between 0 and 1")
)

// Source is the randomness used by the sampling functions.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// globalSource draws from the process-wide math/rand/v2 generator
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// Default returns the process-wide source, used when a nil Source is passed
func Default() Source {
	return globalSource{}
}

func orDefault(rng Source) Source {
	if rng == nil {
		return globalSource{}
	}
	return rng
}

// Option is one entry of a discrete distribution.
// A zero Probability marks a fallback option that catches every draw
// reaching it.
type Option[T any] struct {
	Probability float64
	Value       T
}

// P builds an option with the given probability
func P[T any](probability float64, value T) Option[T] {
	return Option[T]{Probability: probability, Value: value}
}

// Fallback builds a catch-all option
func Fallback[T any](value T) Option[T] {
	return Option[T]{Value: value}
}

// Validate checks every probability is within [0, 1]
func Validate[T any](options []Option[T]) error {
	if len(options) == 0 {
		return ErrEmptyDistribution
	}
	for i, o := range options {
		if math.IsNaN(o.Probability) || o.Probability < 0 || o.Probability > 1 {
			return fmt.Errorf("%w: option %d has %v", ErrInvalidProbability, i, o.Probability)
		}
	}
	return nil
}

// Choose draws one value from options.
//
// A uniform p in [0, 1) is walked through the options in order, subtracting
// each probability; the first option whose probability exceeds what is left
// of p wins. A fallback option wins as soon as it is reached. When the
// probabilities sum to less than 1 and p lands in the uncovered remainder,
// the last option is returned. Weights are never normalized.
func Choose[T any](rng Source, options []Option[T]) (T, error) {
	var zero T
	if err := Validate(options); err != nil {
		return zero, err
	}

	p := orDefault(rng).Float64()
	for _, o := range options {
		if o.Probability == 0 {
			return o.Value, nil
		}
		if o.Probability > p {
			return o.Value, nil
		}
		p -= o.Probability
	}

	// Remainder mass goes to the last listed option
	return options[len(options)-1].Value, nil
}

// Select draws one value uniformly from items
func Select[T any](rng Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyDistribution
	}
	return items[orDefault(rng).IntN(len(items))], nil
}

// Total returns the probability mass covered by explicit weights
func Total[T any](options []Option[T]) float64 {
	var sum float64
	for _, o := range options {
		sum += o.Probability
	}
	return sum
}
