// Package sampler draws values from weighted and uniform distributions.
//
// Choose walks an ordered list of options with a single uniform draw.
// Probabilities are used as configured and never normalized: when they sum
// to less than one, the uncovered remainder resolves to the last option.
// An option with probability zero is a fallback and wins whenever the walk
// reaches it.
//
// Every function takes a Source. Passing nil uses the process-wide
// math/rand/v2 generator; tests pass a seeded *rand.Rand.
package sampler
