// Package simulate generates synthetic outcome samples for demos and
// property tests. Every generator takes an explicit seed so runs are
// reproducible.
package simulate

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/abgo/pkg/errors"
)

// Normal draws n observations from a normal distribution with the given
// mean and standard deviation.
func Normal(mean, stddev float64, n int, seed uint64) ([]float64, error) {
	if stddev <= 0 {
		return nil, errors.NewInvalidParameterError("stddev", "must be positive", stddev)
	}
	if n <= 0 {
		return nil, errors.NewInvalidParameterError("n", "must be positive", n)
	}

	dist := distuv.Normal{Mu: mean, Sigma: stddev, Src: rand.NewSource(seed)}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}

// Bernoulli draws n binary (0/1) observations with success probability p.
func Bernoulli(p float64, n int, seed uint64) ([]float64, error) {
	if p < 0 || p > 1 {
		return nil, errors.NewInvalidParameterError("p", "must be in [0, 1]", p)
	}
	if n <= 0 {
		return nil, errors.NewInvalidParameterError("n", "must be positive", n)
	}

	dist := distuv.Bernoulli{P: p, Src: rand.NewSource(seed)}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}
