package power

import (
	"math"

	"github.com/YuminosukeSato/abgo/core/parallel"
	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/pkg/errors"
)

// Sweeps below this many points run sequentially.
const sweepParallelThreshold = 64

// Power returns the probability of detecting a true effect of size MDE at
// the given per-group sample size.
func Power(cfg experiment.Config, n int, opts ...Option) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.NewInvalidParameterError("n", "must be at least 1", n)
	}
	o := applyOptions(opts)
	if cfg.Metric == experiment.Continuous && !o.hasStddev {
		return 0, errors.NewInvalidParameterError("baseline_stddev",
			"required for continuous metrics (use WithBaselineStdDev)", nil)
	}
	if o.hasStddev && o.stddev <= 0 {
		return 0, errors.NewInvalidParameterError("baseline_stddev", "must be positive", o.stddev)
	}
	return powerValidated(cfg, float64(n), o), nil
}

// powerValidated inverts the sample-size formula: solve for z_beta at the
// given n and map it back through the normal CDF.
func powerValidated(cfg experiment.Config, n float64, o options) float64 {
	za := zAlpha(cfg.Alpha, o.sidedness)

	var zb float64
	if cfg.Metric == experiment.Proportion {
		p1 := cfg.BaselineRate
		p2 := cfg.TreatmentRate()
		delta := p1 * cfg.MDE
		se0 := math.Sqrt(2 * p1 * (1 - p1))
		se1 := math.Sqrt(p1*(1-p1) + p2*(1-p2))
		zb = (delta*math.Sqrt(n) - za*se0) / se1
	} else {
		zb = cfg.MDE/(o.stddev*math.Sqrt(2/n)) - za
	}
	return stdNormal.CDF(zb)
}

// Curve is a power curve: achieved power across per-group sample sizes.
type Curve struct {
	SampleSizes []int
	Power       []float64
}

// PowerCurve computes achieved power for per-group sizes minN, minN+step,
// ..., up to maxN inclusive.
func PowerCurve(cfg experiment.Config, minN, maxN, step int, opts ...Option) (Curve, error) {
	if err := cfg.Validate(); err != nil {
		return Curve{}, err
	}
	if minN < 1 {
		return Curve{}, errors.NewInvalidParameterError("min_n", "must be at least 1", minN)
	}
	if maxN < minN {
		return Curve{}, errors.NewInvalidParameterError("max_n", "must be >= min_n", maxN)
	}
	if step < 1 {
		return Curve{}, errors.NewInvalidParameterError("step", "must be at least 1", step)
	}
	o := applyOptions(opts)
	if cfg.Metric == experiment.Continuous && !o.hasStddev {
		return Curve{}, errors.NewInvalidParameterError("baseline_stddev",
			"required for continuous metrics (use WithBaselineStdDev)", nil)
	}
	if o.hasStddev && o.stddev <= 0 {
		return Curve{}, errors.NewInvalidParameterError("baseline_stddev", "must be positive", o.stddev)
	}

	points := (maxN-minN)/step + 1
	curve := Curve{
		SampleSizes: make([]int, points),
		Power:       make([]float64, points),
	}
	parallel.ParallelizeWithThreshold(points, sweepParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			n := minN + i*step
			curve.SampleSizes[i] = n
			curve.Power[i] = powerValidated(cfg, float64(n), o)
		}
	})
	return curve, nil
}
