// Package power implements the design-time side of an A/B test: required
// sample size, achieved power, power curves, and experiment duration.
//
// Proportion metrics use the normal-approximation formula on the baseline
// and treatment rates; continuous metrics use the two-sample mean
// comparison formula with the baseline variance. All entry points validate
// the configuration and return an InvalidParameterError for out-of-range
// inputs.
package power

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/pkg/errors"
)

type options struct {
	sidedness experiment.Sidedness
	stddev    float64
	hasStddev bool
}

// Option configures a power computation.
type Option func(*options)

// WithSidedness selects the alternative hypothesis. The default is
// two-sided.
func WithSidedness(s experiment.Sidedness) Option {
	return func(o *options) { o.sidedness = s }
}

// WithBaselineStdDev supplies the baseline standard deviation required to
// size an experiment on a continuous metric.
func WithBaselineStdDev(sd float64) Option {
	return func(o *options) {
		o.stddev = sd
		o.hasStddev = true
	}
}

func applyOptions(opts []Option) options {
	o := options{sidedness: experiment.TwoSided}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// zAlpha returns the normal quantile for the significance level under the
// given sidedness.
func zAlpha(alpha float64, s experiment.Sidedness) float64 {
	if s == experiment.TwoSided {
		return stdNormal.Quantile(1 - alpha/2)
	}
	return stdNormal.Quantile(1 - alpha)
}

// EffectSize returns Cohen's h for two proportions, the standardized effect
// measure used when comparing designs across baselines.
func EffectSize(p1, p2 float64) float64 {
	return 2*math.Asin(math.Sqrt(p2)) - 2*math.Asin(math.Sqrt(p1))
}

// SampleSize returns the required sample size per group, rounded up.
//
// Proportion metrics read the baseline rate and relative MDE from the
// configuration. Continuous metrics additionally require
// WithBaselineStdDev, and interpret MDE as an absolute difference in means.
func SampleSize(cfg experiment.Config, opts ...Option) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	o := applyOptions(opts)
	if cfg.Metric == experiment.Continuous && !o.hasStddev {
		return 0, errors.NewInvalidParameterError("baseline_stddev",
			"required for continuous metrics (use WithBaselineStdDev)", nil)
	}
	if o.hasStddev && o.stddev <= 0 {
		return 0, errors.NewInvalidParameterError("baseline_stddev", "must be positive", o.stddev)
	}
	return int(math.Ceil(sampleSizeValidated(cfg, o))), nil
}

// sampleSizeValidated computes the raw (unrounded) per-group size assuming
// inputs are already validated.
func sampleSizeValidated(cfg experiment.Config, o options) float64 {
	za := zAlpha(cfg.Alpha, o.sidedness)
	zb := stdNormal.Quantile(cfg.Power)

	if cfg.Metric == experiment.Proportion {
		p1 := cfg.BaselineRate
		p2 := cfg.TreatmentRate()
		delta := p1 * cfg.MDE

		// SE under the null (pooled at the baseline) and the alternative.
		se0 := math.Sqrt(2 * p1 * (1 - p1))
		se1 := math.Sqrt(p1*(1-p1) + p2*(1-p2))

		n := (za*se0 + zb*se1) / delta
		return n * n
	}

	delta := cfg.MDE
	n := (za + zb) * o.stddev / delta
	return 2 * n * n
}
