// Package experiment defines the immutable value types that describe an
// A/B test: the experiment configuration fixed at design time and the two
// group samples collected during the run. Every analysis function in the
// library takes these values as input and never mutates them.
package experiment

import (
	"github.com/YuminosukeSato/abgo/pkg/errors"
)

// MetricType selects the outcome metric family, which in turn selects the
// statistical test: a two-proportion z-test or a two-sample t-test.
type MetricType int

const (
	// Proportion is a binary success/failure metric such as conversion.
	Proportion MetricType = iota
	// Continuous is a numeric metric such as revenue or session length.
	Continuous
)

// String returns the metric type name.
func (m MetricType) String() string {
	switch m {
	case Proportion:
		return "proportion"
	case Continuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// Sidedness selects the alternative hypothesis of a test.
type Sidedness int

const (
	// TwoSided tests for any difference between treatment and control.
	TwoSided Sidedness = iota
	// TreatmentGreater tests whether treatment exceeds control.
	TreatmentGreater
	// TreatmentSmaller tests whether treatment falls below control.
	TreatmentSmaller
)

// String returns the sidedness name.
func (s Sidedness) String() string {
	switch s {
	case TwoSided:
		return "two-sided"
	case TreatmentGreater:
		return "larger"
	case TreatmentSmaller:
		return "smaller"
	default:
		return "unknown"
	}
}

// Config holds the experiment design parameters. It is a plain value:
// create it once at design time and pass it by value into the analysis
// functions.
//
// MDE is interpreted relative to BaselineRate for proportion metrics
// (treatment rate = baseline × (1 + MDE)) and as an absolute difference in
// means for continuous metrics.
type Config struct {
	// Metric selects the outcome metric family.
	Metric MetricType

	// Alpha is the significance level (Type I error probability).
	Alpha float64

	// Power is the statistical power (1 minus Type II error probability).
	Power float64

	// MDE is the minimum detectable effect.
	MDE float64

	// BaselineRate is the control group conversion rate. Used only for
	// proportion metrics.
	BaselineRate float64
}

// DefaultConfig returns the conventional defaults: a proportion metric at
// alpha 0.05, power 0.8, 10% relative MDE on a 10% baseline.
func DefaultConfig() Config {
	return Config{
		Metric:       Proportion,
		Alpha:        0.05,
		Power:        0.80,
		MDE:          0.10,
		BaselineRate: 0.10,
	}
}

// Validate checks that every parameter is in range. It returns an
// InvalidParameterError naming the first offending parameter.
func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return errors.NewInvalidParameterError("alpha", "must be in (0, 1)", c.Alpha)
	}
	if c.Power <= 0 || c.Power >= 1 {
		return errors.NewInvalidParameterError("power", "must be in (0, 1)", c.Power)
	}
	if c.MDE <= 0 {
		return errors.NewInvalidParameterError("mde", "must be positive", c.MDE)
	}
	if c.Metric == Proportion {
		if c.BaselineRate <= 0 || c.BaselineRate >= 1 {
			return errors.NewInvalidParameterError("baseline_rate", "must be in (0, 1)", c.BaselineRate)
		}
		if c.TreatmentRate() >= 1 {
			return errors.NewInvalidParameterError("mde", "implied treatment rate reaches 100%", c.MDE)
		}
	}
	return nil
}

// TreatmentRate returns the conversion rate the treatment group is expected
// to reach if the true effect equals the MDE. Meaningful for proportion
// metrics only.
func (c Config) TreatmentRate() float64 {
	return c.BaselineRate * (1 + c.MDE)
}

// ConfidenceLevel returns the confidence level implied by Alpha.
func (c Config) ConfidenceLevel() float64 {
	return 1 - c.Alpha
}
