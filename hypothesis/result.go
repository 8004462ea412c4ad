// Package hypothesis runs the significance tests of an A/B analysis: a
// two-proportion z-test for proportion metrics and a two-sample t-test
// (Welch's by default) for continuous metrics, plus the experiment
// validation checks (A/A test, sample ratio mismatch).
//
// Tests are two-sided and unpaired unless configured otherwise, and they
// are pure functions: the same configuration and samples always produce
// the same TestResult.
package hypothesis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/abgo/experiment"
)

// Method names recorded on a TestResult.
const (
	MethodProportionZTest = "proportion_z_test"
	MethodWelchTTest      = "welch_t_test"
	MethodPooledTTest     = "pooled_t_test"
)

// ConfidenceInterval bounds the effect estimate.
type ConfidenceInterval struct {
	Low  float64
	High float64
}

// TestResult holds the outcome of a single hypothesis test. It is created
// once per invocation and never mutated.
type TestResult struct {
	// Method names the test that produced the result.
	Method string

	// Statistic is the z- or t-statistic.
	Statistic float64

	// PValue is the probability of an effect at least this large under
	// the null hypothesis, in [0, 1].
	PValue float64

	// ControlMetric and TreatmentMetric are the observed group metrics
	// (rates or means).
	ControlMetric   float64
	TreatmentMetric float64

	// EffectEstimate is treatment minus control.
	EffectEstimate float64

	// RelativeDifference is the effect as a percentage of the control
	// metric. Infinite when the control metric is zero.
	RelativeDifference float64

	// ConfidenceInterval bounds the effect estimate at the configured
	// confidence level.
	ConfidenceInterval ConfidenceInterval

	// Significant is true when PValue < the significance level used.
	Significant bool

	// Alpha is the significance level the verdict was judged against.
	Alpha float64

	// ControlSize and TreatmentSize are the group sizes that entered the
	// test.
	ControlSize   int
	TreatmentSize int

	// DegreesOfFreedom is set for t-tests only.
	DegreesOfFreedom float64
}

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// pValueNormal maps a z-statistic to a p-value under the given alternative.
func pValueNormal(z float64, s experiment.Sidedness) float64 {
	switch s {
	case experiment.TreatmentGreater:
		return 1 - stdNormal.CDF(z)
	case experiment.TreatmentSmaller:
		return stdNormal.CDF(z)
	default:
		return 2 * (1 - stdNormal.CDF(math.Abs(z)))
	}
}

// pValueStudentsT maps a t-statistic to a p-value under the given
// alternative, with nu degrees of freedom.
func pValueStudentsT(t, nu float64, s experiment.Sidedness) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}
	switch s {
	case experiment.TreatmentGreater:
		return 1 - dist.CDF(t)
	case experiment.TreatmentSmaller:
		return dist.CDF(t)
	default:
		return 2 * (1 - dist.CDF(math.Abs(t)))
	}
}

// relativeDifference expresses diff as a percentage of the control metric,
// matching the convention of reporting "+12.3% vs control".
func relativeDifference(diff, controlMetric float64) float64 {
	if controlMetric == 0 {
		return math.Inf(1)
	}
	return (diff / controlMetric) * 100
}
