package hypothesis

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/pkg/errors"
)

// ValidationResult is the outcome of an experiment health check. Unlike a
// hypothesis test, passing means failing to find a difference.
type ValidationResult struct {
	TestType  string
	Statistic float64
	PValue    float64
	Passed    bool
	Warning   string
}

// AATest compares two slices of the same population to check that the
// assignment mechanism is unbiased. The null hypothesis is "no difference",
// so the check passes when p >= alpha. A failure emits a
// RandomizationWarning through the pkg/errors warning handler.
func AATest(cfg experiment.Config, a, b experiment.GroupSample, opts ...Option) (*ValidationResult, error) {
	result, err := Run(cfg, a, b, opts...)
	if err != nil {
		return nil, err
	}

	testType := "A/A Test (Proportion)"
	if cfg.Metric == experiment.Continuous {
		testType = "A/A Test (Continuous)"
	}

	vr := &ValidationResult{
		TestType:  testType,
		Statistic: result.Statistic,
		PValue:    result.PValue,
		Passed:    result.PValue >= cfg.Alpha,
	}
	if !vr.Passed {
		vr.Warning = fmt.Sprintf(
			"A/A test failed (p-value = %.4f). There may be an underlying difference between groups (%s: %.4f, %s: %.4f).",
			result.PValue, a.GroupID, result.ControlMetric, b.GroupID, result.TreatmentMetric)
		errors.Warn(errors.NewRandomizationWarning(testType, result.PValue,
			result.ControlMetric, result.TreatmentMetric))
	}
	return vr, nil
}

// SampleRatioMismatch checks whether the observed control/treatment split
// matches the expected allocation, using a 1-degree-of-freedom chi-square
// goodness-of-fit test. expectedRatio is the expected share of traffic in
// the treatment group. A failure emits a SampleRatioMismatchWarning.
//
// An SRM failure usually means broken randomization or data loss; results
// of the main test should not be trusted until it is resolved.
func SampleRatioMismatch(controlSize, treatmentSize int, expectedRatio, alpha float64) (*ValidationResult, error) {
	if controlSize < 0 || treatmentSize < 0 {
		return nil, errors.NewInvalidParameterError("group_size", "must be non-negative",
			[2]int{controlSize, treatmentSize})
	}
	total := controlSize + treatmentSize
	if total == 0 {
		return nil, errors.NewInsufficientDataError("experiment", 0, 1)
	}
	if expectedRatio <= 0 || expectedRatio >= 1 {
		return nil, errors.NewInvalidParameterError("expected_ratio", "must be in (0, 1)", expectedRatio)
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, errors.NewInvalidParameterError("alpha", "must be in (0, 1)", alpha)
	}

	expectedTreatment := float64(total) * expectedRatio
	expectedControl := float64(total) * (1 - expectedRatio)

	chi2 := sqDev(float64(controlSize), expectedControl) + sqDev(float64(treatmentSize), expectedTreatment)
	pValue := 1 - distuv.ChiSquared{K: 1}.CDF(chi2)

	vr := &ValidationResult{
		TestType:  "Sample Ratio Mismatch",
		Statistic: chi2,
		PValue:    pValue,
		Passed:    pValue >= alpha,
	}
	if !vr.Passed {
		actualRatio := float64(treatmentSize) / float64(total)
		vr.Warning = fmt.Sprintf(
			"Sample ratio mismatch detected (p-value = %.4f). Expected ratio: %.2f, actual ratio: %.2f. Control size: %d, treatment size: %d.",
			pValue, expectedRatio, actualRatio, controlSize, treatmentSize)
		errors.Warn(errors.NewSampleRatioMismatchWarning(controlSize, treatmentSize, expectedRatio, pValue))
	}
	return vr, nil
}

func sqDev(observed, expected float64) float64 {
	d := observed - expected
	return d * d / expected
}
