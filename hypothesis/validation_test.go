package hypothesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/abgo/pkg/errors"
)

func captureWarnings(t *testing.T) *[]error {
	t.Helper()
	var captured []error
	errors.SetWarningHandler(func(err error) {
		captured = append(captured, err)
	})
	t.Cleanup(func() { errors.SetWarningHandler(nil) })
	return &captured
}

func TestAATestPasses(t *testing.T) {
	warnings := captureWarnings(t)

	a := mustProportion(t, "control_a", 1000, 101)
	b := mustProportion(t, "control_b", 1000, 99)

	vr, err := AATest(proportionConfig(), a, b)
	require.NoError(t, err)

	assert.True(t, vr.Passed)
	assert.GreaterOrEqual(t, vr.PValue, 0.05)
	assert.Empty(t, vr.Warning)
	assert.Empty(t, *warnings)
}

func TestAATestFailureEmitsWarning(t *testing.T) {
	warnings := captureWarnings(t)

	// A 10% vs 15% split between two "identical" slices at n=2000 is a
	// clear randomization failure.
	a := mustProportion(t, "control_a", 2000, 200)
	b := mustProportion(t, "control_b", 2000, 300)

	vr, err := AATest(proportionConfig(), a, b)
	require.NoError(t, err)

	assert.False(t, vr.Passed)
	assert.Contains(t, vr.Warning, "A/A test failed")
	require.Len(t, *warnings, 1)
	var rw *errors.RandomizationWarning
	assert.ErrorAs(t, (*warnings)[0], &rw)
}

func TestAATestContinuous(t *testing.T) {
	a := symmetricSample("control_a", 10, 40)
	b := symmetricSample("control_b", 10, 40)

	vr, err := AATest(continuousConfig(), a, b)
	require.NoError(t, err)
	assert.True(t, vr.Passed)
	assert.Equal(t, "A/A Test (Continuous)", vr.TestType)
}

func TestSampleRatioMismatchBalanced(t *testing.T) {
	warnings := captureWarnings(t)

	vr, err := SampleRatioMismatch(1000, 1000, 0.5, 0.05)
	require.NoError(t, err)

	assert.True(t, vr.Passed)
	assert.InDelta(t, 1.0, vr.PValue, 1e-9)
	assert.Zero(t, vr.Statistic)
	assert.Empty(t, *warnings)
}

func TestSampleRatioMismatchDetected(t *testing.T) {
	warnings := captureWarnings(t)

	// 1000 vs 1200 under a 50/50 split: chi-square is about 18.2, far
	// past any reasonable threshold.
	vr, err := SampleRatioMismatch(1000, 1200, 0.5, 0.05)
	require.NoError(t, err)

	assert.False(t, vr.Passed)
	assert.InDelta(t, 18.18, vr.Statistic, 0.01)
	assert.Less(t, vr.PValue, 0.001)
	assert.Contains(t, vr.Warning, "Sample ratio mismatch detected")
	require.Len(t, *warnings, 1)
	var sw *errors.SampleRatioMismatchWarning
	assert.ErrorAs(t, (*warnings)[0], &sw)
}

func TestSampleRatioMismatchUnevenAllocation(t *testing.T) {
	// A 90/10 split observed as 9000 vs 1000 is exactly on target.
	vr, err := SampleRatioMismatch(9000, 1000, 0.1, 0.05)
	require.NoError(t, err)
	assert.True(t, vr.Passed)
}

func TestSampleRatioMismatchInvalidParameters(t *testing.T) {
	tests := []struct {
		name                       string
		controlSize, treatmentSize int
		ratio, alpha               float64
	}{
		{name: "negative size", controlSize: -1, treatmentSize: 100, ratio: 0.5, alpha: 0.05},
		{name: "ratio zero", controlSize: 100, treatmentSize: 100, ratio: 0, alpha: 0.05},
		{name: "ratio one", controlSize: 100, treatmentSize: 100, ratio: 1, alpha: 0.05},
		{name: "alpha too large", controlSize: 100, treatmentSize: 100, ratio: 0.5, alpha: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleRatioMismatch(tt.controlSize, tt.treatmentSize, tt.ratio, tt.alpha)
			var ipe *errors.InvalidParameterError
			require.ErrorAs(t, err, &ipe)
		})
	}
}

func TestSampleRatioMismatchNoData(t *testing.T) {
	_, err := SampleRatioMismatch(0, 0, 0.5, 0.05)
	var ie *errors.InsufficientDataError
	require.ErrorAs(t, err, &ie)
}
