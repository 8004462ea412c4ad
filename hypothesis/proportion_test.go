package hypothesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/pkg/errors"
)

func proportionConfig() experiment.Config {
	return experiment.Config{
		Metric:       experiment.Proportion,
		Alpha:        0.05,
		Power:        0.80,
		MDE:          0.20,
		BaselineRate: 0.10,
	}
}

func mustProportion(t *testing.T, id string, trials, successes int) experiment.GroupSample {
	t.Helper()
	g, err := experiment.NewProportionSample(id, trials, successes)
	require.NoError(t, err)
	return g
}

func TestProportionTestSmallLiftNotSignificant(t *testing.T) {
	// 10% vs 12% at n=1000 per group: the effect is real but the sample
	// is far too small, p lands around 0.15.
	control := mustProportion(t, "control", 1000, 100)
	treatment := mustProportion(t, "treatment", 1000, 120)

	result, err := ProportionTest(proportionConfig(), control, treatment)
	require.NoError(t, err)

	assert.Equal(t, MethodProportionZTest, result.Method)
	assert.InDelta(t, 1.429, result.Statistic, 0.01)
	assert.InDelta(t, 0.153, result.PValue, 0.01)
	assert.False(t, result.Significant)
	assert.InDelta(t, 0.02, result.EffectEstimate, 1e-12)
	assert.InDelta(t, 20.0, result.RelativeDifference, 1e-9)
	assert.Less(t, result.ConfidenceInterval.Low, 0.0)
	assert.Greater(t, result.ConfidenceInterval.High, 0.0)
}

func TestProportionTestLargeSampleSignificant(t *testing.T) {
	// The same rates at n=10000 per group clear the threshold.
	control := mustProportion(t, "control", 10000, 1000)
	treatment := mustProportion(t, "treatment", 10000, 1200)

	result, err := ProportionTest(proportionConfig(), control, treatment)
	require.NoError(t, err)

	assert.True(t, result.Significant)
	assert.Less(t, result.PValue, 0.05)
	assert.Greater(t, result.ConfidenceInterval.Low, 0.0)
}

func TestProportionTestIdenticalGroups(t *testing.T) {
	control := mustProportion(t, "control", 500, 60)
	treatment := mustProportion(t, "treatment", 500, 60)

	result, err := ProportionTest(proportionConfig(), control, treatment)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.PValue, 1e-12)
	assert.InDelta(t, 0.0, result.EffectEstimate, 1e-12)
	assert.False(t, result.Significant)
}

func TestProportionTestZeroVarianceDegenerate(t *testing.T) {
	tests := []struct {
		name      string
		successes int
	}{
		{name: "all failures", successes: 0},
		{name: "all successes", successes: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			control := mustProportion(t, "control", 100, tt.successes)
			treatment := mustProportion(t, "treatment", 100, tt.successes)

			result, err := ProportionTest(proportionConfig(), control, treatment)
			require.NoError(t, err)

			assert.InDelta(t, 1.0, result.PValue, 1e-12)
			assert.Zero(t, result.Statistic)
			assert.Zero(t, result.EffectEstimate)
			assert.False(t, result.Significant)
		})
	}
}

func TestProportionTestZeroTrials(t *testing.T) {
	control := mustProportion(t, "control", 0, 0)
	treatment := mustProportion(t, "treatment", 100, 10)

	_, err := ProportionTest(proportionConfig(), control, treatment)
	var ie *errors.InsufficientDataError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "control", ie.GroupID)
}

func TestProportionTestSidedness(t *testing.T) {
	control := mustProportion(t, "control", 1000, 100)
	treatment := mustProportion(t, "treatment", 1000, 120)
	cfg := proportionConfig()

	twoSided, err := ProportionTest(cfg, control, treatment)
	require.NoError(t, err)
	greater, err := ProportionTest(cfg, control, treatment, WithSidedness(experiment.TreatmentGreater))
	require.NoError(t, err)
	smaller, err := ProportionTest(cfg, control, treatment, WithSidedness(experiment.TreatmentSmaller))
	require.NoError(t, err)

	// With a positive effect, the one-sided "greater" p is half the
	// two-sided p, and "smaller" is its complement.
	assert.InDelta(t, twoSided.PValue/2, greater.PValue, 1e-9)
	assert.InDelta(t, 1-greater.PValue, smaller.PValue, 1e-9)
}

func TestProportionTestAcceptsBinaryObservations(t *testing.T) {
	control := experiment.NewContinuousSample("control", []float64{1, 0, 0, 0, 1, 0, 0, 0, 0, 0})
	treatment := experiment.NewContinuousSample("treatment", []float64{1, 1, 0, 0, 1, 0, 0, 0, 0, 0})

	result, err := ProportionTest(proportionConfig(), control, treatment)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, result.ControlMetric, 1e-12)
	assert.InDelta(t, 0.3, result.TreatmentMetric, 1e-12)
}
