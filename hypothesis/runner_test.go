package hypothesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/pkg/errors"
)

func TestRunDispatchesOnMetricType(t *testing.T) {
	control := mustProportion(t, experiment.ControlID, 1000, 100)
	treatment := mustProportion(t, experiment.TreatmentID, 1000, 120)

	result, err := Run(proportionConfig(), control, treatment)
	require.NoError(t, err)
	assert.Equal(t, MethodProportionZTest, result.Method)

	result, err = Run(continuousConfig(),
		symmetricSample(experiment.ControlID, 10, 50),
		symmetricSample(experiment.TreatmentID, 12, 50))
	require.NoError(t, err)
	assert.Equal(t, MethodWelchTTest, result.Method)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := proportionConfig()
	cfg.Alpha = 1.5

	_, err := Run(cfg,
		mustProportion(t, experiment.ControlID, 100, 10),
		mustProportion(t, experiment.TreatmentID, 100, 12))
	var ipe *errors.InvalidParameterError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, "alpha", ipe.ParamName)
}

func TestRunRejectsSameGroupID(t *testing.T) {
	a := mustProportion(t, experiment.ControlID, 100, 10)
	b := mustProportion(t, experiment.ControlID, 100, 12)

	_, err := Run(proportionConfig(), a, b)
	var ve *errors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "group", ve.Field)
}
