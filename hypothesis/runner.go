package hypothesis

import (
	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/pkg/errors"
	"github.com/YuminosukeSato/abgo/pkg/log"
)

// Run validates the configuration, selects the test family from the metric
// type, and runs it: a two-proportion z-test for proportion metrics, a
// t-test for continuous metrics.
func Run(cfg experiment.Config, control, treatment experiment.GroupSample, opts ...Option) (result *TestResult, err error) {
	// Distribution quantiles panic on out-of-domain inputs; surface that
	// as an error rather than crashing the caller.
	defer errors.Recover(&err, "hypothesis.Run")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if control.GroupID == treatment.GroupID {
		return nil, errors.NewValidationError("group",
			"control and treatment must be distinct groups", control.GroupID)
	}

	switch cfg.Metric {
	case experiment.Proportion:
		result, err = ProportionTest(cfg, control, treatment, opts...)
	case experiment.Continuous:
		result, err = MeanTest(cfg, control, treatment, opts...)
	default:
		return nil, errors.NewInvalidParameterError("metric", "unknown metric type", cfg.Metric)
	}
	if err != nil {
		return nil, err
	}

	log.GetLoggerWithName("hypothesis").Debug("test completed",
		log.OperationKey, log.OperationTest,
		log.MetricTypeKey, cfg.Metric.String(),
		log.MethodKey, result.Method,
		log.PValueKey, result.PValue,
		log.EffectKey, result.EffectEstimate,
		log.SignificantKey, result.Significant,
	)
	return result, nil
}
