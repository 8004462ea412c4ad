package hypothesis

import (
	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/pkg/errors"
)

type options struct {
	sidedness  experiment.Sidedness
	pooled     bool
	confidence float64 // 0 means derive from the config's alpha
}

// Option configures a hypothesis test.
type Option func(*options)

// WithSidedness selects the alternative hypothesis. The default is
// two-sided.
func WithSidedness(s experiment.Sidedness) Option {
	return func(o *options) { o.sidedness = s }
}

// WithPooledVariance switches the continuous-metric test from Welch's
// unequal-variance t-test to the classic pooled-variance t-test. Use only
// when the equal-variance assumption is defensible.
func WithPooledVariance() Option {
	return func(o *options) { o.pooled = true }
}

// WithConfidenceLevel overrides the confidence level of the interval,
// which otherwise defaults to 1 - alpha.
func WithConfidenceLevel(cl float64) Option {
	return func(o *options) { o.confidence = cl }
}

func applyOptions(cfg experiment.Config, opts []Option) (options, error) {
	o := options{sidedness: experiment.TwoSided}
	for _, opt := range opts {
		opt(&o)
	}
	if o.confidence == 0 {
		o.confidence = cfg.ConfidenceLevel()
	}
	if o.confidence <= 0 || o.confidence >= 1 {
		return options{}, errors.NewInvalidParameterError("confidence_level", "must be in (0, 1)", o.confidence)
	}
	return o, nil
}
