package experiment

import (
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/abgo/pkg/errors"
)

// Standard group identifiers. Analyses accept any two distinct IDs; these
// are the conventional ones.
const (
	ControlID   = "control"
	TreatmentID = "treatment"
)

// GroupSample holds the observed outcomes for one experiment arm, either as
// raw numeric observations (continuous metrics) or as a trials/successes
// summary (proportion metrics). Values are copied on construction; a
// GroupSample never aliases caller memory.
type GroupSample struct {
	// GroupID names the arm, e.g. "control" or "treatment".
	GroupID string

	observations []float64
	trials       int
	successes    int
	summary      bool
}

// NewContinuousSample builds a sample from raw numeric observations.
func NewContinuousSample(id string, observations []float64) GroupSample {
	obs := make([]float64, len(observations))
	copy(obs, observations)
	return GroupSample{GroupID: id, observations: obs}
}

// NewProportionSample builds a summary sample for a proportion metric.
func NewProportionSample(id string, trials, successes int) (GroupSample, error) {
	if trials < 0 {
		return GroupSample{}, errors.NewValidationError("trials", "must be non-negative", trials)
	}
	if successes < 0 || successes > trials {
		return GroupSample{}, errors.NewValidationError("successes", "must be in [0, trials]", successes)
	}
	return GroupSample{GroupID: id, trials: trials, successes: successes, summary: true}, nil
}

// IsSummary reports whether the sample is a trials/successes summary.
func (g GroupSample) IsSummary() bool {
	return g.summary
}

// Count returns the number of observations (or trials).
func (g GroupSample) Count() int {
	if g.summary {
		return g.trials
	}
	return len(g.observations)
}

// Trials returns the number of trials for a summary sample.
func (g GroupSample) Trials() int { return g.trials }

// Successes returns the number of successes for a summary sample.
func (g GroupSample) Successes() int { return g.successes }

// Observations returns a copy of the raw observations.
func (g GroupSample) Observations() []float64 {
	obs := make([]float64, len(g.observations))
	copy(obs, g.observations)
	return obs
}

// Rate returns successes/trials for a summary sample, or the mean of a
// binary observation slice. Zero trials yield a zero rate.
func (g GroupSample) Rate() float64 {
	if g.summary {
		if g.trials == 0 {
			return 0
		}
		return float64(g.successes) / float64(g.trials)
	}
	return g.Mean()
}

// Mean returns the sample mean of the outcomes.
func (g GroupSample) Mean() float64 {
	if g.summary {
		return g.Rate()
	}
	if len(g.observations) == 0 {
		return 0
	}
	return stat.Mean(g.observations, nil)
}

// Variance returns the unbiased sample variance for continuous samples and
// p(1-p) for proportion summaries.
func (g GroupSample) Variance() float64 {
	if g.summary {
		p := g.Rate()
		return p * (1 - p)
	}
	if len(g.observations) < 2 {
		return 0
	}
	return stat.Variance(g.observations, nil)
}

// ToProportionSummary converts a binary observation sample into a
// trials/successes summary. It fails with a ValidationError if any
// observation is not exactly 0 or 1. Summary samples pass through.
func (g GroupSample) ToProportionSummary() (GroupSample, error) {
	if g.summary {
		return g, nil
	}
	successes := 0
	for i, v := range g.observations {
		switch v {
		case 0:
		case 1:
			successes++
		default:
			return GroupSample{}, errors.NewValidationError("outcome",
				"proportion metrics require binary (0/1) outcomes", map[string]interface{}{"row": i, "value": v})
		}
	}
	return NewProportionSample(g.GroupID, len(g.observations), successes)
}
