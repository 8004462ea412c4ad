package hypothesis

import (
	"math"

	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/pkg/errors"
)

// ProportionTest runs a two-proportion z-test on the groups' successes and
// trials. Binary observation samples are converted to summaries first.
//
// It fails with an InsufficientDataError when either group has zero trials.
func ProportionTest(cfg experiment.Config, control, treatment experiment.GroupSample, opts ...Option) (*TestResult, error) {
	o, err := applyOptions(cfg, opts)
	if err != nil {
		return nil, err
	}

	c, err := control.ToProportionSummary()
	if err != nil {
		return nil, err
	}
	tr, err := treatment.ToProportionSummary()
	if err != nil {
		return nil, err
	}

	if c.Trials() == 0 {
		return nil, errors.NewInsufficientDataError(c.GroupID, 0, 1)
	}
	if tr.Trials() == 0 {
		return nil, errors.NewInsufficientDataError(tr.GroupID, 0, 1)
	}

	nc, nt := float64(c.Trials()), float64(tr.Trials())
	pc, pt := c.Rate(), tr.Rate()
	diff := pt - pc

	result := &TestResult{
		Method:          MethodProportionZTest,
		ControlMetric:   pc,
		TreatmentMetric: pt,
		Alpha:           cfg.Alpha,
		ControlSize:     c.Trials(),
		TreatmentSize:   tr.Trials(),
	}

	// Pooled proportion under the null.
	pPooled := (float64(c.Successes()) + float64(tr.Successes())) / (nc + nt)
	se := math.Sqrt(pPooled * (1 - pPooled) * (1/nc + 1/nt))

	// All successes or all failures in both groups: no variance, no
	// evidence of a difference. Report p=1 rather than dividing by zero.
	if se == 0 {
		result.PValue = 1
		result.ConfidenceInterval = ConfidenceInterval{Low: diff, High: diff}
		result.RelativeDifference = relativeDifference(diff, pc)
		result.EffectEstimate = diff
		return result, nil
	}

	z := diff / se
	result.Statistic = z
	result.PValue = pValueNormal(z, o.sidedness)
	result.Significant = result.PValue < cfg.Alpha
	result.EffectEstimate = diff
	result.RelativeDifference = relativeDifference(diff, pc)

	// The interval uses the unpooled standard error.
	zCrit := stdNormal.Quantile(1 - (1-o.confidence)/2)
	seDiff := math.Sqrt(pc*(1-pc)/nc + pt*(1-pt)/nt)
	margin := zCrit * seDiff
	result.ConfidenceInterval = ConfidenceInterval{Low: diff - margin, High: diff + margin}

	return result, nil
}
