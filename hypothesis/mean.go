package hypothesis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/pkg/errors"
)

// MeanTest runs a two-sample t-test on the groups' raw observations.
// Welch's unequal-variance form is the default; WithPooledVariance selects
// the classic pooled form.
//
// It fails with an InsufficientDataError when either group has fewer than
// two observations, since a variance cannot be estimated from one point.
func MeanTest(cfg experiment.Config, control, treatment experiment.GroupSample, opts ...Option) (*TestResult, error) {
	o, err := applyOptions(cfg, opts)
	if err != nil {
		return nil, err
	}

	if control.IsSummary() || treatment.IsSummary() {
		return nil, errors.NewValidationError("observations",
			"continuous metrics require raw observations, not summaries", nil)
	}
	if control.Count() < 2 {
		return nil, errors.NewInsufficientDataError(control.GroupID, control.Count(), 2)
	}
	if treatment.Count() < 2 {
		return nil, errors.NewInsufficientDataError(treatment.GroupID, treatment.Count(), 2)
	}

	nc, nt := float64(control.Count()), float64(treatment.Count())
	mc, mt := control.Mean(), treatment.Mean()
	vc, vt := control.Variance(), treatment.Variance()
	diff := mt - mc

	method := MethodWelchTTest
	var se, df float64
	if o.pooled {
		method = MethodPooledTTest
		df = nc + nt - 2
		pooledVar := ((nc-1)*vc + (nt-1)*vt) / df
		se = math.Sqrt(pooledVar * (1/nc + 1/nt))
	} else {
		// Welch-Satterthwaite degrees of freedom.
		a, b := vc/nc, vt/nt
		se = math.Sqrt(a + b)
		if a+b > 0 {
			df = (a + b) * (a + b) / (a*a/(nc-1) + b*b/(nt-1))
		}
	}

	result := &TestResult{
		Method:          method,
		ControlMetric:   mc,
		TreatmentMetric: mt,
		Alpha:           cfg.Alpha,
		ControlSize:     control.Count(),
		TreatmentSize:   treatment.Count(),
	}

	// Zero variance in both groups: nothing varies, so nothing can be
	// distinguished. Report p=1 rather than dividing by zero.
	if se == 0 {
		result.PValue = 1
		result.EffectEstimate = diff
		result.RelativeDifference = relativeDifference(diff, mc)
		result.ConfidenceInterval = ConfidenceInterval{Low: diff, High: diff}
		return result, nil
	}

	t := diff / se
	result.Statistic = t
	result.DegreesOfFreedom = df
	result.PValue = pValueStudentsT(t, df, o.sidedness)
	result.Significant = result.PValue < cfg.Alpha
	result.EffectEstimate = diff
	result.RelativeDifference = relativeDifference(diff, mc)

	tCrit := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(1 - (1-o.confidence)/2)
	margin := tCrit * se
	result.ConfidenceInterval = ConfidenceInterval{Low: diff - margin, High: diff + margin}

	return result, nil
}
