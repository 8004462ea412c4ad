package power

import (
	"math"

	"github.com/YuminosukeSato/abgo/core/parallel"
	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/pkg/errors"
	"github.com/YuminosukeSato/abgo/pkg/log"
)

// TrafficPlan describes how much traffic an experiment can draw.
type TrafficPlan struct {
	// DailyTraffic is the number of eligible visitors per day.
	DailyTraffic int
	// Allocation is the share of traffic entering the experiment, in (0, 1].
	Allocation float64
	// ControlRatio is the share of experiment traffic assigned to control,
	// in (0, 1). 0.5 is a balanced split.
	ControlRatio float64
}

// DefaultTrafficPlan allocates all traffic with a balanced split.
func DefaultTrafficPlan(dailyTraffic int) TrafficPlan {
	return TrafficPlan{DailyTraffic: dailyTraffic, Allocation: 1.0, ControlRatio: 0.5}
}

func (p TrafficPlan) validate() error {
	if p.DailyTraffic < 1 {
		return errors.NewInvalidParameterError("daily_traffic", "must be at least 1", p.DailyTraffic)
	}
	if p.Allocation <= 0 || p.Allocation > 1 {
		return errors.NewInvalidParameterError("allocation", "must be in (0, 1]", p.Allocation)
	}
	if p.ControlRatio <= 0 || p.ControlRatio >= 1 {
		return errors.NewInvalidParameterError("control_ratio", "must be in (0, 1)", p.ControlRatio)
	}
	return nil
}

// DurationEstimate is the outcome of duration planning.
type DurationEstimate struct {
	SampleSizePerGroup     int
	TotalSampleSize        int
	ControlSampleSize      int
	TreatmentSampleSize    int
	DailyExperimentTraffic float64
	DaysRequired           float64
}

// DurationPoint is one entry of a duration sweep. Exactly one of Allocation
// or MDE varies depending on which sweep produced it.
type DurationPoint struct {
	Allocation             float64
	MDE                    float64
	DaysRequired           float64
	DailyExperimentTraffic float64
	TotalSampleSize        int
}

// Duration estimates how long the experiment must run under the given
// traffic plan to reach the required sample size.
func Duration(cfg experiment.Config, plan TrafficPlan, opts ...Option) (DurationEstimate, error) {
	if err := cfg.Validate(); err != nil {
		return DurationEstimate{}, err
	}
	if err := plan.validate(); err != nil {
		return DurationEstimate{}, err
	}
	o := applyOptions(opts)
	if cfg.Metric == experiment.Continuous && !o.hasStddev {
		return DurationEstimate{}, errors.NewInvalidParameterError("baseline_stddev",
			"required for continuous metrics (use WithBaselineStdDev)", nil)
	}
	if o.hasStddev && o.stddev <= 0 {
		return DurationEstimate{}, errors.NewInvalidParameterError("baseline_stddev", "must be positive", o.stddev)
	}

	est := durationValidated(cfg, plan, o)
	log.GetLoggerWithName("power").Debug("duration estimated",
		log.OperationKey, log.OperationDuration,
		log.SampleSizeKey, est.SampleSizePerGroup,
		log.DurationDaysKey, est.DaysRequired,
	)
	return est, nil
}

func durationValidated(cfg experiment.Config, plan TrafficPlan, o options) DurationEstimate {
	perGroup := int(math.Ceil(sampleSizeValidated(cfg, o)))

	total := perGroup * 2
	if plan.ControlRatio != 0.5 {
		// Unbalanced allocation inflates the total by (1+r)^2 / (4r),
		// where r is the smaller-to-larger group ratio.
		r := math.Min(plan.ControlRatio, 1-plan.ControlRatio) /
			math.Max(plan.ControlRatio, 1-plan.ControlRatio)
		adjustment := (1 + r) * (1 + r) / (4 * r)
		total = int(math.Ceil(float64(perGroup) * 2 * adjustment))
	}

	dailyExperimentTraffic := float64(plan.DailyTraffic) * plan.Allocation
	return DurationEstimate{
		SampleSizePerGroup:     perGroup,
		TotalSampleSize:        total,
		ControlSampleSize:      int(math.Ceil(float64(total) * plan.ControlRatio)),
		TreatmentSampleSize:    int(math.Ceil(float64(total) * (1 - plan.ControlRatio))),
		DailyExperimentTraffic: dailyExperimentTraffic,
		DaysRequired:           float64(total) / dailyExperimentTraffic,
	}
}

// DurationVsTraffic sweeps the traffic allocation and reports the resulting
// duration at each point. A nil allocations slice uses 0.10 through 1.00 in
// 0.05 steps.
func DurationVsTraffic(cfg experiment.Config, plan TrafficPlan, allocations []float64, opts ...Option) ([]DurationPoint, error) {
	if allocations == nil {
		// Integer steps, not float accumulation: repeated adding of 0.05
		// overshoots 1.0 by an ulp and the last point would be rejected.
		for i := 2; i <= 20; i++ {
			allocations = append(allocations, math.Min(float64(i)*0.05, 1.0))
		}
	}
	for _, a := range allocations {
		if a <= 0 || a > 1 {
			return nil, errors.NewInvalidParameterError("allocation", "must be in (0, 1]", a)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := plan.validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	if cfg.Metric == experiment.Continuous && !o.hasStddev {
		return nil, errors.NewInvalidParameterError("baseline_stddev",
			"required for continuous metrics (use WithBaselineStdDev)", nil)
	}
	if o.hasStddev && o.stddev <= 0 {
		return nil, errors.NewInvalidParameterError("baseline_stddev", "must be positive", o.stddev)
	}

	points := make([]DurationPoint, len(allocations))
	parallel.ParallelizeWithThreshold(len(allocations), sweepParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			p := plan
			p.Allocation = allocations[i]
			est := durationValidated(cfg, p, o)
			points[i] = DurationPoint{
				Allocation:             allocations[i],
				MDE:                    cfg.MDE,
				DaysRequired:           est.DaysRequired,
				DailyExperimentTraffic: est.DailyExperimentTraffic,
				TotalSampleSize:        est.TotalSampleSize,
			}
		}
	})
	return points, nil
}

// DurationVsMDE sweeps the minimum detectable effect and reports the
// resulting duration at each point.
func DurationVsMDE(cfg experiment.Config, plan TrafficPlan, mdes []float64, opts ...Option) ([]DurationPoint, error) {
	if len(mdes) == 0 {
		return nil, errors.NewInvalidParameterError("mde_range", "must not be empty", mdes)
	}
	for _, mde := range mdes {
		probe := cfg
		probe.MDE = mde
		if err := probe.Validate(); err != nil {
			return nil, err
		}
	}
	if err := plan.validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	if cfg.Metric == experiment.Continuous && !o.hasStddev {
		return nil, errors.NewInvalidParameterError("baseline_stddev",
			"required for continuous metrics (use WithBaselineStdDev)", nil)
	}
	if o.hasStddev && o.stddev <= 0 {
		return nil, errors.NewInvalidParameterError("baseline_stddev", "must be positive", o.stddev)
	}

	points := make([]DurationPoint, len(mdes))
	parallel.ParallelizeWithThreshold(len(mdes), sweepParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			c := cfg
			c.MDE = mdes[i]
			est := durationValidated(c, plan, o)
			points[i] = DurationPoint{
				Allocation:             plan.Allocation,
				MDE:                    mdes[i],
				DaysRequired:           est.DaysRequired,
				DailyExperimentTraffic: est.DailyExperimentTraffic,
				TotalSampleSize:        est.TotalSampleSize,
			}
		}
	})
	return points, nil
}
