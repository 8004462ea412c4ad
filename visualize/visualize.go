// Package visualize builds gonum/plot figures from analysis results: power
// curves, duration trade-offs, confidence intervals, and outcome
// distributions. Figures are returned as *plot.Plot so callers control
// rendering; Save writes them to disk in a format inferred from the file
// extension.
package visualize

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/hypothesis"
	"github.com/YuminosukeSato/abgo/pkg/errors"
	"github.com/YuminosukeSato/abgo/power"
)

var (
	controlColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	treatmentColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	targetColor    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// PowerCurvePlot charts achieved power against per-group sample size, with a
// horizontal reference line at the target power.
func PowerCurvePlot(curve power.Curve, targetPower float64) (*plot.Plot, error) {
	if len(curve.SampleSizes) == 0 || len(curve.SampleSizes) != len(curve.Power) {
		return nil, errors.NewInvalidParameterError("curve", "must have matching, non-empty series",
			[2]int{len(curve.SampleSizes), len(curve.Power)})
	}

	p := plot.New()
	p.Title.Text = "Power Curve"
	p.X.Label.Text = "Sample Size per Group"
	p.Y.Label.Text = "Statistical Power"
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(curve.SampleSizes))
	for i := range pts {
		pts[i].X = float64(curve.SampleSizes[i])
		pts[i].Y = curve.Power[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "building power curve line")
	}
	line.Color = controlColor
	p.Add(line)
	p.Legend.Add("power", line)

	if targetPower > 0 && targetPower < 1 {
		target := plotter.XYs{
			{X: pts[0].X, Y: targetPower},
			{X: pts[len(pts)-1].X, Y: targetPower},
		}
		ref, err := plotter.NewLine(target)
		if err != nil {
			return nil, errors.Wrap(err, "building target power line")
		}
		ref.Color = targetColor
		ref.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(ref)
		p.Legend.Add("target", ref)
	}
	return p, nil
}

// DurationVsTrafficPlot charts required experiment duration against the
// share of traffic allocated to the experiment.
func DurationVsTrafficPlot(points []power.DurationPoint) (*plot.Plot, error) {
	return durationPlot(points, "Duration vs Traffic Allocation", "Traffic Allocation",
		func(pt power.DurationPoint) float64 { return pt.Allocation })
}

// DurationVsMDEPlot charts required experiment duration against the minimum
// detectable effect.
func DurationVsMDEPlot(points []power.DurationPoint) (*plot.Plot, error) {
	return durationPlot(points, "Duration vs Minimum Detectable Effect", "Minimum Detectable Effect",
		func(pt power.DurationPoint) float64 { return pt.MDE })
}

func durationPlot(points []power.DurationPoint, title, xLabel string, x func(power.DurationPoint) float64) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, errors.NewInvalidParameterError("points", "must not be empty", len(points))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Days Required"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(points))
	for i, pt := range points {
		pts[i].X = x(pt)
		pts[i].Y = pt.DaysRequired
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "building duration line")
	}
	line.Color = controlColor
	p.Add(line)
	return p, nil
}

// ciPoint adapts one effect estimate with its interval to the plotter
// error-bar interfaces.
type ciPoint struct {
	effect, low, high float64
}

func (c ciPoint) Len() int { return 1 }

func (c ciPoint) XY(int) (float64, float64) { return 0, c.effect }

func (c ciPoint) YError(int) (float64, float64) { return c.effect - c.low, c.high - c.effect }

// ConfidenceIntervalPlot charts the effect estimate with its confidence
// interval as an error bar, with a reference line at zero effect.
func ConfidenceIntervalPlot(result *hypothesis.TestResult) (*plot.Plot, error) {
	if result == nil {
		return nil, errors.NewValidationError("result", "must not be nil", nil)
	}

	p := plot.New()
	p.Title.Text = "Effect Estimate"
	p.Y.Label.Text = "Treatment - Control"
	p.X.Min, p.X.Max = -1, 1
	p.NominalX("effect")
	p.Add(plotter.NewGrid())

	pt := ciPoint{
		effect: result.EffectEstimate,
		low:    result.ConfidenceInterval.Low,
		high:   result.ConfidenceInterval.High,
	}
	bars, err := plotter.NewYErrorBars(pt)
	if err != nil {
		return nil, errors.Wrap(err, "building interval bars")
	}
	bars.Color = controlColor
	p.Add(bars)

	scatter, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: result.EffectEstimate}})
	if err != nil {
		return nil, errors.Wrap(err, "building effect marker")
	}
	scatter.Color = treatmentColor
	p.Add(scatter)

	zero, err := plotter.NewLine(plotter.XYs{{X: -1, Y: 0}, {X: 1, Y: 0}})
	if err != nil {
		return nil, errors.Wrap(err, "building zero line")
	}
	zero.Color = targetColor
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(zero)

	return p, nil
}

// GroupDistributionPlot overlays outcome histograms for the two groups.
// Both samples must carry raw observations.
func GroupDistributionPlot(control, treatment experiment.GroupSample, bins int) (*plot.Plot, error) {
	if control.IsSummary() || treatment.IsSummary() {
		return nil, errors.NewValidationError("observations",
			"distribution plots require raw observations, not summaries", nil)
	}
	if control.Count() == 0 {
		return nil, errors.NewInsufficientDataError(control.GroupID, 0, 1)
	}
	if treatment.Count() == 0 {
		return nil, errors.NewInsufficientDataError(treatment.GroupID, 0, 1)
	}
	if bins < 1 {
		bins = 16
	}

	p := plot.New()
	p.Title.Text = "Outcome Distributions"
	p.X.Label.Text = "Outcome"
	p.Y.Label.Text = "Density"

	for _, g := range []struct {
		sample experiment.GroupSample
		fill   color.RGBA
	}{
		{control, controlColor},
		{treatment, treatmentColor},
	} {
		h, err := plotter.NewHist(plotter.Values(g.sample.Observations()), bins)
		if err != nil {
			return nil, errors.Wrapf(err, "building histogram for group %q", g.sample.GroupID)
		}
		h.Normalize(1)
		fill := g.fill
		fill.A = 128
		h.FillColor = fill
		h.LineStyle.Color = g.fill
		p.Add(h)
	}
	return p, nil
}

// Save writes the figure to path. The format follows the file extension
// (.png, .svg, .pdf).
func Save(p *plot.Plot, path string) error {
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving plot to %s", path)
	}
	return nil
}
