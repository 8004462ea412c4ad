// Package report turns raw test results into human-readable verdicts and
// recommendations. It is the presentation boundary of the library: it never
// fails, it only classifies.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/hypothesis"
	"github.com/YuminosukeSato/abgo/pkg/errors"
	"github.com/YuminosukeSato/abgo/pkg/log"
)

// Verdict is the one-line classification of a test outcome. Summarize always
// returns one of these four values.
type Verdict string

const (
	VerdictSignificantUplift  Verdict = "Statistically significant uplift"
	VerdictSignificantDecline Verdict = "Statistically significant decline"
	VerdictNoDifference       Verdict = "No significant difference"
	VerdictInsufficientData   Verdict = "Insufficient data"
)

// Recommendation is the suggested action attached to a verdict.
type Recommendation string

const (
	RecommendShipTreatment   Recommendation = "We recommend implementing the treatment variant."
	RecommendKeepControl     Recommendation = "We recommend keeping the control variant."
	RecommendCollectMoreData Recommendation = "Collect more data before drawing a conclusion."
)

// Report is the structured summary of one analysis. All numeric fields are
// copied from the TestResult; a Report is a value, never mutated after
// Summarize returns.
type Report struct {
	Verdict        Verdict
	Recommendation Recommendation

	Method             string
	Statistic          float64
	PValue             float64
	EffectEstimate     float64
	RelativeDifference float64
	ConfidenceInterval hypothesis.ConfidenceInterval
	Significant        bool
	Alpha              float64

	ControlMetric   float64
	TreatmentMetric float64
	ControlSize     int
	TreatmentSize   int
}

// Summarize classifies a test outcome. It never fails: when the analysis
// itself failed with an InsufficientDataError, or produced no result, the
// verdict is "Insufficient data" and the caller is told to collect more.
//
// The verdict is a pure function of the result and configuration; calling
// Summarize twice with the same inputs yields the same Report.
func Summarize(cfg experiment.Config, result *hypothesis.TestResult, analysisErr error) *Report {
	var ie *errors.InsufficientDataError
	if result == nil || errors.As(analysisErr, &ie) {
		return &Report{
			Verdict:        VerdictInsufficientData,
			Recommendation: RecommendCollectMoreData,
			Alpha:          cfg.Alpha,
		}
	}

	r := &Report{
		Method:             result.Method,
		Statistic:          result.Statistic,
		PValue:             result.PValue,
		EffectEstimate:     result.EffectEstimate,
		RelativeDifference: result.RelativeDifference,
		ConfidenceInterval: result.ConfidenceInterval,
		Significant:        result.Significant,
		Alpha:              result.Alpha,
		ControlMetric:      result.ControlMetric,
		TreatmentMetric:    result.TreatmentMetric,
		ControlSize:        result.ControlSize,
		TreatmentSize:      result.TreatmentSize,
	}

	switch {
	case result.Significant && result.EffectEstimate > 0:
		r.Verdict = VerdictSignificantUplift
		r.Recommendation = RecommendShipTreatment
	case result.Significant && result.EffectEstimate < 0:
		r.Verdict = VerdictSignificantDecline
		r.Recommendation = RecommendKeepControl
	default:
		r.Verdict = VerdictNoDifference
		r.Recommendation = RecommendCollectMoreData
	}

	log.GetLoggerWithName("report").Debug("summary produced",
		log.OperationKey, log.OperationSummarize,
		log.VerdictKey, string(r.Verdict),
		log.PValueKey, r.PValue,
		log.SignificantKey, r.Significant,
	)
	return r
}

// FormatConfidenceInterval renders an interval as "[low, high]" with the
// given number of decimal places.
func FormatConfidenceInterval(ci hypothesis.ConfidenceInterval, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("[%.*f, %.*f]", decimals, ci.Low, decimals, ci.High)
}

// String renders the report as a short plain-text block suitable for a
// terminal or a log.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n", r.Verdict)
	fmt.Fprintf(&b, "Recommendation: %s\n", r.Recommendation)
	if r.Verdict == VerdictInsufficientData {
		return b.String()
	}
	fmt.Fprintf(&b, "Method: %s\n", r.Method)
	fmt.Fprintf(&b, "Control: %.4f (n=%d), Treatment: %.4f (n=%d)\n",
		r.ControlMetric, r.ControlSize, r.TreatmentMetric, r.TreatmentSize)
	fmt.Fprintf(&b, "Effect: %.4f", r.EffectEstimate)
	if !math.IsInf(r.RelativeDifference, 0) {
		fmt.Fprintf(&b, " (%.2f%%)", r.RelativeDifference)
	}
	fmt.Fprintf(&b, ", %.0f%% CI %s\n",
		(1-r.Alpha)*100, FormatConfidenceInterval(r.ConfidenceInterval, 4))
	fmt.Fprintf(&b, "p-value: %.4f (alpha=%.2f)\n", r.PValue, r.Alpha)
	return b.String()
}
