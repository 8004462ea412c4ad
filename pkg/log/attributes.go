// Package log defines standard attribute keys for experiment analysis
// operations. Using these keys keeps log output consistent across packages
// and makes verdicts, p-values, and sample sizes easy to filter on.
package log

// Experiment and operation context.
const (
	// ExperimentIDKey identifies a specific experiment run.
	ExperimentIDKey = "experiment.id"

	// MetricTypeKey records the outcome metric family.
	// Values: "proportion", "continuous".
	MetricTypeKey = "experiment.metric_type"

	// OperationKey specifies the analysis operation being performed.
	// Standard values: "load", "validate", "sample_size", "power_curve",
	// "duration", "hypothesis_test", "aa_test", "srm_check", "summarize".
	OperationKey = "stats.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "dataset", "power", "hypothesis", "report".
	ComponentKey = "stats.component"
)

// Data shape and group context.
const (
	// GroupKey names the group a record refers to ("control", "treatment").
	GroupKey = "data.group"

	// SamplesKey is the number of observations involved.
	SamplesKey = "data.samples"

	// TrialsKey is the number of trials for a proportion metric.
	TrialsKey = "data.trials"

	// SuccessesKey is the number of successes for a proportion metric.
	SuccessesKey = "data.successes"

	// RowsKey is the number of rows parsed from an uploaded file.
	RowsKey = "data.rows"
)

// Statistical outputs.
const (
	// PValueKey records the p-value of a test.
	PValueKey = "stats.p_value"

	// StatisticKey records the test statistic.
	StatisticKey = "stats.statistic"

	// EffectKey records the effect estimate (treatment minus control).
	EffectKey = "stats.effect"

	// SignificantKey records whether the result cleared the alpha threshold.
	SignificantKey = "stats.significant"

	// MethodKey records which test produced the result.
	MethodKey = "stats.method"

	// VerdictKey records the summarizer's verdict string.
	VerdictKey = "stats.verdict"
)

// Design parameters.
const (
	// AlphaKey records the significance level.
	AlphaKey = "design.alpha"

	// PowerKey records the statistical power.
	PowerKey = "design.power"

	// MDEKey records the minimum detectable effect.
	MDEKey = "design.mde"

	// BaselineRateKey records the baseline conversion rate.
	BaselineRateKey = "design.baseline_rate"

	// SampleSizeKey records a required per-group sample size.
	SampleSizeKey = "design.sample_size"

	// DurationDaysKey records an estimated experiment duration in days.
	DurationDaysKey = "design.duration_days"
)

// Error context.
const (
	// ErrorTypeKey categorizes the error encountered.
	// Examples: "ValidationError", "InvalidParameterError",
	// "InsufficientDataError".
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"
)

// Standard operation values.
const (
	OperationLoad       = "load"
	OperationValidate   = "validate"
	OperationSampleSize = "sample_size"
	OperationPowerCurve = "power_curve"
	OperationDuration   = "duration"
	OperationTest       = "hypothesis_test"
	OperationAATest     = "aa_test"
	OperationSRMCheck   = "srm_check"
	OperationSummarize  = "summarize"
)
