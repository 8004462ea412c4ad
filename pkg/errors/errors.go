// Package errors provides the error taxonomy and warning system used across
// ABGo. All analysis failures are recoverable: callers are expected to catch
// them at the presentation boundary and render a message, never to crash.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("ABGo-Warning: %v\n", w)
	}
	// zerolog sink, injected lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the warning handler for the whole library.
// Validation checks such as A/A tests and sample ratio mismatch detection
// report through this handler instead of failing the analysis.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // drop warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. The zerolog sink takes precedence when installed;
// otherwise the plain handler runs.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// ValidationError reports malformed uploaded data: a missing column, a
// non-numeric outcome cell, or a group layout that cannot form an
// experiment. The Field names the offending column or property.
type ValidationError struct {
	Field  string
	Reason string
	Value  interface{}
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("abgo: validation failed for %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("abgo: validation failed for %q: %s (got: %v)", e.Field, e.Reason, e.Value)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("field", e.Field).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace attached.
func NewValidationError(field, reason string, value interface{}) error {
	err := &ValidationError{Field: field, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// InvalidParameterError reports experiment configuration that is out of
// range: a significance level or power outside (0,1), a non-positive
// minimum detectable effect, and so on.
type InvalidParameterError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("abgo: invalid parameter %q: %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *InvalidParameterError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "InvalidParameterError")
}

// NewInvalidParameterError creates an InvalidParameterError with a stack
// trace attached.
func NewInvalidParameterError(param, reason string, value interface{}) error {
	err := &InvalidParameterError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// InsufficientDataError reports a group sample too small for the requested
// test: fewer than two observations for a continuous metric, or zero trials
// for a proportion metric.
type InsufficientDataError struct {
	GroupID  string
	Got      int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("abgo: group %q has %d observations, need at least %d to run a test",
		e.GroupID, e.Got, e.Required)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *InsufficientDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("group_id", e.GroupID).
		Int("got", e.Got).
		Int("required", e.Required).
		Str("type", "InsufficientDataError")
}

// NewInsufficientDataError creates an InsufficientDataError with a stack
// trace attached.
func NewInsufficientDataError(groupID string, got, required int) error {
	err := &InsufficientDataError{GroupID: groupID, Got: got, Required: required}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Experiment validation warnings
//
// ===========================================================================

// SampleRatioMismatchWarning is raised when the observed control/treatment
// split deviates significantly from the expected allocation, which usually
// indicates broken randomization or data loss in the pipeline.
type SampleRatioMismatchWarning struct {
	ControlSize   int
	TreatmentSize int
	ExpectedRatio float64
	PValue        float64
}

func (w *SampleRatioMismatchWarning) Error() string {
	total := w.ControlSize + w.TreatmentSize
	actual := 0.0
	if total > 0 {
		actual = float64(w.TreatmentSize) / float64(total)
	}
	return fmt.Sprintf("sample ratio mismatch detected (p-value=%.4f): expected ratio %.2f, actual %.2f (control=%d, treatment=%d)",
		w.PValue, w.ExpectedRatio, actual, w.ControlSize, w.TreatmentSize)
}

// MarshalZerologObject adds structured warning information to a zerolog event.
func (w *SampleRatioMismatchWarning) MarshalZerologObject(event *zerolog.Event) {
	event.Int("control_size", w.ControlSize).
		Int("treatment_size", w.TreatmentSize).
		Float64("expected_ratio", w.ExpectedRatio).
		Float64("p_value", w.PValue).
		Str("type", "SampleRatioMismatchWarning")
}

// NewSampleRatioMismatchWarning creates a new SampleRatioMismatchWarning.
func NewSampleRatioMismatchWarning(controlSize, treatmentSize int, expectedRatio, pValue float64) *SampleRatioMismatchWarning {
	return &SampleRatioMismatchWarning{
		ControlSize:   controlSize,
		TreatmentSize: treatmentSize,
		ExpectedRatio: expectedRatio,
		PValue:        pValue,
	}
}

// RandomizationWarning is raised when an A/A test finds a significant
// difference between two slices of the same population, suggesting the
// assignment mechanism is biased.
type RandomizationWarning struct {
	TestType        string
	PValue          float64
	ControlMetric   float64
	TreatmentMetric float64
}

func (w *RandomizationWarning) Error() string {
	return fmt.Sprintf("%s failed (p-value=%.4f): groups differ before any treatment (control=%.4f, treatment=%.4f)",
		w.TestType, w.PValue, w.ControlMetric, w.TreatmentMetric)
}

// MarshalZerologObject adds structured warning information to a zerolog event.
func (w *RandomizationWarning) MarshalZerologObject(event *zerolog.Event) {
	event.Str("test_type", w.TestType).
		Float64("p_value", w.PValue).
		Float64("control_metric", w.ControlMetric).
		Float64("treatment_metric", w.TreatmentMetric).
		Str("type", "RandomizationWarning")
}

// NewRandomizationWarning creates a new RandomizationWarning.
func NewRandomizationWarning(testType string, pValue, controlMetric, treatmentMetric float64) *RandomizationWarning {
	return &RandomizationWarning{
		TestType:        testType,
		PValue:          pValue,
		ControlMetric:   controlMetric,
		TreatmentMetric: treatmentMetric,
	}
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty dataset is supplied.
	ErrEmptyData = New("empty data")

	// ErrMissingGroup is returned when fewer than two groups are present.
	ErrMissingGroup = New("missing group")
)
