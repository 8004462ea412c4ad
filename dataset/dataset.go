// Package dataset parses uploaded tabular A/B test data into group samples.
//
// The caller maps file columns to the group label and the outcome metric
// through a Schema; everything else in the file is ignored. Validation
// happens here, at the boundary, so the statistical packages can assume
// well-formed input.
package dataset

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/abgo/experiment"
	"github.com/YuminosukeSato/abgo/pkg/errors"
	"github.com/YuminosukeSato/abgo/pkg/log"
)

// Schema maps file columns to the fields an analysis needs.
type Schema struct {
	// GroupColumn holds the group label ("control"/"treatment" or "0"/"1").
	GroupColumn string
	// OutcomeColumn holds the numeric outcome metric.
	OutcomeColumn string
}

// DefaultSchema returns the conventional column names.
func DefaultSchema() Schema {
	return Schema{GroupColumn: "group", OutcomeColumn: "outcome"}
}

// Row is one parsed observation.
type Row struct {
	Group   string
	Outcome float64
}

// Table is a validated, immutable view of an uploaded file.
type Table struct {
	schema Schema
	rows   []Row
}

// Summary holds the basic statistics shown after an upload.
type Summary struct {
	Rows        int
	GroupSizes  map[string]int
	OutcomeMean float64
}

// Load reads CSV data, validates it against the schema, and returns a
// Table. It fails with a ValidationError naming the missing column or the
// first non-numeric outcome cell. Header matching is exact after trimming
// surrounding whitespace.
func Load(r io.Reader, schema Schema) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.Load")
	}
	if err != nil {
		return nil, errors.Wrap(err, "dataset.Load: reading header")
	}

	groupIdx, outcomeIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case schema.GroupColumn:
			groupIdx = i
		case schema.OutcomeColumn:
			outcomeIdx = i
		}
	}
	if groupIdx < 0 {
		return nil, errors.NewValidationError(schema.GroupColumn, "column not found in header", header)
	}
	if outcomeIdx < 0 {
		return nil, errors.NewValidationError(schema.OutcomeColumn, "column not found in header", header)
	}

	var rows []Row
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "dataset.Load: reading row %d", line)
		}

		outcome, err := strconv.ParseFloat(strings.TrimSpace(record[outcomeIdx]), 64)
		if err != nil {
			return nil, errors.NewValidationError(schema.OutcomeColumn,
				"non-numeric value at row "+strconv.Itoa(line), record[outcomeIdx])
		}
		// ParseFloat accepts "NaN" and "Inf"; those are still malformed
		// outcomes.
		if err := errors.CheckScalarFinite(schema.OutcomeColumn, outcome, line); err != nil {
			return nil, err
		}
		rows = append(rows, Row{
			Group:   strings.TrimSpace(record[groupIdx]),
			Outcome: outcome,
		})
	}

	if len(rows) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.Load")
	}

	log.GetLoggerWithName("dataset").Debug("dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.RowsKey, len(rows),
	)
	return &Table{schema: schema, rows: rows}, nil
}

// Rows returns the number of parsed observations.
func (t *Table) Rows() int {
	return len(t.rows)
}

// Groups returns the distinct group labels in sorted order.
func (t *Table) Groups() []string {
	seen := make(map[string]struct{})
	for _, row := range t.rows {
		seen[row.Group] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Split partitions the table into control and treatment samples. It fails
// with a ValidationError unless exactly two group labels are present.
//
// The control arm is the label named "control" or "0" when one exists,
// otherwise the lexically smaller label.
func (t *Table) Split() (control, treatment experiment.GroupSample, err error) {
	labels := t.Groups()
	if len(labels) != 2 {
		return experiment.GroupSample{}, experiment.GroupSample{},
			errors.NewValidationError(t.schema.GroupColumn,
				"expected exactly 2 groups, found "+strconv.Itoa(len(labels)), labels)
	}

	controlLabel := labels[0]
	treatmentLabel := labels[1]
	if labels[1] == experiment.ControlID || labels[1] == "0" {
		controlLabel, treatmentLabel = labels[1], labels[0]
	}

	byGroup := map[string][]float64{}
	for _, row := range t.rows {
		byGroup[row.Group] = append(byGroup[row.Group], row.Outcome)
	}

	return experiment.NewContinuousSample(controlLabel, byGroup[controlLabel]),
		experiment.NewContinuousSample(treatmentLabel, byGroup[treatmentLabel]),
		nil
}

// SplitProportions is Split followed by conversion of both arms into
// trials/successes summaries. It fails with a ValidationError if any
// outcome is not exactly 0 or 1.
func (t *Table) SplitProportions() (control, treatment experiment.GroupSample, err error) {
	c, tr, err := t.Split()
	if err != nil {
		return experiment.GroupSample{}, experiment.GroupSample{}, err
	}
	if c, err = c.ToProportionSummary(); err != nil {
		return experiment.GroupSample{}, experiment.GroupSample{}, err
	}
	if tr, err = tr.ToProportionSummary(); err != nil {
		return experiment.GroupSample{}, experiment.GroupSample{}, err
	}
	return c, tr, nil
}

// Stats computes the post-upload summary.
func (t *Table) Stats() Summary {
	sizes := make(map[string]int)
	sum := 0.0
	for _, row := range t.rows {
		sizes[row.Group]++
		sum += row.Outcome
	}
	return Summary{
		Rows:        len(t.rows),
		GroupSizes:  sizes,
		OutcomeMean: sum / float64(len(t.rows)),
	}
}
