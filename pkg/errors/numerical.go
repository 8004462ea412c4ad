package errors

import (
	"math"
)

// CheckFinite returns a ValidationError when any value is NaN or infinite.
// The Field names the column or property being checked.
func CheckFinite(field string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValidationError(field, "must be a finite number",
				map[string]interface{}{"index": i, "value": v})
		}
	}
	return nil
}

// CheckScalarFinite returns a ValidationError when the value is NaN or
// infinite. The row is 1-based, matching data file line numbers.
func CheckScalarFinite(field string, value float64, row int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewValidationError(field, "must be a finite number",
			map[string]interface{}{"row": row, "value": value})
	}
	return nil
}
