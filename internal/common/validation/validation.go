// internal/common/validation/validation.go
package validation

import (
	"fmt"
	"math"
)

// ValidationResult aggregates field-level violations.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator accumulates violations over a set of checks. Business data
// quality is not validated here; only control parameters that must
// fail fast.
type Validator struct {
	errors []ValidationError
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Add(field, code, format string, args ...interface{}) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	})
}

// RequireRange records a violation unless min <= value <= max. NaN and
// infinities always violate.
func (v *Validator) RequireRange(field string, value, min, max float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < min || value > max {
		v.Add(field, "OUT_OF_RANGE", "must be between %v and %v, got %v", min, max, value)
	}
}

// RequireMin records a violation unless value >= min.
func (v *Validator) RequireMin(field string, value, min int) {
	if value < min {
		v.Add(field, "BELOW_MINIMUM", "must be at least %d, got %d", min, value)
	}
}

// RequireOneOf records a violation unless value is in allowed.
func (v *Validator) RequireOneOf(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.Add(field, "INVALID_ENUM", "must be one of %v, got %q", allowed, value)
}

// Result collapses the accumulated checks.
func (v *Validator) Result() *ValidationResult {
	return &ValidationResult{
		Valid:  len(v.errors) == 0,
		Errors: v.errors,
	}
}

// FirstError renders the first violation as a compact string, suitable
// for error details. Empty when valid.
func (r *ValidationResult) FirstError() string {
	if len(r.Errors) == 0 {
		return ""
	}
	e := r.Errors[0]
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
