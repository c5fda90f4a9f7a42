package domain

import (
	"errors"
	"strings"
)

// ============================================================================
// Calculation Errors
// ============================================================================

var (
	ErrMissingCovariate    = errors.New("required covariate is missing")
	ErrInvalidCovariate    = errors.New("covariate outside its declared domain")
	ErrInvalidCoefficients = errors.New("invalid model coefficients")
)

// ============================================================================
// Model Source Errors
// ============================================================================

var (
	ErrCoefficientSetNotFound = errors.New("coefficient set not found")
	ErrUnsupportedModelSource = errors.New("unsupported model source")
)

// ============================================================================
// History Errors
// ============================================================================

var (
	ErrRecordNotFound  = errors.New("history record not found")
	ErrInvalidRecordID = errors.New("invalid history record id")
)

// FieldError describes one rejected covariate.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PreconditionError reports covariates that were not supplied at all. It is a
// caller error and carries no partial result.
type PreconditionError struct {
	Missing []string
}

func (e *PreconditionError) Error() string {
	return "missing required covariates: " + strings.Join(e.Missing, ", ")
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrMissingCovariate
}

// ValidationError collects every covariate that was present but invalid.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Message)
	}
	return "invalid covariates: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidCovariate
}

// Fields returns the rejected field names in report order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}
