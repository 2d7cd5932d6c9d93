package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kbukum/meetnotes/errors"
)

var lowerHex = regexp.MustCompile(`^[0-9a-f]+$`)

// FieldError names one failing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects field errors from chained checks on single values
// such as path parameters.
type Validator struct {
	errors []FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failing field.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool { return len(v.errors) > 0 }

// Errors returns the recorded field errors.
func (v *Validator) Errors() []FieldError { return v.errors }

// Validate returns nil, or one validation AppError listing every failed field.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	return fieldsError(v.errors)
}

// Required fails on empty or whitespace-only values.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// HexID fails unless a non-empty value is exactly length lowercase hex
// digits. Recording ids pass through it before touching storage paths.
func (v *Validator) HexID(field, value string, length int) *Validator {
	if value != "" && (len(value) != length || !lowerHex.MatchString(value)) {
		v.AddError(field, fmt.Sprintf("must be %d lowercase hex characters", length))
	}
	return v
}

func fieldsError(fields []FieldError) *errors.AppError {
	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = f.Field + ": " + f.Message
	}
	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": fields}
	return appErr
}
