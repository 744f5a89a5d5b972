package errs

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError records a single validation rule failure on one form field.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors collects every failing field of a submission so the
// caller can re-render the form with the full set of reasons, not just the
// first one.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ByField returns the first reason recorded per field, keyed by field name.
func (v ValidationErrors) ByField() map[string]string {
	byField := make(map[string]string, len(v))
	for _, fe := range v {
		if _, ok := byField[fe.Field]; !ok {
			byField[fe.Field] = fe.Reason
		}
	}
	return byField
}

func IsValidation(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}
