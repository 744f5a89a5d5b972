package forms

import (
	"net/url"
	"unicode/utf8"

	"github.com/kennywhwu/blogly/errs"
)

// Validation failure reasons, surfaced per field for form re-display.
const (
	ReasonRequired      = "required"
	ReasonTooLong       = "too_long"
	ReasonInvalidURL    = "invalid_url"
	ReasonInvalidChoice = "invalid_choice"
)

// rule inspects a single field value and returns a failure reason, or ""
// when the value passes.
type rule func(value string) string

func required(value string) string {
	if value == "" {
		return ReasonRequired
	}
	return ""
}

func maxLength(limit int) rule {
	return func(value string) string {
		if utf8.RuneCountInString(value) > limit {
			return ReasonTooLong
		}
		return ""
	}
}

// optionalURL accepts the empty string; a non-empty value must parse as an
// absolute URL.
func optionalURL(value string) string {
	if value == "" {
		return ""
	}
	parsed, err := url.ParseRequestURI(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ReasonInvalidURL
	}
	return ""
}

// field pairs a named value with the ordered rules applied to it.
type field struct {
	name  string
	value string
	rules []rule
}

// validate evaluates every field and collects one failure per failing field.
// A field stops at its first broken rule but later fields are still checked,
// so the caller always receives the complete set of field errors.
func validate(fields []field) errs.ValidationErrors {
	var ve errs.ValidationErrors
	for _, f := range fields {
		for _, r := range f.rules {
			if reason := r(f.value); reason != "" {
				ve = append(ve, errs.FieldError{Field: f.name, Reason: reason})
				break
			}
		}
	}
	return ve
}
