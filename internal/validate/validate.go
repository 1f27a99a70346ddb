// Package validate applies ordered field validators to request input and
// collects structured per-field errors, the shape the API returns to callers.
package validate

import (
	"net/url"
	"regexp"
	"strings"
)

// emailPattern accepts the basic address shape something@something.tld.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// FieldError reports a single failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is an ordered collection of field errors. It implements error so
// services can return it directly.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator checks one field and reports zero or more errors.
type Validator func() []FieldError

// Run applies validators in order and returns the collected errors, or nil
// when everything passed.
func Run(validators ...Validator) error {
	var errs Errors
	for _, v := range validators {
		errs = append(errs, v()...)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Required fails when the trimmed value is empty.
func Required(field, value, message string) Validator {
	return func() []FieldError {
		if strings.TrimSpace(value) == "" {
			return []FieldError{{Field: field, Message: message}}
		}
		return nil
	}
}

// LengthBetween fails when the trimmed value's rune count is outside
// [min, max]. An empty value also fails; pair with Required for a clearer
// message when the field is missing entirely.
func LengthBetween(field, value string, min, max int, message string) Validator {
	return func() []FieldError {
		n := len([]rune(strings.TrimSpace(value)))
		if n < min || n > max {
			return []FieldError{{Field: field, Message: message}}
		}
		return nil
	}
}

// MaxLength fails when the trimmed value's rune count exceeds max.
// Empty values pass; the rule is for optional bounded fields.
func MaxLength(field, value string, max int, message string) Validator {
	return func() []FieldError {
		if len([]rune(strings.TrimSpace(value))) > max {
			return []FieldError{{Field: field, Message: message}}
		}
		return nil
	}
}

// Email fails when the trimmed value does not look like an email address.
func Email(field, value, message string) Validator {
	return func() []FieldError {
		if !emailPattern.MatchString(strings.TrimSpace(value)) {
			return []FieldError{{Field: field, Message: message}}
		}
		return nil
	}
}

// URL fails when a non-empty value is not an absolute http(s) URL.
// Empty values pass; the rule is for optional fields.
func URL(field, value, message string) Validator {
	return func() []FieldError {
		v := strings.TrimSpace(value)
		if v == "" {
			return nil
		}
		u, err := url.Parse(v)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return []FieldError{{Field: field, Message: message}}
		}
		return nil
	}
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
