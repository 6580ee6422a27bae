// Package validation provides small composable validators for HTML form
// fields. Error strings are user-facing.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// Required validates that a field is not empty and does not exceed maxLen characters.
// Uses rune count for proper Unicode support.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// RequiredRange validates that a field is not empty and is between minLen and maxLen characters.
// Uses rune count for proper Unicode support.
func RequiredRange(fieldName string, minLen, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		n := utf8.RuneCountInString(v)
		if n < minLen || n > maxLen {
			return fmt.Sprintf("%s must be between %d and %d characters.", fieldName, minLen, maxLen)
		}
		return ""
	}
}

var digitsPattern = regexp.MustCompile(`^[0-9]+$`)

// Digits validates that a field consists of exactly n digits.
func Digits(fieldName string, n int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if len(v) != n || !digitsPattern.MatchString(v) {
			return fmt.Sprintf("%s must be exactly %d digits.", fieldName, n)
		}
		return ""
	}
}

// FutureDateTime validates that a field parses with the given layout and
// lies in the future.
func FutureDateTime(fieldName, layout string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		t, err := time.ParseInLocation(layout, v, time.Local)
		if err != nil {
			return fieldName + " is not a valid date and time."
		}
		if !t.After(time.Now()) {
			return fieldName + " must be in the future."
		}
		return ""
	}
}

// OneOf validates that a field matches one of the allowed values.
func OneOf(fieldName string, allowed ...string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		for _, a := range allowed {
			if v == a {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s.", fieldName, strings.Join(allowed, ", "))
	}
}

// Field couples a form value with the validators that apply to it.
type Field struct {
	Value      string
	Validators []Validator
}

// Run applies every field's validators and collects the first error per
// field, keyed by form field name. An empty map means the form is valid.
func Run(fields map[string]Field) map[string]string {
	errs := map[string]string{}
	for name, field := range fields {
		for _, validate := range field.Validators {
			if msg := validate(field.Value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}
	return errs
}
