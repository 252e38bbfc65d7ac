package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength    = 100
	MaxMessageLength = 1000
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Add appends a field error
func (e *FieldValidationErrors) Add(field, message string) {
	*e = append(*e, FieldValidationError{Field: field, Message: message})
}

// Err returns nil when no field failed
func (e FieldValidationErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateCurrency checks for a three letter ISO 4217 code
func ValidateCurrency(currency string) error {
	if !currencyRegex.MatchString(currency) {
		return fmt.Errorf("currency must be a 3-letter ISO code")
	}
	return nil
}

// ValidateRequiredText trims value and checks it is present and within max runes
func ValidateRequiredText(errs *FieldValidationErrors, field, value string, max int) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		errs.Add(field, "is required")
	case utf8.RuneCountInString(value) > max:
		errs.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return value
}

// TruncateRunes shortens s to at most n runes
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
