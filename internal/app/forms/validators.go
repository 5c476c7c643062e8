package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ecemk/classboard/internal/pkg/validation"
)

// Validator checks one field value against the full form and returns an
// error message, or "" when the value is acceptable.
type Validator func(value string, values Values) string

// Required rejects empty or whitespace-only values.
func Required(label string) Validator {
	return func(value string, _ Values) string {
		if strings.TrimSpace(value) == "" {
			return label + " is required"
		}
		return ""
	}
}

// MinLen rejects values shorter than n characters. Empty values pass;
// pair with Required when the field is mandatory.
func MinLen(label string, n int) Validator {
	return func(value string, _ Values) string {
		if value == "" {
			return ""
		}
		ok := validation.NewStringValidation(value).WithMinLength(n).Validate()
		if !ok {
			return fmt.Sprintf("%s must be at least %d characters", label, n)
		}
		return ""
	}
}

// MinInt rejects values that do not parse as an integer of at least n.
func MinInt(label string, n int) Validator {
	return func(value string, _ Values) string {
		if value == "" {
			return ""
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return label + " must be a number"
		}
		if v < n {
			return fmt.Sprintf("%s must be at least %d", label, n)
		}
		return ""
	}
}

// Email rejects values that do not match the accepted address format.
func Email(label string) Validator {
	return func(value string, _ Values) string {
		if value == "" {
			return ""
		}
		if !validation.CompiledPatterns.Email.MatchString(value) {
			return label + " must be a valid email address"
		}
		return ""
	}
}

// EqualTo rejects values differing from another field, e.g. a password
// confirmation.
func EqualTo(label, otherField, otherLabel string) Validator {
	return func(value string, values Values) string {
		if value != values[otherField] {
			return fmt.Sprintf("%s must match %s", label, otherLabel)
		}
		return ""
	}
}

// RequiredUnless makes a field mandatory except when another field holds
// the given value (department is required unless the role is admin).
func RequiredUnless(label, otherField, otherValue string) Validator {
	return func(value string, values Values) string {
		if values[otherField] == otherValue {
			return ""
		}
		if strings.TrimSpace(value) == "" {
			return label + " is required"
		}
		return ""
	}
}
