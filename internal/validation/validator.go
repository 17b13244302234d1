package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator struct {
	Errors []ValidationError
}

func New() *Validator {
	return &Validator{
		Errors: make([]ValidationError, 0),
	}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required fails when the trimmed value is empty.
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, field+" is required")
}

// Email fails when the value is not a plausible email address.
func (v *Validator) Email(field, value string) {
	v.Check(emailRegex.MatchString(value), field, "invalid email address")
}

// Phone fails when the value is present but not a plausible phone number.
func (v *Validator) Phone(field, value string) {
	if value == "" {
		return
	}
	v.Check(phoneRegex.MatchString(value), field, "invalid phone number")
}

// MinLen fails when the value is shorter than n characters.
func (v *Validator) MinLen(field, value string, n int) {
	v.Check(len(value) >= n, field, fmt.Sprintf("%s must be at least %d characters", field, n))
}

// FieldErrors returns the errors as a field→message map for API responses.
func (v *Validator) FieldErrors() map[string]string {
	out := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}
