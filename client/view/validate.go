package view

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const maxDescriptionLength = 100

var validate = validator.New()

// FieldError is a form field that failed client-side validation.
type FieldError struct {
	Field string
	Msg   string
}

// ValidationError lists every invalid field of a form.
type ValidationError []FieldError

func (v ValidationError) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Msg)
	}
	return strings.Join(parts, "; ")
}

// Msg returns the message for field, if it failed.
func (v ValidationError) Msg(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Msg
		}
	}
	return ""
}

func required(errs ValidationError, field, value string) (ValidationError, bool) {
	if strings.TrimSpace(value) == "" {
		return append(errs, FieldError{Field: field, Msg: "This field is required"}), false
	}
	return errs, true
}

func checkEmail(errs ValidationError, email string) ValidationError {
	errs, ok := required(errs, "email", email)
	if ok && validate.Var(strings.ToLower(strings.TrimSpace(email)), "email") != nil {
		errs = append(errs, FieldError{Field: "email", Msg: "Please enter valid email address"})
	}
	return errs
}

func asError(errs ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateSignup checks the signup form.
func ValidateSignup(name, email, password string) error {
	var errs ValidationError
	errs, _ = required(errs, "name", name)
	errs = checkEmail(errs, email)
	errs, ok := required(errs, "password", password)
	if ok && utf8.RuneCountInString(password) < 4 {
		errs = append(errs, FieldError{Field: "password", Msg: "Password should be atleast 4 chars long"})
	}
	return asError(errs)
}

// ValidateLogin checks the login form.
func ValidateLogin(email, password string) error {
	var errs ValidationError
	errs = checkEmail(errs, email)
	errs, _ = required(errs, "password", password)
	return asError(errs)
}

// ValidateTask checks the task editor form.
func ValidateTask(description string) error {
	var errs ValidationError
	errs, ok := required(errs, "description", description)
	if ok && utf8.RuneCountInString(description) > maxDescriptionLength {
		errs = append(errs, FieldError{Field: "description", Msg: "Max. limit is 100 characters."})
	}
	return asError(errs)
}
