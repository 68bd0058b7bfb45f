// Package forms validates user input before it reaches the identity store.
package forms

import (
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password the signup form accepts.
const MinPasswordLength = 6

// ValidationError carries the message shown next to the form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// SignupForm mirrors the guest signup page.
type SignupForm struct {
	Name            string
	Email           string
	Password        []byte
	ConfirmPassword []byte
	AgreeToTerms    bool
}

// Validate reports the first failing rule, checked in page order.
func (f SignupForm) Validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return &ValidationError{Message: "Name is required"}
	case strings.TrimSpace(f.Email) == "":
		return &ValidationError{Message: "Email is required"}
	case utf8.RuneCount(f.Password) < MinPasswordLength:
		return &ValidationError{Message: "Password must be at least 6 characters"}
	case string(f.Password) != string(f.ConfirmPassword):
		return &ValidationError{Message: "Passwords do not match"}
	case !f.AgreeToTerms:
		return &ValidationError{Message: "You must agree to the terms and conditions"}
	}
	return nil
}
