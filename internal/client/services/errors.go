package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/luxestay/internal/client/models"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongRole          = errors.New("wrong role")

	ErrNameRequired  = fmt.Errorf("%w: name is required", ErrInvalidInput)
	ErrEmailRequired = fmt.Errorf("%w: email is required", ErrInvalidInput)
)

// RoleMismatchError is returned by Login when the account exists and the
// password matches, but the account's role is not the required one.
type RoleMismatchError struct {
	Required models.Role
	Actual   models.Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("wrong role: account is %s, %s required", e.Actual, e.Required)
}

func (e *RoleMismatchError) Unwrap() error { return ErrWrongRole }

// UserMessage renders err the way the login and signup forms show it.
// Errors outside the identity taxonomy render as fallback.
func UserMessage(err error, fallback string) string {
	var rm *RoleMismatchError
	switch {
	case errors.As(err, &rm):
		return fmt.Sprintf("Invalid role. This account is a %s", rm.Actual)
	case errors.Is(err, ErrDuplicateEmail):
		return "Email already registered"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrNameRequired):
		return "Name is required"
	case errors.Is(err, ErrEmailRequired):
		return "Email is required"
	default:
		return fallback
	}
}
