package domain

import "errors"

// Sentinel errors returned by services and mapped to HTTP statuses at the
// handler boundary.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrDuplicateReview    = errors.New("duplicate review")
	ErrVerificationFailed = errors.New("verification failed")
)

// Invalid builds a field-level validation error. The message is what the
// client sees; errors.Is(err, ErrValidation) still matches.
func Invalid(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

