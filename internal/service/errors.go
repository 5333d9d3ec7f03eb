package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation wraps every rejected input; the wrapped message names the field.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail indicates the email is already registered for the role.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPrincipalNotFound indicates no principal exists for the email and role.
	ErrPrincipalNotFound = errors.New("principal not found")
	// ErrRewardNotFound indicates the reward id is not in the catalog.
	ErrRewardNotFound = errors.New("reward not found")
	// ErrInsufficientPoints indicates the reward costs more than the balance.
	ErrInsufficientPoints = errors.New("insufficient points")
	// ErrInvalidPeriod indicates an unknown report period.
	ErrInvalidPeriod = errors.New("report period must be monthly or yearly")
)

// StorageError reports a failed store round trip. The underlying driver
// message is kept for diagnostics.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsValidationError reports whether err describes rejected input.
func IsValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.Is(err, ErrValidation) || errors.As(err, &validationErrors)
}
