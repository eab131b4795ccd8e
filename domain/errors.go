package domain

import "errors"

var (
	errCapacityExceeded  error = errors.New("not enough free beds for requested room type")
	errInvalidRelease    error = errors.New("release would drive occupancy below zero")
	errInvalidTransition error = errors.New("booking status transition not allowed")
	errPropertyNotFound  error = errors.New("property not found")
	errBookingNotFound   error = errors.New("booking not found")
	errRoomTypeNotFound  error = errors.New("room type not found on property")
)

// ValidationError covers malformed or missing caller input. It is surfaced
// as a bad request and never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field string, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func ErrCapacityExceeded() error {
	return errCapacityExceeded
}

// ErrInvalidRelease signals a bookkeeping bug upstream, not a user error.
// Callers log it as a consistency failure.
func ErrInvalidRelease() error {
	return errInvalidRelease
}

func ErrInvalidTransition() error {
	return errInvalidTransition
}

func ErrPropertyNotFound() error {
	return errPropertyNotFound
}

func ErrBookingNotFound() error {
	return errBookingNotFound
}

func ErrRoomTypeNotFound() error {
	return errRoomTypeNotFound
}
