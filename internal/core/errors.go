package core

import (
	"errors"
	"fmt"
)

var (
	ErrMissingName      = errors.New("missing name")
	ErrInvalidAmount    = errors.New("missing or non-positive amount")
	ErrUnknownType      = errors.New("unknown contribution type")
	ErrMissingTimestamp = errors.New("missing timestamp")
)

// ValidationError is bad user input. It never reaches the store and can be
// shown to the submitter as-is.
type ValidationError struct {
	Field string
	Err   error
}

func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StorageError is a failure of the backing store: unreachable, unauthorized,
// over quota or timed out. Its text may carry credentials or internal detail
// and must not be rendered to users.
type StorageError struct {
	Op  string
	Err error
}

// LoadError is a StorageError on the read path.
type LoadError = StorageError

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
