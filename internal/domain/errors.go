package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every field-level rejection raised before a store call.
var ErrValidation = errors.New("validation error")

// Validation errors. Each one wraps ErrValidation.
var (
	ErrTitleRequired = fmt.Errorf("%w: title required", ErrValidation)
	ErrMissingDate   = fmt.Errorf("%w: missing date", ErrValidation)
	ErrInvalidTime   = fmt.Errorf("%w: invalid time", ErrValidation)
	ErrInvertedRange = fmt.Errorf("%w: end is before start", ErrValidation)
	ErrInvalidField  = fmt.Errorf("%w: invalid field value", ErrValidation)
	ErrPINFormat     = fmt.Errorf("%w: pin must be 4 digits", ErrValidation)
	ErrDefaultPIN    = fmt.Errorf("%w: the initial pin cannot be reused", ErrValidation)
	ErrPINMismatch   = fmt.Errorf("%w: pin confirmation does not match", ErrValidation)
)

// Storage errors.
var (
	ErrStorageCorruption = errors.New("storage corruption")
	ErrStorageWrite      = errors.New("storage write failure")
	ErrIDCollision       = errors.New("identity collision")
	ErrKeyNotFound       = errors.New("key not found")
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidPIN   = errors.New("pin does not match")
)

// Form errors.
var (
	ErrFormState    = errors.New("form does not allow this action now")
	ErrSaveFailed   = errors.New("failed to save event")
	ErrDeleteFailed = errors.New("failed to delete event")
)
