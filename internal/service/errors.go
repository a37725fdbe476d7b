package service

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingUser is returned before any external call when no user is known
	ErrMissingUser = errors.New("user_id_required")
	// ErrUnauthorizedSignal is returned when a payment webhook fails verification
	ErrUnauthorizedSignal = errors.New("invalid webhook signature")
	// ErrForeignPhoto is returned for storage paths outside the user's prefix
	ErrForeignPhoto = errors.New("photo does not belong to user")
	// ErrRecipeNotFound is returned when the user has no recipe with the given id
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrUnsupportedPhoto is returned for uploads with a disallowed content type or size
	ErrUnsupportedPhoto = errors.New("unsupported photo")
)

// ParseError reports a model response that could not be decoded
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageAccessError reports a failure to sign, read or write a stored photo
type StorageAccessError struct {
	Path string
	Err  error
}

func (e *StorageAccessError) Error() string {
	return fmt.Sprintf("storage access failed for %s: %v", e.Path, e.Err)
}

func (e *StorageAccessError) Unwrap() error { return e.Err }

// PersistenceError reports a failed database write
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ModelError reports a failed language model call that has no fallback
type ModelError struct {
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model request failed: %v", e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }
