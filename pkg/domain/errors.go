package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrUnavailable is returned when the backing store cannot be reached or timed out.
	// Operations failing with it may be retried.
	ErrUnavailable = errors.New("store unavailable")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
)
