// Package apperror holds the error taxonomy shared by services and the HTTP
// boundary. Services return these; serverutils maps them to stable codes.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
	ErrValidation   = errors.New("validation failed")
)

// Stable codes returned to clients.
const (
	CodeAuth              = "AUTH_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeAccessDenied      = "ACCESS_DENIED"
	CodeValidation        = "VALIDATION_ERROR"
	CodeStore             = "STORE_ERROR"
	CodeCompletion        = "COMPLETION_ERROR"
	CodeRateLimited       = "COMPLETION_RATE_LIMITED"
	CodeProfileGeneration = "PROFILE_GENERATION_ERROR"
	CodeInternal          = "INTERNAL_ERROR"
)

// NotFound wraps ErrNotFound with the missing resource name.
func NotFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// AccessDenied wraps ErrAccessDenied with the guarded resource name.
func AccessDenied(resource string) error {
	return fmt.Errorf("%w to this %s", ErrAccessDenied, resource)
}

// Validation wraps ErrValidation with a message that is safe to show.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return ErrValidation }

// AuthError is a rejection from the auth provider (bad credentials, expired
// refresh token, invalid bearer token).
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AuthError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUnauthorized, e.Err}
	}
	return []error{ErrUnauthorized}
}

// StoreError is any failure of the backing store, tagged with the operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError. A nil err stays nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// ProfileGenerationError means the completion came back but did not match the
// profile schema. Nothing is stored when this is returned.
type ProfileGenerationError struct {
	Reason string
	Err    error
}

func (e *ProfileGenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("profile generation: %s: %v", e.Reason, e.Err)
	}
	return "profile generation: " + e.Reason
}

func (e *ProfileGenerationError) Unwrap() error { return e.Err }
