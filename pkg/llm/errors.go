package llm

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindAuth      ErrorKind = "auth"
	KindRateLimit ErrorKind = "rate_limit"
	KindMalformed ErrorKind = "malformed"
	KindTransport ErrorKind = "transport"
)

// CompletionError is the only error type a Completer returns. Callers treat
// it as a non-retryable failure of the current request.
type CompletionError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion (%s, %s): %v", e.Provider, e.Kind, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// NewCompletionError keeps an existing CompletionError untouched.
func NewCompletionError(provider string, kind ErrorKind, err error) error {
	var ce *CompletionError
	if errors.As(err, &ce) {
		return err
	}
	return &CompletionError{Provider: provider, Kind: kind, Err: err}
}

// KindFromStatus classifies an upstream HTTP status.
func KindFromStatus(status int) ErrorKind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	case status == 429:
		return KindRateLimit
	case status >= 200 && status < 300:
		return KindMalformed
	default:
		return KindTransport
	}
}
