package apperror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelWrapping(t *testing.T) {
	assert.ErrorIs(t, NotFound("chat session"), ErrNotFound)
	assert.EqualError(t, NotFound("chat session"), "chat session not found")

	assert.ErrorIs(t, AccessDenied("session"), ErrAccessDenied)
	assert.EqualError(t, AccessDenied("session"), "access denied to this session")

	v := Validation("start_date must be before end_date")
	assert.ErrorIs(t, v, ErrValidation)
	assert.EqualError(t, v, "start_date must be before end_date")
}

func TestAuthErrorUnwrapsBoth(t *testing.T) {
	cause := errors.New("invalid_grant")
	err := &AuthError{Message: "Invalid login credentials", Err: cause}

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Invalid login credentials: invalid_grant", err.Error())
	assert.ErrorIs(t, &AuthError{Message: "x"}, ErrUnauthorized)
}

func TestStoreWrapsOnce(t *testing.T) {
	assert.NoError(t, Store("journal.find", nil))

	cause := errors.New("connection reset")
	err := Store("journal.find", cause)
	assert.EqualError(t, err, "store journal.find: connection reset")
	assert.ErrorIs(t, err, cause)

	again := Store("outer", err)
	var se *StoreError
	assert.True(t, errors.As(again, &se))
	assert.Equal(t, "journal.find", se.Op)
}

func TestProfileGenerationError(t *testing.T) {
	cause := errors.New("unexpected token")
	err := &ProfileGenerationError{Reason: "invalid json", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "profile generation: invalid json: unexpected token", err.Error())
	assert.Equal(t, "profile generation: missing name", (&ProfileGenerationError{Reason: "missing name"}).Error())
}
