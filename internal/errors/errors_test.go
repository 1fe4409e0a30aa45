package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "booking not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("listing not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "listing not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestValidationError_CarriesDetails(t *testing.T) {
	err := NewValidationError("invalid booking request",
		ValidationDetail{Field: "date", Message: "date must be in YYYY-MM-DD format"},
		ValidationDetail{Field: "items", Message: "items must not be empty"},
	)

	assert.Equal(t, "invalid booking request", err.Error())
	assert.Len(t, err.Details, 2)
	assert.Equal(t, "date", err.Details[0].Field)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Len(t, ve.Details, 2)
}

func TestValidationError_NoDetails(t *testing.T) {
	err := NewValidationError("terms must be accepted")
	assert.Empty(t, err.Details)
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("booking already processing")

	conflictErr, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "booking already processing", conflictErr.Message)

	_, ok = IsConflictError(errors.New("plain"))
	assert.False(t, ok)
}

func TestForbiddenError(t *testing.T) {
	err := NewForbiddenError("booking belongs to another user")

	forbiddenErr, ok := IsForbiddenError(err)
	assert.True(t, ok)
	assert.Equal(t, "booking belongs to another user", forbiddenErr.Message)
}

func TestUnauthorizedError(t *testing.T) {
	err := NewUnauthorizedError("invalid or expired token")

	unauthorizedErr, ok := IsUnauthorizedError(err)
	assert.True(t, ok)
	assert.Equal(t, "invalid or expired token", unauthorizedErr.Message)
}

func TestGatewayError_WithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewGatewayError("charge request failed", "NETWORK", cause)

	assert.Equal(t, "charge request failed: connection refused", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	gatewayErr, ok := IsGatewayError(err)
	assert.True(t, ok)
	assert.Equal(t, "NETWORK", gatewayErr.Code)
}

func TestGatewayError_WithoutCause(t *testing.T) {
	err := NewGatewayError("card declined", "HTTP_402", nil)

	assert.Equal(t, "card declined", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestDeadlockError(t *testing.T) {
	err := NewDeadlockError("deadlock detected persisting booking")

	deadlockErr, ok := IsDeadlockError(err)
	assert.True(t, ok)
	assert.Equal(t, "deadlock detected persisting booking", deadlockErr.Message)
}

func TestInternalError_WithCause(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := NewInternalError("persisting booking", cause)

	assert.Equal(t, "persisting booking: driver: bad connection", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	internalErr, ok := IsInternalError(err)
	assert.True(t, ok)
	assert.Equal(t, "persisting booking", internalErr.Message)
}

func TestInternalError_WithoutCause(t *testing.T) {
	err := NewInternalError("unexpected state", nil)
	assert.Equal(t, "unexpected state", err.Error())
}
