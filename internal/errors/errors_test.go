package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/codedrill/internal/errors"
)

func TestHasCode_ThroughWrapping(t *testing.T) {
	base := errors.NewAuthenticationRequiredError("token expired")
	wrapped := fmt.Errorf("submit: %w", base)

	assert.True(t, errors.HasCode(wrapped, errors.ErrCodeAuthRequired))
	assert.False(t, errors.HasCode(wrapped, errors.ErrCodeTransportFailed))
	assert.False(t, errors.HasCode(stderrors.New("plain"), errors.ErrCodeAuthRequired))
}

func TestAppError_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := errors.NewTransportFailedError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 502, err.Status)
	assert.Contains(t, err.Error(), "SUBMISSION_TRANSPORT_FAILED")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAs(t *testing.T) {
	appErr, ok := errors.As(fmt.Errorf("outer: %w", errors.NewProblemNotFoundError(42)))
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeProblemNotFound, appErr.Code)
	assert.Equal(t, "problem 42 does not exist", appErr.Message)

	_, ok = errors.As(stderrors.New("x"))
	assert.False(t, ok)
}
