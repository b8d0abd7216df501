package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Gangulr/finace/internal/errors"
)

// AssertAppError requires err to be an *AppError and checks its code.
func AssertAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	require.Error(t, err, "expected AppError with code %q", expectedCode)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code, "message: %s", appErr.Message)
	return appErr
}

// AssertAppErrorMessage checks the code and the client-facing message of err.
func AssertAppErrorMessage(t *testing.T, err error, expectedCode, expectedMessage string) {
	t.Helper()

	appErr := AssertAppError(t, err, expectedCode)
	assert.Equal(t, expectedMessage, appErr.Message)
}

// AssertNoError stops the test when err is set.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	require.NoError(t, err)
}
