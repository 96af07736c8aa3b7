package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("row not found")
	appErr := ErrNotFound(cause)

	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.ErrorIs(t, appErr, cause)
}

func TestAsAppError(t *testing.T) {
	appErr := NewUnauthorizedError("nope")

	resolved, ok := AsAppError(appErr)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, resolved.HTTPCode)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestInternalErrorMasksNothingByItself(t *testing.T) {
	cause := errors.New("pq: connection refused")
	appErr := InternalError(cause)

	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
	assert.Equal(t, "Internal server error", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
}

func TestMarshalJSONHidesInternals(t *testing.T) {
	appErr := Wrap(errors.New("secret detail"), CodeConflict, "orders", "Conflict", http.StatusConflict)

	raw, err := appErr.MarshalJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret detail")
	assert.Contains(t, string(raw), "Conflict")
}

func TestPredeclaredErrors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.HTTPCode)
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidToken.HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrEmailAlreadyExists.HTTPCode)
	assert.Equal(t, http.StatusForbidden, ErrUserSuspended.HTTPCode)
	assert.Equal(t, http.StatusNotFound, ErrTemplateNotFound.HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrInsufficientStock.HTTPCode)
}

func TestInvalidStatusFactory(t *testing.T) {
	appErr := ErrInvalidStatus("orders", "cannot ship a cancelled order")
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
	assert.Equal(t, CodeInvalidStatus, appErr.Code)
	assert.Equal(t, "orders", appErr.Domain)
}
