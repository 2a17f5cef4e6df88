package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorToHTTPStatus(t *testing.T) {
	cases := map[string]int{
		ErrNotFound:           http.StatusNotFound,
		ErrDuplicate:          http.StatusBadRequest,
		ErrInvalidInput:       http.StatusBadRequest,
		ErrUnauthorized:       http.StatusUnauthorized,
		ErrInvalidToken:       http.StatusUnauthorized,
		ErrInvalidCredentials: http.StatusUnauthorized,
		ErrForbidden:          http.StatusForbidden,
		ErrDataIntegrity:      http.StatusInternalServerError,
		"something_else":      http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, AppErrorToHTTPStatus(code), code)
	}
}

func TestIsErrorCodeUnwraps(t *testing.T) {
	err := fmt.Errorf("loading: %w", NewNotFoundError("Post"))
	assert.True(t, IsErrorCode(err, ErrNotFound))
	assert.False(t, IsErrorCode(err, ErrForbidden))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrNotFound))
}

func TestAppErrorMessageIncludesOrigin(t *testing.T) {
	err := NewAppError(ErrDatabase, "failed to save snapshot", errors.New("disk full"))
	assert.Equal(t, "failed to save snapshot: disk full", err.Error())
	assert.True(t, IsAuthError(NewForbiddenError()))
}
