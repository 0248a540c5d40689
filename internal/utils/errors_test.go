package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "op message and cause",
			err:      &AppError{Op: "AuthService.Login", Message: "login failed", Err: cause},
			expected: "AuthService.Login: login failed: boom",
		},
		{
			name:     "op and message",
			err:      &AppError{Op: "AuthService.Login", Message: "login failed"},
			expected: "AuthService.Login: login failed",
		},
		{
			name:     "op and cause",
			err:      &AppError{Op: "AuthService.Login", Err: cause},
			expected: "AuthService.Login: boom",
		},
		{
			name:     "message only",
			err:      &AppError{Message: "login failed"},
			expected: "login failed",
		},
		{
			name:     "empty",
			err:      &AppError{},
			expected: "error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", E(CodeInvalidArgument, "op", "bad", nil), http.StatusBadRequest},
		{"conflict answers 400", E(CodeConflict, "op", "taken", nil), http.StatusBadRequest},
		{"extraction", E(CodeExtraction, "op", "scanned", nil), http.StatusBadRequest},
		{"auth", E(CodeUnauthorized, "op", "nope", nil), http.StatusUnauthorized},
		{"not found", E(CodeNotFound, "op", "missing", nil), http.StatusNotFound},
		{"provider", E(CodeProvider, "op", "quota", nil), http.StatusInternalServerError},
		{"parse", E(CodeParse, "op", "retry", nil), http.StatusInternalServerError},
		{"store", E(CodeStore, "op", "db", nil), http.StatusInternalServerError},
		{"bare sentinel", fmt.Errorf("wrap: %w", ErrNotFound), http.StatusNotFound},
		{"plain error", errors.New("x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestIsCodeAndSafeMessage(t *testing.T) {
	err := fmt.Errorf("outer: %w", E(CodeConflict, "op", "Username already exists.", ErrConflict))

	assert.True(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.Equal(t, CodeConflict, CodeOf(err))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "Username already exists.", SafeMessage(err, "fallback"))
	assert.Equal(t, "fallback", SafeMessage(errors.New("raw"), "fallback"))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("raw")))
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
	assert.False(t, CheckPassword("", "correct horse"))
}
