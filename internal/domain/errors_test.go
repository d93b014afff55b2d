package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("%w: order 7", ErrNotFound), http.StatusNotFound},
		{"conflict", ErrConflict, http.StatusConflict},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"token expired", ErrTokenExpired, http.StatusUnauthorized},
		{"token malformed", ErrTokenMalformed, http.StatusUnauthorized},
		{"token signature", ErrTokenSignature, http.StatusUnauthorized},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"validation", Validation("bad field"), http.StatusBadRequest},
		{"storage", Storage("users.find", errors.New("boom")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage("orders.find", cause)

	assert.True(t, IsStorage(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "orders.find")
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(Validation("price must be %d or more", 0)))
	assert.False(t, IsValidation(ErrNotFound))
	assert.False(t, IsValidation(nil))
}
