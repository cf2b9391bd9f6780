package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := Validation("This status does not exist.")

	assert.True(t, Is(err, ErrValidation))
	assert.False(t, Is(err, ErrNotFound))

	wrapped := fmt.Errorf("query list: %w", err)
	assert.True(t, Is(wrapped, ErrValidation))
}

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Forbidden("x"), http.StatusForbidden},
		{Validation("x"), http.StatusBadRequest},
		{AlreadyExists("x"), http.StatusConflict},
		{InvalidCredentials("x"), http.StatusUnauthorized},
		{Internal("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestError_WrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, CodeInternal, "save entry")

	assert.Equal(t, "save entry: disk full", err.Error())
	assert.Equal(t, cause, Unwrap(err))

	detailed := ValidationWithDetails("bad", map[string]string{"page": "out of range"})
	assert.Equal(t, map[string]string{"page": "out of range"}, detailed.Details)
}
