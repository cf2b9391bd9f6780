package validation_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/mylists/mylists-server/internal/errors"
	"github.com/mylists/mylists-server/internal/validation"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=15,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

type labelRequest struct {
	MediaType string `json:"media_type" validate:"required,mediatype"`
	Label     string `json:"label" validate:"label"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(registerRequest{Username: "john_doe", Email: "john@example.com", Password: "password123"}))
	assert.NoError(t, v.Validate(labelRequest{MediaType: "anime", Label: "Rewatch 2024"}))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       any
		wantField string
	}{
		{"missing username", registerRequest{Email: "a@b.co", Password: "password123"}, "username"},
		{"username with spaces", registerRequest{Username: "john doe", Email: "a@b.co", Password: "password123"}, "username"},
		{"invalid email", registerRequest{Username: "john", Email: "not-an-email", Password: "password123"}, "email"},
		{"password too short", registerRequest{Username: "john", Email: "a@b.co", Password: "short"}, "password"},
		{"unknown media type", labelRequest{MediaType: "podcasts", Label: "x"}, "media_type"},
		{"blank label", labelRequest{MediaType: "books", Label: ""}, "label"},
		{"padded label", labelRequest{MediaType: "books", Label: " x "}, "label"},
		{"long label", labelRequest{MediaType: "books", Label: strings.Repeat("a", 65)}, "label"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(registerRequest{Username: "john", Password: "password123"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details := domainErr.Details.(map[string]string)
	assert.Equal(t, "is required", details["email"])
	assert.NotContains(t, details, "Email")
}
