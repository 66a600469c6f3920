package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email   string `validate:"required,email"`
	Subject string `validate:"required,min=3,max=10"`
	Kind    string `validate:"omitempty,oneof=lost found"`
}

func TestValidatePasses(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleRequest{Email: "asha@example.com", Subject: "wallet"})
	assert.NoError(t, err)
}

func TestValidateMissingRequired(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleRequest{})
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	msg := he.Message.(string)
	assert.Contains(t, msg, "Email is required")
	assert.Contains(t, msg, "Subject is required")
}

func TestValidateTagMessages(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleRequest{Email: "not-an-email", Subject: "ab", Kind: "stolen"})
	require.Error(t, err)
	he := err.(*echo.HTTPError)
	msg := he.Message.(string)
	assert.Contains(t, msg, "Email must be a valid email address")
	assert.Contains(t, msg, "Subject must be at least 3 characters")
	assert.Contains(t, msg, "Kind must be one of: lost found")
}
