package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name" validate:"required,min=2"`
	Role   string `json:"role" validate:"omitempty,is-user-role"`
	Status string `json:"status" validate:"omitempty,is-recommendation-status"`
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Email: "not-an-email", Name: "x"})
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)

	// Keys come from json tags, not Go field names.
	assert.Contains(t, validationErr.Errors, "email")
	assert.Contains(t, validationErr.Errors, "name")
	assert.NotContains(t, validationErr.Errors, "Email")
}

func TestValidateValid(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Email: "user@example.com", Name: "Jo", Role: "customer"})
	assert.NoError(t, err)
}

func TestUserRoleRule(t *testing.T) {
	v := New()

	for _, role := range []string{"customer", "supplier", "admin", ""} {
		err := v.Validate(&sampleRequest{Email: "user@example.com", Name: "Jo", Role: role})
		assert.NoError(t, err, "role %q should pass", role)
	}

	err := v.Validate(&sampleRequest{Email: "user@example.com", Name: "Jo", Role: "superuser"})
	require.Error(t, err)
	validationErr := err.(*ValidationError)
	assert.Contains(t, validationErr.Errors, "role")
}

func TestRecommendationStatusRule(t *testing.T) {
	v := New()

	for _, status := range []string{"active", "dismissed", "converted", "expired", ""} {
		err := v.Validate(&sampleRequest{Email: "user@example.com", Name: "Jo", Status: status})
		assert.NoError(t, err, "status %q should pass", status)
	}

	err := v.Validate(&sampleRequest{Email: "user@example.com", Name: "Jo", Status: "archived"})
	assert.Error(t, err)
}
