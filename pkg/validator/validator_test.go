package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

func TestCustomValidator(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(&signupForm{Email: "a@b.com", Name: "A"}))

	err := v.Validate(&signupForm{Email: "nope"})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "name is required", errs["name"])
	assert.Equal(t, "email must be a valid email address", v.FirstError(err))
}
