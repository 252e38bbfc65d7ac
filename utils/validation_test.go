package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCurrency(t *testing.T) {
	assert.NoError(t, ValidateCurrency("INR"))
	assert.NoError(t, ValidateCurrency("USD"))
	for _, bad := range []string{"", "inr", "RUPEE", "IN", "I1R"} {
		assert.Error(t, ValidateCurrency(bad), bad)
	}
}

func TestValidateRequiredText(t *testing.T) {
	var errs FieldValidationErrors
	assert.Equal(t, "Asha", ValidateRequiredText(&errs, "name", "  Asha  ", 10))
	assert.NoError(t, errs.Err())

	ValidateRequiredText(&errs, "name", "   ", 10)
	ValidateRequiredText(&errs, "message", "chai chai chai", 4)
	assert.Len(t, errs, 2)
	assert.EqualError(t, errs.Err(), "name: is required; message: must be at most 4 characters")
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "chai", TruncateRunes("chai", 10))
	assert.Equal(t, "चा", TruncateRunes("चाय", 2))
	assert.Equal(t, "", TruncateRunes("abc", 0))
}
