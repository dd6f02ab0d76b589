package util

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidCommunityName(t *testing.T) {
	for _, name := range []string{"go", "red team", "a-very-long-community-name-over-30", "ünicode"} {
		assert.False(t, IsValidCommunityName(name), name)
	}
	for _, name := range []string{"gophers", "blue_team", "CTF-2026"} {
		assert.True(t, IsValidCommunityName(name), name)
	}
}

func TestValidateDTO(t *testing.T) {
	require.NoError(t, RegisterValidators())

	type form struct {
		Name string `validate:"community_name"`
		Bio  string `validate:"max=5"`
	}

	assert.NoError(t, ValidateDTO(&form{Name: "gophers", Bio: "hi"}))

	err := ValidateDTO(&form{Name: "x", Bio: "hi"})
	require.Error(t, err)
	assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "field Name failed rule community_name", err.Error())

	err = ValidateDTO(&form{Name: "gophers", Bio: "too long"})
	assert.Equal(t, &ValidationError{Field: "Bio", Tag: "max"}, err)
}
