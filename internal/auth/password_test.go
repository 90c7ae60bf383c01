package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword_Valid(t *testing.T) {
	valid := []string{
		"Abcdef1!",
		"StrongPass123!",
		"Complex#Secret9",
		`Quoted"Pass1x`,
		"Spaced Pass1,",
	}

	for _, password := range valid {
		got, err := ValidatePassword(password)
		assert.NoError(t, err, "password %q should pass", password)
		assert.Equal(t, password, got, "candidate must be returned unchanged")
	}
}

func TestValidatePassword_FirstFailingRule(t *testing.T) {
	tests := []struct {
		name     string
		password string
		rule     string
	}{
		{name: "too short", password: "Ab1!", rule: "length"},
		{name: "no uppercase", password: "abcdefg1!", rule: "uppercase"},
		{name: "no lowercase", password: "ABCDEFG1!", rule: "lowercase"},
		{name: "no digit", password: "Abcdefgh!", rule: "digit"},
		{name: "no special", password: "Abcdefgh1", rule: "special"},
		{name: "empty", password: "", rule: "length"},
		{name: "short reported before missing classes", password: "a", rule: "length"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidatePassword(tc.password)
			require.Error(t, err)

			var policyErr *PolicyError
			require.True(t, errors.As(err, &policyErr))
			assert.Equal(t, tc.rule, policyErr.Rule)
			assert.NotEmpty(t, policyErr.Message)
		})
	}
}

func TestValidatePassword_SymbolOutsideSet(t *testing.T) {
	// Underscore and dash are not in the allowed symbol set.
	_, err := ValidatePassword("Abcdefg1_")
	require.Error(t, err)

	var policyErr *PolicyError
	require.True(t, errors.As(err, &policyErr))
	assert.Equal(t, "special", policyErr.Rule)
}
