// internal/models/profile_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmploymentType(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{name: "canonical salaried", input: "salaried", expected: EmploymentSalaried},
		{name: "mixed case salaried", input: "Salaried Employee", expected: EmploymentSalaried},
		{name: "canonical self-employed", input: "self-employed", expected: EmploymentSelfEmployed},
		{name: "self phrasing", input: "Self employed professional", expected: EmploymentSelfEmployed},
		{name: "business phrasing", input: "I run my own business", expected: EmploymentSelfEmployed},
		{name: "unknown", input: "student", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeEmploymentType(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestUserProfile_Validate(t *testing.T) {
	tests := []struct {
		name      string
		profile   UserProfile
		expectErr bool
	}{
		{
			name:    "valid profile",
			profile: UserProfile{Spending: 20000, Age: 30, Income: 60000, EmploymentType: "salaried", RewardType: "Cashback"},
		},
		{
			name:    "free-text employment normalizes",
			profile: UserProfile{Income: 60000, EmploymentType: "I have a business", RewardType: "Fuel"},
		},
		{
			name:      "unknown reward type",
			profile:   UserProfile{Income: 60000, EmploymentType: "salaried", RewardType: "Groceries"},
			expectErr: true,
		},
		{
			name:      "reward type is case sensitive",
			profile:   UserProfile{Income: 60000, EmploymentType: "salaried", RewardType: "cashback"},
			expectErr: true,
		},
		{
			name:      "invalid employment",
			profile:   UserProfile{Income: 60000, EmploymentType: "retired", RewardType: "Cashback"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUserProfile_ValidateNormalizesInPlace(t *testing.T) {
	profile := UserProfile{Income: 60000, EmploymentType: "I run a business", RewardType: "Travel"}

	require.NoError(t, profile.Validate())
	assert.Equal(t, EmploymentSelfEmployed, profile.EmploymentType)
}
