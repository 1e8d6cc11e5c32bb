package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct_CustomTags(t *testing.T) {
	type payload struct {
		Role       string `validate:"omitempty,user_role"`
		Difficulty string `validate:"omitempty,difficulty"`
		Name       string `validate:"omitempty,tour_name"`
	}

	tests := []struct {
		name    string
		input   payload
		wantErr bool
	}{
		{name: "all empty", input: payload{}},
		{name: "valid role", input: payload{Role: "lead-guide"}},
		{name: "invalid role", input: payload{Role: "superadmin"}, wantErr: true},
		{name: "valid difficulty", input: payload{Difficulty: "medium"}},
		{name: "invalid difficulty", input: payload{Difficulty: "extreme"}, wantErr: true},
		{name: "valid tour name", input: payload{Name: "The Forest Hiker"}},
		{name: "tour name with digits", input: payload{Name: "Tour 9"}, wantErr: true},
		{name: "tour name with symbols", input: payload{Name: "Hike & Bike"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jonas@example.com"))
	assert.True(t, IsValidEmail("  Jonas@Example.COM  "))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}
