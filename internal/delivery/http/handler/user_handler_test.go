package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPasswordFields(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected bool
	}{
		{name: "profile fields only", body: `{"name":"Jonas","email":"jonas@example.com"}`},
		{name: "password", body: `{"password":"pass1234"}`, expected: true},
		{name: "passwordConfirm", body: `{"passwordConfirm":"pass1234"}`, expected: true},
		{name: "passwordCurrent", body: `{"passwordCurrent":"pass1234"}`, expected: true},
		{name: "mixed", body: `{"name":"Jonas","password":"pass1234"}`, expected: true},
		{name: "not an object", body: `[1,2,3]`},
		{name: "empty", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, containsPasswordFields([]byte(tt.body)))
		})
	}
}
