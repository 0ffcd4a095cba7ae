package vin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmoralesv/vin-tracker/internal/vin"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase with letter o",
			input:    "wba3a5c5odfooo001",
			expected: "WBA3A5C50DF000001",
		},
		{
			name:     "already canonical",
			input:    "WBA3A5C50DF000001",
			expected: "WBA3A5C50DF000001",
		},
		{
			name:     "mixed case",
			input:    "1hgCm82633a004352",
			expected: "1HGCM82633A004352",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, vin.Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"wba3a5c5odfooo001", "o0o0o0o0o0o0o0o0o", "1HGCM82633A004352"}
	for _, in := range inputs {
		once := vin.Normalize(in)
		assert.Equal(t, once, vin.Normalize(once))
	}
}

func TestValidLength(t *testing.T) {
	assert.True(t, vin.ValidLength("wba3a5c5odfooo001"))
	assert.True(t, vin.ValidLength("1HGCM82633A004352"))
	assert.False(t, vin.ValidLength("1HGCM82633A00435"))
	assert.False(t, vin.ValidLength("1HGCM82633A0043521"))
	assert.False(t, vin.ValidLength(""))
}
