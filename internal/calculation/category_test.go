package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

func TestValidatePAN(t *testing.T) {
	tests := []struct {
		name     string
		pan      string
		expected bool
	}{
		{"Valid individual", "ABCPD1234E", true},
		{"Lower case accepted", "abcpd1234e", true},
		{"Surrounding space accepted", "  ABCPD1234E ", true},
		{"Too short", "ABCPD1234", false},
		{"Too long", "ABCPD1234EF", false},
		{"Digit in letter block", "AB1PD1234E", false},
		{"Letter in digit block", "ABCPD12X4E", false},
		{"Empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidatePAN(tt.pan))
		})
	}
}

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		name         string
		pan          string
		panAvailable bool
		declared     domain.Category
		expected     domain.Category
		description  string
	}{
		{
			name:         "Person PAN",
			pan:          "ABCPD1234E",
			panAvailable: true,
			declared:     domain.CategoryCompany,
			expected:     domain.CategoryIndividual,
			description:  "4th character P overrides the declared category",
		},
		{
			name:         "HUF PAN",
			pan:          "ABCHD1234E",
			panAvailable: true,
			declared:     domain.CategoryCompany,
			expected:     domain.CategoryIndividual,
			description:  "H is a Hindu undivided family",
		},
		{
			name:         "Company PAN",
			pan:          "ABCCD1234E",
			panAvailable: true,
			declared:     domain.CategoryIndividual,
			expected:     domain.CategoryCompany,
			description:  "C is a company",
		},
		{
			name:         "Trust PAN",
			pan:          "abctd1234e",
			panAvailable: true,
			declared:     domain.CategoryIndividual,
			expected:     domain.CategoryCompany,
			description:  "Lower case PAN is normalised before lookup",
		},
		{
			name:         "Unmapped holder type",
			pan:          "ABCKD1234E",
			panAvailable: true,
			declared:     domain.CategoryCompany,
			expected:     domain.CategoryCompany,
			description:  "K has no mapping so the declared category stands",
		},
		{
			name:         "PAN not available",
			pan:          "ABCCD1234E",
			panAvailable: false,
			declared:     domain.CategoryIndividual,
			expected:     domain.CategoryIndividual,
			description:  "Declared category returned unchanged",
		},
		{
			name:         "Malformed PAN",
			pan:          "ABCC1234",
			panAvailable: true,
			declared:     "Partnership firm",
			expected:     "Partnership firm",
			description:  "Declared text is returned as given",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCategory(tt.pan, tt.panAvailable, tt.declared)
			assert.Equal(t, tt.expected, got, tt.description)
		})
	}
}

func TestEffectivePANAvailable(t *testing.T) {
	assert.True(t, EffectivePANAvailable("ABCPD1234E", true))
	assert.False(t, EffectivePANAvailable("ABCPD1234E", false))
	assert.False(t, EffectivePANAvailable("BAD", true), "malformed PAN is treated as no PAN")
}
