package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(value string) *string { return &value }

func TestNormalizeOrderWeek(t *testing.T) {
	testCases := []struct {
		name     string
		input    *string
		expected *string
	}{
		{name: "nil stays nil", input: nil, expected: nil},
		{name: "blank becomes nil", input: strPtr("   "), expected: nil},
		{name: "uppercased", input: strPtr("s12"), expected: strPtr("S12")},
		{name: "trimmed and uppercased", input: strPtr("  s3 "), expected: strPtr("S3")},
		{name: "already canonical", input: strPtr("S45"), expected: strPtr("S45")},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, NormalizeOrderWeek(testCase.input))
		})
	}
}

func TestNormalizeFilterDimensions(t *testing.T) {
	testCases := []struct {
		name       string
		input      *string
		filterType string
		expected   *string
	}{
		{name: "nil stays nil", input: nil, filterType: "standard", expected: nil},
		{name: "empty stays nil", input: strPtr(""), filterType: "standard", expected: nil},
		{
			name:       "three numbers canonicalized",
			input:      strPtr("592x592x48 mm"),
			filterType: "standard",
			expected:   strPtr("592 x 592 x 48"),
		},
		{
			name:       "decimal numbers kept verbatim",
			input:      strPtr("59,2 / 59.2 / 4,8"),
			filterType: "standard",
			expected:   strPtr("59,2 x 59.2 x 4,8"),
		},
		{
			name:       "extra numbers ignored",
			input:      strPtr("592 592 48 25"),
			filterType: "standard",
			expected:   strPtr("592 x 592 x 48"),
		},
		{
			name:       "two numbers fall back to trimmed input",
			input:      strPtr("  592x592  "),
			filterType: "standard",
			expected:   strPtr("592x592"),
		},
		{
			name:       "sewn on wire uses two numbers",
			input:      strPtr("592x592x48"),
			filterType: FilterTypeCousuSurFil,
			expected:   strPtr("592 x 592"),
		},
		{
			name:       "sewn on wire with one number falls back",
			input:      strPtr(" 592 "),
			filterType: FilterTypeCousuSurFil,
			expected:   strPtr("592"),
		},
		{
			name:       "no numbers falls back to trimmed input",
			input:      strPtr(" sur mesure "),
			filterType: "standard",
			expected:   strPtr("sur mesure"),
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, NormalizeFilterDimensions(testCase.input, testCase.filterType))
		})
	}
}
