package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDateISO(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"iso passthrough", "2024-06-16", "2024-06-16"},
		{"iso with time suffix", "2024-06-16T19:00:00", "2024-06-16"},
		{"dotted two digit year", "16.06.24", "2024-06-16"},
		{"dotted single digits", "1.7.24", "2024-07-01"},
		{"dotted four digit year", "16.06.2024", "2024-06-16"},
		{"two digit year pivot below 50", "01.01.49", "2049-01-01"},
		{"two digit year pivot above 50", "16.06.75", "1975-06-16"},
		{"impossible calendar date", "32.01.24", ""},
		{"month out of range", "01.13.24", ""},
		{"not a date", "abc", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDateISO(tt.input))
		})
	}
}

func TestParseNumber(t *testing.T) {
	v, ok := ParseNumber("2,5")
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)

	v, ok = ParseNumber("3")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	_, ok = ParseNumber("")
	assert.False(t, ok)

	_, ok = ParseNumber("abc")
	assert.False(t, ok)
}
