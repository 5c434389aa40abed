package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10.00", "10"},
		{"£10.00", "10"},
		{"$5.25", "5.25"},
		{"€1,250.50", "1250.5"},
		{"10.00 GBP", "10"},
		{"GBP 10.00", "10"},
		{"  42  ", "42"},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, tt.input)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s -> %s", tt.input, got)
	}
}

func TestParseAmountInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "10.0.0"} {
		_, err := ParseAmount(input)
		assert.Error(t, err, input)
	}
}

func TestFormatGBPRoundTrip(t *testing.T) {
	for _, raw := range []string{"0", "10", "1250.5", "0.01", "99999.99"} {
		amount := decimal.RequireFromString(raw)

		formatted := FormatGBP(amount)
		assert.Equal(t, "£"+amount.StringFixed(2), formatted)

		parsed, err := ParseGBP(formatted)
		require.NoError(t, err)
		assert.True(t, parsed.Equal(amount), "%s -> %s -> %s", raw, formatted, parsed)
	}
}

func TestFormatGBPZero(t *testing.T) {
	assert.Equal(t, "£0.00", FormatGBP(decimal.Zero))
}
