package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₩0"},
		{"1000", "₩1,000"},
		{"1234567", "₩1,234,567"},
		{"999.6", "₩1,000"},
		{"-50000", "-₩50,000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "12,345", FormatCount(12345))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"local date time", "2024-03-01T09:05:00", "2024-03-01 09:05"},
		{"fractional seconds", "2024-03-01T09:05:00.123456", "2024-03-01 09:05"},
		{"rfc3339", "2024-03-01T09:05:00Z", "2024-03-01 09:05"},
		{"empty", "", Placeholder},
		{"garbage kept", "yesterday", "yesterday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestParseID(t *testing.T) {
	id, ok := ParseID(" 42 ")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, ok := ParseID(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseNonNegative(t *testing.T) {
	assert.Equal(t, 3, ParseNonNegative("3", 0))
	assert.Equal(t, 0, ParseNonNegative("-2", 0))
	assert.Equal(t, 7, ParseNonNegative("x", 7))
}

func TestNormalizeAccountNumber(t *testing.T) {
	assert.Equal(t, "1002-33", NormalizeAccountNumber("  1002-33\t"))
}
