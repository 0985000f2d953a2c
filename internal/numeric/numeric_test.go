package numeric

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"125.000,00", "125000"},
		{"1.234.567,89", "1234567.89"},
		{"750000", "750000"},
		{"12,5", "12.5"},
		{"-1.500,25", "-1500.25"},
		{"(2.000,00)", "-2000"},
		{"  3.000,10 ", "3000.1"},
		{"1 234,00", "1234"},
		{"-", "0"},
		{"", "0"},
		{"   ", "0"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.raw)
		require.NoError(t, err, "Parse(%q)", tt.raw)
		assert.True(t, dec(tt.want).Equal(got), "Parse(%q) = %s, want %s", tt.raw, got, tt.want)
	}
}

func TestParse_Warning(t *testing.T) {
	for _, raw := range []string{"abc", "12,5,3", "TL 100", "1,2x"} {
		got, err := Parse(raw)
		require.Error(t, err, "Parse(%q) should warn", raw)

		var w *ParseWarning
		require.True(t, errors.As(err, &w))
		assert.Equal(t, raw, w.Raw)
		assert.True(t, got.IsZero(), "Parse(%q) should fall back to zero", raw)
		assert.True(t, Lenient(raw).IsZero())
	}
}

func TestIsPresent(t *testing.T) {
	assert.False(t, IsPresent(""))
	assert.False(t, IsPresent("-"))
	assert.False(t, IsPresent(" - "))
	assert.True(t, IsPresent("0"))
	assert.True(t, IsPresent("0,00"))
	assert.True(t, IsPresent("garbage"))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v    string
		want string
	}{
		{"0", "0,00"},
		{"5", "5,00"},
		{"999.5", "999,50"},
		{"1000", "1.000,00"},
		{"875000", "875.000,00"},
		{"1234567.891", "1.234.567,89"},
		{"-1500.25", "-1.500,25"},
		{"-100", "-100,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(dec(tt.v)), "Format(%s)", tt.v)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	// Every value with at most two decimals must survive Format then Parse.
	for cents := int64(-250000); cents <= 250000; cents += 997 {
		v := decimal.New(cents, -2)
		got, err := Parse(Format(v))
		require.NoError(t, err)
		assert.True(t, v.Equal(got), "round trip of %s gave %s", v, got)
	}

	big := dec("98765432109.87")
	got, err := Parse(Format(big))
	require.NoError(t, err)
	assert.True(t, big.Equal(got))
}

func TestParseFormatParseStable(t *testing.T) {
	for _, s := range []string{"125.000,00", "12,5", "-7,07", "1000000", "0,01"} {
		first := Lenient(s)
		again := Lenient(Format(first))
		assert.True(t, first.Equal(again), "parse(format(parse(%q)))", s)
	}
}
