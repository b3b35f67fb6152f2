package acctnum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1234567890, "1234-5678-90"},
		{9999999999, "9999-9999-99"},
		{1000000000, "1000-0000-00"},
		{12345678, "1234-5678"},
		{1736899200123, "1736-8992-0012-3"},
		{42, "42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.n), "Format(%d)", tt.n)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1234-5678-90", 1234567890},
		{"1234567890", 1234567890},
		{" 9999-9999-99 ", 9999999999},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParse_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"   ",
		"abcd-efgh-ij",
		"1234 5678 90",
		"99999999999999999999",
	}
	for _, input := range badInputs {
		_, err := Parse(input)
		assert.Error(t, err, "expected error for input: %q", input)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, n := range []int64{Min, Max, 5555512345} {
		got, err := Parse(Format(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Min))
	assert.True(t, Valid(Max))
	assert.False(t, Valid(Min-1))
	assert.False(t, Valid(Max+1))
}
