package stopwatch

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00.00"},
		{9, "00:00.00"},
		{10, "00:00.01"},
		{599, "00:00.59"},
		{1000, "00:01.00"},
		{1500, "00:01.50"},
		{59_990, "00:59.99"},
		{60_000, "01:00.00"},
		{61_000, "01:01.00"},
		{3_599_990, "59:59.99"},
		{5_999_990, "99:59.99"},
		{6_000_000, "100:00.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.ms))
		})
	}
}

func TestFormat_Shape(t *testing.T) {
	shape := regexp.MustCompile(`^\d{2,}:\d{2}\.\d{2}$`)

	for ms := int64(0); ms < 200_000; ms += 7 {
		require.Regexp(t, shape, Format(ms), "ms=%d", ms)
	}
	assert.Regexp(t, shape, Format(1<<40))
}

func TestFormat_NegativePanics(t *testing.T) {
	assert.Panics(t, func() { Format(-10) })
}

func TestParse(t *testing.T) {
	got, err := Parse("01:01.00")
	require.NoError(t, err)
	assert.Equal(t, int64(61_000), got)

	got, err = Parse("100:00.50")
	require.NoError(t, err)
	assert.Equal(t, int64(6_000_500), got)
}

func TestParse_RoundTripAtCentiseconds(t *testing.T) {
	for _, ms := range []int64{0, 10, 590, 599, 61_000, 3_599_999} {
		got, err := Parse(Format(ms))
		require.NoError(t, err)
		assert.Equal(t, ms-ms%10, got, "ms=%d", ms)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "1:00.00", "00:00", "00:60.00", "aa:bb.cc", "00:00.000", "153722867280913:00.00"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)

			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
			assert.Equal(t, in, pe.Input)
		})
	}
}

func TestParse_LargestMinutes(t *testing.T) {
	ms, err := Parse(fmt.Sprintf("%d:59.99", maxMinutes))
	require.NoError(t, err)
	assert.Equal(t, int64(maxMinutes*60000+59990), ms)
	assert.Positive(t, ms)

	_, err = Parse(fmt.Sprintf("%d:00.00", maxMinutes+1))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "minutes out of range", pe.Reason)
}
