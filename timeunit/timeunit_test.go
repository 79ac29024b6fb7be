package timeunit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evflow/eventflow/timeunit"
)

func TestParseNanos(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"plain_ms", "10ms", 10_000_000},
		{"spaced_ms", "10 ms", 10_000_000},
		{"micro_us_spelling", "1.5us", 1500},
		{"micro_sign_spelling", "1.5µs", 1500},
		{"seconds", "2s", 2_000_000_000},
		{"nanoseconds_passthrough", "200ns", 200},
		{"uppercase_unit", "5 MS", 5_000_000},
		{"fractional_ns_half_even_down", "0.5ns", 0}, // ties to even: 0 is even
		{"fractional_ns_half_even_up", "1.5ns", 2},   // ties to even: 2 is even
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := timeunit.ParseNanos(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseNanos_BadLiteral(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "ms", "10", "10 furlongs", "abc ms"} {
		_, err := timeunit.ParseNanos(in)
		require.Error(t, err)
		require.True(t, errors.Is(err, timeunit.ErrBadTimeLiteral), "input %q", in)
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	t.Parallel()
	require.Equal(t, int64(10), timeunit.Convert(10_000, timeunit.NS, timeunit.US))
	require.Equal(t, int64(10_000), timeunit.Convert(10, timeunit.US, timeunit.NS))
	require.Equal(t, int64(1), timeunit.Convert(1_000_000, timeunit.NS, timeunit.MS))
}
