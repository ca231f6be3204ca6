package numeric_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"geprices/internal/numeric"
)

func TestParseAbbreviated(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
	}{
		{"1.2k", 1200},
		{"3M", 3_000_000},
		{"250B", 2.5e11},
		{"K", 1000},
		{"m", 1_000_000},
		{"b", 1_000_000_000},
		{"1,234", 1234},
		{"12.5", 12.5},
		{" 2.2m ", 2_200_000},
		{"-4.1k", -4100},
		{"+7", 7},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			got, err := numeric.ParseAbbreviated(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseAbbreviated_ErrParse(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"abc", "", "1.2.3k", "k1"} {
		_, err := numeric.ParseAbbreviated(in)
		require.ErrorIsf(t, err, numeric.ErrParse, "input %q", in)
	}
}

func TestNormalize_PassThrough(t *testing.T) {
	t.Parallel()

	got, err := numeric.Normalize(42)
	require.NoError(t, err)
	require.Equal(t, 42.0, got)

	got, err = numeric.Normalize(12.75)
	require.NoError(t, err)
	require.Equal(t, 12.75, got)

	got, err = numeric.Normalize(json.Number("1.5k"))
	require.NoError(t, err)
	require.Equal(t, 1500.0, got)

	got, err = numeric.Normalize("3M")
	require.NoError(t, err)
	require.Equal(t, 3_000_000.0, got)

	_, err = numeric.Normalize(true)
	require.ErrorIs(t, err, numeric.ErrParse)
}

func TestParsePercent(t *testing.T) {
	t.Parallel()

	got, err := numeric.ParsePercent("-32.0%")
	require.NoError(t, err)
	require.Equal(t, -32.0, got)

	got, err = numeric.ParsePercent("+1.0%")
	require.NoError(t, err)
	require.Equal(t, 1.0, got)

	_, err = numeric.ParsePercent("up a lot")
	require.ErrorIs(t, err, numeric.ErrParse)
}
