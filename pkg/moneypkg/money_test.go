package moneypkg

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantUnits int64
		wantErr   error
	}{
		{name: "Whole", input: "1000", wantUnits: 1_000_000},
		{name: "ThreeDigits", input: "1234.567", wantUnits: 1_234_567},
		{name: "OneDigit", input: "0.5", wantUnits: 500},
		{name: "Negative", input: "-2.250", wantUnits: -2_250},
		{name: "Zero", input: "0", wantUnits: 0},
		{name: "TrailingZeros", input: "1.500000", wantUnits: 1_500},
		{name: "Garbage", input: "!@#$", wantErr: ErrMalformed},
		{name: "Empty", input: "", wantErr: ErrMalformed},
		{name: "TooPrecise", input: "1.0001", wantErr: ErrTooPrecise},
		{name: "Overflow", input: "9300000000000000000", wantErr: ErrOverflow},
		{name: "NegativeOverflow", input: "-9300000000000000000", wantErr: ErrOverflow},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			got, err := FromString(tc.input)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantUnits, got.Units())
		})
	}
}

func TestString(t *testing.T) {
	testCases := []struct {
		units int64
		want  string
	}{
		{units: 1_234_567, want: "1234.567"},
		{units: 500, want: "0.500"},
		{units: 0, want: "0.000"},
		{units: -500, want: "-0.500"},
		{units: -1_000_000, want: "-1000.000"},
		{units: 1, want: "0.001"},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.want, FromUnits(tc.units).String())
	}
}

func TestArithmetic(t *testing.T) {
	a := FromUnits(1_000_000)
	b := FromUnits(250_500)

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, "1250.500", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	require.Equal(t, "749.500", diff.String())

	require.Equal(t, "-1000.000", a.Neg().String())

	t.Run("AddOverflow", func(t *testing.T) {
		_, err := FromUnits(math.MaxInt64).Add(FromUnits(1))
		require.ErrorIs(t, err, ErrOverflow)

		_, err = FromUnits(math.MinInt64 + 1).Add(FromUnits(-2))
		require.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("SubOverflow", func(t *testing.T) {
		_, err := FromUnits(math.MaxInt64).Sub(FromUnits(-1))
		require.ErrorIs(t, err, ErrOverflow)
	})
}

func TestComparisons(t *testing.T) {
	small := FromUnits(100)
	big := FromUnits(200)

	require.Equal(t, -1, small.Cmp(big))
	require.Equal(t, 1, big.Cmp(small))
	require.Equal(t, 0, small.Cmp(FromUnits(100)))

	require.True(t, small.Equal(FromUnits(100)))
	require.False(t, small.Equal(big))

	require.True(t, small.IsPositive())
	require.False(t, small.IsNegative())
	require.True(t, small.Neg().IsNegative())
	require.True(t, FromUnits(0).IsZero())
}

func TestJSON(t *testing.T) {
	m, err := FromString("99.950")
	require.NoError(t, err)

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `"99.950"`, string(raw))

	var back Money
	require.NoError(t, json.Unmarshal(raw, &back))
	require.True(t, m.Equal(back))

	require.Error(t, json.Unmarshal([]byte(`"abc"`), &back))
}

func TestScan(t *testing.T) {
	var m Money

	require.NoError(t, m.Scan([]byte("12.345")))
	require.Equal(t, int64(12_345), m.Units())

	require.NoError(t, m.Scan("7.000"))
	require.Equal(t, int64(7_000), m.Units())

	require.Error(t, m.Scan(3.14))

	v, err := FromUnits(12_345).Value()
	require.NoError(t, err)
	require.Equal(t, "12.345", v)
}
