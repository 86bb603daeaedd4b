package asn1_test

import (
	"math/big"
	"testing"

	"github.com/chaisql/asn1"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	tests := []struct {
		name  string
		r     asn1.Range
		want  string
		in    []int64
		notIn []int64
	}{
		{"unbounded", asn1.Range{}, "MIN..MAX", []int64{-1 << 62, 0, 1 << 62}, nil},
		{"closed", asn1.ValueRange(0, 10).Value, "0..10", []int64{0, 5, 10}, []int64{-1, 11}},
		{"single value", asn1.FixedSize(8).Size, "8", []int64{8}, []int64{7, 9}},
		{"lower bound", asn1.MinValue(3).Value, "3..MAX", []int64{3, 1000}, []int64{2}},
		{"upper bound", asn1.MaxValue(-3).Value, "MIN..-3", []int64{-3, -1000}, []int64{-2}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, test.r.String())
			for _, x := range test.in {
				require.True(t, test.r.Contains(x), x)
				require.True(t, test.r.ContainsBig(big.NewInt(x)), x)
			}
			for _, x := range test.notIn {
				require.False(t, test.r.Contains(x), x)
				require.False(t, test.r.ContainsBig(big.NewInt(x)), x)
			}
		})
	}
}

func TestConstraintsOverride(t *testing.T) {
	typ := asn1.ValueRange(0, 100)
	typ.Size = asn1.SizeRange(1, 4).Size

	t.Run("empty field constraints", func(t *testing.T) {
		require.Equal(t, typ, typ.Override(asn1.NoConstraints))
	})

	t.Run("value", func(t *testing.T) {
		got := typ.Override(asn1.ValueRange(0, 10))
		require.Equal(t, asn1.ValueRange(0, 10).Value, got.Value)
		require.Equal(t, typ.Size, got.Size)
	})

	t.Run("size", func(t *testing.T) {
		got := typ.Override(asn1.FixedSize(2))
		require.Equal(t, typ.Value, got.Value)
		require.Equal(t, asn1.FixedSize(2).Size, got.Size)
	})

	t.Run("extensible", func(t *testing.T) {
		got := typ.Override(asn1.NoConstraints.WithExtensible())
		require.True(t, got.Extensible)
		require.False(t, typ.Extensible)
	})
}

func TestConstraintsCheck(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		c := asn1.ValueRange(0, 10)

		ext, err := c.CheckValue(big.NewInt(10))
		require.NoError(t, err)
		require.False(t, ext)

		_, err = c.CheckValue(big.NewInt(11))
		require.EqualError(t, err, "value 11 is not in range 0..10")

		ext, err = c.WithExtensible().CheckValue(big.NewInt(11))
		require.NoError(t, err)
		require.True(t, ext)
	})

	t.Run("big value", func(t *testing.T) {
		x, _ := new(big.Int).SetString("100000000000000000000", 10)
		_, err := asn1.MaxValue(1 << 62).CheckValue(x)
		require.Error(t, err)

		_, err = asn1.NoConstraints.CheckValue(x)
		require.NoError(t, err)
	})

	t.Run("size", func(t *testing.T) {
		c := asn1.SizeRange(1, 4)

		_, err := c.CheckSize(4)
		require.NoError(t, err)

		_, err = c.CheckSize(0)
		require.EqualError(t, err, "size 0 is not in range 1..4")

		ext, err := c.WithExtensible().CheckSize(5)
		require.NoError(t, err)
		require.True(t, ext)
	})
}
