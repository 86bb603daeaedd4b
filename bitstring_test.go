package asn1_test

import (
	"testing"

	"github.com/chaisql/asn1"
	"github.com/stretchr/testify/require"
)

func TestBitString(t *testing.T) {
	t.Run("zero value", func(t *testing.T) {
		var b asn1.BitString
		require.Equal(t, 0, b.Len())
		require.Empty(t, b.Bytes())
		require.Equal(t, "", b.String())
	})

	t.Run("append", func(t *testing.T) {
		b := asn1.NewBitString(true, false, true, true, false, false, false, false, true)
		require.Equal(t, 9, b.Len())
		require.Equal(t, []byte{0xB0, 0x80}, b.Bytes())
		require.Equal(t, "101100001", b.String())
		require.Equal(t, []bool{true, false, true, true, false, false, false, false, true}, b.Bits())
		require.True(t, b.At(8))
		require.False(t, b.At(7))
	})

	t.Run("from bytes", func(t *testing.T) {
		b := asn1.BitStringFromBytes([]byte{0xFF, 0xFF}, 12)
		require.Equal(t, 12, b.Len())
		require.Equal(t, []byte{0xFF, 0xF0}, b.Bytes())

		b = asn1.BitStringFromBytes([]byte{0xFF}, 20)
		require.Equal(t, 8, b.Len())

		b = asn1.BitStringFromBytes([]byte{0xFF}, -1)
		require.Equal(t, 0, b.Len())
	})

	t.Run("bytes are copied", func(t *testing.T) {
		data := []byte{0xA0}
		b := asn1.BitStringFromBytes(data, 3)
		data[0] = 0
		out := b.Bytes()
		out[0] = 0
		require.Equal(t, "101", b.String())
	})

	t.Run("equal", func(t *testing.T) {
		a := asn1.NewBitString(true, false)
		require.True(t, a.Equal(asn1.BitStringFromBytes([]byte{0x80}, 2)))
		require.False(t, a.Equal(asn1.NewBitString(true, false, false)))
		require.False(t, a.Equal(asn1.NewBitString(false, true)))
	})
}
