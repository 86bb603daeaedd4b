package encoding_test

import (
	"math/big"
	"testing"

	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/internal/encoding"
	"github.com/stretchr/testify/require"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		tag         asn1.Tag
		constructed bool
		want        []byte
	}{
		{asn1.TagBoolean, false, []byte{0x01}},
		{asn1.TagSequence, true, []byte{0x30}},
		{asn1.ContextTag(0), true, []byte{0xA0}},
		{asn1.ApplicationTag(3), false, []byte{0x43}},
		{asn1.PrivateTag(30), false, []byte{0xDE}},
		{asn1.ContextTag(31), false, []byte{0x9F, 0x1F}},
		{asn1.ApplicationTag(201), true, []byte{0x7F, 0x81, 0x49}},
	}

	for _, test := range tests {
		t.Run(test.tag.String(), func(t *testing.T) {
			got := encoding.EncodeIdentifier(nil, test.tag, test.constructed)
			require.Equal(t, test.want, got)

			id, n, err := encoding.DecodeIdentifier(got)
			require.NoError(t, err)
			require.Equal(t, len(got), n)
			require.Equal(t, test.tag, id.Tag)
			require.Equal(t, test.constructed, id.Constructed)
		})
	}

	t.Run("truncated", func(t *testing.T) {
		_, _, err := encoding.DecodeIdentifier([]byte{0x9F, 0x81})
		require.ErrorIs(t, err, encoding.ErrTruncated)
	})
}

func TestLength(t *testing.T) {
	tests := []struct {
		l    int
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7F}},
		{128, []byte{0x81, 0x80}},
		{256, []byte{0x82, 0x01, 0x00}},
		{65536, []byte{0x83, 0x01, 0x00, 0x00}},
	}

	for _, test := range tests {
		got := encoding.EncodeLength(nil, test.l)
		require.Equal(t, test.want, got)

		l, indef, n, err := encoding.DecodeLength(got)
		require.NoError(t, err)
		require.False(t, indef)
		require.Equal(t, len(got), n)
		require.Equal(t, test.l, l)
	}

	t.Run("indefinite", func(t *testing.T) {
		l, indef, n, err := encoding.DecodeLength([]byte{0x80})
		require.NoError(t, err)
		require.True(t, indef)
		require.Equal(t, -1, l)
		require.Equal(t, 1, n)
	})

	t.Run("non minimal", func(t *testing.T) {
		tests := []struct {
			name string
			b    []byte
			want int
		}{
			{"long form for short length", []byte{0x81, 0x05}, 5},
			{"leading zero", []byte{0x82, 0x00, 0x80}, 128},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				l, indef, n, err := encoding.DecodeLength(test.b)
				require.NoError(t, err)
				require.False(t, indef)
				require.Equal(t, len(test.b), n)
				require.Equal(t, test.want, l)

				h, _, err := encoding.DecodeHeader(append([]byte{0x04}, test.b...))
				require.NoError(t, err)
				require.True(t, h.NonMinimal)
			})
		}

		h, _, err := encoding.DecodeHeader([]byte{0x04, 0x81, 0x80})
		require.NoError(t, err)
		require.False(t, h.NonMinimal)
	})
}

func TestInteger(t *testing.T) {
	tests := []struct {
		x    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x00, 0x80}},
		{256, []byte{0x01, 0x00}},
		{-1, []byte{0xFF}},
		{-128, []byte{0x80}},
		{-129, []byte{0xFF, 0x7F}},
		{-1235352, []byte{0xED, 0x26, 0x68}},
	}

	for _, test := range tests {
		got := encoding.EncodeInteger(nil, big.NewInt(test.x))
		require.Equal(t, test.want, got, "encoding %d", test.x)

		x, err := encoding.DecodeInteger(got)
		require.NoError(t, err)
		require.Equal(t, test.x, x.Int64())
	}

	_, err := encoding.DecodeInteger([]byte{0x00, 0x01})
	require.ErrorIs(t, err, encoding.ErrNonMinimal)
}

func TestBase128(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 113549, 1 << 40} {
		b := encoding.EncodeBase128(nil, v)
		got, n, err := encoding.DecodeBase128(b)
		require.NoError(t, err)
		require.Equal(t, len(b), n)
		require.Equal(t, v, got)
	}

	require.Equal(t, []byte{0x86, 0xF7, 0x0D}, encoding.EncodeBase128(nil, 113549))
}

func TestSkip(t *testing.T) {
	// SEQUENCE { INTEGER 5 } followed by garbage
	b := []byte{0x30, 0x03, 0x02, 0x01, 0x05, 0xFF}
	n, err := encoding.Skip(b)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	// indefinite length
	b = []byte{0x30, 0x80, 0x02, 0x01, 0x05, 0x00, 0x00, 0xFF}
	n, err = encoding.Skip(b)
	require.NoError(t, err)
	require.Equal(t, 7, n)

	_, err = encoding.Skip([]byte{0x30, 0x03, 0x02})
	require.ErrorIs(t, err, encoding.ErrTruncated)
}
