package asn1_test

import (
	"testing"

	"github.com/chaisql/asn1"
	"github.com/stretchr/testify/require"
)

func TestTagString(t *testing.T) {
	tests := []struct {
		tag  asn1.Tag
		want string
	}{
		{asn1.TagInteger, "[UNIVERSAL 2]"},
		{asn1.ContextTag(0), "[0]"},
		{asn1.ApplicationTag(3), "[APPLICATION 3]"},
		{asn1.PrivateTag(42), "[PRIVATE 42]"},
		{asn1.Tag{Class: 7, Value: 1}, "[Class(7) 1]"},
	}

	for _, test := range tests {
		t.Run(test.want, func(t *testing.T) {
			require.Equal(t, test.want, test.tag.String())
		})
	}
}

func TestTagLess(t *testing.T) {
	tags := []asn1.Tag{
		asn1.TagBoolean,
		asn1.TagInteger,
		asn1.TagSet,
		asn1.ApplicationTag(0),
		asn1.ApplicationTag(1),
		asn1.ContextTag(0),
		asn1.ContextTag(30),
		asn1.PrivateTag(0),
	}

	for i := range tags {
		for j := range tags {
			require.Equal(t, i < j, tags[i].Less(tags[j]), "%s < %s", tags[i], tags[j])
		}
	}
}

func TestTagZero(t *testing.T) {
	require.True(t, asn1.Tag{}.IsZero())
	require.True(t, asn1.TagChoice.IsZero())
	require.False(t, asn1.ContextTag(0).IsZero())
	require.Equal(t, asn1.TagEOC, asn1.Any{}.ASN1Tag())
}

func TestCodecString(t *testing.T) {
	require.Equal(t, "ber", asn1.CodecBER.String())
	require.Equal(t, "der", asn1.CodecDER.String())
	require.Equal(t, "xer", asn1.CodecXER.String())
	require.Equal(t, "jer", asn1.CodecJER.String())
	require.Equal(t, "codec(9)", asn1.Codec(9).String())
}
