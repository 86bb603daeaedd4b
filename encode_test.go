package asn1_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/internal/testutil"
	"github.com/stretchr/testify/require"
)

// recorder is an Encoder logging the calls made by the package level helpers.
// Unused methods panic.
type recorder struct {
	asn1.Encoder
	calls []string
}

func (r *recorder) log(format string, args ...any) error {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
	return nil
}

func (r *recorder) Codec() asn1.Codec { return asn1.CodecXER }

func (r *recorder) EncodeInteger(tag asn1.Tag, c asn1.Constraints, v *big.Int) error {
	return r.log("integer %s %s %s", tag, v, c.Value)
}

func (r *recorder) EncodeAny(tag asn1.Tag, v asn1.Any) error {
	return r.log("any %s %s", tag, v.Contents)
}

func (r *recorder) EncodeExplicitPrefix(tag asn1.Tag, v asn1.Encodable) error {
	r.log("explicit %s", tag)
	return asn1.Encode(r, v)
}

func (r *recorder) EncodeSome(tag asn1.Tag, c asn1.Constraints, v asn1.Encodable) error {
	r.log("some %s", tag)
	return asn1.EncodeWithTagAndConstraints(r, v, tag, c)
}

func (r *recorder) EncodeNone(tag asn1.Tag) error {
	return r.log("none %s", tag)
}

func (r *recorder) EncodeExtensionAddition(tag asn1.Tag, c asn1.Constraints, v asn1.Encodable) error {
	if v == nil {
		return r.log("addition absent %s", tag)
	}
	r.log("addition %s", tag)
	return asn1.EncodeWithTagAndConstraints(r, v, tag, c)
}

func (r *recorder) EncodeExtensionAdditionGroup(v asn1.ConstructedEncodable) error {
	if v == nil {
		return r.log("group absent")
	}
	return r.log("group %s", v.ASN1Identifier())
}

func record(t *testing.T, fn func(e asn1.Encoder) error) []string {
	t.Helper()

	var r recorder
	require.NoError(t, fn(&r))
	return r.calls
}

func TestEncodeHelpers(t *testing.T) {
	five := asn1.NewInteger(5)
	seven := asn1.Int(7)
	raw := asn1.Any{Contents: []byte("<a/>")}
	def := func() asn1.Integer { return asn1.NewInteger(5) }

	tests := []struct {
		name string
		fn   func(e asn1.Encoder) error
		want []string
	}{
		{"encode", func(e asn1.Encoder) error { return asn1.Encode(e, five) },
			[]string{"integer [UNIVERSAL 2] 5 MIN..MAX"}},
		{"implicit tag", func(e asn1.Encoder) error { return asn1.EncodeWithTag(e, five, asn1.ContextTag(3)) },
			[]string{"integer [3] 5 MIN..MAX"}},
		{"explicit tag", func(e asn1.Encoder) error { return asn1.EncodeExplicit(e, five, asn1.ContextTag(3)) },
			[]string{"explicit [3]", "integer [UNIVERSAL 2] 5 MIN..MAX"}},
		{"untagged types are tagged explicitly", func(e asn1.Encoder) error { return asn1.EncodeWithTag(e, raw, asn1.ContextTag(1)) },
			[]string{"explicit [1]", "any [UNIVERSAL 0] <a/>"}},
		{"field constraints", func(e asn1.Encoder) error { return asn1.EncodeWithConstraints(e, seven, asn1.ValueRange(0, 10)) },
			[]string{"integer [UNIVERSAL 2] 7 0..10"}},
		{"optional absent", func(e asn1.Encoder) error { return asn1.EncodeOptional[asn1.Integer](e, nil) },
			[]string{"none [UNIVERSAL 2]"}},
		{"optional present", func(e asn1.Encoder) error { return asn1.EncodeOptionalWithTag(e, &five, asn1.ContextTag(0)) },
			[]string{"some [0]", "integer [0] 5 MIN..MAX"}},
		{"optional with constraints", func(e asn1.Encoder) error {
			return asn1.EncodeOptionalWithConstraints(e, &seven, asn1.MaxValue(9))
		}, []string{"some [UNIVERSAL 2]", "integer [UNIVERSAL 2] 7 MIN..9"}},
		{"default value", func(e asn1.Encoder) error { return asn1.EncodeDefault(e, five, def) },
			[]string{"none [UNIVERSAL 2]"}},
		{"other value", func(e asn1.Encoder) error { return asn1.EncodeDefaultWithTag(e, asn1.NewInteger(6), def, asn1.ContextTag(2)) },
			[]string{"some [2]", "integer [2] 6 MIN..MAX"}},
		{"addition absent", func(e asn1.Encoder) error {
			return asn1.EncodeExtensionAddition[asn1.Integer](e, nil, asn1.ContextTag(4), asn1.NoConstraints)
		}, []string{"addition absent [4]"}},
		{"addition present", func(e asn1.Encoder) error {
			return asn1.EncodeExtensionAddition(e, &five, asn1.ContextTag(4), asn1.NoConstraints)
		}, []string{"addition [4]", "integer [4] 5 MIN..MAX"}},
		{"group absent", func(e asn1.Encoder) error { return asn1.EncodeExtensionAdditionGroup[group](e, nil) },
			[]string{"group absent"}},
		{"group present", func(e asn1.Encoder) error { return asn1.EncodeExtensionAdditionGroup(e, &group{}) },
			[]string{"group Group"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			testutil.RequireEqual(t, test.want, record(t, test.fn))
		})
	}
}

func TestEncodeConstraintViolation(t *testing.T) {
	var r recorder
	err := asn1.EncodeWithConstraints(&r, asn1.Int(11), asn1.ValueRange(0, 10))
	testutil.RequireErrorIs(t, err, asn1.ErrCustom)
	require.Empty(t, r.calls)
}

// group is a minimal extension addition group.
type group struct{}

var groupDescriptor = asn1.Constructed{Identifier: "Group"}

func (group) ASN1Tag() asn1.Tag { return asn1.TagSequence }
func (group) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (group) ASN1Identifier() string { return groupDescriptor.Identifier }
func (group) ASN1Descriptor() *asn1.Constructed { return &groupDescriptor }

func (group) EncodeASN1(e asn1.Encoder, tag asn1.Tag, _ asn1.Constraints) error {
	return e.EncodeSequence(tag, &groupDescriptor, func(asn1.Encoder) error { return nil })
}

func (*group) DecodeASN1(d asn1.Decoder, tag asn1.Tag, _ asn1.Constraints) error {
	return d.DecodeSequence(tag, &groupDescriptor, func(asn1.Decoder) error { return nil })
}
