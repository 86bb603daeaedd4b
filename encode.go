package asn1

import (
	"math/big"
	"time"
)

// Encodable is implemented by every type that can be encoded.
// EncodeASN1 is the only method a type has to implement: the package level
// Encode functions derive every other way of encoding a value from it.
type Encodable interface {
	Type

	// EncodeASN1 encodes the value using the given tag and constraints.
	EncodeASN1(e Encoder, tag Tag, c Constraints) error
}

// An Encoder writes values using a specific set of encoding rules.
// Encoders are single-use and must not be shared between goroutines.
type Encoder interface {
	Codec() Codec

	EncodeAny(tag Tag, v Any) error
	EncodeBool(tag Tag, v bool) error
	EncodeBitString(tag Tag, c Constraints, v BitString) error
	EncodeEnumerated(tag Tag, e *Enumeration, index int) error
	EncodeObjectIdentifier(tag Tag, v ObjectIdentifier) error
	EncodeInteger(tag Tag, c Constraints, v *big.Int) error
	EncodeNull(tag Tag) error
	EncodeOctetString(tag Tag, c Constraints, v []byte) error

	EncodeGeneralString(tag Tag, c Constraints, v string) error
	EncodeUTF8String(tag Tag, c Constraints, v string) error
	EncodeVisibleString(tag Tag, c Constraints, v string) error
	EncodeIA5String(tag Tag, c Constraints, v string) error
	EncodePrintableString(tag Tag, c Constraints, v string) error
	EncodeNumericString(tag Tag, c Constraints, v string) error
	EncodeTeletexString(tag Tag, c Constraints, v string) error
	EncodeBMPString(tag Tag, c Constraints, v string) error

	EncodeGeneralizedTime(tag Tag, v time.Time) error
	EncodeUTCTime(tag Tag, v time.Time) error

	// EncodeExplicitPrefix wraps the encoding of v, with its own tag,
	// inside an element tagged with tag.
	EncodeExplicitPrefix(tag Tag, v Encodable) error

	// EncodeSequence opens a SEQUENCE described by desc and calls scope
	// to encode its fields, in declaration order.
	EncodeSequence(tag Tag, desc *Constructed, scope func(Encoder) error) error
	EncodeSequenceOf(tag Tag, c Constraints, items []Encodable) error
	// EncodeSet is like EncodeSequence for SET types.
	EncodeSet(tag Tag, desc *Constructed, scope func(Encoder) error) error
	EncodeSetOf(tag Tag, c Constraints, items []Encodable) error

	// EncodeSome encodes a present OPTIONAL or DEFAULT field.
	EncodeSome(tag Tag, c Constraints, v Encodable) error
	// EncodeNone records an absent OPTIONAL field, or a DEFAULT field
	// whose value equals the default.
	EncodeNone(tag Tag) error

	// EncodeChoice encodes the alternative at position index of desc.
	// scope encodes the payload of the alternative.
	EncodeChoice(c Constraints, tag Tag, desc *Constructed, index int, scope func(Encoder) error) error

	// EncodeExtensionAddition encodes a field declared after the extension marker.
	// A nil v means the field is absent.
	EncodeExtensionAddition(tag Tag, c Constraints, v Encodable) error
	// EncodeExtensionAdditionGroup encodes a group of extension additions.
	// A nil v means the whole group is absent.
	EncodeExtensionAdditionGroup(v ConstructedEncodable) error
}

// ConstructedEncodable is an Encodable SEQUENCE, SET or CHOICE.
type ConstructedEncodable interface {
	Encodable
	ASN1Descriptor() *Constructed
}

// Encode v using its own tag and constraints.
func Encode(e Encoder, v Encodable) error {
	return EncodeWithTagAndConstraints(e, v, v.ASN1Tag(), v.ASN1Constraints())
}

// EncodeWithTag encodes v using tag instead of its own.
func EncodeWithTag(e Encoder, v Encodable, tag Tag) error {
	return EncodeWithTagAndConstraints(e, v, tag, v.ASN1Constraints())
}

// EncodeWithConstraints encodes v using its own tag and the constraints
// of v overridden by c.
func EncodeWithConstraints(e Encoder, v Encodable, c Constraints) error {
	return EncodeWithTagAndConstraints(e, v, v.ASN1Tag(), v.ASN1Constraints().Override(c))
}

// EncodeWithTagAndConstraints encodes v using tag and c.
// Types without a tag of their own, like CHOICE and ANY, are
// always tagged explicitly.
func EncodeWithTagAndConstraints(e Encoder, v Encodable, tag Tag, c Constraints) error {
	if v.ASN1Tag() == TagEOC && tag != TagEOC {
		return e.EncodeExplicitPrefix(tag, v)
	}

	return v.EncodeASN1(e, tag, c)
}

// EncodeExplicit encodes v with its own tag, wrapped inside tag.
func EncodeExplicit(e Encoder, v Encodable, tag Tag) error {
	return e.EncodeExplicitPrefix(tag, v)
}

// EncodeOptional encodes an OPTIONAL field. A nil v is absent.
func EncodeOptional[T Encodable](e Encoder, v *T) error {
	var zero T
	return EncodeOptionalWithTagAndConstraints(e, v, zero.ASN1Tag(), zero.ASN1Constraints())
}

// EncodeOptionalWithTag encodes an OPTIONAL field with a field tag.
func EncodeOptionalWithTag[T Encodable](e Encoder, v *T, tag Tag) error {
	var zero T
	return EncodeOptionalWithTagAndConstraints(e, v, tag, zero.ASN1Constraints())
}

// EncodeOptionalWithConstraints encodes an OPTIONAL field with field constraints.
func EncodeOptionalWithConstraints[T Encodable](e Encoder, v *T, c Constraints) error {
	var zero T
	return EncodeOptionalWithTagAndConstraints(e, v, zero.ASN1Tag(), zero.ASN1Constraints().Override(c))
}

// EncodeOptionalWithTagAndConstraints encodes an OPTIONAL field with a field tag
// and field constraints.
func EncodeOptionalWithTagAndConstraints[T Encodable](e Encoder, v *T, tag Tag, c Constraints) error {
	if v == nil {
		return e.EncodeNone(tag)
	}

	return e.EncodeSome(tag, c, *v)
}

// Defaulted is implemented by types that can be compared to the
// default value of a field.
type Defaulted[T any] interface {
	Encodable
	Equal(other T) bool
}

// EncodeDefault encodes a field declared with a DEFAULT value.
// def is called every time, and the field is omitted when v equals its result.
func EncodeDefault[T Defaulted[T]](e Encoder, v T, def func() T) error {
	return EncodeDefaultWithTagAndConstraints(e, v, def, v.ASN1Tag(), v.ASN1Constraints())
}

// EncodeDefaultWithTag is like EncodeDefault with a field tag.
func EncodeDefaultWithTag[T Defaulted[T]](e Encoder, v T, def func() T, tag Tag) error {
	return EncodeDefaultWithTagAndConstraints(e, v, def, tag, v.ASN1Constraints())
}

// EncodeDefaultWithConstraints is like EncodeDefault with field constraints.
func EncodeDefaultWithConstraints[T Defaulted[T]](e Encoder, v T, def func() T, c Constraints) error {
	return EncodeDefaultWithTagAndConstraints(e, v, def, v.ASN1Tag(), v.ASN1Constraints().Override(c))
}

// EncodeDefaultWithTagAndConstraints is like EncodeDefault with a field tag and
// field constraints.
func EncodeDefaultWithTagAndConstraints[T Defaulted[T]](e Encoder, v T, def func() T, tag Tag, c Constraints) error {
	if v.Equal(def()) {
		return e.EncodeNone(tag)
	}

	return e.EncodeSome(tag, c, v)
}

// EncodeExtensionAddition encodes a field declared after the extension marker.
// A nil v is absent.
func EncodeExtensionAddition[T Encodable](e Encoder, v *T, tag Tag, c Constraints) error {
	if v == nil {
		return e.EncodeExtensionAddition(tag, c, nil)
	}

	return e.EncodeExtensionAddition(tag, c, *v)
}

// EncodeExtensionAdditionGroup encodes a group of extension additions.
// A nil v is absent.
func EncodeExtensionAdditionGroup[T ConstructedEncodable](e Encoder, v *T) error {
	if v == nil {
		return e.EncodeExtensionAdditionGroup(nil)
	}

	return e.EncodeExtensionAdditionGroup(*v)
}

func encodables[T Encodable](items []T) []Encodable {
	out := make([]Encodable, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out
}
