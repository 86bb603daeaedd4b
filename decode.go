package asn1

import (
	"math/big"
	"time"
)

// Decodable is implemented by pointers to types that can be decoded.
type Decodable interface {
	Type

	// DecodeASN1 decodes a value using the given tag and constraints.
	DecodeASN1(d Decoder, tag Tag, c Constraints) error
}

// ConstructedDecodable is a Decodable SEQUENCE, SET or CHOICE.
type ConstructedDecodable interface {
	Decodable
	ASN1Descriptor() *Constructed
}

// A Decoder reads values using a specific set of encoding rules.
// Decoders are single-use and must not be shared between goroutines.
type Decoder interface {
	Codec() Codec

	DecodeAny(tag Tag) (Any, error)
	DecodeBool(tag Tag) (bool, error)
	DecodeBitString(tag Tag, c Constraints) (BitString, error)
	// DecodeEnumerated returns the index of the decoded variant in e.
	DecodeEnumerated(tag Tag, e *Enumeration) (int, error)
	DecodeObjectIdentifier(tag Tag) (ObjectIdentifier, error)
	DecodeInteger(tag Tag, c Constraints) (*big.Int, error)
	DecodeNull(tag Tag) error
	DecodeOctetString(tag Tag, c Constraints) ([]byte, error)

	DecodeGeneralString(tag Tag, c Constraints) (string, error)
	DecodeUTF8String(tag Tag, c Constraints) (string, error)
	DecodeVisibleString(tag Tag, c Constraints) (string, error)
	DecodeIA5String(tag Tag, c Constraints) (string, error)
	DecodePrintableString(tag Tag, c Constraints) (string, error)
	DecodeNumericString(tag Tag, c Constraints) (string, error)
	DecodeTeletexString(tag Tag, c Constraints) (string, error)
	DecodeBMPString(tag Tag, c Constraints) (string, error)

	DecodeGeneralizedTime(tag Tag) (time.Time, error)
	DecodeUTCTime(tag Tag) (time.Time, error)

	// DecodeExplicitPrefix decodes v, with its own tag, from inside
	// an element tagged with tag.
	DecodeExplicitPrefix(tag Tag, v Decodable) error

	// DecodeSequence enters a SEQUENCE described by desc and calls fn
	// to decode its fields, in declaration order.
	DecodeSequence(tag Tag, desc *Constructed, fn func(Decoder) error) error
	// DecodeSequenceOf calls item once per element.
	DecodeSequenceOf(tag Tag, c Constraints, item func(Decoder) error) error
	// DecodeSet enters a SET described by desc and calls fn once per member
	// found in the input, with the index of the member in desc.
	// Members may appear in any order.
	DecodeSet(tag Tag, desc *Constructed, fn func(d Decoder, index int) error) error
	DecodeSetOf(tag Tag, c Constraints, item func(Decoder) error) error

	// DecodeOptional decodes an OPTIONAL or DEFAULT field into v.
	// It returns false, leaving v untouched, if the field is absent.
	DecodeOptional(tag Tag, c Constraints, v Decodable) (bool, error)

	// DecodeChoice finds which alternative of desc is present and calls fn
	// with its index.
	DecodeChoice(c Constraints, tag Tag, desc *Constructed, fn func(d Decoder, index int) error) error

	// DecodeExtensionAddition decodes a field declared after the extension marker.
	DecodeExtensionAddition(tag Tag, c Constraints, v Decodable) (bool, error)
	// DecodeExtensionAdditionGroup decodes a group of extension additions.
	DecodeExtensionAdditionGroup(v ConstructedDecodable) (bool, error)
}

// Decode v using its own tag and constraints.
func Decode(d Decoder, v Decodable) error {
	return DecodeWithTagAndConstraints(d, v, v.ASN1Tag(), v.ASN1Constraints())
}

// DecodeWithTag decodes v using tag instead of its own.
func DecodeWithTag(d Decoder, v Decodable, tag Tag) error {
	return DecodeWithTagAndConstraints(d, v, tag, v.ASN1Constraints())
}

// DecodeWithConstraints decodes v using its own tag and the constraints
// of v overridden by c.
func DecodeWithConstraints(d Decoder, v Decodable, c Constraints) error {
	return DecodeWithTagAndConstraints(d, v, v.ASN1Tag(), v.ASN1Constraints().Override(c))
}

// DecodeWithTagAndConstraints decodes v using tag and c.
func DecodeWithTagAndConstraints(d Decoder, v Decodable, tag Tag, c Constraints) error {
	if v.ASN1Tag() == TagEOC && tag != TagEOC {
		return d.DecodeExplicitPrefix(tag, v)
	}

	return v.DecodeASN1(d, tag, c)
}

// DecodeExplicit decodes v with its own tag, from inside tag.
func DecodeExplicit(d Decoder, v Decodable, tag Tag) error {
	return d.DecodeExplicitPrefix(tag, v)
}

// DecodeOptional decodes an OPTIONAL field into *dst.
// *dst is set to nil when the field is absent.
func DecodeOptional[T any, PT interface {
	*T
	Decodable
}](d Decoder, dst **T) error {
	var zero T
	p := PT(&zero)
	return DecodeOptionalWithTagAndConstraints[T, PT](d, dst, p.ASN1Tag(), p.ASN1Constraints())
}

// DecodeOptionalWithTag decodes an OPTIONAL field with a field tag.
func DecodeOptionalWithTag[T any, PT interface {
	*T
	Decodable
}](d Decoder, dst **T, tag Tag) error {
	var zero T
	return DecodeOptionalWithTagAndConstraints[T, PT](d, dst, tag, PT(&zero).ASN1Constraints())
}

// DecodeOptionalWithConstraints decodes an OPTIONAL field with field constraints.
func DecodeOptionalWithConstraints[T any, PT interface {
	*T
	Decodable
}](d Decoder, dst **T, c Constraints) error {
	var zero T
	p := PT(&zero)
	return DecodeOptionalWithTagAndConstraints[T, PT](d, dst, p.ASN1Tag(), p.ASN1Constraints().Override(c))
}

// DecodeOptionalWithTagAndConstraints decodes an OPTIONAL field with a field tag
// and field constraints.
func DecodeOptionalWithTagAndConstraints[T any, PT interface {
	*T
	Decodable
}](d Decoder, dst **T, tag Tag, c Constraints) error {
	v := new(T)
	ok, err := d.DecodeOptional(tag, c, PT(v))
	if err != nil {
		return err
	}
	if !ok {
		*dst = nil
		return nil
	}

	*dst = v
	return nil
}

// DecodeDefault decodes a field declared with a DEFAULT value.
// *dst is set to def() when the field is absent.
func DecodeDefault[T any, PT interface {
	*T
	Decodable
}](d Decoder, dst *T, def func() T) error {
	var zero T
	p := PT(&zero)
	return DecodeDefaultWithTagAndConstraints[T, PT](d, dst, def, p.ASN1Tag(), p.ASN1Constraints())
}

// DecodeDefaultWithTag is like DecodeDefault with a field tag.
func DecodeDefaultWithTag[T any, PT interface {
	*T
	Decodable
}](d Decoder, dst *T, def func() T, tag Tag) error {
	var zero T
	return DecodeDefaultWithTagAndConstraints[T, PT](d, dst, def, tag, PT(&zero).ASN1Constraints())
}

// DecodeDefaultWithConstraints is like DecodeDefault with field constraints.
func DecodeDefaultWithConstraints[T any, PT interface {
	*T
	Decodable
}](d Decoder, dst *T, def func() T, c Constraints) error {
	var zero T
	p := PT(&zero)
	return DecodeDefaultWithTagAndConstraints[T, PT](d, dst, def, p.ASN1Tag(), p.ASN1Constraints().Override(c))
}

// DecodeDefaultWithTagAndConstraints is like DecodeDefault with a field tag
// and field constraints.
func DecodeDefaultWithTagAndConstraints[T any, PT interface {
	*T
	Decodable
}](d Decoder, dst *T, def func() T, tag Tag, c Constraints) error {
	var v T
	ok, err := d.DecodeOptional(tag, c, PT(&v))
	if err != nil {
		return err
	}
	if !ok {
		*dst = def()
		return nil
	}

	*dst = v
	return nil
}

// DecodeExtensionAddition decodes a field declared after the extension marker.
// *dst is set to nil when the field is absent.
func DecodeExtensionAddition[T any, PT interface {
	*T
	Decodable
}](d Decoder, dst **T, tag Tag, c Constraints) error {
	v := new(T)
	ok, err := d.DecodeExtensionAddition(tag, c, PT(v))
	if err != nil {
		return err
	}
	if !ok {
		*dst = nil
		return nil
	}

	*dst = v
	return nil
}

// DecodeExtensionAdditionGroup decodes a group of extension additions.
// *dst is set to nil when the group is absent.
func DecodeExtensionAdditionGroup[T any, PT interface {
	*T
	ConstructedDecodable
}](d Decoder, dst **T) error {
	v := new(T)
	ok, err := d.DecodeExtensionAdditionGroup(PT(v))
	if err != nil {
		return err
	}
	if !ok {
		*dst = nil
		return nil
	}

	*dst = v
	return nil
}
