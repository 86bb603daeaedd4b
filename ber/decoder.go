package ber

import (
	"math/big"
	"time"
	"unicode/utf16"

	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/internal/encoding"
	"github.com/cockroachdb/errors"
)

var _ asn1.Decoder = (*Decoder)(nil)

// Decoder is the BER implementation of asn1.Decoder.
type Decoder struct {
	opts Options
	// b holds the remaining contents of the value being decoded.
	b      []byte
	inline bool
}

// NewDecoder creates a Decoder reading data.
func NewDecoder(data []byte, opts Options) *Decoder {
	return &Decoder{opts: opts, b: data}
}

// Close returns an error if some data was not decoded.
func (d *Decoder) Close() error {
	if len(d.b) > 0 {
		return d.fail(asn1.ErrTrailingData, "%d bytes left", len(d.b))
	}

	return nil
}

func (d *Decoder) Codec() asn1.Codec {
	return d.opts.Rules.codec()
}

func (d *Decoder) fail(kind error, format string, args ...any) error {
	return asn1.NewDecodeError(d.Codec(), kind, format, args...)
}

func (d *Decoder) wrapErr(err error) error {
	if errors.Is(err, encoding.ErrTruncated) {
		return asn1.EndOfInputError(d.Codec())
	}

	return d.fail(asn1.ErrSpecViolation, "%v", err)
}

// peekTag returns the tag of the next value, if any.
func (d *Decoder) peekTag() (asn1.Tag, bool) {
	id, _, err := encoding.DecodeIdentifier(d.b)
	if err != nil {
		return asn1.Tag{}, false
	}

	return id.Tag, true
}

// take consumes the next value, which must be tagged with tag,
// and returns its contents.
func (d *Decoder) take(tag asn1.Tag, constructed bool) ([]byte, error) {
	if len(d.b) == 0 {
		return nil, asn1.EndOfInputError(d.Codec())
	}

	h, n, err := encoding.DecodeHeader(d.b)
	if err != nil {
		return nil, d.wrapErr(err)
	}

	if h.Tag != tag {
		return nil, asn1.TypeMismatchError(d.Codec(), tag.String(), h.Tag.String())
	}
	if h.NonMinimal && d.opts.Rules == DER {
		return nil, d.fail(asn1.ErrSpecViolation, "X.690 §10.1: length of %s is not in the minimum number of octets", tag)
	}
	if h.Constructed != constructed {
		if constructed {
			return nil, asn1.TypeMismatchError(d.Codec(), "constructed "+tag.String(), "primitive")
		}
		return nil, d.fail(asn1.ErrSpecViolation, "constructed encoding of %s is not supported", tag)
	}

	if !h.Indefinite {
		if len(d.b)-n < h.Length {
			return nil, asn1.EndOfInputError(d.Codec())
		}
		content := d.b[n : n+h.Length]
		d.b = d.b[n+h.Length:]
		return content, nil
	}

	if d.opts.Rules == DER {
		return nil, d.fail(asn1.ErrSpecViolation, "X.690 §10.1: indefinite length is not allowed")
	}
	if !constructed {
		return nil, d.fail(asn1.ErrSpecViolation, "X.690 §8.1.3.2: indefinite length on a primitive value")
	}

	total, err := encoding.Skip(d.b)
	if err != nil {
		return nil, d.wrapErr(err)
	}
	content := d.b[n : total-2]
	d.b = d.b[total:]
	return content, nil
}

// enter decodes the contents of a constructed value with fn.
// Unless extensible is true, fn must consume all of them.
func (d *Decoder) enter(tag asn1.Tag, extensible bool, fn func() error) error {
	content, err := d.take(tag, true)
	if err != nil {
		return err
	}

	rest := d.b
	d.b = content
	err = fn()
	if err == nil && len(d.b) > 0 && !extensible {
		tag, _ := d.peekTag()
		err = asn1.TypeMismatchError(d.Codec(), "end of contents", tag.String())
	}
	d.b = rest

	return err
}

func (d *Decoder) DecodeAny(tag asn1.Tag) (asn1.Any, error) {
	if tag != asn1.TagEOC {
		content, err := d.take(tag, true)
		if err != nil {
			return asn1.Any{}, err
		}
		return asn1.Any{Contents: append([]byte(nil), content...)}, nil
	}

	if len(d.b) == 0 {
		return asn1.Any{}, asn1.EndOfInputError(d.Codec())
	}

	n, err := encoding.Skip(d.b)
	if err != nil {
		return asn1.Any{}, d.wrapErr(err)
	}

	v := asn1.Any{Contents: append([]byte(nil), d.b[:n]...)}
	d.b = d.b[n:]
	return v, nil
}

func (d *Decoder) DecodeBool(tag asn1.Tag) (bool, error) {
	b, err := d.take(tag, false)
	if err != nil {
		return false, err
	}
	if len(b) != 1 {
		return false, d.fail(asn1.ErrSpecViolation, "X.690 §8.2.1: boolean must have one octet, found %d", len(b))
	}

	switch b[0] {
	case 0x00:
		return false, nil
	case 0xFF:
		return true, nil
	}

	if d.opts.Rules == DER {
		return false, d.fail(asn1.ErrSpecViolation, "X.690 §11.1: true must be encoded as 0xFF")
	}
	return true, nil
}

func (d *Decoder) DecodeBitString(tag asn1.Tag, _ asn1.Constraints) (asn1.BitString, error) {
	b, err := d.take(tag, false)
	if err != nil {
		return asn1.BitString{}, err
	}
	if len(b) == 0 || b[0] > 7 || (len(b) == 1 && b[0] != 0) {
		return asn1.BitString{}, d.fail(asn1.ErrSpecViolation, "X.690 §8.6.2: invalid unused bits octet")
	}

	return asn1.BitStringFromBytes(b[1:], (len(b)-1)*8-int(b[0])), nil
}

func (d *Decoder) DecodeEnumerated(tag asn1.Tag, enum *asn1.Enumeration) (int, error) {
	b, err := d.take(tag, false)
	if err != nil {
		return 0, err
	}

	x, err := encoding.DecodeInteger(b)
	if err != nil {
		return 0, d.wrapErr(err)
	}

	i := -1
	if x.IsInt64() {
		i = enum.IndexOfValue(x.Int64())
	}
	if i < 0 {
		return 0, asn1.TypeMismatchError(d.Codec(), "variant of "+enum.Identifier, x.String())
	}

	return i, nil
}

func (d *Decoder) DecodeObjectIdentifier(tag asn1.Tag) (asn1.ObjectIdentifier, error) {
	b, err := d.take(tag, false)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, d.fail(asn1.ErrSpecViolation, "empty object identifier")
	}

	var oid asn1.ObjectIdentifier
	for len(b) > 0 {
		v, n, err := encoding.DecodeBase128(b)
		if err != nil {
			return nil, d.wrapErr(err)
		}
		b = b[n:]

		if oid == nil {
			switch {
			case v < 40:
				oid = asn1.ObjectIdentifier{0, uint32(v)}
			case v < 80:
				oid = asn1.ObjectIdentifier{1, uint32(v - 40)}
			default:
				oid = asn1.ObjectIdentifier{2, uint32(v - 80)}
			}
			continue
		}

		if v > uint64(^uint32(0)) {
			return nil, d.fail(asn1.ErrSpecViolation, "object identifier arc overflows")
		}
		oid = append(oid, uint32(v))
	}

	return oid, nil
}

func (d *Decoder) DecodeInteger(tag asn1.Tag, _ asn1.Constraints) (*big.Int, error) {
	b, err := d.take(tag, false)
	if err != nil {
		return nil, err
	}

	x, err := encoding.DecodeInteger(b)
	if err != nil {
		return nil, d.wrapErr(err)
	}

	return x, nil
}

func (d *Decoder) DecodeNull(tag asn1.Tag) error {
	b, err := d.take(tag, false)
	if err != nil {
		return err
	}
	if len(b) != 0 {
		return d.fail(asn1.ErrSpecViolation, "X.690 §8.8.2: null must be empty")
	}

	return nil
}

func (d *Decoder) DecodeOctetString(tag asn1.Tag, _ asn1.Constraints) ([]byte, error) {
	b, err := d.take(tag, false)
	if err != nil {
		return nil, err
	}

	return append([]byte{}, b...), nil
}

func (d *Decoder) str(tag asn1.Tag) (string, error) {
	b, err := d.take(tag, false)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func (d *Decoder) DecodeGeneralString(tag asn1.Tag, _ asn1.Constraints) (string, error) {
	return d.str(tag)
}

func (d *Decoder) DecodeUTF8String(tag asn1.Tag, _ asn1.Constraints) (string, error) {
	return d.str(tag)
}

func (d *Decoder) DecodeVisibleString(tag asn1.Tag, _ asn1.Constraints) (string, error) {
	return d.str(tag)
}

func (d *Decoder) DecodeIA5String(tag asn1.Tag, _ asn1.Constraints) (string, error) {
	return d.str(tag)
}

func (d *Decoder) DecodePrintableString(tag asn1.Tag, _ asn1.Constraints) (string, error) {
	return d.str(tag)
}

func (d *Decoder) DecodeNumericString(tag asn1.Tag, _ asn1.Constraints) (string, error) {
	return d.str(tag)
}

func (d *Decoder) DecodeTeletexString(tag asn1.Tag, _ asn1.Constraints) (string, error) {
	return d.str(tag)
}

func (d *Decoder) DecodeBMPString(tag asn1.Tag, _ asn1.Constraints) (string, error) {
	b, err := d.take(tag, false)
	if err != nil {
		return "", err
	}
	if len(b)%2 != 0 {
		return "", d.fail(asn1.ErrSpecViolation, "BMPString must have an even number of octets")
	}

	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}

	return string(utf16.Decode(units)), nil
}

func (d *Decoder) DecodeGeneralizedTime(tag asn1.Tag) (time.Time, error) {
	s, err := d.str(tag)
	if err != nil {
		return time.Time{}, err
	}

	t, err := ParseGeneralizedTime(s)
	if err != nil {
		return time.Time{}, d.fail(asn1.ErrSpecViolation, "%v", err)
	}

	return t, nil
}

func (d *Decoder) DecodeUTCTime(tag asn1.Tag) (time.Time, error) {
	s, err := d.str(tag)
	if err != nil {
		return time.Time{}, err
	}

	t, err := ParseUTCTime(s)
	if err != nil {
		return time.Time{}, d.fail(asn1.ErrSpecViolation, "%v", err)
	}

	return t, nil
}

func (d *Decoder) DecodeExplicitPrefix(tag asn1.Tag, v asn1.Decodable) error {
	return d.enter(tag, false, func() error {
		return asn1.Decode(d, v)
	})
}

func (d *Decoder) DecodeSequence(tag asn1.Tag, desc *asn1.Constructed, fn func(asn1.Decoder) error) error {
	if d.inline {
		d.inline = false
		return fn(d)
	}

	return d.enter(tag, desc.Extensible, func() error {
		return fn(d)
	})
}

func (d *Decoder) DecodeSet(tag asn1.Tag, desc *asn1.Constructed, fn func(asn1.Decoder, int) error) error {
	return d.enter(tag, false, func() error {
		seen := make([]bool, len(desc.Fields))

		for len(d.b) > 0 {
			t, _ := d.peekTag()
			i := desc.TagIndex(t)
			if i < 0 {
				ok, err := d.decodeUntagged(desc, seen, fn)
				if err != nil {
					return err
				}
				if ok {
					continue
				}
				if !desc.Extensible {
					return asn1.TypeMismatchError(d.Codec(), "member of "+desc.Identifier, t.String())
				}
				n, err := encoding.Skip(d.b)
				if err != nil {
					return d.wrapErr(err)
				}
				d.b = d.b[n:]
				continue
			}
			if seen[i] {
				return d.fail(asn1.ErrSpecViolation, "duplicate member %s in %s", desc.Fields[i].Name, desc.Identifier)
			}
			seen[i] = true

			if err := fn(d, i); err != nil {
				return err
			}
		}

		for i, f := range desc.Fields {
			if !seen[i] && !f.Absentable() {
				return d.fail(asn1.ErrMissingField, "%s.%s", desc.Identifier, f.Name)
			}
		}

		return nil
	})
}

// decodeUntagged offers the next value of a SET to the unseen members
// without a tag of their own, in order. A type mismatch rewinds the input
// and moves on to the next member.
func (d *Decoder) decodeUntagged(desc *asn1.Constructed, seen []bool, fn func(asn1.Decoder, int) error) (bool, error) {
	for i, f := range desc.Fields {
		if seen[i] || !f.Tag.IsZero() {
			continue
		}

		b := d.b
		err := fn(d, i)
		if err == nil {
			seen[i] = true
			return true, nil
		}
		if !asn1.IsTypeMismatch(err) {
			return false, err
		}
		d.b = b
	}

	return false, nil
}

func (d *Decoder) list(tag asn1.Tag, item func(asn1.Decoder) error) error {
	return d.enter(tag, false, func() error {
		for len(d.b) > 0 {
			if err := item(d); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Decoder) DecodeSequenceOf(tag asn1.Tag, _ asn1.Constraints, item func(asn1.Decoder) error) error {
	return d.list(tag, item)
}

func (d *Decoder) DecodeSetOf(tag asn1.Tag, _ asn1.Constraints, item func(asn1.Decoder) error) error {
	return d.list(tag, item)
}

// matches reports whether the next value can be decoded into v with tag.
func (d *Decoder) matches(tag asn1.Tag, v asn1.Type) bool {
	next, ok := d.peekTag()
	if !ok {
		return false
	}
	if tag != asn1.TagEOC {
		return next == tag
	}

	ct, ok := v.(asn1.ConstructedType)
	if !ok {
		return true
	}
	return ct.ASN1Descriptor().TagIndex(next) >= 0
}

// DecodeOptional decodes v if the tag of the next value matches.
// Untagged CHOICE values match any of their alternatives.
func (d *Decoder) DecodeOptional(tag asn1.Tag, c asn1.Constraints, v asn1.Decodable) (bool, error) {
	if !d.matches(tag, v) {
		return false, nil
	}

	return true, asn1.DecodeWithTagAndConstraints(d, v, tag, c)
}

// DecodeChoice selects the alternative whose tag is the tag of the next value.
func (d *Decoder) DecodeChoice(_ asn1.Constraints, _ asn1.Tag, desc *asn1.Constructed, fn func(asn1.Decoder, int) error) error {
	if len(d.b) == 0 {
		return asn1.EndOfInputError(d.Codec())
	}

	t, ok := d.peekTag()
	i := desc.TagIndex(t)
	if !ok || i < 0 {
		return asn1.TypeMismatchError(d.Codec(), "alternative of "+desc.Identifier, t.String())
	}

	return fn(d, i)
}

func (d *Decoder) DecodeExtensionAddition(tag asn1.Tag, c asn1.Constraints, v asn1.Decodable) (bool, error) {
	return d.DecodeOptional(tag, c, v)
}

// DecodeExtensionAdditionGroup decodes the fields of the group from the
// enclosing value. The group is present if the next tag is one of its fields.
func (d *Decoder) DecodeExtensionAdditionGroup(v asn1.ConstructedDecodable) (bool, error) {
	next, ok := d.peekTag()
	if !ok || v.ASN1Descriptor().TagIndex(next) < 0 {
		return false, nil
	}

	d.inline = true
	err := v.DecodeASN1(d, v.ASN1Tag(), v.ASN1Constraints())
	d.inline = false
	return err == nil, err
}
