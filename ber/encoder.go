package ber

import (
	"bytes"
	"math/big"
	"sort"
	"time"
	"unicode/utf16"

	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/internal/encoding"
)

var _ asn1.Encoder = (*Encoder)(nil)

// Encoder is the BER implementation of asn1.Encoder.
type Encoder struct {
	opts   Options
	buf    []byte
	inline bool
}

// NewEncoder creates an Encoder.
func NewEncoder(opts Options) *Encoder {
	return &Encoder{opts: opts}
}

// Bytes returns the encoded values.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) Codec() asn1.Codec {
	return e.opts.Rules.codec()
}

func (e *Encoder) fail(kind error, format string, args ...any) error {
	return asn1.NewEncodeError(e.Codec(), kind, format, args...)
}

func (e *Encoder) primitive(tag asn1.Tag, content []byte) error {
	e.buf = encoding.EncodeIdentifier(e.buf, tag, false)
	e.buf = encoding.EncodeLength(e.buf, len(content))
	e.buf = append(e.buf, content...)
	return nil
}

// constructed calls fn to encode the contents of a constructed value,
// then inserts the header in front of them.
func (e *Encoder) constructed(tag asn1.Tag, fn func() error) error {
	start := len(e.buf)
	if err := fn(); err != nil {
		return err
	}

	e.wrap(start, tag)
	return nil
}

func (e *Encoder) wrap(start int, tag asn1.Tag) {
	size := len(e.buf) - start
	hdr := encoding.EncodeIdentifier(nil, tag, true)
	hdr = encoding.EncodeLength(hdr, size)

	e.buf = append(e.buf, hdr...)
	copy(e.buf[start+len(hdr):], e.buf[start:start+size])
	copy(e.buf[start:], hdr)
}

// sortFrom sorts the TLVs encoded since start.
func (e *Encoder) sortFrom(start int, less func(a, b []byte) bool) error {
	var items [][]byte
	for b := e.buf[start:]; len(b) > 0; {
		n, err := encoding.Skip(b)
		if err != nil {
			return e.fail(asn1.ErrInvalidValue, "%v", err)
		}
		items = append(items, append([]byte(nil), b[:n]...))
		b = b[n:]
	}

	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})

	e.buf = e.buf[:start]
	for _, item := range items {
		e.buf = append(e.buf, item...)
	}
	return nil
}

func byTag(a, b []byte) bool {
	ida, _, _ := encoding.DecodeIdentifier(a)
	idb, _, _ := encoding.DecodeIdentifier(b)
	return ida.Tag.Less(idb.Tag)
}

func byEncoding(a, b []byte) bool {
	return bytes.Compare(a, b) < 0
}

func (e *Encoder) EncodeAny(tag asn1.Tag, v asn1.Any) error {
	if tag == asn1.TagEOC {
		e.buf = append(e.buf, v.Contents...)
		return nil
	}

	return e.constructed(tag, func() error {
		e.buf = append(e.buf, v.Contents...)
		return nil
	})
}

func (e *Encoder) EncodeBool(tag asn1.Tag, v bool) error {
	if v {
		return e.primitive(tag, []byte{0xFF})
	}
	return e.primitive(tag, []byte{0x00})
}

func (e *Encoder) EncodeBitString(tag asn1.Tag, _ asn1.Constraints, v asn1.BitString) error {
	unused := (8 - v.Len()%8) % 8
	content := append([]byte{byte(unused)}, v.Bytes()...)
	return e.primitive(tag, content)
}

func (e *Encoder) EncodeEnumerated(tag asn1.Tag, enum *asn1.Enumeration, index int) error {
	if index < 0 || index >= len(enum.Variants) {
		return e.fail(asn1.ErrInvalidValue, "%s has no variant at index %d", enum.Identifier, index)
	}

	return e.primitive(tag, encoding.EncodeInteger(nil, big.NewInt(enum.Variants[index].Value)))
}

func (e *Encoder) EncodeObjectIdentifier(tag asn1.Tag, v asn1.ObjectIdentifier) error {
	if err := v.Validate(); err != nil {
		return e.fail(asn1.ErrInvalidValue, "%v", err)
	}

	content := encoding.EncodeBase128(nil, uint64(v[0])*40+uint64(v[1]))
	for _, arc := range v[2:] {
		content = encoding.EncodeBase128(content, uint64(arc))
	}

	return e.primitive(tag, content)
}

func (e *Encoder) EncodeInteger(tag asn1.Tag, _ asn1.Constraints, v *big.Int) error {
	return e.primitive(tag, encoding.EncodeInteger(nil, v))
}

func (e *Encoder) EncodeNull(tag asn1.Tag) error {
	return e.primitive(tag, nil)
}

func (e *Encoder) EncodeOctetString(tag asn1.Tag, _ asn1.Constraints, v []byte) error {
	return e.primitive(tag, v)
}

func (e *Encoder) EncodeGeneralString(tag asn1.Tag, _ asn1.Constraints, v string) error {
	return e.primitive(tag, []byte(v))
}

func (e *Encoder) EncodeUTF8String(tag asn1.Tag, _ asn1.Constraints, v string) error {
	return e.primitive(tag, []byte(v))
}

func (e *Encoder) EncodeVisibleString(tag asn1.Tag, _ asn1.Constraints, v string) error {
	return e.primitive(tag, []byte(v))
}

func (e *Encoder) EncodeIA5String(tag asn1.Tag, _ asn1.Constraints, v string) error {
	return e.primitive(tag, []byte(v))
}

func (e *Encoder) EncodePrintableString(tag asn1.Tag, _ asn1.Constraints, v string) error {
	return e.primitive(tag, []byte(v))
}

func (e *Encoder) EncodeNumericString(tag asn1.Tag, _ asn1.Constraints, v string) error {
	return e.primitive(tag, []byte(v))
}

func (e *Encoder) EncodeTeletexString(tag asn1.Tag, _ asn1.Constraints, v string) error {
	return e.primitive(tag, []byte(v))
}

// EncodeBMPString writes v in UTF-16, big endian.
func (e *Encoder) EncodeBMPString(tag asn1.Tag, _ asn1.Constraints, v string) error {
	units := utf16.Encode([]rune(v))
	content := make([]byte, 0, len(units)*2)
	for _, u := range units {
		content = append(content, byte(u>>8), byte(u))
	}

	return e.primitive(tag, content)
}

func (e *Encoder) EncodeGeneralizedTime(tag asn1.Tag, v time.Time) error {
	return e.primitive(tag, []byte(FormatGeneralizedTime(v)))
}

func (e *Encoder) EncodeUTCTime(tag asn1.Tag, v time.Time) error {
	return e.primitive(tag, []byte(FormatUTCTime(v)))
}

func (e *Encoder) EncodeExplicitPrefix(tag asn1.Tag, v asn1.Encodable) error {
	return e.constructed(tag, func() error {
		return asn1.Encode(e, v)
	})
}

func (e *Encoder) EncodeSequence(tag asn1.Tag, _ *asn1.Constructed, fn func(asn1.Encoder) error) error {
	if e.inline {
		e.inline = false
		return fn(e)
	}

	return e.constructed(tag, func() error {
		return fn(e)
	})
}

func (e *Encoder) EncodeSet(tag asn1.Tag, _ *asn1.Constructed, fn func(asn1.Encoder) error) error {
	return e.constructed(tag, func() error {
		start := len(e.buf)
		if err := fn(e); err != nil {
			return err
		}
		if e.opts.Rules == DER {
			return e.sortFrom(start, byTag)
		}
		return nil
	})
}

func (e *Encoder) list(tag asn1.Tag, items []asn1.Encodable, sorted bool) error {
	return e.constructed(tag, func() error {
		start := len(e.buf)
		for _, item := range items {
			if err := asn1.Encode(e, item); err != nil {
				return err
			}
		}
		if sorted {
			return e.sortFrom(start, byEncoding)
		}
		return nil
	})
}

func (e *Encoder) EncodeSequenceOf(tag asn1.Tag, _ asn1.Constraints, items []asn1.Encodable) error {
	return e.list(tag, items, false)
}

func (e *Encoder) EncodeSetOf(tag asn1.Tag, _ asn1.Constraints, items []asn1.Encodable) error {
	return e.list(tag, items, e.opts.Rules == DER)
}

func (e *Encoder) EncodeSome(tag asn1.Tag, c asn1.Constraints, v asn1.Encodable) error {
	return asn1.EncodeWithTagAndConstraints(e, v, tag, c)
}

// EncodeNone writes nothing: absent fields are identified by their tag.
func (e *Encoder) EncodeNone(asn1.Tag) error {
	return nil
}

// EncodeChoice writes the selected alternative only.
func (e *Encoder) EncodeChoice(_ asn1.Constraints, _ asn1.Tag, desc *asn1.Constructed, index int, fn func(asn1.Encoder) error) error {
	if index < 0 || index >= len(desc.Fields) {
		return e.fail(asn1.ErrInvalidValue, "%s has no alternative at index %d", desc.Identifier, index)
	}

	return fn(e)
}

func (e *Encoder) EncodeExtensionAddition(tag asn1.Tag, c asn1.Constraints, v asn1.Encodable) error {
	if v == nil {
		return nil
	}

	return e.EncodeSome(tag, c, v)
}

// EncodeExtensionAdditionGroup writes the fields of the group as if they
// were fields of the enclosing value.
func (e *Encoder) EncodeExtensionAdditionGroup(v asn1.ConstructedEncodable) error {
	if v == nil {
		return nil
	}

	e.inline = true
	err := v.EncodeASN1(e, v.ASN1Tag(), v.ASN1Constraints())
	e.inline = false
	return err
}
