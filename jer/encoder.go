package jer

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/ber"
	"github.com/chaisql/asn1/internal/cursor"
)

var _ asn1.Encoder = (*Encoder)(nil)

// Encoder is the JER implementation of asn1.Encoder.
// The output is compact, without any whitespace.
type Encoder struct {
	buf    []byte
	cursor cursor.Cursor
	// empty is true, per open object or array, until a member is written.
	empty []bool
	// inline is set while encoding an extension addition group,
	// whose fields are written in the enclosing object.
	inline bool
}

// NewEncoder creates an Encoder.
func NewEncoder() *Encoder {
	var e Encoder
	e.cursor.Fail = e.fail
	return &e
}

// Bytes returns the encoded value.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) Codec() asn1.Codec {
	return asn1.CodecJER
}

func (e *Encoder) fail(kind error, format string, args ...any) error {
	return asn1.NewEncodeError(asn1.CodecJER, kind, format, args...)
}

// member writes the separator and the name of the next value, if any.
func (e *Encoder) member() error {
	if len(e.empty) > 0 {
		if !e.empty[len(e.empty)-1] {
			e.buf = append(e.buf, ',')
		}
		e.empty[len(e.empty)-1] = false
	}

	if !e.cursor.InField() {
		return nil
	}

	name, err := e.cursor.Name("")
	if err != nil {
		return err
	}

	e.buf = appendString(e.buf, name)
	e.buf = append(e.buf, ':')
	return nil
}

func (e *Encoder) raw(b []byte) error {
	if err := e.member(); err != nil {
		return err
	}

	e.buf = append(e.buf, b...)
	return nil
}

func (e *Encoder) str(s string) error {
	return e.raw(appendString(nil, s))
}

func appendString(dst []byte, s string) []byte {
	b, _ := json.Marshal(s)
	return append(dst, b...)
}

// open writes an object or an array, depending on delims,
// and calls fn to write its members.
func (e *Encoder) open(delims string, s cursor.Scope, fn func() error) error {
	if err := e.member(); err != nil {
		return err
	}

	e.buf = append(e.buf, delims[0])
	e.empty = append(e.empty, true)
	e.cursor.Push(s)

	err := fn()
	if perr := e.cursor.Pop(); err == nil {
		err = perr
	}
	e.empty = e.empty[:len(e.empty)-1]
	if err != nil {
		return err
	}

	e.buf = append(e.buf, delims[1])
	return nil
}

// EncodeAny writes v, which must hold a JSON value.
func (e *Encoder) EncodeAny(_ asn1.Tag, v asn1.Any) error {
	if _, _, _, err := jsonparser.Get(v.Contents); err != nil {
		return e.fail(asn1.ErrInvalidValue, "invalid ANY value: %v", err)
	}

	return e.raw([]byte(strings.TrimSpace(string(v.Contents))))
}

func (e *Encoder) EncodeBool(_ asn1.Tag, v bool) error {
	return e.raw(strconv.AppendBool(nil, v))
}

func (e *Encoder) EncodeBitString(_ asn1.Tag, _ asn1.Constraints, v asn1.BitString) error {
	if err := e.member(); err != nil {
		return err
	}

	e.buf = append(e.buf, '{')
	e.buf = appendString(e.buf, bitStringValue)
	e.buf = append(e.buf, ':')
	e.buf = appendString(e.buf, strings.ToUpper(hex.EncodeToString(v.Bytes())))
	e.buf = append(e.buf, ',')
	e.buf = appendString(e.buf, bitStringLength)
	e.buf = append(e.buf, ':')
	e.buf = strconv.AppendInt(e.buf, int64(v.Len()), 10)
	e.buf = append(e.buf, '}')
	return nil
}

func (e *Encoder) EncodeEnumerated(_ asn1.Tag, enum *asn1.Enumeration, index int) error {
	if index < 0 || index >= len(enum.Variants) {
		return e.fail(asn1.ErrInvalidValue, "%s has no variant at index %d", enum.Identifier, index)
	}

	return e.str(enum.Variants[index].Identifier)
}

func (e *Encoder) EncodeObjectIdentifier(_ asn1.Tag, v asn1.ObjectIdentifier) error {
	return e.str(v.String())
}

func (e *Encoder) EncodeInteger(_ asn1.Tag, _ asn1.Constraints, v *big.Int) error {
	return e.raw(v.Append(nil, 10))
}

func (e *Encoder) EncodeNull(asn1.Tag) error {
	return e.raw([]byte("null"))
}

func (e *Encoder) EncodeOctetString(_ asn1.Tag, _ asn1.Constraints, v []byte) error {
	return e.str(strings.ToUpper(hex.EncodeToString(v)))
}

func (e *Encoder) EncodeGeneralString(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(v)
}

func (e *Encoder) EncodeUTF8String(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(v)
}

func (e *Encoder) EncodeVisibleString(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(v)
}

func (e *Encoder) EncodeIA5String(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(v)
}

func (e *Encoder) EncodePrintableString(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(v)
}

func (e *Encoder) EncodeNumericString(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(v)
}

func (e *Encoder) EncodeTeletexString(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(v)
}

func (e *Encoder) EncodeBMPString(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(v)
}

func (e *Encoder) EncodeGeneralizedTime(_ asn1.Tag, v time.Time) error {
	return e.str(ber.FormatGeneralizedTime(v))
}

func (e *Encoder) EncodeUTCTime(_ asn1.Tag, v time.Time) error {
	return e.str(ber.FormatUTCTime(v))
}

// EncodeExplicitPrefix encodes v. Tags are not written in JER.
func (e *Encoder) EncodeExplicitPrefix(_ asn1.Tag, v asn1.Encodable) error {
	return asn1.Encode(e, v)
}

func (e *Encoder) EncodeSequence(_ asn1.Tag, desc *asn1.Constructed, fn func(asn1.Encoder) error) error {
	if e.inline {
		e.inline = false
		e.cursor.Push(cursor.Scope{Fields: desc.Fields})
		err := fn(e)
		if perr := e.cursor.Pop(); err == nil {
			err = perr
		}
		return err
	}

	return e.open("{}", cursor.Scope{Fields: desc.Fields}, func() error {
		return fn(e)
	})
}

func (e *Encoder) EncodeSet(tag asn1.Tag, desc *asn1.Constructed, fn func(asn1.Encoder) error) error {
	return e.EncodeSequence(tag, desc, fn)
}

func (e *Encoder) list(items []asn1.Encodable) error {
	return e.open("[]", cursor.Scope{Items: true}, func() error {
		for _, item := range items {
			if err := asn1.Encode(e, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *Encoder) EncodeSequenceOf(_ asn1.Tag, _ asn1.Constraints, items []asn1.Encodable) error {
	return e.list(items)
}

func (e *Encoder) EncodeSetOf(_ asn1.Tag, _ asn1.Constraints, items []asn1.Encodable) error {
	return e.list(items)
}

func (e *Encoder) EncodeSome(tag asn1.Tag, c asn1.Constraints, v asn1.Encodable) error {
	return asn1.EncodeWithTagAndConstraints(e, v, tag, c)
}

// EncodeNone skips the next field.
func (e *Encoder) EncodeNone(asn1.Tag) error {
	_, err := e.cursor.Name("")
	return err
}

// EncodeChoice writes an object with a single member named after the alternative.
func (e *Encoder) EncodeChoice(_ asn1.Constraints, _ asn1.Tag, desc *asn1.Constructed, index int, fn func(asn1.Encoder) error) error {
	if index < 0 || index >= len(desc.Fields) {
		return e.fail(asn1.ErrInvalidValue, "%s has no alternative at index %d", desc.Identifier, index)
	}

	return e.open("{}", cursor.Scope{Fields: desc.Fields[index : index+1]}, func() error {
		return fn(e)
	})
}

func (e *Encoder) EncodeExtensionAddition(tag asn1.Tag, c asn1.Constraints, v asn1.Encodable) error {
	if v == nil {
		return e.EncodeNone(tag)
	}

	return e.EncodeSome(tag, c, v)
}

// EncodeExtensionAdditionGroup writes the fields of the group
// directly in the enclosing object.
func (e *Encoder) EncodeExtensionAdditionGroup(v asn1.ConstructedEncodable) error {
	if _, err := e.cursor.Name(""); err != nil {
		return err
	}
	if v == nil {
		return nil
	}

	e.inline = true
	err := v.EncodeASN1(e, v.ASN1Tag(), v.ASN1Constraints())
	e.inline = false
	return err
}
