package xer

import (
	"bytes"
	"encoding/hex"
	"encoding/xml"
	"io"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/ber"
	"github.com/chaisql/asn1/internal/cursor"
)

// EncoderOptions configures an Encoder.
type EncoderOptions struct {
	// Prolog writes an XML declaration before the value.
	Prolog bool
}

var _ asn1.Encoder = (*Encoder)(nil)

// Encoder is the XER implementation of asn1.Encoder.
// Empty elements are written in their self-closing form.
type Encoder struct {
	opts    EncoderOptions
	doc     *etree.Document
	parents []*etree.Element
	cursor  cursor.Cursor
	// inline is set while encoding an extension addition group,
	// whose fields are written in the enclosing element.
	inline bool
}

// NewEncoder creates an Encoder.
func NewEncoder(opts EncoderOptions) *Encoder {
	e := Encoder{
		opts: opts,
		doc:  etree.NewDocument(),
	}
	e.cursor.Fail = e.fail

	return &e
}

func (e *Encoder) fail(kind error, format string, args ...any) error {
	return asn1.NewEncodeError(asn1.CodecXER, kind, format, args...)
}

// Bytes returns the encoded document.
func (e *Encoder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := e.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteTo writes the encoded document to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	var n int64
	if e.opts.Prolog {
		m, err := io.WriteString(w, xml.Header[:len(xml.Header)-1])
		n += int64(m)
		if err != nil {
			return n, err
		}
	}

	m, err := e.doc.WriteTo(w)
	return n + m, err
}

func (e *Encoder) Codec() asn1.Codec {
	return asn1.CodecXER
}

// element creates an element in the current parent.
func (e *Encoder) element(name string) *etree.Element {
	if len(e.parents) == 0 {
		return e.doc.CreateElement(name)
	}

	return e.parents[len(e.parents)-1].CreateElement(name)
}

func (e *Encoder) parent() *etree.Element {
	if len(e.parents) == 0 {
		return &e.doc.Element
	}

	return e.parents[len(e.parents)-1]
}

// text writes an element named after the next field, or def, containing s.
// An empty s produces a self-closing element.
func (e *Encoder) text(def, s string) error {
	name, err := e.cursor.Name(def)
	if err != nil {
		return err
	}

	el := e.element(name)
	if s != "" {
		el.SetText(s)
	}

	return nil
}

// empty writes an element named after the next field, or def, containing
// an empty element named inner.
func (e *Encoder) empty(def, inner string) error {
	name, err := e.cursor.Name(def)
	if err != nil {
		return err
	}

	e.element(name).CreateElement(inner)
	return nil
}

// open writes an element named after the next field, or def,
// and makes it the parent of the next elements until fn returns.
func (e *Encoder) open(def string, s cursor.Scope, fn func() error) error {
	name, err := e.cursor.Name(def)
	if err != nil {
		return err
	}

	e.parents = append(e.parents, e.element(name))
	e.cursor.Push(s)

	err = fn()
	if perr := e.cursor.Pop(); err == nil {
		err = perr
	}
	e.parents = e.parents[:len(e.parents)-1]

	return err
}

func (e *Encoder) EncodeAny(_ asn1.Tag, v asn1.Any) error {
	if !e.cursor.InField() {
		return e.replay(e.parent(), v.Contents)
	}

	name, err := e.cursor.Name("")
	if err != nil {
		return err
	}

	return e.replay(e.element(name), v.Contents)
}

// replay parses an XER document and copies its tokens under parent.
func (e *Encoder) replay(parent *etree.Element, data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	stack := []*etree.Element{parent}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return e.fail(asn1.ErrSyntax, "invalid ANY value: %v", err)
		}

		cur := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == "xml" {
				return e.fail(asn1.ErrSpecViolation, "ANY value must not contain an XML declaration")
			}
			cur.CreateProcInst(t.Target, string(t.Inst))
		case xml.StartElement:
			el := cur.CreateElement(t.Name.Local)
			for _, a := range t.Attr {
				el.CreateAttr(a.Name.Local, a.Value)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			cur.CreateText(string(t))
		case xml.Comment:
			cur.CreateComment(string(t))
		}
	}

	return nil
}

func (e *Encoder) EncodeBool(_ asn1.Tag, v bool) error {
	if v {
		return e.empty(booleanName, trueName)
	}

	return e.empty(booleanName, falseName)
}

func (e *Encoder) EncodeBitString(_ asn1.Tag, _ asn1.Constraints, v asn1.BitString) error {
	return e.text(bitStringName, v.String())
}

func (e *Encoder) EncodeEnumerated(_ asn1.Tag, enum *asn1.Enumeration, index int) error {
	if index < 0 || index >= len(enum.Variants) {
		return e.fail(asn1.ErrInvalidValue, "%s has no variant at index %d", enum.Identifier, index)
	}

	return e.empty(enum.Identifier, enum.Variants[index].Identifier)
}

func (e *Encoder) EncodeObjectIdentifier(_ asn1.Tag, v asn1.ObjectIdentifier) error {
	return e.text(objectIdName, v.String())
}

func (e *Encoder) EncodeInteger(_ asn1.Tag, _ asn1.Constraints, v *big.Int) error {
	return e.text(integerName, v.String())
}

func (e *Encoder) EncodeNull(asn1.Tag) error {
	return e.text(nullName, "")
}

func (e *Encoder) EncodeOctetString(_ asn1.Tag, _ asn1.Constraints, v []byte) error {
	return e.text(octetStringName, strings.ToUpper(hex.EncodeToString(v)))
}

func (e *Encoder) str(def, s string) error {
	for i, r := range s {
		if !isXMLChar(r) {
			return e.fail(asn1.ErrInvalidValue, "character %U at offset %d can't be represented in XML", r, i)
		}
	}

	return e.text(def, s)
}

// isXMLChar reports whether r is allowed in XML 1.0 documents.
func isXMLChar(r rune) bool {
	switch {
	case r == utf8.RuneError:
		return false
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r < 0x20:
		return false
	case r >= 0xFFFE && r <= 0xFFFF:
		return false
	}

	return true
}

func (e *Encoder) EncodeGeneralString(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(generalStringName, v)
}

func (e *Encoder) EncodeUTF8String(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(utf8StringName, v)
}

func (e *Encoder) EncodeVisibleString(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(visibleStringName, v)
}

func (e *Encoder) EncodeIA5String(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(ia5StringName, v)
}

func (e *Encoder) EncodePrintableString(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(printableStringName, v)
}

func (e *Encoder) EncodeNumericString(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(numericStringName, v)
}

func (e *Encoder) EncodeTeletexString(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(teletexStringName, v)
}

func (e *Encoder) EncodeBMPString(_ asn1.Tag, _ asn1.Constraints, v string) error {
	return e.str(bmpStringName, v)
}

func (e *Encoder) EncodeGeneralizedTime(_ asn1.Tag, v time.Time) error {
	return e.text(generalizedTimeName, ber.FormatGeneralizedTime(v))
}

func (e *Encoder) EncodeUTCTime(_ asn1.Tag, v time.Time) error {
	return e.text(utcTimeName, ber.FormatUTCTime(v))
}

// EncodeExplicitPrefix encodes v. Tags are not written in XER.
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

	return e.open(desc.Identifier, cursor.Scope{Fields: desc.Fields}, func() error {
		return fn(e)
	})
}

func (e *Encoder) EncodeSet(tag asn1.Tag, desc *asn1.Constructed, fn func(asn1.Encoder) error) error {
	return e.EncodeSequence(tag, desc, fn)
}

func (e *Encoder) list(def string, items []asn1.Encodable) error {
	return e.open(def, cursor.Scope{Items: true}, func() error {
		for _, item := range items {
			if err := asn1.Encode(e, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *Encoder) EncodeSequenceOf(_ asn1.Tag, _ asn1.Constraints, items []asn1.Encodable) error {
	return e.list(sequenceOfName, items)
}

func (e *Encoder) EncodeSetOf(_ asn1.Tag, _ asn1.Constraints, items []asn1.Encodable) error {
	return e.list(setOfName, items)
}

func (e *Encoder) EncodeSome(tag asn1.Tag, c asn1.Constraints, v asn1.Encodable) error {
	return asn1.EncodeWithTagAndConstraints(e, v, tag, c)
}

// EncodeNone skips the next field.
func (e *Encoder) EncodeNone(asn1.Tag) error {
	_, err := e.cursor.Name("")
	return err
}

// EncodeChoice writes an element named after the field or the CHOICE type,
// containing an element named after the alternative.
func (e *Encoder) EncodeChoice(_ asn1.Constraints, _ asn1.Tag, desc *asn1.Constructed, index int, fn func(asn1.Encoder) error) error {
	if index < 0 || index >= len(desc.Fields) {
		return e.fail(asn1.ErrInvalidValue, "%s has no alternative at index %d", desc.Identifier, index)
	}

	return e.open(desc.Identifier, cursor.Scope{Fields: desc.Fields[index : index+1]}, func() error {
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
// directly in the enclosing element.
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
