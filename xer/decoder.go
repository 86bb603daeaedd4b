package xer

import (
	"bytes"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"
	"unicode"

	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/ber"
	"github.com/chaisql/asn1/internal/cursor"
	"github.com/cockroachdb/errors"
)

var _ asn1.Decoder = (*Decoder)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder is the XER implementation of asn1.Decoder.
// It reads one token ahead of the value being decoded.
type Decoder struct {
	r      *xml.Decoder
	next   xml.Token
	eof    bool
	cursor cursor.Cursor
	inline bool
}

// NewDecoder validates the XML declaration of data, if any,
// and returns a Decoder positioned on the first token.
func NewDecoder(data []byte) (*Decoder, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	d := Decoder{
		r: xml.NewDecoder(bytes.NewReader(data)),
	}
	d.cursor.Fail = d.fail

	if err := d.checkProlog(data); err != nil {
		return nil, err
	}

	if err := d.fill(); err != nil {
		return nil, err
	}

	return &d, nil
}

func (d *Decoder) fail(kind error, format string, args ...any) error {
	return asn1.NewDecodeError(asn1.CodecXER, kind, format, args...)
}

// checkProlog validates the XML declaration, which must declare version 1.0
// and, if it declares an encoding, UTF-8. Leading white space is ignored.
func (d *Decoder) checkProlog(data []byte) error {
	data = bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(data, []byte("<?xml")) || len(data) < 6 || !isSpace(data[5]) {
		return nil
	}

	end := bytes.Index(data, []byte("?>"))
	if end < 0 {
		return d.fail(asn1.ErrSyntax, "unterminated XML declaration")
	}
	decl := string(data[5:end])

	version, _ := pseudoAttr(decl, "version")
	if version != "1.0" {
		return d.fail(asn1.ErrSpecViolation, "X.693 §8.2: XML version must be 1.0, found %q", version)
	}

	if enc, ok := pseudoAttr(decl, "encoding"); ok && enc != "UTF-8" {
		return d.fail(asn1.ErrSpecViolation, "X.693 §8.2: XML encoding must be UTF-8, found %q", enc)
	}

	return nil
}

// pseudoAttr returns the value of the named pseudo-attribute of an XML declaration.
func pseudoAttr(decl, name string) (string, bool) {
	i := strings.Index(decl, name)
	if i < 0 {
		return "", false
	}

	s := strings.TrimLeft(decl[i+len(name):], " \t\r\n")
	if !strings.HasPrefix(s, "=") {
		return "", false
	}
	s = strings.TrimLeft(s[1:], " \t\r\n")
	if s == "" || (s[0] != '"' && s[0] != '\'') {
		return "", false
	}

	q := s[0]
	end := strings.IndexByte(s[1:], q)
	if end < 0 {
		return "", false
	}

	return s[1 : end+1], true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isBlank(b []byte) bool {
	return len(bytes.TrimFunc(b, unicode.IsSpace)) == 0
}

// fill reads the next meaningful token into d.next.
// Comments, processing instructions and directives are skipped.
func (d *Decoder) fill() error {
	for {
		tok, err := d.r.Token()
		if err == io.EOF {
			d.next = nil
			d.eof = true
			return nil
		}
		if err != nil {
			var serr *xml.SyntaxError
			if errors.As(err, &serr) && serr.Msg == "unexpected EOF" {
				return asn1.EndOfInputError(asn1.CodecXER)
			}
			return d.fail(asn1.ErrSyntax, "%v", err)
		}

		switch tok.(type) {
		case xml.Comment, xml.ProcInst, xml.Directive:
			continue
		}

		d.next = xml.CopyToken(tok)
		return nil
	}
}

// peek returns the next token without consuming it.
func (d *Decoder) peek() (xml.Token, error) {
	if d.eof {
		return nil, asn1.EndOfInputError(asn1.CodecXER)
	}

	return d.next, nil
}

// consume drops the next token and reads the following one.
func (d *Decoder) consume() error {
	return d.fill()
}

// peekElement returns the next token that is not blank character data.
func (d *Decoder) peekElement() (xml.Token, error) {
	for {
		tok, err := d.peek()
		if err != nil {
			return nil, err
		}

		if cd, ok := tok.(xml.CharData); ok && isBlank(cd) {
			if err := d.consume(); err != nil {
				return nil, err
			}
			continue
		}

		return tok, nil
	}
}

func describe(tok xml.Token) string {
	switch t := tok.(type) {
	case xml.StartElement:
		return "<" + t.Name.Local + ">"
	case xml.EndElement:
		return "</" + t.Name.Local + ">"
	case xml.CharData:
		return fmt.Sprintf("text %q", string(t))
	case nil:
		return "end of input"
	}

	return fmt.Sprintf("%T", tok)
}

func (d *Decoder) mismatch(needed string, found xml.Token) error {
	return asn1.TypeMismatchError(asn1.CodecXER, needed, describe(found))
}

// startElement consumes the start element named name.
func (d *Decoder) startElement(name string) error {
	tok, err := d.peekElement()
	if err != nil {
		return err
	}

	se, ok := tok.(xml.StartElement)
	if !ok || se.Name.Local != name {
		return d.mismatch("<"+name+">", tok)
	}

	return d.consume()
}

// endElement consumes the end element named name.
func (d *Decoder) endElement(name string) error {
	tok, err := d.peekElement()
	if err != nil {
		return err
	}

	ee, ok := tok.(xml.EndElement)
	if !ok || ee.Name.Local != name {
		return d.mismatch("</"+name+">", tok)
	}

	return d.consume()
}

// text reads an element named after the next field, or def, and returns
// its character data. An empty element returns the empty string.
func (d *Decoder) text(def string) (string, error) {
	name, err := d.cursor.Name(def)
	if err != nil {
		return "", err
	}

	if err := d.startElement(name); err != nil {
		return "", err
	}

	var sb strings.Builder
	for {
		tok, err := d.peek()
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
			if err := d.consume(); err != nil {
				return "", err
			}
			continue
		case xml.EndElement:
			if err := d.endElement(name); err != nil {
				return "", err
			}
			return sb.String(), nil
		}

		return "", d.mismatch("text", tok)
	}
}

// empty reads an element named after the next field, or def, containing
// one empty element, and returns the name of the inner element.
func (d *Decoder) empty(def string) (string, error) {
	name, err := d.cursor.Name(def)
	if err != nil {
		return "", err
	}

	if err := d.startElement(name); err != nil {
		return "", err
	}

	tok, err := d.peekElement()
	if err != nil {
		return "", err
	}

	var inner string
	switch t := tok.(type) {
	case xml.StartElement:
		inner = t.Name.Local
		if err := d.consume(); err != nil {
			return "", err
		}
		if err := d.endElement(inner); err != nil {
			return "", err
		}
	case xml.CharData:
		inner = strings.TrimSpace(string(t))
		if err := d.consume(); err != nil {
			return "", err
		}
	default:
		return "", d.mismatch("<"+name+"> content", tok)
	}

	if err := d.endElement(name); err != nil {
		return "", err
	}

	return inner, nil
}

// enter reads the start element named after the next field, or def,
// and calls fn until its end element.
func (d *Decoder) enter(def string, s cursor.Scope, fn func(name string) error) error {
	name, err := d.cursor.Name(def)
	if err != nil {
		return err
	}

	if err := d.startElement(name); err != nil {
		return err
	}

	d.cursor.Push(s)
	err = fn(name)
	if perr := d.cursor.Pop(); err == nil {
		err = perr
	}
	if err != nil {
		return err
	}

	return d.endElement(name)
}

// skipElement consumes the next element, including its content.
func (d *Decoder) skipElement() error {
	depth := 0
	for {
		tok, err := d.peek()
		if err != nil {
			return err
		}

		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}

		if err := d.consume(); err != nil {
			return err
		}
		if depth == 0 {
			return nil
		}
	}
}

// skipUnknown skips the remaining elements of an extensible value.
func (d *Decoder) skipUnknown() error {
	for {
		tok, err := d.peekElement()
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); !ok {
			return nil
		}

		if err := d.skipElement(); err != nil {
			return err
		}
	}
}

// nextIs reports whether the next token starts an element named name.
func (d *Decoder) nextIs(name string) (bool, error) {
	tok, err := d.peekElement()
	if err != nil {
		if asn1.IsEndOfInput(err) {
			return false, nil
		}
		return false, err
	}

	se, ok := tok.(xml.StartElement)
	return ok && se.Name.Local == name, nil
}

// Close returns an error if the input contains anything after the decoded value.
func (d *Decoder) Close() error {
	tok, err := d.peekElement()
	if err != nil {
		if asn1.IsEndOfInput(err) {
			return nil
		}
		return err
	}

	return d.fail(asn1.ErrTrailingData, "found %s", describe(tok))
}

func (d *Decoder) Codec() asn1.Codec {
	return asn1.CodecXER
}

// DecodeAny returns the content of the element named after the field,
// or the whole next element outside of a constructed value.
func (d *Decoder) DecodeAny(asn1.Tag) (asn1.Any, error) {
	if !d.cursor.InField() {
		data, err := d.capture()
		return asn1.Any{Contents: data}, err
	}

	name, err := d.cursor.Name("")
	if err != nil {
		return asn1.Any{}, err
	}
	if err := d.startElement(name); err != nil {
		return asn1.Any{}, err
	}

	var buf bytes.Buffer
	for {
		tok, err := d.peekElement()
		if err != nil {
			return asn1.Any{}, err
		}
		if _, ok := tok.(xml.EndElement); ok {
			break
		}

		data, err := d.capture()
		if err != nil {
			return asn1.Any{}, err
		}
		buf.Write(data)
	}

	if err := d.endElement(name); err != nil {
		return asn1.Any{}, err
	}

	return asn1.Any{Contents: buf.Bytes()}, nil
}

// capture consumes the next element and returns its XML encoding.
func (d *Decoder) capture() ([]byte, error) {
	tok, err := d.peekElement()
	if err != nil {
		return nil, err
	}
	if _, ok := tok.(xml.StartElement); !ok {
		return nil, d.mismatch("element", tok)
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	depth := 0
	for {
		tok, err := d.peek()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			t.Name.Space = ""
			tok = t
		case xml.EndElement:
			depth--
			t.Name.Space = ""
			tok = t
		}

		if err := enc.EncodeToken(tok); err != nil {
			return nil, d.fail(asn1.ErrSyntax, "%v", err)
		}
		if err := d.consume(); err != nil {
			return nil, err
		}
		if depth == 0 {
			break
		}
	}

	if err := enc.Flush(); err != nil {
		return nil, d.fail(asn1.ErrSyntax, "%v", err)
	}

	return buf.Bytes(), nil
}

func (d *Decoder) DecodeBool(asn1.Tag) (bool, error) {
	v, err := d.empty(booleanName)
	if err != nil {
		return false, err
	}

	switch v {
	case trueName:
		return true, nil
	case falseName:
		return false, nil
	}

	return false, asn1.TypeMismatchError(asn1.CodecXER, "true or false", v)
}

func (d *Decoder) DecodeBitString(asn1.Tag, asn1.Constraints) (asn1.BitString, error) {
	s, err := d.text(bitStringName)
	if err != nil {
		return asn1.BitString{}, err
	}

	var b asn1.BitString
	for _, r := range s {
		switch {
		case r == '0':
			b.Append(false)
		case r == '1':
			b.Append(true)
		case unicode.IsSpace(r):
		default:
			return asn1.BitString{}, d.fail(asn1.ErrSpecViolation, "X.693 §12.11: invalid character %q in bit string", r)
		}
	}

	return b, nil
}

func (d *Decoder) DecodeEnumerated(_ asn1.Tag, enum *asn1.Enumeration) (int, error) {
	v, err := d.empty(enum.Identifier)
	if err != nil {
		return 0, err
	}

	i := enum.IndexOf(v)
	if i < 0 {
		return 0, asn1.TypeMismatchError(asn1.CodecXER, "variant of "+enum.Identifier, v)
	}

	return i, nil
}

func (d *Decoder) DecodeObjectIdentifier(asn1.Tag) (asn1.ObjectIdentifier, error) {
	s, err := d.text(objectIdName)
	if err != nil {
		return nil, err
	}

	oid, err := asn1.ParseObjectIdentifier(s)
	if err != nil {
		return nil, d.fail(asn1.ErrSpecViolation, "%v", err)
	}

	return oid, nil
}

func (d *Decoder) DecodeInteger(asn1.Tag, asn1.Constraints) (*big.Int, error) {
	s, err := d.text(integerName)
	if err != nil {
		return nil, err
	}

	x, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, asn1.TypeMismatchError(asn1.CodecXER, "integer", fmt.Sprintf("%q", s))
	}

	return x, nil
}

func (d *Decoder) DecodeNull(asn1.Tag) error {
	s, err := d.text(nullName)
	if err != nil {
		return err
	}
	if strings.TrimSpace(s) != "" {
		return asn1.TypeMismatchError(asn1.CodecXER, "empty element", fmt.Sprintf("%q", s))
	}

	return nil
}

func (d *Decoder) DecodeOctetString(asn1.Tag, asn1.Constraints) ([]byte, error) {
	s, err := d.text(octetStringName)
	if err != nil {
		return nil, err
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, d.fail(asn1.ErrSpecViolation, "invalid octet string: %v", err)
	}

	return b, nil
}

func (d *Decoder) DecodeGeneralString(asn1.Tag, asn1.Constraints) (string, error) {
	return d.text(generalStringName)
}

func (d *Decoder) DecodeUTF8String(asn1.Tag, asn1.Constraints) (string, error) {
	return d.text(utf8StringName)
}

func (d *Decoder) DecodeVisibleString(asn1.Tag, asn1.Constraints) (string, error) {
	return d.text(visibleStringName)
}

func (d *Decoder) DecodeIA5String(asn1.Tag, asn1.Constraints) (string, error) {
	return d.text(ia5StringName)
}

func (d *Decoder) DecodePrintableString(asn1.Tag, asn1.Constraints) (string, error) {
	return d.text(printableStringName)
}

func (d *Decoder) DecodeNumericString(asn1.Tag, asn1.Constraints) (string, error) {
	return d.text(numericStringName)
}

func (d *Decoder) DecodeTeletexString(asn1.Tag, asn1.Constraints) (string, error) {
	return d.text(teletexStringName)
}

func (d *Decoder) DecodeBMPString(asn1.Tag, asn1.Constraints) (string, error) {
	return d.text(bmpStringName)
}

func (d *Decoder) DecodeGeneralizedTime(asn1.Tag) (time.Time, error) {
	s, err := d.text(generalizedTimeName)
	if err != nil {
		return time.Time{}, err
	}

	t, err := ber.ParseGeneralizedTime(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, d.fail(asn1.ErrSpecViolation, "%v", err)
	}

	return t, nil
}

func (d *Decoder) DecodeUTCTime(asn1.Tag) (time.Time, error) {
	s, err := d.text(utcTimeName)
	if err != nil {
		return time.Time{}, err
	}

	t, err := ber.ParseUTCTime(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, d.fail(asn1.ErrSpecViolation, "%v", err)
	}

	return t, nil
}

// DecodeExplicitPrefix decodes v. Tags are not written in XER.
func (d *Decoder) DecodeExplicitPrefix(_ asn1.Tag, v asn1.Decodable) error {
	return asn1.Decode(d, v)
}

func (d *Decoder) DecodeSequence(_ asn1.Tag, desc *asn1.Constructed, fn func(asn1.Decoder) error) error {
	if d.inline {
		d.inline = false
		d.cursor.Push(cursor.Scope{Fields: desc.Fields})
		err := fn(d)
		if perr := d.cursor.Pop(); err == nil {
			err = perr
		}
		return err
	}

	return d.enter(desc.Identifier, cursor.Scope{Fields: desc.Fields}, func(string) error {
		if err := fn(d); err != nil {
			return err
		}
		if desc.Extensible {
			return d.skipUnknown()
		}
		return nil
	})
}

func (d *Decoder) DecodeSet(_ asn1.Tag, desc *asn1.Constructed, fn func(asn1.Decoder, int) error) error {
	return d.enter(desc.Identifier, cursor.Scope{Fields: desc.Fields, Unordered: true}, func(string) error {
		seen := make([]bool, len(desc.Fields))

		for {
			tok, err := d.peekElement()
			if err != nil {
				return err
			}
			se, ok := tok.(xml.StartElement)
			if !ok {
				break
			}

			i := desc.FieldIndex(se.Name.Local)
			if i < 0 {
				if !desc.Extensible {
					return d.mismatch("member of "+desc.Identifier, tok)
				}
				if err := d.skipElement(); err != nil {
					return err
				}
				continue
			}
			if seen[i] {
				return d.fail(asn1.ErrSpecViolation, "duplicate member %s in %s", se.Name.Local, desc.Identifier)
			}
			seen[i] = true

			d.cursor.Top().Next = i
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

func (d *Decoder) list(def string, item func(asn1.Decoder) error) error {
	return d.enter(def, cursor.Scope{Items: true}, func(string) error {
		for {
			tok, err := d.peekElement()
			if err != nil {
				return err
			}
			if _, ok := tok.(xml.EndElement); ok {
				return nil
			}

			if err := item(d); err != nil {
				return err
			}
		}
	})
}

func (d *Decoder) DecodeSequenceOf(_ asn1.Tag, _ asn1.Constraints, item func(asn1.Decoder) error) error {
	return d.list(sequenceOfName, item)
}

func (d *Decoder) DecodeSetOf(_ asn1.Tag, _ asn1.Constraints, item func(asn1.Decoder) error) error {
	return d.list(setOfName, item)
}

// DecodeOptional decodes v if the next element is named after the current field.
func (d *Decoder) DecodeOptional(tag asn1.Tag, c asn1.Constraints, v asn1.Decodable) (bool, error) {
	if !d.cursor.InField() {
		return true, asn1.DecodeWithTagAndConstraints(d, v, tag, c)
	}

	f, err := d.cursor.PeekField()
	if err != nil {
		return false, err
	}

	ok, err := d.nextIs(f.Name)
	if err != nil {
		return false, err
	}
	if !ok {
		d.cursor.Top().Next++
		return false, nil
	}

	return true, asn1.DecodeWithTagAndConstraints(d, v, tag, c)
}

func (d *Decoder) DecodeChoice(_ asn1.Constraints, _ asn1.Tag, desc *asn1.Constructed, fn func(asn1.Decoder, int) error) error {
	name, err := d.cursor.Name(desc.Identifier)
	if err != nil {
		return err
	}
	if err := d.startElement(name); err != nil {
		return err
	}

	tok, err := d.peekElement()
	if err != nil {
		return err
	}
	se, ok := tok.(xml.StartElement)
	if !ok {
		return d.mismatch("alternative of "+desc.Identifier, tok)
	}
	i := desc.FieldIndex(se.Name.Local)
	if i < 0 {
		return d.mismatch("alternative of "+desc.Identifier, tok)
	}

	d.cursor.Push(cursor.Scope{Fields: desc.Fields[i : i+1]})
	err = fn(d, i)
	if perr := d.cursor.Pop(); err == nil {
		err = perr
	}
	if err != nil {
		return err
	}

	return d.endElement(name)
}

func (d *Decoder) DecodeExtensionAddition(tag asn1.Tag, c asn1.Constraints, v asn1.Decodable) (bool, error) {
	return d.DecodeOptional(tag, c, v)
}

// DecodeExtensionAdditionGroup decodes the fields of the group from the
// enclosing element. The group is present if the next element is one of its fields.
func (d *Decoder) DecodeExtensionAdditionGroup(v asn1.ConstructedDecodable) (bool, error) {
	if _, err := d.cursor.Name(""); err != nil {
		return false, err
	}

	present := false
	for _, f := range v.ASN1Descriptor().Fields {
		ok, err := d.nextIs(f.Name)
		if err != nil {
			return false, err
		}
		if ok {
			present = true
			break
		}
	}
	if !present {
		return false, nil
	}

	d.inline = true
	err := v.DecodeASN1(d, v.ASN1Tag(), v.ASN1Constraints())
	d.inline = false
	return err == nil, err
}
