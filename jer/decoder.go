package jer

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"time"

	"github.com/buger/jsonparser"
	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/ber"
	"github.com/chaisql/asn1/internal/cursor"
)

var _ asn1.Decoder = (*Decoder)(nil)

// value is a JSON value. The data of strings is kept without quotes,
// and still escaped.
type value struct {
	data []byte
	typ  jsonparser.ValueType
}

// frame is an object or an array being decoded.
type frame struct {
	value
	// items holds the elements of an array not decoded yet.
	items []value
	// used records the members of an object already decoded.
	used map[string]bool
}

func (f *frame) has(name string) bool {
	_, _, _, err := jsonparser.Get(f.data, name)
	return err == nil
}

func (f *frame) member(name string) (value, bool) {
	data, typ, _, err := jsonparser.Get(f.data, name)
	if err != nil {
		return value{}, false
	}

	f.used[name] = true
	return value{data: data, typ: typ}, true
}

// Decoder is the JER implementation of asn1.Decoder.
type Decoder struct {
	data []byte
	root value
	// end is the offset following the root value.
	end    int
	done   bool
	frames []*frame
	cursor cursor.Cursor
	inline bool
}

// NewDecoder creates a Decoder reading the JSON value held by data.
func NewDecoder(data []byte) (*Decoder, error) {
	d := Decoder{data: data}
	d.cursor.Fail = d.fail

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, asn1.EndOfInputError(asn1.CodecJER)
	}

	v, typ, end, err := jsonparser.Get(data)
	if err != nil {
		return nil, d.fail(asn1.ErrSyntax, "%v", err)
	}

	d.root = value{data: v, typ: typ}
	d.end = end
	return &d, nil
}

// Close returns an error if some data follows the decoded value.
func (d *Decoder) Close() error {
	if rest := bytes.TrimSpace(d.data[d.end:]); len(rest) > 0 {
		return d.fail(asn1.ErrTrailingData, "%d bytes left", len(rest))
	}

	return nil
}

func (d *Decoder) Codec() asn1.Codec {
	return asn1.CodecJER
}

func (d *Decoder) fail(kind error, format string, args ...any) error {
	return asn1.NewDecodeError(asn1.CodecJER, kind, format, args...)
}

func (d *Decoder) top() *frame {
	return d.frames[len(d.frames)-1]
}

// next returns the value to decode: the root value, the member named after
// the next field or the next element of an array.
func (d *Decoder) next() (value, error) {
	if len(d.frames) == 0 {
		if d.done {
			return value{}, asn1.EndOfInputError(asn1.CodecJER)
		}
		d.done = true
		return d.root, nil
	}

	f := d.top()
	if !d.cursor.InField() {
		if len(f.items) == 0 {
			return value{}, asn1.EndOfInputError(asn1.CodecJER)
		}
		v := f.items[0]
		f.items = f.items[1:]
		return v, nil
	}

	name, err := d.cursor.Name("")
	if err != nil {
		return value{}, err
	}

	v, ok := f.member(name)
	if !ok {
		return value{}, d.fail(asn1.ErrMissingField, "member %q not found", name)
	}

	return v, nil
}

// nextOf returns the next value, which must be of type typ.
func (d *Decoder) nextOf(typ jsonparser.ValueType) (value, error) {
	v, err := d.next()
	if err != nil {
		return value{}, err
	}
	if v.typ != typ {
		return value{}, asn1.TypeMismatchError(asn1.CodecJER, typ.String(), v.typ.String())
	}

	return v, nil
}

func (d *Decoder) str() (string, error) {
	v, err := d.nextOf(jsonparser.String)
	if err != nil {
		return "", err
	}

	s, err := jsonparser.ParseString(v.data)
	if err != nil {
		return "", d.fail(asn1.ErrSyntax, "%v", err)
	}

	return s, nil
}

// enter decodes the members of the next value, which must be an object or an array.
func (d *Decoder) enter(typ jsonparser.ValueType, s cursor.Scope, fn func(f *frame) error) error {
	v, err := d.nextOf(typ)
	if err != nil {
		return err
	}

	f := frame{value: v, used: make(map[string]bool)}
	if typ == jsonparser.Array {
		_, err = jsonparser.ArrayEach(v.data, func(data []byte, typ jsonparser.ValueType, _ int, _ error) {
			f.items = append(f.items, value{data: data, typ: typ})
		})
		if err != nil {
			return d.fail(asn1.ErrSyntax, "%v", err)
		}
	}

	return d.push(&f, s, func() error {
		return fn(&f)
	})
}

func (d *Decoder) push(f *frame, s cursor.Scope, fn func() error) error {
	d.frames = append(d.frames, f)
	d.cursor.Push(s)

	err := fn()
	if perr := d.cursor.Pop(); err == nil {
		err = perr
	}
	d.frames = d.frames[:len(d.frames)-1]

	return err
}

// keys returns the member names of an object, in order.
func (d *Decoder) keys(f *frame) ([]string, error) {
	var keys []string
	err := jsonparser.ObjectEach(f.data, func(key []byte, _ []byte, _ jsonparser.ValueType, _ int) error {
		k, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		keys = append(keys, k)
		return nil
	})
	if err != nil {
		return nil, d.fail(asn1.ErrSyntax, "%v", err)
	}

	return keys, nil
}

func (d *Decoder) DecodeAny(asn1.Tag) (asn1.Any, error) {
	v, err := d.next()
	if err != nil {
		return asn1.Any{}, err
	}

	if v.typ == jsonparser.String {
		contents := make([]byte, 0, len(v.data)+2)
		contents = append(contents, '"')
		contents = append(contents, v.data...)
		return asn1.Any{Contents: append(contents, '"')}, nil
	}

	return asn1.Any{Contents: append([]byte(nil), v.data...)}, nil
}

func (d *Decoder) DecodeBool(asn1.Tag) (bool, error) {
	v, err := d.nextOf(jsonparser.Boolean)
	if err != nil {
		return false, err
	}

	b, err := jsonparser.ParseBoolean(v.data)
	if err != nil {
		return false, d.fail(asn1.ErrSyntax, "%v", err)
	}

	return b, nil
}

func (d *Decoder) DecodeBitString(asn1.Tag, asn1.Constraints) (asn1.BitString, error) {
	v, err := d.nextOf(jsonparser.Object)
	if err != nil {
		return asn1.BitString{}, err
	}

	s, err := jsonparser.GetString(v.data, bitStringValue)
	if err != nil {
		return asn1.BitString{}, d.fail(asn1.ErrSpecViolation, "bit string %q member: %v", bitStringValue, err)
	}
	n, err := jsonparser.GetInt(v.data, bitStringLength)
	if err != nil {
		return asn1.BitString{}, d.fail(asn1.ErrSpecViolation, "bit string %q member: %v", bitStringLength, err)
	}

	data, err := hex.DecodeString(s)
	if err != nil {
		return asn1.BitString{}, d.fail(asn1.ErrSpecViolation, "bit string value: %v", err)
	}
	if n < 0 || n > int64(len(data))*8 || (len(data) > 0 && n <= int64(len(data))*8-8) {
		return asn1.BitString{}, d.fail(asn1.ErrSpecViolation, "bit string length %d doesn't match %d bytes", n, len(data))
	}

	return asn1.BitStringFromBytes(data, int(n)), nil
}

func (d *Decoder) DecodeEnumerated(_ asn1.Tag, enum *asn1.Enumeration) (int, error) {
	s, err := d.str()
	if err != nil {
		return 0, err
	}

	i := enum.IndexOf(s)
	if i < 0 {
		return 0, asn1.TypeMismatchError(asn1.CodecJER, "variant of "+enum.Identifier, s)
	}

	return i, nil
}

func (d *Decoder) DecodeObjectIdentifier(asn1.Tag) (asn1.ObjectIdentifier, error) {
	s, err := d.str()
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
	v, err := d.nextOf(jsonparser.Number)
	if err != nil {
		return nil, err
	}

	x, ok := new(big.Int).SetString(string(v.data), 10)
	if !ok {
		return nil, d.fail(asn1.ErrSpecViolation, "%s is not an integer", v.data)
	}

	return x, nil
}

func (d *Decoder) DecodeNull(asn1.Tag) error {
	_, err := d.nextOf(jsonparser.Null)
	return err
}

func (d *Decoder) DecodeOctetString(asn1.Tag, asn1.Constraints) ([]byte, error) {
	s, err := d.str()
	if err != nil {
		return nil, err
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, d.fail(asn1.ErrSpecViolation, "octet string: %v", err)
	}

	return b, nil
}

func (d *Decoder) DecodeGeneralString(asn1.Tag, asn1.Constraints) (string, error) {
	return d.str()
}

func (d *Decoder) DecodeUTF8String(asn1.Tag, asn1.Constraints) (string, error) {
	return d.str()
}

func (d *Decoder) DecodeVisibleString(asn1.Tag, asn1.Constraints) (string, error) {
	return d.str()
}

func (d *Decoder) DecodeIA5String(asn1.Tag, asn1.Constraints) (string, error) {
	return d.str()
}

func (d *Decoder) DecodePrintableString(asn1.Tag, asn1.Constraints) (string, error) {
	return d.str()
}

func (d *Decoder) DecodeNumericString(asn1.Tag, asn1.Constraints) (string, error) {
	return d.str()
}

func (d *Decoder) DecodeTeletexString(asn1.Tag, asn1.Constraints) (string, error) {
	return d.str()
}

func (d *Decoder) DecodeBMPString(asn1.Tag, asn1.Constraints) (string, error) {
	return d.str()
}

func (d *Decoder) DecodeGeneralizedTime(asn1.Tag) (time.Time, error) {
	s, err := d.str()
	if err != nil {
		return time.Time{}, err
	}

	t, err := ber.ParseGeneralizedTime(s)
	if err != nil {
		return time.Time{}, d.fail(asn1.ErrSpecViolation, "%v", err)
	}

	return t, nil
}

func (d *Decoder) DecodeUTCTime(asn1.Tag) (time.Time, error) {
	s, err := d.str()
	if err != nil {
		return time.Time{}, err
	}

	t, err := ber.ParseUTCTime(s)
	if err != nil {
		return time.Time{}, d.fail(asn1.ErrSpecViolation, "%v", err)
	}

	return t, nil
}

// DecodeExplicitPrefix decodes v. Tags are not written in JER.
func (d *Decoder) DecodeExplicitPrefix(_ asn1.Tag, v asn1.Decodable) error {
	return asn1.Decode(d, v)
}

func (d *Decoder) DecodeSequence(_ asn1.Tag, desc *asn1.Constructed, fn func(asn1.Decoder) error) error {
	if d.inline {
		d.inline = false
		return d.push(d.top(), cursor.Scope{Fields: desc.Fields}, func() error {
			return fn(d)
		})
	}

	return d.enter(jsonparser.Object, cursor.Scope{Fields: desc.Fields}, func(f *frame) error {
		if err := fn(d); err != nil {
			return err
		}
		if desc.Extensible {
			return nil
		}

		keys, err := d.keys(f)
		if err != nil {
			return err
		}
		for _, k := range keys {
			if !f.used[k] {
				return asn1.TypeMismatchError(asn1.CodecJER, "member of "+desc.Identifier, k)
			}
		}
		return nil
	})
}

func (d *Decoder) DecodeSet(_ asn1.Tag, desc *asn1.Constructed, fn func(asn1.Decoder, int) error) error {
	return d.enter(jsonparser.Object, cursor.Scope{Fields: desc.Fields, Unordered: true}, func(f *frame) error {
		keys, err := d.keys(f)
		if err != nil {
			return err
		}

		seen := make([]bool, len(desc.Fields))
		for _, k := range keys {
			i := desc.FieldIndex(k)
			if i < 0 {
				if desc.Extensible {
					continue
				}
				return asn1.TypeMismatchError(asn1.CodecJER, "member of "+desc.Identifier, k)
			}
			if seen[i] {
				return d.fail(asn1.ErrSpecViolation, "duplicate member %q in %s", k, desc.Identifier)
			}
			seen[i] = true

			d.cursor.Top().Next = i
			if err := fn(d, i); err != nil {
				return err
			}
		}

		for i, field := range desc.Fields {
			if !seen[i] && !field.Absentable() {
				return d.fail(asn1.ErrMissingField, "%s.%s", desc.Identifier, field.Name)
			}
		}
		return nil
	})
}

func (d *Decoder) list(item func(asn1.Decoder) error) error {
	return d.enter(jsonparser.Array, cursor.Scope{Items: true}, func(f *frame) error {
		for len(f.items) > 0 {
			if err := item(d); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Decoder) DecodeSequenceOf(_ asn1.Tag, _ asn1.Constraints, item func(asn1.Decoder) error) error {
	return d.list(item)
}

func (d *Decoder) DecodeSetOf(_ asn1.Tag, _ asn1.Constraints, item func(asn1.Decoder) error) error {
	return d.list(item)
}

// DecodeOptional decodes v if the object holds a member named after the next field.
func (d *Decoder) DecodeOptional(tag asn1.Tag, c asn1.Constraints, v asn1.Decodable) (bool, error) {
	if d.cursor.InField() {
		f, err := d.cursor.PeekField()
		if err != nil {
			return false, err
		}
		if !d.top().has(f.Name) {
			d.cursor.Top().Next++
			return false, nil
		}
	}

	return true, asn1.DecodeWithTagAndConstraints(d, v, tag, c)
}

// DecodeChoice expects an object with a single member, named after the alternative.
func (d *Decoder) DecodeChoice(_ asn1.Constraints, _ asn1.Tag, desc *asn1.Constructed, fn func(asn1.Decoder, int) error) error {
	v, err := d.nextOf(jsonparser.Object)
	if err != nil {
		return err
	}

	f := frame{value: v, used: make(map[string]bool)}
	keys, err := d.keys(&f)
	if err != nil {
		return err
	}
	if len(keys) != 1 {
		return d.fail(asn1.ErrSpecViolation, "%s must hold exactly one member, found %d", desc.Identifier, len(keys))
	}

	i := desc.FieldIndex(keys[0])
	if i < 0 {
		return asn1.TypeMismatchError(asn1.CodecJER, "alternative of "+desc.Identifier, keys[0])
	}

	return d.push(&f, cursor.Scope{Fields: desc.Fields[i : i+1]}, func() error {
		return fn(d, i)
	})
}

func (d *Decoder) DecodeExtensionAddition(tag asn1.Tag, c asn1.Constraints, v asn1.Decodable) (bool, error) {
	return d.DecodeOptional(tag, c, v)
}

// DecodeExtensionAdditionGroup decodes the fields of the group from the
// enclosing object. The group is present if any of its fields is.
func (d *Decoder) DecodeExtensionAdditionGroup(v asn1.ConstructedDecodable) (bool, error) {
	if _, err := d.cursor.Name(""); err != nil {
		return false, err
	}

	present := false
	for _, field := range v.ASN1Descriptor().Fields {
		if d.top().has(field.Name) {
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
