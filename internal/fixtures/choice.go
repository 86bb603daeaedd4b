package fixtures

import "github.com/chaisql/asn1"

// TestChoice ::= CHOICE {
//
//	Test1 INTEGER,
//	Test2 BOOLEAN }
//
// Exactly one of the fields must be set.
type TestChoice struct {
	Test1 *asn1.Integer
	Test2 *asn1.Boolean
}

var testChoiceDescriptor = asn1.Constructed{
	Identifier: "TestChoice",
	Fields: []asn1.Field{
		{Name: "Test1", Tag: asn1.TagInteger},
		{Name: "Test2", Tag: asn1.TagBoolean},
	},
}

func (TestChoice) ASN1Tag() asn1.Tag { return asn1.TagChoice }
func (TestChoice) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (TestChoice) ASN1Identifier() string { return testChoiceDescriptor.Identifier }
func (TestChoice) ASN1Descriptor() *asn1.Constructed { return &testChoiceDescriptor }

func (c TestChoice) EncodeASN1(e asn1.Encoder, tag asn1.Tag, cs asn1.Constraints) error {
	if c.Test1 != nil && c.Test2 != nil {
		return asn1.CustomEncodeError("TestChoice: more than one alternative selected", e.Codec())
	}

	switch {
	case c.Test1 != nil:
		return e.EncodeChoice(cs, tag, &testChoiceDescriptor, 0, func(e asn1.Encoder) error {
			return asn1.Encode(e, *c.Test1)
		})
	case c.Test2 != nil:
		return e.EncodeChoice(cs, tag, &testChoiceDescriptor, 1, func(e asn1.Encoder) error {
			return asn1.Encode(e, *c.Test2)
		})
	}

	return asn1.CustomEncodeError("TestChoice: no alternative selected", e.Codec())
}

func (c *TestChoice) DecodeASN1(d asn1.Decoder, tag asn1.Tag, cs asn1.Constraints) error {
	*c = TestChoice{}

	return d.DecodeChoice(cs, tag, &testChoiceDescriptor, func(d asn1.Decoder, i int) error {
		switch i {
		case 0:
			var v asn1.Integer
			if err := asn1.Decode(d, &v); err != nil {
				return err
			}
			c.Test1 = &v
		case 1:
			var v asn1.Boolean
			if err := asn1.Decode(d, &v); err != nil {
				return err
			}
			c.Test2 = &v
		}

		return nil
	})
}

// Color ::= ENUMERATED { red, green, blue, ... }
type Color int

// List of colors.
const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
)

var colorEnumeration = asn1.Enumeration{
	Identifier: "Color",
	Variants: []asn1.Variant{
		{Identifier: "red", Value: 0},
		{Identifier: "green", Value: 1},
		{Identifier: "blue", Value: 2},
	},
	Extensible: true,
}

func (Color) ASN1Tag() asn1.Tag { return asn1.TagEnumerated }
func (Color) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (Color) ASN1Identifier() string { return colorEnumeration.Identifier }
func (Color) ASN1Enumeration() *asn1.Enumeration { return &colorEnumeration }
func (c Color) ASN1VariantIndex() int { return int(c) }

func (c Color) EncodeASN1(e asn1.Encoder, tag asn1.Tag, _ asn1.Constraints) error {
	return e.EncodeEnumerated(tag, &colorEnumeration, int(c))
}

func (c *Color) DecodeASN1(d asn1.Decoder, tag asn1.Tag, _ asn1.Constraints) error {
	i, err := d.DecodeEnumerated(tag, &colorEnumeration)
	if err != nil {
		return err
	}

	*c = Color(i)
	return nil
}
