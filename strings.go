package asn1

import (
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

var (
	_ Encodable = GeneralString("")
	_ Decodable = (*GeneralString)(nil)
	_ Encodable = UTF8String("")
	_ Decodable = (*UTF8String)(nil)
	_ Encodable = VisibleString("")
	_ Decodable = (*VisibleString)(nil)
	_ Encodable = IA5String("")
	_ Decodable = (*IA5String)(nil)
	_ Encodable = PrintableString("")
	_ Decodable = (*PrintableString)(nil)
	_ Encodable = NumericString("")
	_ Decodable = (*NumericString)(nil)
	_ Encodable = TeletexString("")
	_ Decodable = (*TeletexString)(nil)
	_ Encodable = BMPString("")
	_ Decodable = (*BMPString)(nil)
)

func isVisible(r rune) bool { return r >= 0x20 && r <= 0x7E }

func isIA5(r rune) bool { return r <= 0x7F }

func isNumeric(r rune) bool { return r == ' ' || (r >= '0' && r <= '9') }

func isPrintable(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}

	switch r {
	case ' ', '\'', '(', ')', '+', ',', '-', '.', '/', ':', '=', '?':
		return true
	}

	return false
}

func isBMP(r rune) bool { return r <= 0xFFFF }

// checkString validates the alphabet and the size of s.
// Sizes are counted in characters.
func checkString(s string, c Constraints, allowed func(rune) bool, name string) error {
	if !utf8.ValidString(s) {
		return errors.Errorf("%s contains invalid UTF-8", name)
	}

	if allowed != nil {
		for i, r := range s {
			if !allowed(r) {
				return errors.Errorf("%s contains invalid character %q at offset %d", name, r, i)
			}
		}
	}

	if _, err := c.CheckSize(utf8.RuneCountInString(s)); err != nil {
		return err
	}

	return nil
}

// GeneralString is the ASN.1 GeneralString type.
type GeneralString string

func (GeneralString) ASN1Tag() Tag { return TagGeneralString }
func (GeneralString) ASN1Constraints() Constraints { return NoConstraints }
func (GeneralString) ASN1Identifier() string { return "GeneralString" }

func (s GeneralString) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	if err := checkString(string(s), c, nil, "GeneralString"); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeGeneralString(tag, c, string(s))
}

func (s *GeneralString) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	v, err := d.DecodeGeneralString(tag, c)
	if err != nil {
		return err
	}
	if err := checkString(v, c, nil, "GeneralString"); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	*s = GeneralString(v)
	return nil
}

func (s GeneralString) Equal(other GeneralString) bool { return s == other }

// UTF8String is the ASN.1 UTF8String type.
type UTF8String string

func (UTF8String) ASN1Tag() Tag { return TagUTF8String }
func (UTF8String) ASN1Constraints() Constraints { return NoConstraints }
func (UTF8String) ASN1Identifier() string { return "UTF8String" }

func (s UTF8String) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	if err := checkString(string(s), c, nil, "UTF8String"); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeUTF8String(tag, c, string(s))
}

func (s *UTF8String) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	v, err := d.DecodeUTF8String(tag, c)
	if err != nil {
		return err
	}
	if err := checkString(v, c, nil, "UTF8String"); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	*s = UTF8String(v)
	return nil
}

func (s UTF8String) Equal(other UTF8String) bool { return s == other }

// VisibleString is the ASN.1 VisibleString type: printable ASCII and space.
type VisibleString string

func (VisibleString) ASN1Tag() Tag { return TagVisibleString }
func (VisibleString) ASN1Constraints() Constraints { return NoConstraints }
func (VisibleString) ASN1Identifier() string { return "VisibleString" }

func (s VisibleString) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	if err := checkString(string(s), c, isVisible, "VisibleString"); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeVisibleString(tag, c, string(s))
}

func (s *VisibleString) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	v, err := d.DecodeVisibleString(tag, c)
	if err != nil {
		return err
	}
	if err := checkString(v, c, isVisible, "VisibleString"); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	*s = VisibleString(v)
	return nil
}

func (s VisibleString) Equal(other VisibleString) bool { return s == other }

// IA5String is the ASN.1 IA5String type: 7-bit ASCII.
type IA5String string

func (IA5String) ASN1Tag() Tag { return TagIA5String }
func (IA5String) ASN1Constraints() Constraints { return NoConstraints }
func (IA5String) ASN1Identifier() string { return "IA5String" }

func (s IA5String) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	if err := checkString(string(s), c, isIA5, "IA5String"); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeIA5String(tag, c, string(s))
}

func (s *IA5String) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	v, err := d.DecodeIA5String(tag, c)
	if err != nil {
		return err
	}
	if err := checkString(v, c, isIA5, "IA5String"); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	*s = IA5String(v)
	return nil
}

func (s IA5String) Equal(other IA5String) bool { return s == other }

// PrintableString is the ASN.1 PrintableString type.
type PrintableString string

func (PrintableString) ASN1Tag() Tag { return TagPrintableString }
func (PrintableString) ASN1Constraints() Constraints { return NoConstraints }
func (PrintableString) ASN1Identifier() string { return "PrintableString" }

func (s PrintableString) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	if err := checkString(string(s), c, isPrintable, "PrintableString"); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodePrintableString(tag, c, string(s))
}

func (s *PrintableString) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	v, err := d.DecodePrintableString(tag, c)
	if err != nil {
		return err
	}
	if err := checkString(v, c, isPrintable, "PrintableString"); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	*s = PrintableString(v)
	return nil
}

func (s PrintableString) Equal(other PrintableString) bool { return s == other }

// NumericString is the ASN.1 NumericString type: digits and space.
type NumericString string

func (NumericString) ASN1Tag() Tag { return TagNumericString }
func (NumericString) ASN1Constraints() Constraints { return NoConstraints }
func (NumericString) ASN1Identifier() string { return "NumericString" }

func (s NumericString) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	if err := checkString(string(s), c, isNumeric, "NumericString"); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeNumericString(tag, c, string(s))
}

func (s *NumericString) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	v, err := d.DecodeNumericString(tag, c)
	if err != nil {
		return err
	}
	if err := checkString(v, c, isNumeric, "NumericString"); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	*s = NumericString(v)
	return nil
}

func (s NumericString) Equal(other NumericString) bool { return s == other }

// TeletexString is the ASN.1 TeletexString type. Values are kept as UTF-8.
type TeletexString string

func (TeletexString) ASN1Tag() Tag { return TagTeletexString }
func (TeletexString) ASN1Constraints() Constraints { return NoConstraints }
func (TeletexString) ASN1Identifier() string { return "TeletexString" }

func (s TeletexString) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	if err := checkString(string(s), c, nil, "TeletexString"); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeTeletexString(tag, c, string(s))
}

func (s *TeletexString) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	v, err := d.DecodeTeletexString(tag, c)
	if err != nil {
		return err
	}
	if err := checkString(v, c, nil, "TeletexString"); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	*s = TeletexString(v)
	return nil
}

func (s TeletexString) Equal(other TeletexString) bool { return s == other }

// BMPString is the ASN.1 BMPString type: characters of the Basic Multilingual Plane.
type BMPString string

func (BMPString) ASN1Tag() Tag { return TagBMPString }
func (BMPString) ASN1Constraints() Constraints { return NoConstraints }
func (BMPString) ASN1Identifier() string { return "BMPString" }

func (s BMPString) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	if err := checkString(string(s), c, isBMP, "BMPString"); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeBMPString(tag, c, string(s))
}

func (s *BMPString) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	v, err := d.DecodeBMPString(tag, c)
	if err != nil {
		return err
	}
	if err := checkString(v, c, isBMP, "BMPString"); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	*s = BMPString(v)
	return nil
}

func (s BMPString) Equal(other BMPString) bool { return s == other }
