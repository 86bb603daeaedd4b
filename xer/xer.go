// Package xer implements the XML Encoding Rules (X.693).
//
// Values are written as elements. Fields of SEQUENCE, SET and CHOICE types
// are named after their identifier, other values after their type:
//
//	<BOOLEAN><true/></BOOLEAN>
//	<INTEGER>-1235352</INTEGER>
//	<PersonnelRecord><name>...</name>...</PersonnelRecord>
//
// Tags are not part of the output.
package xer

import "github.com/chaisql/asn1"

// Element names of the built-in types.
const (
	bitStringName       = "BIT_STRING"
	booleanName         = "BOOLEAN"
	trueName            = "true"
	falseName           = "false"
	integerName         = "INTEGER"
	nullName            = "NULL"
	objectIdName        = "OBJECT_IDENTIFIER"
	octetStringName     = "OCTET_STRING"
	bmpStringName       = "BMPString"
	ia5StringName       = "IA5String"
	visibleStringName   = "VisibleString"
	utf8StringName      = "UTF8String"
	generalStringName   = "GeneralString"
	printableStringName = "PrintableString"
	numericStringName   = "NumericString"
	teletexStringName   = "TeletexString"
	generalizedTimeName = "GeneralizedTime"
	utcTimeName         = "UTCTime"
	sequenceOfName      = "SEQUENCE_OF"
	setOfName           = "SET_OF"
)

// Format is the XER asn1.Format.
var Format asn1.Format = format{}

type format struct{}

func (format) Codec() asn1.Codec {
	return asn1.CodecXER
}

func (format) Marshal(v asn1.Encodable) ([]byte, error) {
	return Marshal(v)
}

func (format) Unmarshal(data []byte, v asn1.Decodable) error {
	return Unmarshal(data, v)
}

// Marshal returns the XER encoding of v, without XML declaration.
func Marshal(v asn1.Encodable) ([]byte, error) {
	return MarshalWithOptions(v, EncoderOptions{})
}

// MarshalWithOptions returns the XER encoding of v.
func MarshalWithOptions(v asn1.Encodable, opts EncoderOptions) ([]byte, error) {
	enc := NewEncoder(opts)
	if err := asn1.Encode(enc, v); err != nil {
		return nil, err
	}

	return enc.Bytes()
}

// Unmarshal decodes the XER encoded data into v.
func Unmarshal(data []byte, v asn1.Decodable) error {
	dec, err := NewDecoder(data)
	if err != nil {
		return err
	}

	if err := asn1.Decode(dec, v); err != nil {
		return err
	}

	return dec.Close()
}
