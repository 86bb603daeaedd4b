// Package jer implements JSON Encoding Rules in the style of X.697.
//
// SEQUENCE and SET values are objects keyed by field name, absent fields
// being omitted. A CHOICE is an object holding its alternative:
//
//	{"name": {"givenName": "John"}, "choice": {"Test1": 3}}
//
// Integers are numbers, octet strings uppercase hexadecimal strings,
// bit strings objects of the form {"value": "A0", "length": 3} and
// enumerated values the identifier of their variant.
package jer

import "github.com/chaisql/asn1"

// Member names of bit string objects.
const (
	bitStringValue  = "value"
	bitStringLength = "length"
)

// Format is the JER asn1.Format.
var Format asn1.Format = format{}

type format struct{}

func (format) Codec() asn1.Codec {
	return asn1.CodecJER
}

func (format) Marshal(v asn1.Encodable) ([]byte, error) {
	return Marshal(v)
}

func (format) Unmarshal(data []byte, v asn1.Decodable) error {
	return Unmarshal(data, v)
}

// Marshal returns the JER encoding of v.
func Marshal(v asn1.Encodable) ([]byte, error) {
	enc := NewEncoder()
	if err := asn1.Encode(enc, v); err != nil {
		return nil, err
	}

	return enc.Bytes(), nil
}

// Unmarshal decodes the JER encoded data into v.
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
