package asn1

import "bytes"

var (
	_ Encodable = OctetString(nil)
	_ Decodable = (*OctetString)(nil)
)

// OctetString is the ASN.1 OCTET STRING type.
type OctetString []byte

func (OctetString) ASN1Tag() Tag { return TagOctetString }
func (OctetString) ASN1Constraints() Constraints { return NoConstraints }
func (OctetString) ASN1Identifier() string { return "OCTET_STRING" }

func (o OctetString) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	if _, err := c.CheckSize(len(o)); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeOctetString(tag, c, o)
}

func (o *OctetString) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	v, err := d.DecodeOctetString(tag, c)
	if err != nil {
		return err
	}
	if _, err := c.CheckSize(len(v)); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	*o = v
	return nil
}

// Equal reports whether o and other hold the same bytes.
// A nil OctetString equals an empty one.
func (o OctetString) Equal(other OctetString) bool {
	return bytes.Equal(o, other)
}
