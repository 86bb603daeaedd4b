package asn1

import "bytes"

var (
	_ Encodable = Any{}
	_ Decodable = (*Any)(nil)
)

// Any holds a value already encoded with the rules of the codec in use.
// It is written to the output as is.
type Any struct {
	Contents []byte
}

func (Any) ASN1Tag() Tag { return TagEOC }
func (Any) ASN1Constraints() Constraints { return NoConstraints }
func (Any) ASN1Identifier() string { return "ANY" }

func (a Any) EncodeASN1(e Encoder, tag Tag, _ Constraints) error {
	return e.EncodeAny(tag, a)
}

func (a *Any) DecodeASN1(d Decoder, tag Tag, _ Constraints) error {
	v, err := d.DecodeAny(tag)
	if err != nil {
		return err
	}

	*a = v
	return nil
}

func (a Any) Equal(other Any) bool {
	return bytes.Equal(a.Contents, other.Contents)
}
