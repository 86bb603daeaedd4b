package asn1

var (
	_ Encodable = Null{}
	_ Decodable = (*Null)(nil)
)

// Null is the ASN.1 NULL type.
type Null struct{}

func (Null) ASN1Tag() Tag { return TagNull }
func (Null) ASN1Constraints() Constraints { return NoConstraints }
func (Null) ASN1Identifier() string { return "NULL" }

func (Null) EncodeASN1(e Encoder, tag Tag, _ Constraints) error {
	return e.EncodeNull(tag)
}

func (*Null) DecodeASN1(d Decoder, tag Tag, _ Constraints) error {
	return d.DecodeNull(tag)
}

func (Null) Equal(Null) bool {
	return true
}
