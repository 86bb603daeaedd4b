package asn1

var (
	_ Encodable = Boolean(false)
	_ Decodable = (*Boolean)(nil)
)

// Boolean is the ASN.1 BOOLEAN type.
type Boolean bool

func (Boolean) ASN1Tag() Tag { return TagBoolean }
func (Boolean) ASN1Constraints() Constraints { return NoConstraints }
func (Boolean) ASN1Identifier() string { return "BOOLEAN" }

func (b Boolean) EncodeASN1(e Encoder, tag Tag, _ Constraints) error {
	return e.EncodeBool(tag, bool(b))
}

func (b *Boolean) DecodeASN1(d Decoder, tag Tag, _ Constraints) error {
	v, err := d.DecodeBool(tag)
	if err != nil {
		return err
	}

	*b = Boolean(v)
	return nil
}

func (b Boolean) Equal(other Boolean) bool {
	return b == other
}
