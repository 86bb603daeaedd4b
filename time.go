package asn1

import "time"

var (
	_ Encodable = GeneralizedTime{}
	_ Decodable = (*GeneralizedTime)(nil)
	_ Encodable = UTCTime{}
	_ Decodable = (*UTCTime)(nil)
)

// GeneralizedTime is the ASN.1 GeneralizedTime type.
// Codecs write it in UTC with up to nanosecond precision.
type GeneralizedTime struct {
	time.Time
}

func (GeneralizedTime) ASN1Tag() Tag { return TagGeneralizedTime }
func (GeneralizedTime) ASN1Constraints() Constraints { return NoConstraints }
func (GeneralizedTime) ASN1Identifier() string { return "GeneralizedTime" }

func (t GeneralizedTime) EncodeASN1(e Encoder, tag Tag, _ Constraints) error {
	return e.EncodeGeneralizedTime(tag, t.Time)
}

func (t *GeneralizedTime) DecodeASN1(d Decoder, tag Tag, _ Constraints) error {
	v, err := d.DecodeGeneralizedTime(tag)
	if err != nil {
		return err
	}

	t.Time = v
	return nil
}

// Equal reports whether t and other represent the same instant.
func (t GeneralizedTime) Equal(other GeneralizedTime) bool {
	return t.Time.Equal(other.Time)
}

// UTCTime is the ASN.1 UTCTime type. It has a precision of one second
// and represents years 1950 to 2049.
type UTCTime struct {
	time.Time
}

func (UTCTime) ASN1Tag() Tag { return TagUTCTime }
func (UTCTime) ASN1Constraints() Constraints { return NoConstraints }
func (UTCTime) ASN1Identifier() string { return "UTCTime" }

func (t UTCTime) EncodeASN1(e Encoder, tag Tag, _ Constraints) error {
	if y := t.UTC().Year(); y < 1950 || y > 2049 {
		return CustomEncodeError("UTCTime year must be between 1950 and 2049", e.Codec())
	}

	return e.EncodeUTCTime(tag, t.Time)
}

func (t *UTCTime) DecodeASN1(d Decoder, tag Tag, _ Constraints) error {
	v, err := d.DecodeUTCTime(tag)
	if err != nil {
		return err
	}

	t.Time = v
	return nil
}

// Equal reports whether t and other represent the same instant.
func (t UTCTime) Equal(other UTCTime) bool {
	return t.Time.Equal(other.Time)
}
