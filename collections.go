package asn1

import "fmt"

var (
	_ Encodable = SequenceOf[Boolean](nil)
	_ Decodable = (*SequenceOf[Boolean])(nil)
	_ Encodable = SetOf[Boolean](nil)
	_ Decodable = (*SetOf[Boolean])(nil)
)

// SequenceOf is the ASN.1 SEQUENCE OF type.
// *T must implement Decodable for the SequenceOf to be decodable.
type SequenceOf[T Encodable] []T

func (SequenceOf[T]) ASN1Tag() Tag { return TagSequence }
func (SequenceOf[T]) ASN1Constraints() Constraints { return NoConstraints }
func (SequenceOf[T]) ASN1Identifier() string { return "SEQUENCE_OF" }

func (s SequenceOf[T]) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	if _, err := c.CheckSize(len(s)); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeSequenceOf(tag, c, encodables(s))
}

func (s *SequenceOf[T]) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	var items []T
	err := d.DecodeSequenceOf(tag, c, func(d Decoder) error {
		item, err := decodeItem[T](d)
		if err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return err
	}
	if _, err := c.CheckSize(len(items)); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	*s = items
	return nil
}

// SetOf is the ASN.1 SET OF type. Elements are kept in the order
// they were decoded.
type SetOf[T Encodable] []T

func (SetOf[T]) ASN1Tag() Tag { return TagSet }
func (SetOf[T]) ASN1Constraints() Constraints { return NoConstraints }
func (SetOf[T]) ASN1Identifier() string { return "SET_OF" }

func (s SetOf[T]) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	if _, err := c.CheckSize(len(s)); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeSetOf(tag, c, encodables(s))
}

func (s *SetOf[T]) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	var items []T
	err := d.DecodeSetOf(tag, c, func(d Decoder) error {
		item, err := decodeItem[T](d)
		if err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return err
	}
	if _, err := c.CheckSize(len(items)); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	*s = items
	return nil
}

func decodeItem[T Encodable](d Decoder) (T, error) {
	var item T
	dv, ok := any(&item).(Decodable)
	if !ok {
		return item, CustomDecodeError(fmt.Sprintf("%T does not implement Decodable", &item), d.Codec())
	}

	err := Decode(d, dv)
	return item, err
}
