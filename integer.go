package asn1

import (
	"fmt"
	"math/big"

	"golang.org/x/exp/constraints"
)

var (
	_ Encodable = Integer{}
	_ Decodable = (*Integer)(nil)
	_ Encodable = Int(0)
	_ Decodable = (*Int)(nil)
	_ Encodable = Int32(0)
	_ Decodable = (*Int32)(nil)
	_ Encodable = Uint(0)
	_ Decodable = (*Uint)(nil)
)

// Integer is the ASN.1 INTEGER type, with arbitrary precision.
// The zero value is 0.
type Integer struct {
	v *big.Int
}

// NewInteger returns an Integer holding x.
func NewInteger(x int64) Integer {
	return Integer{v: big.NewInt(x)}
}

// NewBigInteger returns an Integer holding a copy of x.
func NewBigInteger(x *big.Int) Integer {
	return Integer{v: new(big.Int).Set(x)}
}

// Big returns the value as a big.Int. The caller may modify it.
func (i Integer) Big() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(i.v)
}

func (i Integer) String() string {
	return i.Big().String()
}

func (Integer) ASN1Tag() Tag { return TagInteger }
func (Integer) ASN1Constraints() Constraints { return NoConstraints }
func (Integer) ASN1Identifier() string { return "INTEGER" }

func (i Integer) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	v := i.Big()
	if _, err := c.CheckValue(v); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeInteger(tag, c, v)
}

func (i *Integer) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	v, err := d.DecodeInteger(tag, c)
	if err != nil {
		return err
	}
	if _, err := c.CheckValue(v); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	i.v = v
	return nil
}

func (i Integer) Equal(other Integer) bool {
	return i.Big().Cmp(other.Big()) == 0
}

// Int is an INTEGER stored in a native int.
type Int int

func (Int) ASN1Tag() Tag { return TagInteger }
func (Int) ASN1Constraints() Constraints { return NoConstraints }
func (Int) ASN1Identifier() string { return "INTEGER" }

func (n Int) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	return encodeNative(e, tag, c, n)
}

func (n *Int) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	return decodeNative(d, tag, c, n)
}

func (n Int) Equal(other Int) bool { return n == other }

// Int32 is an INTEGER stored in an int32.
type Int32 int32

func (Int32) ASN1Tag() Tag { return TagInteger }
func (Int32) ASN1Constraints() Constraints { return NoConstraints }
func (Int32) ASN1Identifier() string { return "INTEGER" }

func (n Int32) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	return encodeNative(e, tag, c, n)
}

func (n *Int32) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	return decodeNative(d, tag, c, n)
}

func (n Int32) Equal(other Int32) bool { return n == other }

// Uint is a non-negative INTEGER stored in a native uint.
type Uint uint

func (Uint) ASN1Tag() Tag { return TagInteger }
func (Uint) ASN1Constraints() Constraints { return MinValue(0) }
func (Uint) ASN1Identifier() string { return "INTEGER" }

func (n Uint) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	return encodeNative(e, tag, c, n)
}

func (n *Uint) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	return decodeNative(d, tag, c, n)
}

func (n Uint) Equal(other Uint) bool { return n == other }

func nativeToBig[N constraints.Integer](n N) *big.Int {
	if n < 0 {
		return big.NewInt(int64(n))
	}
	return new(big.Int).SetUint64(uint64(n))
}

// bigToNative converts x to N, reporting false if it doesn't fit.
func bigToNative[N constraints.Integer](x *big.Int) (N, bool) {
	var n N
	switch {
	case x.IsInt64():
		i := x.Int64()
		n = N(i)
		if int64(n) != i || (n < 0) != (i < 0) {
			return 0, false
		}
	case x.IsUint64():
		u := x.Uint64()
		n = N(u)
		if n < 0 || uint64(n) != u {
			return 0, false
		}
	default:
		return 0, false
	}

	return n, true
}

func encodeNative[N constraints.Integer](e Encoder, tag Tag, c Constraints, n N) error {
	v := nativeToBig(n)
	if _, err := c.CheckValue(v); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeInteger(tag, c, v)
}

func decodeNative[N constraints.Integer](d Decoder, tag Tag, c Constraints, dst *N) error {
	v, err := d.DecodeInteger(tag, c)
	if err != nil {
		return err
	}
	if _, err := c.CheckValue(v); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	n, ok := bigToNative[N](v)
	if !ok {
		return CustomDecodeError(fmt.Sprintf("integer %s overflows %T", v, n), d.Codec())
	}

	*dst = n
	return nil
}
