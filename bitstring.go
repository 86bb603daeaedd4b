package asn1

import "strings"

var (
	_ Encodable = BitString{}
	_ Decodable = (*BitString)(nil)
)

// BitString is the ASN.1 BIT STRING type. Bits are packed most
// significant bit first. The zero value is the empty bit string.
type BitString struct {
	data []byte
	n    int
}

// NewBitString returns a bit string made of the given bits.
func NewBitString(bits ...bool) BitString {
	var b BitString
	for _, bit := range bits {
		b.Append(bit)
	}
	return b
}

// BitStringFromBytes returns a bit string made of the first n bits of data.
// data is copied.
func BitStringFromBytes(data []byte, n int) BitString {
	if n > len(data)*8 {
		n = len(data) * 8
	}
	if n < 0 {
		n = 0
	}

	size := (n + 7) / 8
	b := BitString{data: make([]byte, size), n: n}
	copy(b.data, data[:size])
	if r := n % 8; r != 0 {
		b.data[size-1] &= 0xFF << (8 - r)
	}
	return b
}

// Len returns the number of bits.
func (b BitString) Len() int {
	return b.n
}

// At returns the bit at position i.
func (b BitString) At(i int) bool {
	return b.data[i/8]&(0x80>>(i%8)) != 0
}

// Append adds a bit at the end of b.
func (b *BitString) Append(bit bool) {
	if b.n%8 == 0 {
		b.data = append(b.data, 0)
	}
	if bit {
		b.data[b.n/8] |= 0x80 >> (b.n % 8)
	}
	b.n++
}

// Bytes returns a copy of the packed bits. Unused trailing bits are zero.
func (b BitString) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Bits returns the bits of b.
func (b BitString) Bits() []bool {
	bits := make([]bool, b.n)
	for i := range bits {
		bits[i] = b.At(i)
	}
	return bits
}

// String returns the bits as a string of '0' and '1'.
func (b BitString) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		if b.At(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (BitString) ASN1Tag() Tag { return TagBitString }
func (BitString) ASN1Constraints() Constraints { return NoConstraints }
func (BitString) ASN1Identifier() string { return "BIT_STRING" }

func (b BitString) EncodeASN1(e Encoder, tag Tag, c Constraints) error {
	if _, err := c.CheckSize(b.n); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeBitString(tag, c, b)
}

func (b *BitString) DecodeASN1(d Decoder, tag Tag, c Constraints) error {
	v, err := d.DecodeBitString(tag, c)
	if err != nil {
		return err
	}
	if _, err := c.CheckSize(v.n); err != nil {
		return CustomDecodeError(err.Error(), d.Codec())
	}

	*b = v
	return nil
}

func (b BitString) Equal(other BitString) bool {
	if b.n != other.n {
		return false
	}
	for i := range b.data {
		if b.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
