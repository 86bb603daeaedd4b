package encoding

import "math/big"

// EncodeBase128 appends v using 7 bits per byte, most significant
// group first, with the high bit set on every byte but the last.
func EncodeBase128(dst []byte, v uint64) []byte {
	var buf [10]byte
	i := len(buf) - 1
	buf[i] = byte(v & 0x7F)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		buf[i] = 0x80 | byte(v&0x7F)
	}

	return append(dst, buf[i:]...)
}

// DecodeBase128 reads a base-128 number at the beginning of b.
func DecodeBase128(b []byte) (uint64, int, error) {
	var v uint64
	for i, c := range b {
		if i == 0 && c == 0x80 {
			return 0, 0, ErrNonMinimal
		}
		if v > (^uint64(0))>>7 {
			return 0, 0, ErrOverflow
		}

		v = v<<7 | uint64(c&0x7F)
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
	}

	return 0, 0, ErrTruncated
}

// EncodeInteger appends the minimal two's complement representation of x.
func EncodeInteger(dst []byte, x *big.Int) []byte {
	switch x.Sign() {
	case 0:
		return append(dst, 0)
	case 1:
		b := x.Bytes()
		if b[0]&0x80 != 0 {
			dst = append(dst, 0)
		}
		return append(dst, b...)
	}

	// -x - 1 has the bits of x inverted.
	y := new(big.Int).Neg(x)
	y.Sub(y, big.NewInt(1))
	b := y.Bytes()
	for i := range b {
		b[i] = ^b[i]
	}
	if len(b) == 0 || b[0]&0x80 == 0 {
		dst = append(dst, 0xFF)
	}
	return append(dst, b...)
}

// DecodeInteger reads a two's complement integer that spans the whole of b.
func DecodeInteger(b []byte) (*big.Int, error) {
	if len(b) == 0 {
		return nil, ErrTruncated
	}
	if len(b) > 1 && ((b[0] == 0 && b[1]&0x80 == 0) || (b[0] == 0xFF && b[1]&0x80 != 0)) {
		return nil, ErrNonMinimal
	}

	x := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		x.Sub(x, new(big.Int).Lsh(big.NewInt(1), uint(len(b))*8))
	}

	return x, nil
}
