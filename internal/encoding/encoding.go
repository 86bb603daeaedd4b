// Package encoding implements the byte level primitives of
// tag-length-value encodings: identifier octets, lengths,
// base-128 numbers and two's complement integers.
// Functions append to a destination slice and decoders return the
// number of bytes they read.
package encoding

import (
	"github.com/chaisql/asn1"
	"github.com/cockroachdb/errors"
)

var (
	// ErrTruncated is returned when the input ends in the middle of an item.
	ErrTruncated = errors.New("truncated input")
	// ErrOverflow is returned when a number doesn't fit in its Go representation.
	ErrOverflow = errors.New("overflow")
	// ErrNonMinimal is returned when a number uses more bytes than needed.
	ErrNonMinimal = errors.New("non minimal encoding")
)

// Identifier is a decoded identifier octet sequence.
type Identifier struct {
	Tag         asn1.Tag
	Constructed bool
}

// EncodeIdentifier appends the identifier octets of tag to dst,
// using the high tag number form for numbers above 30.
func EncodeIdentifier(dst []byte, tag asn1.Tag, constructed bool) []byte {
	b := byte(tag.Class) << 6
	if constructed {
		b |= 0x20
	}

	if tag.Value < 31 {
		return append(dst, b|byte(tag.Value))
	}

	dst = append(dst, b|0x1F)
	return EncodeBase128(dst, uint64(tag.Value))
}

// DecodeIdentifier reads the identifier octets at the beginning of b.
func DecodeIdentifier(b []byte) (Identifier, int, error) {
	if len(b) == 0 {
		return Identifier{}, 0, ErrTruncated
	}

	id := Identifier{
		Tag:         asn1.Tag{Class: asn1.Class(b[0] >> 6)},
		Constructed: b[0]&0x20 != 0,
	}

	if b[0]&0x1F != 0x1F {
		id.Tag.Value = uint32(b[0] & 0x1F)
		return id, 1, nil
	}

	v, n, err := DecodeBase128(b[1:])
	if err != nil {
		return Identifier{}, 0, err
	}
	if v > uint64(^uint32(0)) {
		return Identifier{}, 0, ErrOverflow
	}

	id.Tag.Value = uint32(v)
	return id, 1 + n, nil
}

// EncodeLength appends the definite length l to dst.
func EncodeLength(dst []byte, l int) []byte {
	if l < 0x80 {
		return append(dst, byte(l))
	}

	var buf [8]byte
	i := len(buf)
	for x := uint64(l); x > 0; x >>= 8 {
		i--
		buf[i] = byte(x)
	}

	dst = append(dst, 0x80|byte(len(buf)-i))
	return append(dst, buf[i:]...)
}

// DecodeLength reads a length at the beginning of b.
// indefinite is true for the indefinite form, in which case l is -1.
// Long forms that use more octets than needed are accepted.
func DecodeLength(b []byte) (l int, indefinite bool, n int, err error) {
	if len(b) == 0 {
		return 0, false, 0, ErrTruncated
	}

	if b[0] < 0x80 {
		return int(b[0]), false, 1, nil
	}
	if b[0] == 0x80 {
		return -1, true, 1, nil
	}

	size := int(b[0] & 0x7F)
	if size > 4 {
		return 0, false, 0, ErrOverflow
	}
	if len(b) < 1+size {
		return 0, false, 0, ErrTruncated
	}
	for _, c := range b[1 : 1+size] {
		l = l<<8 | int(c)
	}

	return l, false, 1 + size, nil
}

// Header is the identifier and length of a TLV.
type Header struct {
	Identifier
	Length     int
	Indefinite bool
	// NonMinimal is true when the length was not encoded in the
	// minimum number of octets.
	NonMinimal bool
}

// DecodeHeader reads the identifier and the length at the beginning of b.
func DecodeHeader(b []byte) (Header, int, error) {
	id, n, err := DecodeIdentifier(b)
	if err != nil {
		return Header{}, 0, err
	}

	l, indef, nl, err := DecodeLength(b[n:])
	if err != nil {
		return Header{}, 0, err
	}

	h := Header{
		Identifier: id,
		Length:     l,
		Indefinite: indef,
		NonMinimal: !indef && nl != len(EncodeLength(nil, l)),
	}

	return h, n + nl, nil
}

// Skip returns the size of the TLV at the beginning of b, header included.
// Indefinite lengths are followed until their end-of-contents marker.
func Skip(b []byte) (int, error) {
	h, n, err := DecodeHeader(b)
	if err != nil {
		return 0, err
	}

	if !h.Indefinite {
		if len(b)-n < h.Length {
			return 0, ErrTruncated
		}
		return n + h.Length, nil
	}

	for {
		if len(b) < n+2 {
			return 0, ErrTruncated
		}
		if b[n] == 0 && b[n+1] == 0 {
			return n + 2, nil
		}

		m, err := Skip(b[n:])
		if err != nil {
			return 0, err
		}
		n += m
	}
}
