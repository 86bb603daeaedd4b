package asn1

import "strconv"

// Codec identifies a set of encoding rules.
type Codec uint8

// List of supported codecs.
const (
	CodecBER Codec = iota + 1
	CodecDER
	CodecXER
	CodecJER
)

func (c Codec) String() string {
	switch c {
	case CodecBER:
		return "ber"
	case CodecDER:
		return "der"
	case CodecXER:
		return "xer"
	case CodecJER:
		return "jer"
	}

	return "codec(" + strconv.Itoa(int(c)) + ")"
}

// A Format is able to marshal and unmarshal values using
// a specific set of encoding rules.
// Each call uses its own encoder or decoder, so a Format can be shared.
type Format interface {
	Codec() Codec
	Marshal(v Encodable) ([]byte, error)
	Unmarshal(data []byte, v Decodable) error
}
