// Package ber implements the Basic Encoding Rules (X.690) and their
// Distinguished subset.
//
// The encoder always produces definite lengths and minimal integers.
// In DER mode, it also sorts the members of SET values by tag and
// the elements of SET OF values by encoding. The decoder accepts
// indefinite lengths for constructed values, unless in DER mode.
package ber

import "github.com/chaisql/asn1"

// Rules selects the encoding rules.
type Rules uint8

// List of supported rules.
const (
	BER Rules = iota
	DER
)

func (r Rules) codec() asn1.Codec {
	if r == DER {
		return asn1.CodecDER
	}
	return asn1.CodecBER
}

// Options configures encoders and decoders.
// The zero value selects BER.
type Options struct {
	Rules Rules
}

var (
	// Format is the BER asn1.Format.
	Format asn1.Format = format{}
	// DERFormat is the DER asn1.Format.
	DERFormat asn1.Format = format{opts: Options{Rules: DER}}
)

type format struct {
	opts Options
}

func (f format) Codec() asn1.Codec {
	return f.opts.Rules.codec()
}

func (f format) Marshal(v asn1.Encodable) ([]byte, error) {
	return MarshalWithOptions(v, f.opts)
}

func (f format) Unmarshal(data []byte, v asn1.Decodable) error {
	return UnmarshalWithOptions(data, v, f.opts)
}

// Marshal returns the BER encoding of v.
func Marshal(v asn1.Encodable) ([]byte, error) {
	return MarshalWithOptions(v, Options{})
}

// MarshalWithOptions returns the encoding of v.
func MarshalWithOptions(v asn1.Encodable, opts Options) ([]byte, error) {
	enc := NewEncoder(opts)
	if err := asn1.Encode(enc, v); err != nil {
		return nil, err
	}

	return enc.Bytes(), nil
}

// Unmarshal decodes the BER encoded data into v.
func Unmarshal(data []byte, v asn1.Decodable) error {
	return UnmarshalWithOptions(data, v, Options{})
}

// UnmarshalWithOptions decodes data into v.
// data must contain exactly one value.
func UnmarshalWithOptions(data []byte, v asn1.Decodable, opts Options) error {
	dec := NewDecoder(data, opts)
	if err := asn1.Decode(dec, v); err != nil {
		return err
	}

	return dec.Close()
}
