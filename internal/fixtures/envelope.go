package fixtures

import "github.com/chaisql/asn1"

// Envelope ::= SEQUENCE {
//
//	id      OBJECT IDENTIFIER,
//	flags   BIT STRING,
//	payload OCTET STRING,
//	created GeneralizedTime,
//	expires UTCTime,
//	choice  [0] EXPLICIT TestChoice,
//	extra   [1] ANY OPTIONAL,
//	marker  NULL,
//	tags    SET OF PrintableString }
type Envelope struct {
	ID      asn1.ObjectIdentifier
	Flags   asn1.BitString
	Payload asn1.OctetString
	Created asn1.GeneralizedTime
	Expires asn1.UTCTime
	Choice  TestChoice
	Extra   *asn1.Any
	Marker  asn1.Null
	Tags    asn1.SetOf[asn1.PrintableString]
}

var envelopeDescriptor = asn1.Constructed{
	Identifier: "Envelope",
	Fields: []asn1.Field{
		{Name: "id", Tag: asn1.TagObjectIdentifier},
		{Name: "flags", Tag: asn1.TagBitString},
		{Name: "payload", Tag: asn1.TagOctetString},
		{Name: "created", Tag: asn1.TagGeneralizedTime},
		{Name: "expires", Tag: asn1.TagUTCTime},
		{Name: "choice", Tag: asn1.ContextTag(0)},
		{Name: "extra", Tag: asn1.ContextTag(1), Optional: true},
		{Name: "marker", Tag: asn1.TagNull},
		{Name: "tags", Tag: asn1.TagSet},
	},
}

func (Envelope) ASN1Tag() asn1.Tag { return asn1.TagSequence }
func (Envelope) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (Envelope) ASN1Identifier() string { return envelopeDescriptor.Identifier }
func (Envelope) ASN1Descriptor() *asn1.Constructed { return &envelopeDescriptor }

func (v Envelope) EncodeASN1(e asn1.Encoder, tag asn1.Tag, _ asn1.Constraints) error {
	return e.EncodeSequence(tag, &envelopeDescriptor, func(e asn1.Encoder) error {
		if err := asn1.Encode(e, v.ID); err != nil {
			return err
		}
		if err := asn1.Encode(e, v.Flags); err != nil {
			return err
		}
		if err := asn1.Encode(e, v.Payload); err != nil {
			return err
		}
		if err := asn1.Encode(e, v.Created); err != nil {
			return err
		}
		if err := asn1.Encode(e, v.Expires); err != nil {
			return err
		}
		if err := asn1.EncodeExplicit(e, v.Choice, asn1.ContextTag(0)); err != nil {
			return err
		}
		if err := asn1.EncodeOptionalWithTag(e, v.Extra, asn1.ContextTag(1)); err != nil {
			return err
		}
		if err := asn1.Encode(e, v.Marker); err != nil {
			return err
		}
		return asn1.Encode(e, v.Tags)
	})
}

func (v *Envelope) DecodeASN1(d asn1.Decoder, tag asn1.Tag, _ asn1.Constraints) error {
	return d.DecodeSequence(tag, &envelopeDescriptor, func(d asn1.Decoder) error {
		if err := asn1.Decode(d, &v.ID); err != nil {
			return err
		}
		if err := asn1.Decode(d, &v.Flags); err != nil {
			return err
		}
		if err := asn1.Decode(d, &v.Payload); err != nil {
			return err
		}
		if err := asn1.Decode(d, &v.Created); err != nil {
			return err
		}
		if err := asn1.Decode(d, &v.Expires); err != nil {
			return err
		}
		if err := asn1.DecodeExplicit(d, &v.Choice, asn1.ContextTag(0)); err != nil {
			return err
		}
		if err := asn1.DecodeOptionalWithTag(d, &v.Extra, asn1.ContextTag(1)); err != nil {
			return err
		}
		if err := asn1.Decode(d, &v.Marker); err != nil {
			return err
		}
		return asn1.Decode(d, &v.Tags)
	})
}
