/*
Package asn1 implements a generic framework to encode and decode ASN.1 values
using several sets of encoding rules.

# Types and codecs

The package separates what a value is from how it is written.
A type describes itself through its tag, its constraints and, for constructed
and enumerated types, a static descriptor listing its fields or variants.
It implements Encodable and Decodable by calling the methods of an Encoder or a Decoder,
one per built-in ASN.1 type plus scopes for SEQUENCE, SET and CHOICE.

A codec implements Encoder and Decoder for one set of encoding rules.
Three codecs are provided by sub packages:

	xer: XML Encoding Rules
	ber: Basic and Distinguished Encoding Rules
	jer: JSON Encoding Rules

Each of them exposes a Format, along with Marshal and Unmarshal functions.

# Tagging

Every type has a default tag, returned by ASN1Tag. Fields may override it:
the new tag replaces the default one, unless the type has no tag of its own
(CHOICE and ANY, whose tag is TagEOC), in which case the value is wrapped inside
an explicit tag. EncodeExplicit and DecodeExplicit force explicit tagging.

# Optional, default and extension fields

OPTIONAL fields are represented by pointers and encoded with EncodeOptional.
DEFAULT fields are encoded with EncodeDefault, which omits the value when it
equals the default. Fields declared after the extension marker use
EncodeExtensionAddition and EncodeExtensionAdditionGroup, which lets decoders
built from an older revision of a type skip them.

# Errors

Codec errors wrap one of the Err* kinds of this package and can be tested with errors.Is.
Constraint and alphabet violations detected by the built-in types are reported
with CustomEncodeError and CustomDecodeError.
*/
package asn1
