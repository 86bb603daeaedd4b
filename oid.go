package asn1

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	_ Encodable = ObjectIdentifier(nil)
	_ Decodable = (*ObjectIdentifier)(nil)
)

// ObjectIdentifier is the ASN.1 OBJECT IDENTIFIER type: a list of arcs.
type ObjectIdentifier []uint32

// ParseObjectIdentifier parses the dotted form of an object identifier,
// e.g. "1.2.840.113549".
func ParseObjectIdentifier(s string) (ObjectIdentifier, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	oid := make(ObjectIdentifier, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid object identifier %q", s)
		}
		oid = append(oid, uint32(n))
	}

	if err := oid.Validate(); err != nil {
		return nil, err
	}

	return oid, nil
}

// Validate returns an error if the identifier can't be encoded:
// it must have at least two arcs, the first one lower than 3, and
// the second one lower than 40 unless the first one is 2.
func (o ObjectIdentifier) Validate() error {
	if len(o) < 2 {
		return errors.Errorf("object identifier %s must have at least two arcs", o)
	}
	if o[0] > 2 {
		return errors.Errorf("object identifier %s: first arc must be 0, 1 or 2", o)
	}
	if o[0] < 2 && o[1] > 39 {
		return errors.Errorf("object identifier %s: second arc must be lower than 40", o)
	}

	return nil
}

func (o ObjectIdentifier) String() string {
	var sb strings.Builder
	for i, arc := range o {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(uint64(arc), 10))
	}
	return sb.String()
}

func (ObjectIdentifier) ASN1Tag() Tag { return TagObjectIdentifier }
func (ObjectIdentifier) ASN1Constraints() Constraints { return NoConstraints }
func (ObjectIdentifier) ASN1Identifier() string { return "OBJECT_IDENTIFIER" }

func (o ObjectIdentifier) EncodeASN1(e Encoder, tag Tag, _ Constraints) error {
	if err := o.Validate(); err != nil {
		return CustomEncodeError(err.Error(), e.Codec())
	}

	return e.EncodeObjectIdentifier(tag, o)
}

func (o *ObjectIdentifier) DecodeASN1(d Decoder, tag Tag, _ Constraints) error {
	v, err := d.DecodeObjectIdentifier(tag)
	if err != nil {
		return err
	}

	*o = v
	return nil
}

func (o ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	if len(o) != len(other) {
		return false
	}
	for i := range o {
		if o[i] != other[i] {
			return false
		}
	}
	return true
}
