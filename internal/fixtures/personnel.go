package fixtures

import "github.com/chaisql/asn1"

// PersonnelRecord ::= [APPLICATION 0] IMPLICIT SET {
//
//	name         Name,
//	title        [0] EXPLICIT VisibleString,
//	number       EmployeeNumber,
//	dateOfHire   [1] EXPLICIT Date,
//	nameOfSpouse [2] EXPLICIT Name,
//	children     [3] IMPLICIT SEQUENCE OF ChildInformation DEFAULT {} }
type PersonnelRecord struct {
	Name         Name
	Title        asn1.VisibleString
	Number       EmployeeNumber
	DateOfHire   Date
	NameOfSpouse Name
	Children     Children
}

var personnelRecordDescriptor = asn1.Constructed{
	Identifier: "PersonnelRecord",
	Fields: []asn1.Field{
		{Name: "name", Tag: asn1.ApplicationTag(1)},
		{Name: "title", Tag: asn1.ContextTag(0)},
		{Name: "number", Tag: asn1.ApplicationTag(2)},
		{Name: "dateOfHire", Tag: asn1.ContextTag(1)},
		{Name: "nameOfSpouse", Tag: asn1.ContextTag(2)},
		{Name: "children", Tag: asn1.ContextTag(3), Default: true},
	},
}

func (PersonnelRecord) ASN1Tag() asn1.Tag { return asn1.ApplicationTag(0) }
func (PersonnelRecord) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (PersonnelRecord) ASN1Identifier() string { return personnelRecordDescriptor.Identifier }
func (PersonnelRecord) ASN1Descriptor() *asn1.Constructed { return &personnelRecordDescriptor }

func (r PersonnelRecord) EncodeASN1(e asn1.Encoder, tag asn1.Tag, _ asn1.Constraints) error {
	return e.EncodeSet(tag, &personnelRecordDescriptor, func(e asn1.Encoder) error {
		if err := asn1.Encode(e, r.Name); err != nil {
			return err
		}
		if err := asn1.EncodeExplicit(e, r.Title, asn1.ContextTag(0)); err != nil {
			return err
		}
		if err := asn1.Encode(e, r.Number); err != nil {
			return err
		}
		if err := asn1.EncodeExplicit(e, r.DateOfHire, asn1.ContextTag(1)); err != nil {
			return err
		}
		if err := asn1.EncodeExplicit(e, r.NameOfSpouse, asn1.ContextTag(2)); err != nil {
			return err
		}
		return asn1.EncodeDefaultWithTag(e, r.Children, noChildren, asn1.ContextTag(3))
	})
}

func (r *PersonnelRecord) DecodeASN1(d asn1.Decoder, tag asn1.Tag, _ asn1.Constraints) error {
	r.Children = noChildren()

	return d.DecodeSet(tag, &personnelRecordDescriptor, func(d asn1.Decoder, i int) error {
		switch i {
		case 0:
			return asn1.Decode(d, &r.Name)
		case 1:
			return asn1.DecodeExplicit(d, &r.Title, asn1.ContextTag(0))
		case 2:
			return asn1.Decode(d, &r.Number)
		case 3:
			return asn1.DecodeExplicit(d, &r.DateOfHire, asn1.ContextTag(1))
		case 4:
			return asn1.DecodeExplicit(d, &r.NameOfSpouse, asn1.ContextTag(2))
		case 5:
			return asn1.DecodeWithTag(d, &r.Children, asn1.ContextTag(3))
		}

		return nil
	})
}

// Name ::= [APPLICATION 1] IMPLICIT SEQUENCE {
//
//	givenName  VisibleString,
//	initial    VisibleString,
//	familyName VisibleString }
type Name struct {
	GivenName  asn1.VisibleString
	Initial    asn1.VisibleString
	FamilyName asn1.VisibleString
}

var nameDescriptor = asn1.Constructed{
	Identifier: "Name",
	Fields: []asn1.Field{
		{Name: "givenName", Tag: asn1.TagVisibleString},
		{Name: "initial", Tag: asn1.TagVisibleString},
		{Name: "familyName", Tag: asn1.TagVisibleString},
	},
}

func (Name) ASN1Tag() asn1.Tag { return asn1.ApplicationTag(1) }
func (Name) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (Name) ASN1Identifier() string { return nameDescriptor.Identifier }
func (Name) ASN1Descriptor() *asn1.Constructed { return &nameDescriptor }

func (n Name) EncodeASN1(e asn1.Encoder, tag asn1.Tag, _ asn1.Constraints) error {
	return e.EncodeSequence(tag, &nameDescriptor, func(e asn1.Encoder) error {
		if err := asn1.Encode(e, n.GivenName); err != nil {
			return err
		}
		if err := asn1.Encode(e, n.Initial); err != nil {
			return err
		}
		return asn1.Encode(e, n.FamilyName)
	})
}

func (n *Name) DecodeASN1(d asn1.Decoder, tag asn1.Tag, _ asn1.Constraints) error {
	return d.DecodeSequence(tag, &nameDescriptor, func(d asn1.Decoder) error {
		if err := asn1.Decode(d, &n.GivenName); err != nil {
			return err
		}
		if err := asn1.Decode(d, &n.Initial); err != nil {
			return err
		}
		return asn1.Decode(d, &n.FamilyName)
	})
}

// ChildInformation ::= SET {
//
//	name        Name,
//	dateOfBirth [0] EXPLICIT Date }
type ChildInformation struct {
	Name        Name
	DateOfBirth Date
}

var childInformationDescriptor = asn1.Constructed{
	Identifier: "ChildInformation",
	Fields: []asn1.Field{
		{Name: "name", Tag: asn1.ApplicationTag(1)},
		{Name: "dateOfBirth", Tag: asn1.ContextTag(0)},
	},
}

func (ChildInformation) ASN1Tag() asn1.Tag { return asn1.TagSet }
func (ChildInformation) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (ChildInformation) ASN1Identifier() string { return childInformationDescriptor.Identifier }
func (ChildInformation) ASN1Descriptor() *asn1.Constructed { return &childInformationDescriptor }

func (c ChildInformation) EncodeASN1(e asn1.Encoder, tag asn1.Tag, _ asn1.Constraints) error {
	return e.EncodeSet(tag, &childInformationDescriptor, func(e asn1.Encoder) error {
		if err := asn1.Encode(e, c.Name); err != nil {
			return err
		}
		return asn1.EncodeExplicit(e, c.DateOfBirth, asn1.ContextTag(0))
	})
}

func (c *ChildInformation) DecodeASN1(d asn1.Decoder, tag asn1.Tag, _ asn1.Constraints) error {
	return d.DecodeSet(tag, &childInformationDescriptor, func(d asn1.Decoder, i int) error {
		if i == 0 {
			return asn1.Decode(d, &c.Name)
		}
		return asn1.DecodeExplicit(d, &c.DateOfBirth, asn1.ContextTag(0))
	})
}

// Children is the SEQUENCE OF ChildInformation of a PersonnelRecord.
type Children []ChildInformation

func noChildren() Children { return nil }

func (Children) ASN1Tag() asn1.Tag { return asn1.TagSequence }
func (Children) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (Children) ASN1Identifier() string { return "SEQUENCE_OF" }

func (c Children) EncodeASN1(e asn1.Encoder, tag asn1.Tag, cs asn1.Constraints) error {
	return asn1.SequenceOf[ChildInformation](c).EncodeASN1(e, tag, cs)
}

func (c *Children) DecodeASN1(d asn1.Decoder, tag asn1.Tag, cs asn1.Constraints) error {
	var s asn1.SequenceOf[ChildInformation]
	if err := s.DecodeASN1(d, tag, cs); err != nil {
		return err
	}

	*c = Children(s)
	return nil
}

// Equal reports whether both lists hold the same children. A nil list equals an empty one.
func (c Children) Equal(other Children) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Date ::= [APPLICATION 3] IMPLICIT VisibleString -- YYYYMMDD
type Date string

func (Date) ASN1Tag() asn1.Tag { return asn1.ApplicationTag(3) }
func (Date) ASN1Constraints() asn1.Constraints { return asn1.FixedSize(8) }
func (Date) ASN1Identifier() string { return "Date" }

func (dt Date) EncodeASN1(e asn1.Encoder, tag asn1.Tag, c asn1.Constraints) error {
	return asn1.VisibleString(dt).EncodeASN1(e, tag, c)
}

func (dt *Date) DecodeASN1(d asn1.Decoder, tag asn1.Tag, c asn1.Constraints) error {
	var s asn1.VisibleString
	if err := s.DecodeASN1(d, tag, c); err != nil {
		return err
	}

	*dt = Date(s)
	return nil
}

// EmployeeNumber ::= [APPLICATION 2] IMPLICIT INTEGER
type EmployeeNumber int

func (EmployeeNumber) ASN1Tag() asn1.Tag { return asn1.ApplicationTag(2) }
func (EmployeeNumber) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (EmployeeNumber) ASN1Identifier() string { return "EmployeeNumber" }

func (n EmployeeNumber) EncodeASN1(e asn1.Encoder, tag asn1.Tag, c asn1.Constraints) error {
	return asn1.Int(n).EncodeASN1(e, tag, c)
}

func (n *EmployeeNumber) DecodeASN1(d asn1.Decoder, tag asn1.Tag, c asn1.Constraints) error {
	var i asn1.Int
	if err := i.DecodeASN1(d, tag, c); err != nil {
		return err
	}

	*n = EmployeeNumber(i)
	return nil
}
