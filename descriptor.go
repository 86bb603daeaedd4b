package asn1

// Type exposes the static facts of an ASN.1 type. Implementations must
// return the same values for every value of the type, including the zero value.
type Type interface {
	// ASN1Tag returns the default tag of the type.
	ASN1Tag() Tag
	// ASN1Constraints returns the constraints declared by the type.
	ASN1Constraints() Constraints
	// ASN1Identifier returns the name text based codecs use for values
	// of this type when no field name is available.
	ASN1Identifier() string
}

// ConstructedType is implemented by SEQUENCE, SET and CHOICE types.
type ConstructedType interface {
	Type
	ASN1Descriptor() *Constructed
}

// Enumerated is implemented by ENUMERATED types.
type Enumerated interface {
	Type
	ASN1Enumeration() *Enumeration
	// ASN1VariantIndex returns the position of the value in the
	// Variants of the enumeration.
	ASN1VariantIndex() int
}

// Field describes one component of a constructed type,
// or one alternative of a CHOICE.
type Field struct {
	// Name is the identifier of the field.
	Name string
	// Tag is the tag the field is encoded with: the field tag if
	// there is one, the tag of its type otherwise. Untagged CHOICE
	// and ANY fields have TagEOC, which is also the zero Tag.
	Tag       Tag
	Optional  bool
	Default   bool
	Extension bool
}

// Absentable reports whether a constructed value may omit the field.
func (f Field) Absentable() bool {
	return f.Optional || f.Default || f.Extension
}

// Constructed describes a SEQUENCE, a SET or a CHOICE.
// Fields are listed in declaration order, which is the order
// in which codecs visit them.
type Constructed struct {
	Identifier string
	Fields     []Field
	Extensible bool
}

// FieldIndex returns the index of the field with the given name, or -1.
func (c *Constructed) FieldIndex(name string) int {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return i
		}
	}

	return -1
}

// TagIndex returns the index of the field with the given tag, or -1.
func (c *Constructed) TagIndex(tag Tag) int {
	for i := range c.Fields {
		if c.Fields[i].Tag == tag {
			return i
		}
	}

	return -1
}

// Variant is one item of an ENUMERATED type.
type Variant struct {
	Identifier string
	Value      int64
}

// Enumeration describes an ENUMERATED type.
type Enumeration struct {
	Identifier string
	Variants   []Variant
	Extensible bool
}

// IndexOf returns the index of the variant with the given identifier, or -1.
func (e *Enumeration) IndexOf(identifier string) int {
	for i := range e.Variants {
		if e.Variants[i].Identifier == identifier {
			return i
		}
	}

	return -1
}

// IndexOfValue returns the index of the variant with the given value, or -1.
func (e *Enumeration) IndexOfValue(v int64) int {
	for i := range e.Variants {
		if e.Variants[i].Value == v {
			return i
		}
	}

	return -1
}
