package asn1

import "strconv"

// Class is the class of a Tag.
type Class uint8

// List of tag classes, in their canonical ordering.
const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContext
	ClassPrivate
)

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "UNIVERSAL"
	case ClassApplication:
		return "APPLICATION"
	case ClassContext:
		return "CONTEXT"
	case ClassPrivate:
		return "PRIVATE"
	}

	return "Class(" + strconv.Itoa(int(c)) + ")"
}

// Tag identifies a type on the wire.
type Tag struct {
	Class Class
	Value uint32
}

// Universal tags of the built-in types.
var (
	// TagEOC is the end-of-contents tag. It is also the tag of types
	// that have no fixed wire identity, like CHOICE and ANY.
	TagEOC              = Tag{ClassUniversal, 0}
	TagBoolean          = Tag{ClassUniversal, 1}
	TagInteger          = Tag{ClassUniversal, 2}
	TagBitString        = Tag{ClassUniversal, 3}
	TagOctetString      = Tag{ClassUniversal, 4}
	TagNull             = Tag{ClassUniversal, 5}
	TagObjectIdentifier = Tag{ClassUniversal, 6}
	TagEnumerated       = Tag{ClassUniversal, 10}
	TagUTF8String       = Tag{ClassUniversal, 12}
	TagSequence         = Tag{ClassUniversal, 16}
	TagSet              = Tag{ClassUniversal, 17}
	TagNumericString    = Tag{ClassUniversal, 18}
	TagPrintableString  = Tag{ClassUniversal, 19}
	TagTeletexString    = Tag{ClassUniversal, 20}
	TagIA5String        = Tag{ClassUniversal, 22}
	TagUTCTime          = Tag{ClassUniversal, 23}
	TagGeneralizedTime  = Tag{ClassUniversal, 24}
	TagVisibleString    = Tag{ClassUniversal, 26}
	TagGeneralString    = Tag{ClassUniversal, 27}
	TagBMPString        = Tag{ClassUniversal, 30}

	TagChoice = TagEOC
)

// ContextTag returns the context-specific tag [n].
func ContextTag(n uint32) Tag {
	return Tag{ClassContext, n}
}

// ApplicationTag returns the tag [APPLICATION n].
func ApplicationTag(n uint32) Tag {
	return Tag{ClassApplication, n}
}

// PrivateTag returns the tag [PRIVATE n].
func PrivateTag(n uint32) Tag {
	return Tag{ClassPrivate, n}
}

// IsZero reports whether t is the zero Tag, TagEOC.
func (t Tag) IsZero() bool {
	return t == Tag{}
}

// Less reports whether t sorts before other in canonical order:
// by class first, then by number.
func (t Tag) Less(other Tag) bool {
	if t.Class != other.Class {
		return t.Class < other.Class
	}
	return t.Value < other.Value
}

func (t Tag) String() string {
	if t.Class == ClassContext {
		return "[" + strconv.FormatUint(uint64(t.Value), 10) + "]"
	}
	return "[" + t.Class.String() + " " + strconv.FormatUint(uint64(t.Value), 10) + "]"
}
