// Package cursor tracks which field of a constructed value a text based
// codec is about to encode or decode, so that values can be named after
// their field.
package cursor

import "github.com/chaisql/asn1"

// Scope tracks the fields of the constructed value being
// encoded or decoded.
type Scope struct {
	Fields []asn1.Field
	Next   int
	// Items is true in the body of a SEQUENCE OF or a SET OF,
	// where values are named after their type.
	Items bool
	// Unordered is true when decoding the members of a SET.
	Unordered bool
}

// Cursor is a stack of scopes.
type Cursor struct {
	scopes []Scope
	// Fail builds the errors of the cursor.
	Fail func(kind error, format string, args ...any) error
}

func (c *Cursor) Push(s Scope) {
	c.scopes = append(c.scopes, s)
}

// Pop leaves the current scope. Every field of the scope must have been visited.
func (c *Cursor) Pop() error {
	s := c.scopes[len(c.scopes)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]

	if !s.Items && !s.Unordered && s.Next != len(s.Fields) {
		return c.Fail(asn1.ErrFieldCount, "%d fields declared, %d visited", len(s.Fields), s.Next)
	}

	return nil
}

// Top returns the current scope, or nil.
func (c *Cursor) Top() *Scope {
	if len(c.scopes) == 0 {
		return nil
	}

	return &c.scopes[len(c.scopes)-1]
}

// InField reports whether the next value is a field of a constructed value.
func (c *Cursor) InField() bool {
	s := c.Top()
	return s != nil && !s.Items
}

// PeekField returns the field the next value belongs to.
func (c *Cursor) PeekField() (asn1.Field, error) {
	s := c.Top()
	if s.Next >= len(s.Fields) {
		return asn1.Field{}, c.Fail(asn1.ErrMissingFieldName, "only %d fields declared", len(s.Fields))
	}

	return s.Fields[s.Next], nil
}

// Name returns the name of the next value and consumes the field, if any.
// def is used outside of constructed values.
func (c *Cursor) Name(def string) (string, error) {
	if !c.InField() {
		return def, nil
	}

	f, err := c.PeekField()
	if err != nil {
		return "", err
	}

	c.Top().Next++
	return f.Name, nil
}
