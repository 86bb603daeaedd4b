package asn1

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/errors"
)

// Range is an inclusive interval. Either bound may be absent.
type Range struct {
	Min, Max       int64
	HasMin, HasMax bool
}

// IsZero reports whether the range has no bound at all.
func (r Range) IsZero() bool {
	return !r.HasMin && !r.HasMax
}

// Contains reports whether x lies within the range.
func (r Range) Contains(x int64) bool {
	if r.HasMin && x < r.Min {
		return false
	}
	if r.HasMax && x > r.Max {
		return false
	}
	return true
}

// ContainsBig is like Contains but for arbitrary precision integers.
func (r Range) ContainsBig(x *big.Int) bool {
	if r.HasMin && x.Cmp(big.NewInt(r.Min)) < 0 {
		return false
	}
	if r.HasMax && x.Cmp(big.NewInt(r.Max)) > 0 {
		return false
	}
	return true
}

func (r Range) String() string {
	lo, hi := "MIN", "MAX"
	if r.HasMin {
		lo = fmt.Sprint(r.Min)
	}
	if r.HasMax {
		hi = fmt.Sprint(r.Max)
	}
	if r.HasMin && r.HasMax && r.Min == r.Max {
		return lo
	}
	return lo + ".." + hi
}

// Constraints restricts the values of a type or of a field.
// A Constraints value is never modified once built.
type Constraints struct {
	Value Range
	Size  Range

	// Extensible marks the constraints as extensible: values
	// outside of the ranges are valid but must be flagged as extensions.
	Extensible bool
}

// NoConstraints is the empty set of constraints.
var NoConstraints = Constraints{}

// ValueRange returns constraints permitting values in [lo, hi].
func ValueRange(lo, hi int64) Constraints {
	return Constraints{Value: Range{Min: lo, Max: hi, HasMin: true, HasMax: true}}
}

// MinValue returns constraints permitting values >= lo.
func MinValue(lo int64) Constraints {
	return Constraints{Value: Range{Min: lo, HasMin: true}}
}

// MaxValue returns constraints permitting values <= hi.
func MaxValue(hi int64) Constraints {
	return Constraints{Value: Range{Max: hi, HasMax: true}}
}

// SizeRange returns constraints permitting sizes in [lo, hi].
func SizeRange(lo, hi int64) Constraints {
	return Constraints{Size: Range{Min: lo, Max: hi, HasMin: true, HasMax: true}}
}

// FixedSize returns constraints permitting exactly n elements.
func FixedSize(n int64) Constraints {
	return SizeRange(n, n)
}

// WithExtensible returns a copy of c marked as extensible.
func (c Constraints) WithExtensible() Constraints {
	c.Extensible = true
	return c
}

// Override returns c where every component declared by field
// replaces the one of c. It is used to apply the constraints of a field
// on top of the constraints of its type.
func (c Constraints) Override(field Constraints) Constraints {
	if !field.Value.IsZero() {
		c.Value = field.Value
	}
	if !field.Size.IsZero() {
		c.Size = field.Size
	}
	if field.Extensible {
		c.Extensible = true
	}
	return c
}

// CheckValue validates x against the value constraint.
// If x is out of range but the constraints are extensible, it returns
// extended = true and no error.
func (c Constraints) CheckValue(x *big.Int) (extended bool, err error) {
	if c.Value.ContainsBig(x) {
		return false, nil
	}
	if c.Extensible {
		return true, nil
	}
	return false, errors.Errorf("value %s is not in range %s", x, c.Value)
}

// CheckSize validates n against the size constraint.
func (c Constraints) CheckSize(n int) (extended bool, err error) {
	if c.Size.Contains(int64(n)) {
		return false, nil
	}
	if c.Extensible {
		return true, nil
	}
	return false, errors.Errorf("size %d is not in range %s", n, c.Size)
}
