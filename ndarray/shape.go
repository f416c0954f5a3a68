package ndarray

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Shape is the ordered list of extents of an array, outermost first.
type Shape []int

// NumElements returns the product of all extents.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 0
	}
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate checks that the shape has at least one dimension, that every
// extent is positive and that the element count fits in an int.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: at least one dimension is required", ErrInvalidShape)
	}
	n := 1
	for i, d := range s {
		if d <= 0 {
			return fmt.Errorf("%w: extent %d at dimension %d must be > 0", ErrInvalidShape, d, i)
		}
		if n > math.MaxInt/d {
			return fmt.Errorf("%w: element count of %v overflows int", ErrInvalidShape, s)
		}
		n *= d
	}
	return nil
}

// Equal reports whether both shapes have the same extents in the same order.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	copy(c, s)
	return c
}

// Strides returns row-major strides: strides[i] is the number of elements
// spanned by one step along dimension i.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	step := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = step
		step *= s[i]
	}
	return strides
}

// String renders the shape as a flat bracketed list, e.g. "[2, 5]".
func (s Shape) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(d))
	}
	b.WriteByte(']')
	return b.String()
}
