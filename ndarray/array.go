package ndarray

import "fmt"

// Array is a rectangular n-dimensional array whose shape is fixed when it is
// built. Storage is a single row-major slice; an array of shape
// [D0, D1, ..., Dn-1] is logically D0 sub-arrays of shape [D1, ..., Dn-1].
//
// Arrays returned by Row share storage with their parent. Every other
// constructor or accessor that returns an *Array returns one that owns its
// storage.
//
// The zero Array has rank 0 and no elements. It is not produced by any
// constructor; Len reports 0 for it and String renders it as "[]".
type Array[T any] struct {
	data    []T
	shape   Shape
	strides []int
}

func newArray[T any](shape Shape) (*Array[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	shape = shape.Clone()
	return &Array[T]{
		data:    make([]T, shape.NumElements()),
		shape:   shape,
		strides: shape.Strides(),
	}, nil
}

// New returns an array of the given shape with every element set to T's
// zero value.
func New[T any](shape ...int) (*Array[T], error) {
	return newArray[T](shape)
}

// Full returns an array of the given shape with value broadcast to every
// element.
func Full[T any](value T, shape ...int) (*Array[T], error) {
	a, err := newArray[T](shape)
	if err != nil {
		return nil, err
	}
	a.Fill(value)
	return a, nil
}

// FromValues builds a one-dimensional array of the given extent. The values
// fill the leading slots in order; the remaining slots keep T's zero value.
// Supplying more values than the extent is an error.
func FromValues[T any](extent int, values ...T) (*Array[T], error) {
	a, err := newArray[T](Shape{extent})
	if err != nil {
		return nil, err
	}
	if len(values) > extent {
		return nil, fmt.Errorf("%w: %d values supplied for extent %d", ErrInvalidShape, len(values), extent)
	}
	copy(a.data, values)
	return a, nil
}

// Stack builds an array whose first dimension has the given extent from
// exactly extent sub-arrays of identical shape. The sub-arrays are copied in
// order; the result has shape [extent, sub-shape...].
func Stack[T any](extent int, subs ...*Array[T]) (*Array[T], error) {
	if len(subs) != extent {
		return nil, fmt.Errorf("%w: initializer length %d does not match declared first-dimension extent %d",
			ErrInvalidShape, len(subs), extent)
	}
	if extent <= 0 {
		return nil, fmt.Errorf("%w: extent %d at dimension 0 must be > 0", ErrInvalidShape, extent)
	}
	for i, sub := range subs {
		if sub == nil {
			return nil, fmt.Errorf("%w: sub-array %d is nil", ErrInvalidShape, i)
		}
		if !sub.shape.Equal(subs[0].shape) {
			return nil, fmt.Errorf("%w: sub-array %d has shape %v, want %v",
				ErrInvalidShape, i, sub.shape, subs[0].shape)
		}
	}

	shape := append(Shape{extent}, subs[0].shape...)
	a, err := newArray[T](shape)
	if err != nil {
		return nil, err
	}
	step := a.strides[0]
	for i, sub := range subs {
		copy(a.data[i*step:(i+1)*step], sub.data)
	}
	return a, nil
}

// FromFlat builds an array of the given shape from row-major data. The
// length of data must equal the number of elements; data is copied.
func FromFlat[T any](data []T, shape ...int) (*Array[T], error) {
	a, err := newArray[T](shape)
	if err != nil {
		return nil, err
	}
	if len(data) != len(a.data) {
		return nil, fmt.Errorf("%w: %d values supplied for shape %v (%d elements)",
			ErrInvalidShape, len(data), a.shape, len(a.data))
	}
	copy(a.data, data)
	return a, nil
}

// Must panics if err is non-nil and returns a otherwise.
func Must[T any](a *Array[T], err error) *Array[T] {
	if err != nil {
		panic(err)
	}
	return a
}

// Dims returns the extents [D0, ..., Dn-1]. The result is a fresh copy.
func (a *Array[T]) Dims() Shape {
	return a.shape.Clone()
}

// Rank returns the number of dimensions.
func (a *Array[T]) Rank() int {
	return len(a.shape)
}

// Len returns the extent of the outermost dimension, or 0 for the zero Array.
func (a *Array[T]) Len() int {
	if len(a.shape) == 0 {
		return 0
	}
	return a.shape[0]
}

// Size returns the total number of elements.
func (a *Array[T]) Size() int {
	return len(a.data)
}

// Clone returns a deep copy that owns its storage.
func (a *Array[T]) Clone() *Array[T] {
	data := make([]T, len(a.data))
	copy(data, a.data)
	return &Array[T]{
		data:    data,
		shape:   a.shape.Clone(),
		strides: append([]int(nil), a.strides...),
	}
}

// Fill sets every element to v.
func (a *Array[T]) Fill(v T) {
	for i := range a.data {
		a.data[i] = v
	}
}

// Flat returns a row-major copy of all elements.
func (a *Array[T]) Flat() []T {
	out := make([]T, len(a.data))
	copy(out, a.data)
	return out
}

// Equal reports whether a and b have the same shape and elements.
func Equal[T comparable](a, b *Array[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !a.shape.Equal(b.shape) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}
