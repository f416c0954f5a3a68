package ndarray

import "fmt"

// =============================================================================
// Unchecked access
// =============================================================================
//
// The accessors in this section do not validate coordinates against the
// extents. A coordinate outside [0, extent) either lands on another element
// or panics with a runtime slice error; callers must not rely on either.

// Row returns the i-th sub-array along the outermost dimension. The result
// shares storage with a, so writes through it are visible in a.
// Row panics if a has rank 1; use Elem for scalars.
func (a *Array[T]) Row(i int) *Array[T] {
	if len(a.shape) < 2 {
		panic("ndarray: Row on a rank-1 array, use Elem")
	}
	step := a.strides[0]
	lo, hi := i*step, (i+1)*step
	return &Array[T]{
		data:    a.data[lo:hi:hi],
		shape:   a.shape[1:],
		strides: a.strides[1:],
	}
}

// Extract returns an owned copy of the i-th sub-array along the outermost
// dimension.
func (a *Array[T]) Extract(i int) *Array[T] {
	return a.Row(i).Clone()
}

// Elem returns the i-th element of a rank-1 array.
func (a *Array[T]) Elem(i int) T {
	a.mustBeVector("Elem")
	return a.data[i]
}

// Ref returns a pointer to the i-th element of a rank-1 array.
func (a *Array[T]) Ref(i int) *T {
	a.mustBeVector("Ref")
	return &a.data[i]
}

// SetElem assigns v to the i-th element of a rank-1 array.
func (a *Array[T]) SetElem(i int, v T) {
	a.mustBeVector("SetElem")
	a.data[i] = v
}

// Get returns the element at the given coordinates, one per dimension.
func (a *Array[T]) Get(idx ...int) T {
	return a.data[a.offset(idx)]
}

// Set assigns v to the element at the given coordinates.
func (a *Array[T]) Set(v T, idx ...int) {
	a.data[a.offset(idx)] = v
}

func (a *Array[T]) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: %d coordinates for rank-%d array", len(idx), len(a.shape)))
	}
	off := 0
	for k, i := range idx {
		off += i * a.strides[k]
	}
	return off
}

func (a *Array[T]) mustBeVector(op string) {
	if len(a.shape) != 1 {
		panic(fmt.Sprintf("ndarray: %s on a rank-%d array, use Row", op, len(a.shape)))
	}
}

// =============================================================================
// Checked access
// =============================================================================

// RowAt is Row with bounds checking.
func (a *Array[T]) RowAt(i int) (*Array[T], error) {
	if len(a.shape) < 2 {
		return nil, fmt.Errorf("%w: row access on a rank-1 array", ErrIndexOutOfRange)
	}
	if i < 0 || i >= a.shape[0] {
		return nil, fmt.Errorf("%w: row %d outside [0, %d)", ErrIndexOutOfRange, i, a.shape[0])
	}
	return a.Row(i), nil
}

// At is Get with bounds checking.
func (a *Array[T]) At(idx ...int) (T, error) {
	var zero T
	if err := a.checkIndex(idx); err != nil {
		return zero, err
	}
	return a.data[a.offset(idx)], nil
}

// SetAt is Set with bounds checking.
func (a *Array[T]) SetAt(v T, idx ...int) error {
	if err := a.checkIndex(idx); err != nil {
		return err
	}
	a.data[a.offset(idx)] = v
	return nil
}

func (a *Array[T]) checkIndex(idx []int) error {
	if len(idx) != len(a.shape) {
		return fmt.Errorf("%w: %d coordinates for rank-%d array", ErrIndexOutOfRange, len(idx), len(a.shape))
	}
	for k, i := range idx {
		if i < 0 || i >= a.shape[k] {
			return fmt.Errorf("%w: coordinate %d at dimension %d outside [0, %d)",
				ErrIndexOutOfRange, i, k, a.shape[k])
		}
	}
	return nil
}
