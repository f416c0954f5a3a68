package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestElemRoundTrip verifies SetElem followed by Elem returns the written value
func TestElemRoundTrip(t *testing.T) {
	v := Must(New[int](4))
	for i := 0; i < 4; i++ {
		v.SetElem(i, i*10)
	}
	for i := 0; i < 4; i++ {
		assert.Equal(t, i*10, v.Elem(i))
	}
}

// TestRefBorrowsElement verifies writes through Ref land in the array
func TestRefBorrowsElement(t *testing.T) {
	v := Must(FromValues(3, 1, 2, 3))
	*v.Ref(1) = 20
	assert.Equal(t, []int{1, 20, 3}, v.Flat())
}

// TestRowBorrowsStorage verifies Row views alias the parent
func TestRowBorrowsStorage(t *testing.T) {
	m := Must(New[int](2, 3))
	row := m.Row(1)
	require.Equal(t, Shape{3}, row.Dims())

	row.SetElem(2, 5)
	assert.Equal(t, 5, m.Get(1, 2))

	m.Set(8, 1, 0)
	assert.Equal(t, 8, row.Elem(0))
}

// TestNestedRowChain verifies chained Row calls reach the innermost dimension
func TestNestedRowChain(t *testing.T) {
	cube := Must(New[string](2, 3, 4))
	cube.Row(1).Row(2).SetElem(3, "x")

	assert.Equal(t, "x", cube.Get(1, 2, 3))
	assert.Equal(t, Shape{4}, cube.Row(0).Row(0).Dims())
}

// TestExtractIsOwned verifies Extract copies instead of borrowing
func TestExtractIsOwned(t *testing.T) {
	m := Must(Full(1, 2, 2))
	sub := m.Extract(0)
	sub.SetElem(0, 42)

	assert.Equal(t, 1, m.Get(0, 0))
	assert.Equal(t, []int{42, 1}, sub.Flat())
}

// TestRowAppendDoesNotLeak verifies a view cannot grow into its neighbour
func TestRowAppendDoesNotLeak(t *testing.T) {
	m := Must(New[int](2, 2))
	view := m.Row(0)
	grown := append(view.data, 7)

	assert.Len(t, grown, 3)
	assert.Equal(t, 0, m.Get(1, 0))
}

// TestGetSetRoundTrip verifies every coordinate of a rank-3 array round-trips
func TestGetSetRoundTrip(t *testing.T) {
	a := Must(New[int](2, 3, 4))
	n := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				a.Set(n, i, j, k)
				n++
			}
		}
	}
	flat := a.Flat()
	for i := range flat {
		assert.Equal(t, i, flat[i], "row-major order")
	}
	assert.Equal(t, 23, a.Get(1, 2, 3))
}

// TestRankMisusePanics verifies rank-specific accessors reject the wrong rank
func TestRankMisusePanics(t *testing.T) {
	vec := Must(New[int](3))
	mat := Must(New[int](2, 3))

	assert.Panics(t, func() { vec.Row(0) })
	assert.Panics(t, func() { mat.Elem(0) })
	assert.Panics(t, func() { mat.SetElem(0, 1) })
	assert.Panics(t, func() { mat.Ref(0) })
	assert.Panics(t, func() { mat.Get(0) })
}

// TestCheckedAccess verifies the checked variants report out-of-range coordinates
func TestCheckedAccess(t *testing.T) {
	m := Must(FromFlat([]int{1, 2, 3, 4, 5, 6}, 2, 3))

	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	require.NoError(t, m.SetAt(60, 1, 2))
	assert.Equal(t, 60, m.Get(1, 2))

	tests := []struct {
		name string
		idx  []int
	}{
		{"negative", []int{-1, 0}},
		{"row past end", []int{2, 0}},
		{"column past end", []int{0, 3}},
		{"too few coordinates", []int{0}},
		{"too many coordinates", []int{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.At(tt.idx...)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
			assert.ErrorIs(t, m.SetAt(0, tt.idx...), ErrIndexOutOfRange)
		})
	}
}

// TestRowAt verifies checked row access
func TestRowAt(t *testing.T) {
	m := Must(FromFlat([]int{1, 2, 3, 4}, 2, 2))

	row, err := m.RowAt(1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, row.Flat())

	_, err = m.RowAt(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = m.RowAt(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = row.RowAt(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}
