// Package ndarray provides rectangular multidimensional arrays whose shape is
// fixed at construction.
//
// An array of shape [D0, D1, ..., Dn-1] is D0 sub-arrays of shape
// [D1, ..., Dn-1]; the last dimension holds elements of T directly. Storage is
// one row-major slice, so the total element count is always the product of
// the extents and no operation changes the shape.
//
// Arrays can be built four ways:
//
//	a, _ := ndarray.New[int](2, 5)           // zero values
//	b, _ := ndarray.Full(7, 2, 5)            // broadcast
//	r, _ := ndarray.FromValues(5, 1, 2, 3)   // [1, 2, 3, 0, 0]
//	c, _ := ndarray.Stack(2, r, r2)          // rows must number exactly 2
//
// Indexing comes in an unchecked form (Row, Elem, Get, Set), which does not
// validate coordinates, and a checked form (RowAt, At, SetAt), which returns
// ErrIndexOutOfRange. Row borrows: the sub-array it returns aliases the
// parent. Extract returns an owned copy instead.
//
// String renders the array for humans:
//
//	[
//	  [1, 2, 3, 0, 0],
//	  [1, 2, 3, 4, 5]
//	]
package ndarray
