package ndarray

import "errors"

var (
	// ErrInvalidShape is returned when construction input disagrees with the
	// declared extents.
	ErrInvalidShape = errors.New("ndarray: invalid shape")

	// ErrIndexOutOfRange is returned by the checked accessors only.
	ErrIndexOutOfRange = errors.New("ndarray: index out of range")
)
