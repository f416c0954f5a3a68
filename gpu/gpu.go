// Package gpu moves float32 arrays into WebGPU storage buffers and back.
//
// The WebGPU backend is compiled only with -tags=gpu. Without the tag every
// operation returns ErrNoGPU so callers can fall back to host memory.
package gpu

import (
	"errors"
	"fmt"

	"github.com/openfluke/ndarray/ndarray"
)

// ErrNoGPU is the single error used when no device backend is available.
var ErrNoGPU = errors.New("gpu unavailable (build with -tags=gpu to enable)")

// nativeBuffer is implemented by the device backend.
type nativeBuffer interface {
	read(n int) ([]float32, error)
	destroy()
}

// Buffer is a device-resident copy of an array. It remembers the array's
// shape so Download can rebuild it.
type Buffer struct {
	shape  ndarray.Shape
	native nativeBuffer
}

// Available reports whether a device backend was compiled in and a device
// could be initialised.
func Available() bool {
	return available()
}

// Upload copies the array's elements into a new storage buffer.
func Upload(a *ndarray.Array[float32]) (*Buffer, error) {
	if a == nil {
		return nil, fmt.Errorf("gpu: upload of nil array")
	}
	native, err := newNative(a.Flat())
	if err != nil {
		return nil, err
	}
	return &Buffer{shape: a.Dims(), native: native}, nil
}

// Dims returns the shape of the uploaded array.
func (b *Buffer) Dims() ndarray.Shape {
	return b.shape.Clone()
}

// Download reads the buffer back into a new array of the uploaded shape.
func (b *Buffer) Download() (*ndarray.Array[float32], error) {
	if b.native == nil {
		return nil, fmt.Errorf("gpu: download from released buffer")
	}
	data, err := b.native.read(b.shape.NumElements())
	if err != nil {
		return nil, err
	}
	return ndarray.FromFlat(data, b.shape...)
}

// Release frees the device memory. The buffer cannot be used afterwards.
func (b *Buffer) Release() {
	if b.native != nil {
		b.native.destroy()
		b.native = nil
	}
}
