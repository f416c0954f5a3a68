//go:build !gpu

package gpu

// Default to no device so everything builds and runs without tags.

func available() bool { return false }

func newNative([]float32) (nativeBuffer, error) { return nil, ErrNoGPU }
