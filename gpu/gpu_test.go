//go:build !gpu

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfluke/ndarray/ndarray"
)

// fakeBuffer stands in for device memory.
type fakeBuffer struct {
	data      []float32
	destroyed bool
}

func (f *fakeBuffer) read(n int) ([]float32, error) { return f.data[:n], nil }
func (f *fakeBuffer) destroy()                      { f.destroyed = true }

func TestUploadWithoutBackend(t *testing.T) {
	assert.False(t, Available())

	a := ndarray.Must(ndarray.Full[float32](1, 2, 2))
	buf, err := Upload(a)
	assert.Nil(t, buf)
	assert.ErrorIs(t, err, ErrNoGPU)

	_, err = Upload(nil)
	assert.Error(t, err)
}

func TestDownloadRestoresShape(t *testing.T) {
	fake := &fakeBuffer{data: []float32{1, 2, 3, 4, 5, 6}}
	buf := &Buffer{shape: ndarray.Shape{3, 2}, native: fake}

	got, err := buf.Download()
	require.NoError(t, err)
	assert.Equal(t, ndarray.Shape{3, 2}, got.Dims())
	assert.Equal(t, float32(6), got.Get(2, 1))
	assert.Equal(t, ndarray.Shape{3, 2}, buf.Dims())

	buf.Release()
	assert.True(t, fake.destroyed)
	buf.Release()

	_, err = buf.Download()
	assert.Error(t, err)
}
