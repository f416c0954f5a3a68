//go:build gpu

package gpu

import (
	"fmt"
	"time"

	"github.com/openfluke/webgpu/wgpu"
)

const readTimeout = 2 * time.Second

type wgpuBuffer struct {
	buf *wgpu.Buffer
}

func newNative(data []float32) (nativeBuffer, error) {
	c, err := GetContext()
	if err != nil {
		return nil, err
	}

	buf, err := c.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Contents: wgpu.ToBytes(data),
		Usage:    wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer: %v", err)
	}
	return &wgpuBuffer{buf: buf}, nil
}

func (b *wgpuBuffer) destroy() {
	b.buf.Destroy()
}

// read copies n float32 values out through a mappable staging buffer.
func (b *wgpuBuffer) read(n int) ([]float32, error) {
	c, err := GetContext()
	if err != nil {
		return nil, err
	}

	sizeBytes := uint64(n * 4)
	staging, err := c.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "ReadStaging",
		Size:  sizeBytes,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create staging buffer: %v", err)
	}
	defer staging.Destroy()

	encoder, err := c.Device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create command encoder: %v", err)
	}
	encoder.CopyBufferToBuffer(b.buf, 0, staging, 0, sizeBytes)
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to finish command: %v", err)
	}
	c.Queue.Submit(cmd)

	done := make(chan struct{})
	var mapErr error
	err = staging.MapAsync(wgpu.MapModeRead, 0, sizeBytes, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			mapErr = fmt.Errorf("map failed: %v", status)
		}
		close(done)
	})
	if err != nil {
		return nil, fmt.Errorf("MapAsync failed: %v", err)
	}

	// Poll without blocking so the timeout can fire.
	timeout := time.After(readTimeout)
Loop:
	for {
		c.Device.Poll(false, nil)
		select {
		case <-done:
			break Loop
		case <-timeout:
			return nil, fmt.Errorf("buffer read timed out after %v", readTimeout)
		default:
			time.Sleep(time.Millisecond)
		}
	}
	if mapErr != nil {
		return nil, mapErr
	}

	mapped := staging.GetMappedRange(0, uint(sizeBytes))
	if mapped == nil {
		return nil, fmt.Errorf("failed to get mapped range")
	}
	out := make([]float32, n)
	copy(out, wgpu.FromBytes[float32](mapped))
	staging.Unmap()
	return out, nil
}
