//go:build gpu

package gpu

import (
	"fmt"
	"strings"
	"sync"

	"github.com/openfluke/webgpu/wgpu"

	"github.com/openfluke/ndarray/internal/log"
)

// Context holds the single WebGPU context for the process.
type Context struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
}

var (
	ctx     Context
	ctxOnce sync.Once
	ctxErr  error
)

// GetContext returns the singleton GPU context, initializing it if necessary.
func GetContext() (*Context, error) {
	ctxOnce.Do(func() { ctxErr = initContext(&ctx) })
	if ctxErr != nil {
		return nil, ctxErr
	}
	if ctx.Device == nil || ctx.Queue == nil {
		return nil, fmt.Errorf("WebGPU device or queue not initialized")
	}
	return &ctx, nil
}

func initContext(c *Context) error {
	logger := log.WithComponent("gpu")

	c.Instance = wgpu.CreateInstance(nil)
	if c.Instance == nil {
		return fmt.Errorf("failed to create WebGPU instance")
	}

	// Prefer a discrete NVIDIA adapter when one is enumerated.
	for _, a := range c.Instance.EnumerateAdapters(nil) {
		info := a.GetInfo()
		logger.Debug().Str("adapter", info.Name).Str("vendor", info.VendorName).Msg("found adapter")
		if strings.Contains(strings.ToLower(info.Name), "nvidia") ||
			strings.Contains(strings.ToLower(info.VendorName), "nvidia") {
			c.Adapter = a
			break
		}
	}

	var err error
	for _, opts := range []*wgpu.RequestAdapterOptions{
		{PowerPreference: wgpu.PowerPreferenceHighPerformance},
		{PowerPreference: wgpu.PowerPreferenceLowPower},
		nil,
	} {
		if c.Adapter != nil {
			break
		}
		c.Adapter, err = c.Instance.RequestAdapter(opts)
		if err != nil {
			logger.Debug().Err(err).Msg("adapter request failed, falling back")
		}
	}
	if c.Adapter == nil {
		return fmt.Errorf("all adapter attempts failed: %v", err)
	}

	info := c.Adapter.GetInfo()
	logger.Info().Str("adapter", info.Name).Str("vendor", info.VendorName).Msg("using GPU adapter")

	c.Device, err = c.Adapter.RequestDevice(nil)
	if err != nil {
		return err
	}
	c.Queue = c.Device.GetQueue()
	return nil
}

func available() bool {
	_, err := GetContext()
	return err == nil
}
