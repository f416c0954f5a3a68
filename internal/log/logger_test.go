package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseIsSilentByDefault(t *testing.T) {
	l := WithComponent("test")
	assert.NotPanics(t, func() { l.Error().Msg("dropped") })
}

func TestConfigureLevelAndComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: "disabled", Output: &bytes.Buffer{}}) })

	l := WithComponent("safetensors")
	l.Debug().Str("dtype", "C64").Msg("skipped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "safetensors", entry["component"])
	assert.Equal(t, "C64", entry["dtype"])
	assert.Equal(t, "skipped", entry["message"])
}

func TestConfigureFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "error", Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: "disabled", Output: &bytes.Buffer{}}) })

	l := Base()
	l.Warn().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestConfigureEnvFallback(t *testing.T) {
	t.Setenv("NDARRAY_LOG_LEVEL", "info")
	var buf bytes.Buffer
	Configure(Config{Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: "disabled", Output: &bytes.Buffer{}}) })

	l := Base()
	l.Info().Msg("shown")
	l.Debug().Msg("hidden")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}
