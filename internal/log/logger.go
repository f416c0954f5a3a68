// Package log configures the zerolog logger shared by the ndarray tools.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level  string    // optional log level ("debug", "info", etc.)
	Output io.Writer // optional writer (defaults to os.Stderr)
}

var (
	mu   sync.Mutex
	base = zerolog.Nop()
)

// Configure replaces the base logger. An empty level falls back to
// NDARRAY_LOG_LEVEL, then to "warn".
func Configure(cfg Config) zerolog.Logger {
	level := zerolog.WarnLevel
	name := cfg.Level
	if name == "" {
		name = os.Getenv("NDARRAY_LOG_LEVEL")
	}
	if name != "" {
		if parsed, err := zerolog.ParseLevel(name); err == nil {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}

	l := zerolog.New(writer).Level(level).With().Timestamp().Logger()

	mu.Lock()
	base = l
	mu.Unlock()
	return l
}

// Base returns the configured base logger. Until Configure is called it
// discards everything.
func Base() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
