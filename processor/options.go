package processor

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-reverb/internal/logging"
)

// Option mutates processor construction parameters.
type Option func(*config) error

type config struct {
	inputChannels int // 0 means every buffer channel carries input
	logger        *slog.Logger
}

func defaultConfig() config {
	return config{
		logger: logging.Discard(),
	}
}

// WithInputChannels sets how many leading buffer channels carry host input.
// Channels at or beyond n are cleared at the start of every block. 0 (the
// default) treats every channel as input.
func WithInputChannels(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return fmt.Errorf("processor input channels must be >= 0: %d", n)
		}

		cfg.inputChannels = n

		return nil
	}
}

// WithLogger sets the logger used for lifecycle events. Nothing is logged
// from Process.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("processor logger must not be nil")
		}

		cfg.logger = logger

		return nil
	}
}
