package core

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MaxSampleRate is the highest sample rate a processor accepts.
	MaxSampleRate = 768000.0

	// MaxBlockSize is the largest block a processor can be prepared for.
	MaxBlockSize = 65536
)

// Configuration errors reported by Validate before any processing starts.
var (
	ErrInvalidSampleRate = errors.New("core: unsupported sample rate")
	ErrInvalidBlockSize  = errors.New("core: unsupported block size")
)

// ProcessorConfig defines common DSP processing settings.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns sensible defaults for offline and streaming use.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  512,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.SampleRate = sampleRate
	}
}

// WithBlockSize sets the maximum processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.BlockSize = blockSize
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
// The result is not validated; call Validate before allocating state for it.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports whether cfg can be used to prepare a real-time processor.
func (cfg ProcessorConfig) Validate() error {
	sr := cfg.SampleRate
	if sr <= 0 || sr > MaxSampleRate || math.IsNaN(sr) || math.IsInf(sr, 0) {
		return fmt.Errorf("%w: %g Hz (want (0, %g])", ErrInvalidSampleRate, sr, MaxSampleRate)
	}

	if cfg.BlockSize <= 0 || cfg.BlockSize > MaxBlockSize {
		return fmt.Errorf("%w: %d samples (want [1, %d])", ErrInvalidBlockSize, cfg.BlockSize, MaxBlockSize)
	}

	return nil
}
