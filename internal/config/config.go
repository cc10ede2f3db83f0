// Package config loads offline render settings from YAML or JSON.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/params"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid render settings")

// MaxTail caps the rendered tail in seconds.
const MaxTail = 60.0

// Render describes one offline render.
type Render struct {
	// SampleRate overrides the input file's rate when non-zero. No
	// resampling happens; the samples are reinterpreted.
	SampleRate int `yaml:"sampleRate" json:"sampleRate"`
	// BlockSize is the host block size fed to the processor.
	BlockSize int `yaml:"blockSize" json:"blockSize"`
	// BitDepth of the output file: 16 or 24.
	BitDepth int `yaml:"bitDepth" json:"bitDepth"`
	// Tail is how many seconds of silence follow the input so the reverb
	// can ring out. AutoTail replaces it with the estimated tail length.
	Tail     float64 `yaml:"tail" json:"tail"`
	AutoTail bool    `yaml:"autoTail" json:"autoTail"`

	Params params.Set `yaml:"params" json:"params"`
}

// Default returns the render settings used when no file is given.
func Default() Render {
	return Render{
		BlockSize: 512,
		BitDepth:  24,
		Tail:      3,
		Params:    params.Defaults(),
	}
}

// Load reads and parses the file at path.
func Load(path string) (Render, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Render{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	r, err := Parse(data)
	if err != nil {
		return Render{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes JSON or YAML on top of Default and validates the result.
// Unknown keys are rejected. Controls outside their ranges are clamped.
func Parse(data []byte) (Render, error) {
	r := Default()

	if errJSON := decodeJSON(data, &r); errJSON != nil {
		r = Default()
		if errYAML := decodeYAML(data, &r); errYAML != nil {
			return Render{}, fmt.Errorf("could not be parsed as json (%v) or yaml (%w)", errJSON, errYAML)
		}
	}

	r.Params = r.Params.Clamp()
	if err := r.Validate(); err != nil {
		return Render{}, err
	}
	return r, nil
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func decodeYAML(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the render settings.
func (r Render) Validate() error {
	switch {
	case r.SampleRate < 0 || float64(r.SampleRate) > core.MaxSampleRate:
		return fmt.Errorf("%w: sample rate %d", ErrInvalid, r.SampleRate)
	case r.BlockSize <= 0 || r.BlockSize > core.MaxBlockSize:
		return fmt.Errorf("%w: block size %d (want [1, %d])", ErrInvalid, r.BlockSize, core.MaxBlockSize)
	case r.BitDepth != 16 && r.BitDepth != 24:
		return fmt.Errorf("%w: bit depth %d (want 16 or 24)", ErrInvalid, r.BitDepth)
	case r.Tail < 0 || r.Tail > MaxTail || math.IsNaN(r.Tail):
		return fmt.Errorf("%w: tail %g s (want [0, %g])", ErrInvalid, r.Tail, MaxTail)
	}
	return nil
}

// Marshal encodes r as YAML.
func (r Render) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// ParsePreset decodes a bare control set, as stored by plugin hosts, on top
// of params.Defaults. The result is clamped.
func ParsePreset(data []byte) (params.Set, error) {
	set := params.Defaults()
	if errJSON := decodeJSON(data, &set); errJSON != nil {
		set = params.Defaults()
		if errYAML := decodeYAML(data, &set); errYAML != nil {
			return params.Set{}, fmt.Errorf("%w: preset could not be parsed as json (%v) or yaml (%v)", ErrInvalid, errJSON, errYAML)
		}
	}
	return set.Clamp(), nil
}

// MarshalPreset encodes set as YAML.
func MarshalPreset(set params.Set) ([]byte, error) {
	return yaml.Marshal(set)
}
