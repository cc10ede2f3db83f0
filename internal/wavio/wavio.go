// Package wavio reads and writes PCM WAV files as float64 audio buffers.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-reverb/dsp/buffer"
)

// WAVE format tags accepted by Decode.
const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// ErrUnsupported is returned for files that are not integer PCM at 8, 16,
// 24 or 32 bits, and for unsupported output bit depths.
var ErrUnsupported = errors.New("wavio: unsupported wav format")

// Info describes a decoded file.
type Info struct {
	SampleRate int
	BitDepth   int
	Channels   int
}

// Decode reads a whole PCM WAV stream into a buffer with samples scaled to
// [-1, 1).
func Decode(r io.ReadSeeker) (*buffer.Audio, Info, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		if err := d.Err(); err != nil {
			return nil, Info{}, fmt.Errorf("wavio: invalid file: %w", err)
		}
		return nil, Info{}, errors.New("wavio: invalid file")
	}
	if d.WavAudioFormat != formatPCM && d.WavAudioFormat != formatExtensible {
		return nil, Info{}, fmt.Errorf("%w: format tag %#x", ErrUnsupported, d.WavAudioFormat)
	}

	info := Info{
		SampleRate: int(d.SampleRate),
		BitDepth:   int(d.BitDepth),
		Channels:   int(d.NumChans),
	}
	if info.Channels <= 0 {
		return nil, Info{}, fmt.Errorf("%w: %d channels", ErrUnsupported, info.Channels)
	}
	scale, offset, err := intScale(info.BitDepth)
	if err != nil {
		return nil, Info{}, err
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, Info{}, fmt.Errorf("wavio: read pcm: %w", err)
	}

	frames := len(pcm.Data) / info.Channels
	out := buffer.NewAudio(info.Channels, frames)
	for ch := range info.Channels {
		dst := out.Channel(ch)
		for i := range dst {
			dst[i] = float64(pcm.Data[i*info.Channels+ch]-offset) / scale
		}
	}
	return out, info, nil
}

// Encode writes a as PCM WAV at sampleRate and bitDepth (16 or 24).
// Samples outside [-1, 1) are clipped.
func Encode(w io.WriteSeeker, a *buffer.Audio, sampleRate, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: output bit depth %d", ErrUnsupported, bitDepth)
	}
	numCh := a.NumChannels()
	if numCh == 0 {
		return errors.New("wavio: no channels to encode")
	}

	scale, _, _ := intScale(bitDepth)
	maxInt := int(scale) - 1
	minInt := -int(scale)

	interleaved := make([]float64, numCh*a.NumSamples())
	a.Interleave(interleaved)

	data := make([]int, len(interleaved))
	for i, x := range interleaved {
		v := int(math.Round(x * scale))
		data[i] = max(minInt, min(maxInt, v))
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, numCh, formatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numCh, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write pcm: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: finish file: %w", err)
	}
	return nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*buffer.Audio, Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// WriteFile encodes a into a new WAV file at path.
func WriteFile(path string, a *buffer.Audio, sampleRate, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	if err := Encode(f, a, sampleRate, bitDepth); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// intScale returns the full-scale value and unsigned offset for bitDepth.
func intScale(bitDepth int) (scale float64, offset int, err error) {
	switch bitDepth {
	case 8:
		return 128, 128, nil
	case 16, 24, 32:
		return float64(int64(1) << (bitDepth - 1)), 0, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d-bit samples", ErrUnsupported, bitDepth)
	}
}
