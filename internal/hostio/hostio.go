// Package hostio converts between host float32 sample buffers and the
// float64 buffers the processor works on.
package hostio

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/viterin/vek"
	"github.com/viterin/vek/vek32"

	"github.com/cwbudde/algo-reverb/dsp/buffer"
)

// Bridge holds preallocated float64 channels for a host that hands over
// float32 channel slices every block. Load and Store do not allocate.
type Bridge struct {
	audio *buffer.Audio
	view  *buffer.Audio
}

// NewBridge allocates room for channels x maxFrames samples.
func NewBridge(channels, maxFrames int) *Bridge {
	a := buffer.NewAudio(channels, maxFrames)
	return &Bridge{
		audio: a,
		view:  a.Slice(nil, 0, 0),
	}
}

// MaxFrames returns the largest block the bridge can carry.
func (b *Bridge) MaxFrames() int {
	return b.audio.NumSamples()
}

// Load converts src into the bridge and returns a view covering
// min(len(src[ch]), MaxFrames) frames. Bridge channels without a source are
// zeroed.
func (b *Bridge) Load(src [][]float32) *buffer.Audio {
	frames := b.audio.NumSamples()
	for _, s := range src {
		frames = min(frames, len(s))
	}
	if len(src) == 0 {
		frames = 0
	}

	b.view = b.audio.Slice(b.view, 0, frames)
	for ch := range b.view.NumChannels() {
		dst := b.view.Channel(ch)
		if ch < len(src) {
			vek.FromFloat32_Into(dst, src[ch][:frames])
			continue
		}
		clear(dst)
	}
	return b.view
}

// Store converts the last loaded view back into dst.
func (b *Bridge) Store(dst [][]float32) {
	for ch := range min(len(dst), b.view.NumChannels()) {
		src := b.view.Channel(ch)
		n := min(len(src), len(dst[ch]))
		vek32.FromFloat64_Into(dst[ch][:n], src[:n])
	}
}

// AppendFloat32LE appends a as interleaved little-endian float32 frames,
// the layout expected by float32 audio devices.
func AppendFloat32LE(dst []byte, a *buffer.Audio) []byte {
	interleaved := make([]float64, a.NumChannels()*a.NumSamples())
	a.Interleave(interleaved)

	samples := vek32.FromFloat64(interleaved)
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(s))
	}
	return dst
}

// NewFloat32Reader returns a reader over a encoded with AppendFloat32LE.
func NewFloat32Reader(a *buffer.Audio) io.Reader {
	return bytes.NewReader(AppendFloat32LE(nil, a))
}
