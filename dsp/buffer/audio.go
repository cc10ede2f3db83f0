package buffer

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Audio is a block of de-interleaved samples, one slice per channel.
// All channels share the same length.
type Audio struct {
	channels [][]float64
}

// NewAudio returns a zero-filled block with the given channel and frame count.
func NewAudio(numChannels, frames int) *Audio {
	if numChannels < 0 {
		numChannels = 0
	}
	if frames < 0 {
		frames = 0
	}

	a := &Audio{channels: make([][]float64, numChannels)}
	for ch := range a.channels {
		a.channels[ch] = make([]float64, frames)
	}
	return a
}

// FromChannels wraps existing channel slices without copying.
// Mutations through the Audio are visible to the caller and vice versa.
func FromChannels(channels [][]float64) (*Audio, error) {
	for ch := 1; ch < len(channels); ch++ {
		if len(channels[ch]) != len(channels[0]) {
			return nil, fmt.Errorf("buffer: channel %d has %d frames, channel 0 has %d",
				ch, len(channels[ch]), len(channels[0]))
		}
	}
	return &Audio{channels: channels}, nil
}

// NumChannels returns the channel count.
func (a *Audio) NumChannels() int {
	return len(a.channels)
}

// NumSamples returns the per-channel frame count.
func (a *Audio) NumSamples() int {
	if len(a.channels) == 0 {
		return 0
	}
	return len(a.channels[0])
}

// Channel returns the samples of channel ch. It panics if ch is out of range.
func (a *Audio) Channel(ch int) []float64 {
	return a.channels[ch]
}

// Channels returns the underlying channel slices.
func (a *Audio) Channels() [][]float64 {
	return a.channels
}

// ClearChannel sets every sample of channel ch to 0.
// Out-of-range channels are ignored.
func (a *Audio) ClearChannel(ch int) {
	if ch < 0 || ch >= len(a.channels) {
		return
	}
	core.Zero(a.channels[ch])
}

// Clear silences every channel.
func (a *Audio) Clear() {
	for ch := range a.channels {
		core.Zero(a.channels[ch])
	}
}

// Resize sets the frame count of every channel, reusing capacity when possible.
// Newly exposed samples are zeroed.
func (a *Audio) Resize(frames int) {
	if frames < 0 {
		frames = 0
	}
	for ch, s := range a.channels {
		oldLen := len(s)
		if frames <= cap(s) {
			s = s[:frames]
		} else {
			grown := make([]float64, frames)
			copy(grown, s)
			s = grown
		}
		if frames > oldLen {
			core.Zero(s[oldLen:])
		}
		a.channels[ch] = s
	}
}

// Slice returns a view of frames [start, end) sharing memory with a.
// dst is reused to hold the channel headers so that the call does not
// allocate once dst has enough capacity.
func (a *Audio) Slice(dst *Audio, start, end int) *Audio {
	if dst == nil {
		dst = &Audio{}
	}
	if cap(dst.channels) < len(a.channels) {
		dst.channels = make([][]float64, len(a.channels))
	}
	dst.channels = dst.channels[:len(a.channels)]
	for ch, s := range a.channels {
		dst.channels[ch] = s[start:end]
	}
	return dst
}

// CopyFrom copies samples from src into a, channel by channel, up to the
// smaller channel count and frame count. It returns the copied frame count.
func (a *Audio) CopyFrom(src *Audio) int {
	n := 0
	for ch := 0; ch < len(a.channels) && ch < len(src.channels); ch++ {
		n = core.CopyInto(a.channels[ch], src.channels[ch])
	}
	return n
}

// Interleave writes the block as interleaved frames into dst and returns the
// number of values written.
func (a *Audio) Interleave(dst []float64) int {
	numCh := len(a.channels)
	if numCh == 0 {
		return 0
	}
	frames := a.NumSamples()
	if maxFrames := len(dst) / numCh; maxFrames < frames {
		frames = maxFrames
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < numCh; ch++ {
			dst[i*numCh+ch] = a.channels[ch][i]
		}
	}
	return frames * numCh
}

// Deinterleave reads interleaved frames from src into the block and returns
// the number of frames read.
func (a *Audio) Deinterleave(src []float64) int {
	numCh := len(a.channels)
	if numCh == 0 {
		return 0
	}
	frames := a.NumSamples()
	if available := len(src) / numCh; available < frames {
		frames = available
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < numCh; ch++ {
			a.channels[ch][i] = src[i*numCh+ch]
		}
	}
	return frames
}
