package reverb

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Decay-time knob range in seconds and the room sizes it maps onto.
const (
	MinDecayTime   = 0.1
	MaxDecayTime   = 25.0
	KneeDecayTime  = 8.0
	MinRoomSize    = 0.1
	KneeRoomSize   = 0.95
	MaxRoomSize    = 0.98
	decaySpanAbove = 22.0
)

// MapDecayTime converts a decay time in seconds into the engine's
// normalized room size.
//
// Up to the 8 s knee the map is linear onto [0.1, 0.95]. Above it the
// remaining range is log-compressed into [0.95, 0.98] so the comb feedback
// stays clear of runaway. Input is clamped to [0.1, 25] first.
func MapDecayTime(seconds float64) float64 {
	s := core.Clamp(seconds, MinDecayTime, MaxDecayTime)

	if s <= KneeDecayTime {
		return core.MapRange(s, MinDecayTime, KneeDecayTime, MinRoomSize, KneeRoomSize)
	}

	n := (s - KneeDecayTime) / decaySpanAbove
	c := math.Log10(n*9+1) / math.Log10(10)
	return KneeRoomSize + (MaxRoomSize-KneeRoomSize)*c
}

// longestCombSeconds is the loop time of the longest comb, which sets how
// long the tank rings.
const longestCombSeconds = float64(1617+stereoSpread) / referenceSampleRate

// RT60 estimates the time in seconds for the tank to decay by 60 dB at
// roomSize, ignoring damping. It is independent of the sample rate because
// the comb lengths scale with it.
func RT60(roomSize float64) float64 {
	g := core.Clamp(roomSize, 0, 1)*scaleRoom + offsetRoom
	return 3 * longestCombSeconds / -math.Log10(g)
}
