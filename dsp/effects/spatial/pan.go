package spatial

import "math"

// PanThreshold is the pan magnitude at or below which PanStereo leaves the
// channels untouched.
const PanThreshold = 0.01

// PanGains returns the linear-law channel gains for pan in [-1, 1].
// The louder side stays at unity; the other side falls linearly to zero.
// Out-of-range pan is clamped.
func PanGains(pan float64) (left, right float64) {
	switch {
	case math.IsNaN(pan):
		pan = 0
	case pan < -1:
		pan = -1
	case pan > 1:
		pan = 1
	}

	left, right = 1, 1
	if pan > 0 {
		left = 1 - pan
	}
	if pan < 0 {
		right = 1 + pan
	}
	return left, right
}

// Pan applies the linear pan law to one stereo sample pair.
func Pan(left, right, pan float64) (float64, float64) {
	lg, rg := PanGains(pan)
	return left * lg, right * rg
}

// PanStereo pans left and right in place when |pan| exceeds PanThreshold.
// Only the common length of the two slices is processed.
func PanStereo(left, right []float64, pan float64) {
	if !(math.Abs(pan) > PanThreshold) {
		return
	}

	lg, rg := PanGains(pan)
	n := min(len(left), len(right))
	for i := range n {
		left[i] *= lg
		right[i] *= rg
	}
}
