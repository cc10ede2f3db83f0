package decay

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidBands is returned when band edges are not strictly increasing
// or fall outside [0, Nyquist].
var ErrInvalidBands = errors.New("decay: invalid band edges")

// BandEnergies returns the energy of ir in each band [edges[i], edges[i+1])
// in Hz. The response is zero-padded to the next power of two. The
// results share the scale of the squared FFT magnitudes, so they are meant
// to be compared with each other.
func BandEnergies(ir []float64, sampleRate float64, edges []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyResponse
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, ErrInvalidSampleRate
	}
	if err := checkEdges(edges, sampleRate/2); err != nil {
		return nil, err
	}

	size := nextPow2(len(ir))
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("decay: fft plan for %d points: %w", size, err)
	}

	in := make([]complex128, size)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}
	freq := make([]complex128, size)
	if err := plan.Forward(freq, in); err != nil {
		return nil, fmt.Errorf("decay: forward fft: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(freq[k])
		im[k] = imag(freq[k])
	}
	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	binHz := sampleRate / float64(size)
	out := make([]float64, len(edges)-1)
	for k, p := range power {
		f := float64(k) * binHz
		for b := range out {
			if f >= edges[b] && f < edges[b+1] {
				out[b] += p
				break
			}
		}
	}
	return out, nil
}

func checkEdges(edges []float64, nyquist float64) error {
	if len(edges) < 2 {
		return fmt.Errorf("%w: need at least two edges, got %d", ErrInvalidBands, len(edges))
	}
	for i, e := range edges {
		if e < 0 || e > nyquist || math.IsNaN(e) {
			return fmt.Errorf("%w: edge %g Hz outside [0, %g]", ErrInvalidBands, e, nyquist)
		}
		if i > 0 && e <= edges[i-1] {
			return fmt.Errorf("%w: edges not increasing at %g Hz", ErrInvalidBands, e)
		}
	}
	return nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
