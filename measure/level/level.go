// Package level measures peak and RMS levels of rendered audio.
package level

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Stats holds the level of a signal. dB values are relative to full scale
// (1.0) and are -Inf for silence.
type Stats struct {
	Frames  int
	Peak    float64
	PeakPos int
	PeakDB  float64
	RMS     float64
	RMSDB   float64
	CrestDB float64 // peak to RMS ratio, 0 for silence
	Clipped int     // samples with |x| > 1
}

// Calculate returns the level of signal.
func Calculate(signal []float64) Stats {
	var m Meter
	m.Add(signal)
	return m.Stats()
}

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}
	return peak
}

// RMS returns the root-mean-square of signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sum float64
	for _, x := range signal {
		sum += x * x
	}
	return math.Sqrt(sum / float64(len(signal)))
}

// Meter accumulates level statistics across consecutive blocks. The zero
// value is ready to use.
type Meter struct {
	frames  int
	sumSq   float64
	peak    float64
	peakPos int
	clipped int
}

// Add accumulates one block.
func (m *Meter) Add(block []float64) {
	for i, x := range block {
		a := math.Abs(x)
		if a > m.peak {
			m.peak = a
			m.peakPos = m.frames + i
		}
		if a > 1 {
			m.clipped++
		}
		m.sumSq += x * x
	}
	m.frames += len(block)
}

// Reset clears the meter.
func (m *Meter) Reset() {
	*m = Meter{}
}

// Stats returns the level of everything added so far.
func (m *Meter) Stats() Stats {
	s := Stats{
		Frames:  m.frames,
		Peak:    m.peak,
		PeakPos: m.peakPos,
		Clipped: m.clipped,
	}
	if m.frames > 0 {
		s.RMS = math.Sqrt(m.sumSq / float64(m.frames))
	}

	s.PeakDB = core.LinearToDB(s.Peak)
	s.RMSDB = core.LinearToDB(s.RMS)
	if s.RMS > 0 {
		s.CrestDB = s.PeakDB - s.RMSDB
	}
	return s
}
