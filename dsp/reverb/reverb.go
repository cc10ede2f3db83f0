package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
	"github.com/cwbudde/algo-reverb/dsp/filter/biquad"
)

const (
	numCombs     = 8
	numAllpasses = 4

	// Tunings are in samples at the reference rate and scaled to the
	// running rate. The right channel is offset by stereoSpread.
	referenceSampleRate = 44100.0
	stereoSpread        = 23

	fixedGain      = 0.015
	scaleWet       = 3.0
	scaleDry       = 2.0
	scaleDamp      = 0.4
	scaleRoom      = 0.28
	offsetRoom     = 0.7
	smoothingTime  = 0.01
	freezeFeedback = 1.0

	// MaxPreDelay is the longest pre-delay the engine allocates for.
	MaxPreDelay = 0.5

	// Tone bypass limits in Hz. A low cut at or below MinLowCut and a high
	// cut at or above MaxHighCut leave the tank input untouched.
	MinLowCut  = 20.0
	MaxHighCut = 20000.0
)

var (
	combTunings    = [numCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	allpassTunings = [numAllpasses]int{556, 441, 341, 225}
)

// Coefficients are the per-block engine settings. Every field except Freeze
// is clamped to [0, 1].
type Coefficients struct {
	RoomSize float64
	Damping  float64
	WetLevel float64
	DryLevel float64
	Width    float64
	Freeze   bool
}

// DefaultCoefficients returns the engine's power-on settings.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		RoomSize: 0.5,
		Damping:  0.5,
		WetLevel: 0.33,
		DryLevel: 0.4,
		Width:    1,
	}
}

func (c Coefficients) clamped() Coefficients {
	c.RoomSize = core.Clamp(c.RoomSize, 0, 1)
	c.Damping = core.Clamp(c.Damping, 0, 1)
	c.WetLevel = core.Clamp(c.WetLevel, 0, 1)
	c.DryLevel = core.Clamp(c.DryLevel, 0, 1)
	c.Width = core.Clamp(c.Width, 0, 1)
	return c
}

// Reverb is a stereo comb/allpass reverberator. A single instance must be
// driven by one goroutine at a time.
type Reverb struct {
	sampleRate float64
	coeffs     Coefficients
	gain       float64

	combs    [2][numCombs]comb
	allpass  [2][numAllpasses]allpass
	preDelay *delay.Line

	preDelaySeconds float64

	lowCut, highCut         float64
	lowCutOn, highCutOn     bool
	lowSection, highSection biquad.Section

	damping, feedback  ramp
	dryGain            ramp
	wetGain1, wetGain2 ramp
}

// New returns an engine prepared for sampleRate with default coefficients.
func New(sampleRate float64) (*Reverb, error) {
	r := &Reverb{
		coeffs:  DefaultCoefficients(),
		lowCut:  MinLowCut,
		highCut: MaxHighCut,
	}
	r.applyCoefficients()

	if err := r.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return r, nil
}

// SetSampleRate resizes every delay line for sampleRate and clears all
// state. Smoothed coefficients jump to their targets.
func (r *Reverb) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || sampleRate > core.MaxSampleRate ||
		math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("reverb: %w: %g", core.ErrInvalidSampleRate, sampleRate)
	}

	line, err := delay.New(int(math.Ceil(MaxPreDelay * sampleRate)))
	if err != nil {
		return fmt.Errorf("reverb: pre-delay: %w", err)
	}

	r.sampleRate = sampleRate
	scale := sampleRate / referenceSampleRate

	for i, tuning := range combTunings {
		r.combs[0][i].setSize(int(scale * float64(tuning)))
		r.combs[1][i].setSize(int(scale * float64(tuning+stereoSpread)))
	}
	for i, tuning := range allpassTunings {
		r.allpass[0][i].setSize(int(scale * float64(tuning)))
		r.allpass[1][i].setSize(int(scale * float64(tuning+stereoSpread)))
	}

	r.preDelay = line
	r.SetPreDelay(r.preDelaySeconds)

	steps := int(smoothingTime * sampleRate)
	for _, rp := range r.ramps() {
		rp.setLength(steps)
	}

	r.updateTone()
	r.lowSection.Reset()
	r.highSection.Reset()
	return nil
}

// SampleRate returns the rate the engine is prepared for.
func (r *Reverb) SampleRate() float64 {
	return r.sampleRate
}

// SetCoefficients updates the engine targets. Gains and feedback ramp to
// the new values over 10 ms.
func (r *Reverb) SetCoefficients(c Coefficients) {
	r.coeffs = c.clamped()
	r.applyCoefficients()
}

// SnapCoefficients jumps every smoothed coefficient to its target. Call it
// after the first SetCoefficients of a stream so that it does not ramp in
// from the previous settings.
func (r *Reverb) SnapCoefficients() {
	for _, rp := range r.ramps() {
		rp.snap()
	}
}

// Coefficients returns the last coefficients set, after clamping.
func (r *Reverb) Coefficients() Coefficients {
	return r.coeffs
}

func (r *Reverb) applyCoefficients() {
	c := r.coeffs
	wet := c.WetLevel * scaleWet

	r.dryGain.setTarget(c.DryLevel * scaleDry)
	r.wetGain1.setTarget(0.5 * wet * (1 + c.Width))
	r.wetGain2.setTarget(0.5 * wet * (1 - c.Width))

	if c.Freeze {
		r.gain = 0
		r.damping.setTarget(0)
		r.feedback.setTarget(freezeFeedback)
		return
	}

	r.gain = fixedGain
	r.damping.setTarget(c.Damping * scaleDamp)
	r.feedback.setTarget(c.RoomSize*scaleRoom + offsetRoom)
}

func (r *Reverb) ramps() [5]*ramp {
	return [5]*ramp{&r.damping, &r.feedback, &r.dryGain, &r.wetGain1, &r.wetGain2}
}

// SetPreDelay sets the delay before the tank input in seconds, clamped to
// [0, MaxPreDelay].
func (r *Reverb) SetPreDelay(seconds float64) {
	r.preDelaySeconds = core.Clamp(seconds, 0, MaxPreDelay)
	if r.preDelay != nil {
		r.preDelay.SetDelay(int(math.Round(r.preDelaySeconds * r.sampleRate)))
	}
}

// PreDelay returns the pre-delay in seconds.
func (r *Reverb) PreDelay() float64 {
	return r.preDelaySeconds
}

// SetTone sets the low-cut and high-cut corners applied to the tank input.
// Coefficients are only redesigned when a corner changes.
func (r *Reverb) SetTone(lowCutHz, highCutHz float64) {
	if lowCutHz == r.lowCut && highCutHz == r.highCut {
		return
	}
	r.lowCut = lowCutHz
	r.highCut = highCutHz
	r.updateTone()
}

func (r *Reverb) updateTone() {
	nyquist := r.sampleRate / 2

	r.lowCutOn = r.lowCut > MinLowCut && r.lowCut < nyquist
	if r.lowCutOn {
		r.lowSection.Coefficients = biquad.Highpass(r.lowCut, biquad.ButterworthQ, r.sampleRate)
	}

	r.highCutOn = r.highCut < MaxHighCut && r.highCut < nyquist && r.highCut > 0
	if r.highCutOn {
		r.highSection.Coefficients = biquad.Lowpass(r.highCut, biquad.ButterworthQ, r.sampleRate)
	}
}

// Reset clears every delay line and filter. Settings are kept.
func (r *Reverb) Reset() {
	for ch := range r.combs {
		for i := range r.combs[ch] {
			r.combs[ch][i].reset()
		}
		for i := range r.allpass[ch] {
			r.allpass[ch][i].reset()
		}
	}
	if r.preDelay != nil {
		r.preDelay.Reset()
	}
	r.lowSection.Reset()
	r.highSection.Reset()
}

func (r *Reverb) tankInput(x float64) float64 {
	x = r.preDelay.Process(x)
	if r.lowCutOn {
		x = r.lowSection.ProcessSample(x)
	}
	if r.highCutOn {
		x = r.highSection.ProcessSample(x)
	}
	return x
}

// ProcessStereo reverberates left and right in place. Only the common
// length of the two slices is processed.
func (r *Reverb) ProcessStereo(left, right []float64) {
	n := min(len(left), len(right))
	cl, cr := &r.combs[0], &r.combs[1]
	al, ar := &r.allpass[0], &r.allpass[1]

	for i := range n {
		input := r.tankInput((left[i] + right[i]) * r.gain)
		damp := r.damping.next()
		fb := r.feedback.next()

		var outL, outR float64
		for j := range cl {
			outL += cl[j].process(input, damp, fb)
			outR += cr[j].process(input, damp, fb)
		}
		for j := range al {
			outL = al[j].process(outL)
			outR = ar[j].process(outR)
		}

		dry := r.dryGain.next()
		wet1 := r.wetGain1.next()
		wet2 := r.wetGain2.next()

		left[i] = outL*wet1 + outR*wet2 + left[i]*dry
		right[i] = outR*wet1 + outL*wet2 + right[i]*dry
	}
}

// ProcessMono reverberates buf in place through the left tank.
func (r *Reverb) ProcessMono(buf []float64) {
	cl := &r.combs[0]
	al := &r.allpass[0]

	for i, x := range buf {
		input := r.tankInput(x * r.gain)
		damp := r.damping.next()
		fb := r.feedback.next()

		var out float64
		for j := range cl {
			out += cl[j].process(input, damp, fb)
		}
		for j := range al {
			out = al[j].process(out)
		}

		dry := r.dryGain.next()
		wet1 := r.wetGain1.next()
		r.wetGain2.next()

		buf[i] = out*wet1 + x*dry
	}
}
