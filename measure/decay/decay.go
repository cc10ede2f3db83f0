package decay

import (
	"errors"
	"math"
)

// Errors returned by the analysis functions.
var (
	ErrEmptyResponse     = errors.New("decay: impulse response is empty")
	ErrInvalidSampleRate = errors.New("decay: sample rate must be positive")
	ErrNoDecay           = errors.New("decay: response does not decay far enough")
)

// floorDB is reported for Schroeder points with no remaining energy.
const floorDB = -200.0

// onsetRatio marks the onset at the first sample within 20 dB of the peak.
const onsetRatio = 0.1

// Metrics summarizes a reverb impulse response. Times are in seconds.
type Metrics struct {
	RT60       float64
	EDT        float64
	T20        float64
	T30        float64
	C80        float64 // early (0-80 ms) to late energy ratio in dB
	CenterTime float64 // energy centroid measured from the peak
	PeakIndex  int
	Onset      int // first sample within 20 dB of the peak
}

// Analyzer measures impulse responses recorded at SampleRate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer returns an analyzer for sampleRate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

func (a *Analyzer) check(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyResponse
	}
	if a.SampleRate <= 0 || math.IsNaN(a.SampleRate) || math.IsInf(a.SampleRate, 0) {
		return ErrInvalidSampleRate
	}
	return nil
}

// Analyze measures ir from its absolute peak onwards. Metrics that cannot
// be fitted are left at zero.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if err := a.check(ir); err != nil {
		return Metrics{}, err
	}

	peak, peakVal := peakOf(ir)
	tail := ir[peak:]
	curve := schroeder(tail)

	m := Metrics{
		PeakIndex:  peak,
		Onset:      onset(ir, peakVal*onsetRatio),
		EDT:        a.fit(curve, 0, -10),
		T20:        a.fit(curve, -5, -25),
		T30:        a.fit(curve, -5, -35),
		C80:        a.clarity(tail, 0.08),
		CenterTime: a.centerTime(tail),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// RT60 returns the reverberation time of ir, from T30 when the response
// decays by 35 dB and from T20 otherwise.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}

	curve := schroeder(ir)
	if rt := a.fit(curve, -5, -35); rt > 0 {
		return rt, nil
	}
	if rt := a.fit(curve, -5, -25); rt > 0 {
		return rt, nil
	}

	return 0, ErrNoDecay
}

// Schroeder returns the backward-integrated energy decay curve of ir in dB
// relative to its total energy.
//
//	S(t) = 10*log10( sum_{τ>=t} h²(τ) / sum_τ h²(τ) )
func Schroeder(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyResponse
	}
	return schroeder(ir), nil
}

func schroeder(ir []float64) []float64 {
	curve := make([]float64, len(ir))

	var sum float64
	for i := len(ir) - 1; i >= 0; i-- {
		sum += ir[i] * ir[i]
		curve[i] = sum
	}

	total := curve[0]
	if total <= 0 {
		for i := range curve {
			curve[i] = floorDB
		}
		return curve
	}

	for i, e := range curve {
		if e <= 0 {
			curve[i] = floorDB
			continue
		}
		curve[i] = 10 * math.Log10(e/total)
	}
	return curve
}

// fit regresses the decay curve between fromDB and toDB and extrapolates
// the slope to a 60 dB drop. It returns 0 when the range is not reached.
func (a *Analyzer) fit(curve []float64, fromDB, toDB float64) float64 {
	first, last := -1, -1
	for i, v := range curve {
		if first < 0 && v <= fromDB {
			first = i
		}
		if first >= 0 && v <= toDB {
			last = i
			break
		}
	}
	if first < 0 || last <= first {
		return 0
	}

	var sx, sy, sxx, sxy float64
	n := float64(last - first + 1)
	for i := first; i <= last; i++ {
		x := float64(i - first)
		y := curve[i]
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}

	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}

	slope := (n*sxy - sx*sy) / den // dB per sample
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * a.SampleRate)
}

func (a *Analyzer) clarity(tail []float64, boundary float64) float64 {
	split := min(int(boundary*a.SampleRate), len(tail))

	var early, late float64
	for i, v := range tail {
		if i < split {
			early += v * v
		} else {
			late += v * v
		}
	}

	switch {
	case late == 0 && early == 0:
		return 0
	case late == 0:
		return math.Inf(1)
	case early == 0:
		return math.Inf(-1)
	}
	return 10 * math.Log10(early/late)
}

func (a *Analyzer) centerTime(tail []float64) float64 {
	var weighted, total float64
	for i, v := range tail {
		e := v * v
		weighted += float64(i) * e
		total += e
	}
	if total == 0 {
		return 0
	}
	return weighted / total / a.SampleRate
}

func peakOf(ir []float64) (int, float64) {
	idx, val := 0, 0.0
	for i, v := range ir {
		if av := math.Abs(v); av > val {
			idx, val = i, av
		}
	}
	return idx, val
}

func onset(ir []float64, threshold float64) int {
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i
		}
	}
	return 0
}
