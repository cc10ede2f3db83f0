package params

import "github.com/cwbudde/algo-reverb/dsp/core"

// ID identifies a control.
type ID string

// Control identifiers.
const (
	DecayTime  ID = "decayTime"
	Damping    ID = "damping"
	Mix        ID = "mix"
	Saturation ID = "saturation"
	Pan        ID = "pan"
	PreDelay   ID = "preDelay"
	LowCut     ID = "lowCut"
	HighCut    ID = "highCut"
)

// Descriptor is the range and default metadata of one control.
type Descriptor struct {
	ID      ID
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
	// ZeroBypass maps values <= 0 to Default. Filters whose default is a
	// bypass use it so that an unset field stays off.
	ZeroBypass bool
}

var descriptors = [numControls]Descriptor{
	{ID: DecayTime, Name: "Decay Time", Unit: "s", Min: 0.1, Max: 25, Default: 8},
	{ID: Damping, Name: "Damping", Min: 0, Max: 1, Default: 0.5},
	{ID: Mix, Name: "Mix (Wet/Dry)", Min: 0, Max: 1, Default: 0.33},
	{ID: Saturation, Name: "Warmth", Min: 0, Max: 0.5, Default: 0.2},
	{ID: Pan, Name: "Pan", Min: -1, Max: 1, Default: 0},
	{ID: PreDelay, Name: "Pre-Delay", Unit: "ms", Min: 0, Max: 500, Default: 0},
	{ID: LowCut, Name: "Low Cut", Unit: "Hz", Min: 20, Max: 1000, Default: 20, ZeroBypass: true},
	{ID: HighCut, Name: "High Cut", Unit: "Hz", Min: 1000, Max: 20000, Default: 20000, ZeroBypass: true},
}

const numControls = 8

// Descriptors returns the metadata of every control in host order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, numControls)
	copy(out, descriptors[:])
	return out
}

// Lookup returns the descriptor for id.
func Lookup(id ID) (Descriptor, bool) {
	i, ok := indexOf(id)
	if !ok {
		return Descriptor{}, false
	}
	return descriptors[i], true
}

func indexOf(id ID) (int, bool) {
	for i := range descriptors {
		if descriptors[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// Clamp limits v to the control's range.
func (d Descriptor) Clamp(v float64) float64 {
	if d.ZeroBypass && v <= 0 {
		return d.Default
	}
	return core.Clamp(v, d.Min, d.Max)
}

// Normalize maps a plain value to [0, 1].
func (d Descriptor) Normalize(plain float64) float64 {
	if d.Max <= d.Min {
		return 0
	}
	return (d.Clamp(plain) - d.Min) / (d.Max - d.Min)
}

// Denormalize maps a normalized [0, 1] value back to the control's range.
func (d Descriptor) Denormalize(norm float64) float64 {
	return d.Min + core.Clamp(norm, 0, 1)*(d.Max-d.Min)
}
