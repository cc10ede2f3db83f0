package params

// Set is one consistent reading of every control.
//
// PreDelay, LowCut and HighCut left at zero are off, so a Set that only
// fills the first five fields behaves like one built from Defaults.
type Set struct {
	DecayTime  float64 `yaml:"decayTime" json:"decayTime"`
	Damping    float64 `yaml:"damping" json:"damping"`
	Mix        float64 `yaml:"mix" json:"mix"`
	Saturation float64 `yaml:"saturation" json:"saturation"`
	Pan        float64 `yaml:"pan" json:"pan"`
	PreDelay   float64 `yaml:"preDelay" json:"preDelay"`
	LowCut     float64 `yaml:"lowCut" json:"lowCut"`
	HighCut    float64 `yaml:"highCut" json:"highCut"`
}

// Defaults returns every control at its default value.
func Defaults() Set {
	var s Set
	for i := range descriptors {
		*s.field(i) = descriptors[i].Default
	}
	return s
}

// Clamp returns a copy of s with every value limited to its range.
func (s Set) Clamp() Set {
	for i := range descriptors {
		f := s.field(i)
		*f = descriptors[i].Clamp(*f)
	}
	return s
}

// Value returns the value of control id.
func (s Set) Value(id ID) (float64, bool) {
	i, ok := indexOf(id)
	if !ok {
		return 0, false
	}
	return *s.field(i), true
}

// With returns a copy of s with control id set to v (unclamped).
// Unknown IDs leave s unchanged.
func (s Set) With(id ID, v float64) Set {
	if i, ok := indexOf(id); ok {
		*s.field(i) = v
	}
	return s
}

func (s *Set) field(i int) *float64 {
	switch descriptors[i].ID {
	case DecayTime:
		return &s.DecayTime
	case Damping:
		return &s.Damping
	case Mix:
		return &s.Mix
	case Saturation:
		return &s.Saturation
	case Pan:
		return &s.Pan
	case PreDelay:
		return &s.PreDelay
	case LowCut:
		return &s.LowCut
	default:
		return &s.HighCut
	}
}
