package decay_test

import (
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/reverb"
	"github.com/cwbudde/algo-reverb/measure/decay"
)

const engineRate = 44100.0

func engineResponse(t *testing.T, decayTime, damping float64, seconds float64) []float64 {
	t.Helper()

	r, err := reverb.New(engineRate)
	if err != nil {
		t.Fatal(err)
	}
	r.SetCoefficients(reverb.Coefficients{
		RoomSize: reverb.MapDecayTime(decayTime),
		Damping:  damping,
		WetLevel: 1,
		Width:    1,
	})
	r.SnapCoefficients()

	ir := make([]float64, int(seconds*engineRate))
	ir[0] = 1
	r.ProcessMono(ir)
	return ir
}

func TestMeasuredRT60GrowsWithDecayTime(t *testing.T) {
	a := decay.NewAnalyzer(engineRate)

	prev := 0.0
	for _, s := range []float64{0.5, 2, 5, 8} {
		rt, err := a.RT60(engineResponse(t, s, 0, 12))
		if err != nil {
			t.Fatalf("decay %g s: %v", s, err)
		}
		if rt <= prev {
			t.Fatalf("measured RT60 %.3f s at decay %g s not above %.3f s", rt, s, prev)
		}
		prev = rt
	}
}

func TestDampingDarkensTail(t *testing.T) {
	ratio := func(damping float64) float64 {
		ir := engineResponse(t, 3, damping, 2)
		e, err := decay.BandEnergies(ir, engineRate, []float64{0, 1000, 8000})
		if err != nil {
			t.Fatal(err)
		}
		return e[1] / e[0]
	}

	bright := ratio(0)
	dark := ratio(1)
	if dark >= bright {
		t.Fatalf("high/low ratio with damping %g not below undamped %g", dark, bright)
	}
}
