package reverb

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/internal/testutil"
)

const testRate = 48000.0

func newTestReverb(t *testing.T, c Coefficients) *Reverb {
	t.Helper()

	r, err := New(testRate)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.SetCoefficients(c)
	r.SnapCoefficients()
	return r
}

func wetOnly(room, damping float64) Coefficients {
	return Coefficients{RoomSize: room, Damping: damping, WetLevel: 1, Width: 1}
}

func TestNewRejectsInvalidSampleRate(t *testing.T) {
	for _, sr := range []float64{0, -44100, math.NaN(), math.Inf(1), 1e7} {
		if _, err := New(sr); !errors.Is(err, core.ErrInvalidSampleRate) {
			t.Errorf("New(%v) error = %v, want ErrInvalidSampleRate", sr, err)
		}
	}
}

func TestResetThenSilenceIsSilent(t *testing.T) {
	r := newTestReverb(t, wetOnly(0.9, 0.2))

	left := testutil.DeterministicNoise(1, 0.5, 4096)
	right := testutil.DeterministicNoise(2, 0.5, 4096)
	r.ProcessStereo(left, right)

	r.Reset()

	left = make([]float64, 4096)
	right = make([]float64, 4096)
	r.ProcessStereo(left, right)

	testutil.RequireSilent(t, left)
	testutil.RequireSilent(t, right)
}

func TestImpulseProducesDecayingTail(t *testing.T) {
	r := newTestReverb(t, wetOnly(MapDecayTime(8), 0))

	const block = 4096
	left := testutil.Impulse(block, 0)
	right := testutil.Impulse(block, 0)

	var energies []float64
	for b := range 10 {
		if b > 0 {
			core.Zero(left)
			core.Zero(right)
		}
		r.ProcessStereo(left, right)
		testutil.RequireFinite(t, left)
		testutil.RequireFinite(t, right)

		energies = append(energies, testutil.Energy(left)+testutil.Energy(right))
	}

	if energies[0] == 0 {
		t.Fatal("no reverb tail in first block")
	}
	if energies[9] >= energies[1] {
		t.Fatalf("tail not decaying: block 1 energy %g, block 9 energy %g", energies[1], energies[9])
	}
}

func TestLongerRoomRingsLonger(t *testing.T) {
	tailEnergy := func(room float64) float64 {
		r := newTestReverb(t, wetOnly(room, 0.5))
		buf := testutil.Impulse(48000, 0)
		r.ProcessMono(buf)

		var e float64
		for _, x := range buf[24000:] {
			e += x * x
		}
		return e
	}

	short := tailEnergy(MapDecayTime(1))
	long := tailEnergy(MapDecayTime(20))
	if long <= short {
		t.Fatalf("late energy for 20 s (%g) not above 1 s (%g)", long, short)
	}
}

func TestDryOnlyScalesInput(t *testing.T) {
	r := newTestReverb(t, Coefficients{DryLevel: 1, Width: 1})

	in := testutil.DeterministicNoise(3, 0.3, 512)
	left := append([]float64(nil), in...)
	right := append([]float64(nil), in...)
	r.ProcessStereo(left, right)

	for i := range in {
		want := in[i] * scaleDry
		if left[i] != want || right[i] != want {
			t.Fatalf("sample %d: got %g/%g, want %g", i, left[i], right[i], want)
		}
	}
}

func TestZeroWidthMatchesChannels(t *testing.T) {
	c := wetOnly(0.8, 0.3)
	c.Width = 0
	r := newTestReverb(t, c)

	left := testutil.Impulse(2048, 0)
	right := make([]float64, 2048)
	r.ProcessStereo(left, right)

	testutil.RequireSliceNearlyEqual(t, left, right, 1e-12)
}

func TestFreezeBlocksInput(t *testing.T) {
	r := newTestReverb(t, wetOnly(0.7, 0.5))

	c := wetOnly(0.7, 0.5)
	c.Freeze = true
	r.SetCoefficients(c)
	if err := r.SetSampleRate(testRate); err != nil {
		t.Fatal(err)
	}
	// SetSampleRate clears the tank. Under freeze no input may enter it.
	buf := testutil.Impulse(8192, 0)
	r.ProcessMono(buf)
	for i, x := range buf {
		if x != 0 {
			t.Fatalf("frozen engine let input through at %d: %g", i, x)
		}
	}
}

func TestFrozenTankSustains(t *testing.T) {
	r := newTestReverb(t, wetOnly(0.7, 0.5))

	buf := testutil.Impulse(4096, 0)
	r.ProcessMono(buf)

	c := wetOnly(0.7, 0.5)
	c.Freeze = true
	r.SetCoefficients(c)

	// Let the 10 ms ramp settle before measuring.
	settle := make([]float64, 4800)
	r.ProcessMono(settle)

	energy := func() float64 {
		buf := make([]float64, 8192)
		r.ProcessMono(buf)
		var e float64
		for _, x := range buf {
			e += x * x
		}
		return e
	}

	first := energy()
	later := energy()
	if first == 0 {
		t.Fatal("frozen tank is silent")
	}
	if later < 0.5*first {
		t.Fatalf("frozen tank decays: %g then %g", first, later)
	}
}

func TestPreDelayShiftsOnset(t *testing.T) {
	onset := func(preDelay float64) int {
		r := newTestReverb(t, wetOnly(0.5, 0.5))
		r.SetPreDelay(preDelay)
		buf := testutil.Impulse(16384, 0)
		r.ProcessMono(buf)
		for i, x := range buf {
			if x != 0 {
				return i
			}
		}
		return -1
	}

	base := onset(0)
	delayed := onset(0.1)
	if base < 0 || delayed < 0 {
		t.Fatalf("no output: base=%d delayed=%d", base, delayed)
	}
	if got, want := delayed-base, int(0.1*testRate); got != want {
		t.Fatalf("onset shift = %d samples, want %d", got, want)
	}
}

func TestPreDelayClamped(t *testing.T) {
	r := newTestReverb(t, DefaultCoefficients())
	r.SetPreDelay(3)
	if r.PreDelay() != MaxPreDelay {
		t.Fatalf("PreDelay = %g, want %g", r.PreDelay(), MaxPreDelay)
	}
	r.SetPreDelay(-1)
	if r.PreDelay() != 0 {
		t.Fatalf("PreDelay = %g, want 0", r.PreDelay())
	}
}

func TestToneBypassAtDefaults(t *testing.T) {
	a := newTestReverb(t, wetOnly(0.6, 0.5))
	b := newTestReverb(t, wetOnly(0.6, 0.5))
	b.SetTone(MinLowCut, MaxHighCut)

	x := testutil.DeterministicNoise(9, 0.5, 4096)
	ya := append([]float64(nil), x...)
	yb := append([]float64(nil), x...)
	a.ProcessMono(ya)
	b.ProcessMono(yb)

	testutil.RequireSliceNearlyEqual(t, ya, yb, 0)
}

func TestHighCutDarkensTail(t *testing.T) {
	hfEnergy := func(highCut float64) float64 {
		r := newTestReverb(t, wetOnly(0.6, 0))
		r.SetTone(MinLowCut, highCut)
		buf := testutil.DeterministicNoise(4, 0.5, 8192)
		r.ProcessMono(buf)

		// First difference emphasises high frequencies.
		var e float64
		for i := 1; i < len(buf); i++ {
			d := buf[i] - buf[i-1]
			e += d * d
		}
		return e
	}

	open := hfEnergy(MaxHighCut)
	dark := hfEnergy(1000)
	if dark >= open {
		t.Fatalf("high cut did not reduce HF energy: %g >= %g", dark, open)
	}
}

func TestCoefficientsClamped(t *testing.T) {
	r := newTestReverb(t, Coefficients{RoomSize: 3, Damping: -1, WetLevel: math.NaN(), DryLevel: 2, Width: 5})
	c := r.Coefficients()
	want := Coefficients{RoomSize: 1, Damping: 0, WetLevel: 0, DryLevel: 1, Width: 1}
	if c != want {
		t.Fatalf("Coefficients() = %+v, want %+v", c, want)
	}
}

func TestSmoothingRampsGain(t *testing.T) {
	r := newTestReverb(t, Coefficients{DryLevel: 0, Width: 1})
	r.SetCoefficients(Coefficients{DryLevel: 1, Width: 1})

	buf := testutil.Ones(int(testRate * smoothingTime * 2))
	r.ProcessMono(buf)

	if buf[0] <= 0 || buf[0] >= scaleDry/2 {
		t.Fatalf("first sample %g not on ramp", buf[0])
	}
	for i := 1; i < len(buf); i++ {
		if buf[i] < buf[i-1] {
			t.Fatalf("ramp not monotonic at %d", i)
		}
	}
	if last := buf[len(buf)-1]; last != scaleDry {
		t.Fatalf("ramp end = %g, want %g", last, scaleDry)
	}
}

func TestSnapCoefficientsSkipsRamp(t *testing.T) {
	r := newTestReverb(t, Coefficients{DryLevel: 0, Width: 1})
	r.SetCoefficients(Coefficients{DryLevel: 1, Width: 1})
	r.SnapCoefficients()

	buf := testutil.Ones(16)
	r.ProcessMono(buf)
	for i, v := range buf {
		if v != scaleDry {
			t.Fatalf("sample %d = %g, want %g", i, v, scaleDry)
		}
	}
}

func TestProcessDoesNotAllocate(t *testing.T) {
	r := newTestReverb(t, DefaultCoefficients())
	r.SetPreDelay(0.02)
	r.SetTone(200, 8000)
	left := testutil.DeterministicNoise(5, 0.5, 512)
	right := testutil.DeterministicNoise(6, 0.5, 512)
	c := DefaultCoefficients()

	allocs := testing.AllocsPerRun(50, func() {
		r.SetCoefficients(c)
		r.ProcessStereo(left, right)
		r.ProcessMono(left)
		r.Reset()
	})
	if allocs != 0 {
		t.Fatalf("allocs per run = %v, want 0", allocs)
	}
}

func BenchmarkProcessStereo(b *testing.B) {
	r, err := New(testRate)
	if err != nil {
		b.Fatal(err)
	}
	left := make([]float64, 512)
	right := make([]float64, 512)

	b.ReportAllocs()
	b.SetBytes(int64(len(left) * 2 * 8))
	for i := 0; i < b.N; i++ {
		r.ProcessStereo(left, right)
	}
}
