package params

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestDefaults(t *testing.T) {
	got := Defaults()
	want := Set{
		DecayTime:  8,
		Damping:    0.5,
		Mix:        0.33,
		Saturation: 0.2,
		Pan:        0,
		PreDelay:   0,
		LowCut:     20,
		HighCut:    20000,
	}
	if got != want {
		t.Fatalf("Defaults() = %+v, want %+v", got, want)
	}
}

func TestSetClamp(t *testing.T) {
	in := Set{
		DecayTime:  40,
		Damping:    -1,
		Mix:        math.NaN(),
		Saturation: 0.9,
		Pan:        -3,
		PreDelay:   900,
		LowCut:     0,
		HighCut:    1e6,
	}
	got := in.Clamp()
	want := Set{
		DecayTime:  25,
		Damping:    0,
		Mix:        0,
		Saturation: 0.5,
		Pan:        -1,
		PreDelay:   500,
		LowCut:     20,
		HighCut:    20000,
	}
	if got != want {
		t.Fatalf("Clamp() = %+v, want %+v", got, want)
	}
}

func TestZeroFiltersAreBypassed(t *testing.T) {
	got := Set{DecayTime: 8, Damping: 0.5, Mix: 0.33, Saturation: 0.2}.Clamp()
	if got != Defaults() {
		t.Fatalf("Clamp() = %+v, want %+v", got, Defaults())
	}

	d, _ := Lookup(HighCut)
	for _, v := range []float64{0, -100} {
		if c := d.Clamp(v); c != d.Default {
			t.Errorf("HighCut Clamp(%v) = %v, want %v", v, c, d.Default)
		}
	}
	if c := d.Clamp(500); c != d.Min {
		t.Errorf("HighCut Clamp(500) = %v, want %v", c, d.Min)
	}
}

func TestSetValueAndWith(t *testing.T) {
	s := Defaults().With(Pan, 0.75)
	v, ok := s.Value(Pan)
	if !ok || v != 0.75 {
		t.Fatalf("Value(Pan) = %v, %v", v, ok)
	}
	if _, ok := s.Value("bogus"); ok {
		t.Fatal("Value(bogus) should report false")
	}
	if s.With("bogus", 3) != s {
		t.Fatal("With(bogus) must leave the set unchanged")
	}
}

func TestDescriptorNormalizeRoundTrip(t *testing.T) {
	for _, d := range Descriptors() {
		t.Run(string(d.ID), func(t *testing.T) {
			if got := d.Normalize(d.Min); got != 0 {
				t.Fatalf("Normalize(min) = %v, want 0", got)
			}
			if got := d.Normalize(d.Max); got != 1 {
				t.Fatalf("Normalize(max) = %v, want 1", got)
			}
			back := d.Denormalize(d.Normalize(d.Default))
			if math.Abs(back-d.Default) > 1e-9 {
				t.Fatalf("round trip of default = %v, want %v", back, d.Default)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	d, ok := Lookup(DecayTime)
	if !ok || d.Min != 0.1 || d.Max != 25 || d.Default != 8 {
		t.Fatalf("Lookup(DecayTime) = %+v, %v", d, ok)
	}
	if _, ok := Lookup("roomSize"); ok {
		t.Fatal("Lookup(roomSize) should fail")
	}
}

func TestStoreSetClampsAndRejectsUnknown(t *testing.T) {
	s := NewStore()
	if err := s.Set(Mix, 3); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get(Mix); v != 1 {
		t.Fatalf("Get(Mix) = %v, want 1", v)
	}

	err := s.Set("width", 1)
	if !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("Set(width) = %v, want ErrUnknownParameter", err)
	}
	if _, err := s.Get("width"); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("Get(width) = %v, want ErrUnknownParameter", err)
	}
}

func TestStoreSetNormalized(t *testing.T) {
	s := NewStore()
	if err := s.SetNormalized(Pan, 0); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get(Pan); v != -1 {
		t.Fatalf("Get(Pan) = %v, want -1", v)
	}
	if err := s.SetNormalized(Damping, 1.5); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get(Damping); v != 1 {
		t.Fatalf("Get(Damping) = %v, want 1", v)
	}
}

func TestStoreSnapshotDoesNotAllocate(t *testing.T) {
	s := NewStore()
	var snap Set
	allocs := testing.AllocsPerRun(100, func() {
		snap = s.Snapshot()
	})
	if allocs != 0 {
		t.Fatalf("Snapshot allocated %.0f times, want 0", allocs)
	}
	if snap != Defaults() {
		t.Fatalf("Snapshot() = %+v, want defaults", snap)
	}
}

// Run with -race: a writer updating while the reader snapshots must never
// produce a value that was not written.
func TestStoreConcurrentSnapshot(t *testing.T) {
	s := NewStore()
	values := []float64{0.1, 4, 8, 25}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			_ = s.Set(DecayTime, values[i%len(values)])
		}
	}()

	for i := 0; i < 10000; i++ {
		got := s.Snapshot().DecayTime
		valid := false
		for _, v := range values {
			if got == v {
				valid = true
				break
			}
		}
		if !valid {
			t.Fatalf("snapshot observed torn value %v", got)
		}
	}
	wg.Wait()
}
