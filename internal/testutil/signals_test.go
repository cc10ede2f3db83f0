package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.5, 48)
	if s[0] != 0 {
		t.Fatalf("first sample = %v, want 0", s[0])
	}
	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("quarter-period sample = %v, want 0.5", s[12])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.25, 512)
	b := DeterministicNoise(42, 0.25, 512)
	c := DeterministicNoise(43, 0.25, 512)

	RequireSliceNearlyEqual(t, a, b, 0)
	for _, v := range a {
		if v < -0.25 || v >= 0.25 {
			t.Fatalf("value %v outside amplitude", v)
		}
	}
	if d := math.Abs(a[0] - c[0]); d == 0 {
		t.Fatal("different seeds produced the same first sample")
	}
}

func TestImpulse(t *testing.T) {
	x := Impulse(8, 3)
	if Energy(x) != 1 || x[3] != 1 {
		t.Fatalf("Impulse(8, 3) = %v", x)
	}
	RequireSilent(t, Impulse(4, 9))
}

func TestOnes(t *testing.T) {
	if Energy(Ones(5)) != 5 {
		t.Fatal("Ones(5) energy != 5")
	}
}
