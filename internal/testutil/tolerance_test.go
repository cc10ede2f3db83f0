package testutil

import (
	"math"
	"testing"
)

func TestEnergy(t *testing.T) {
	if got := Energy([]float64{3, -4}); got != 25 {
		t.Fatalf("Energy = %v, want 25", got)
	}
	if got := Energy(nil); got != 0 {
		t.Fatalf("Energy(nil) = %v, want 0", got)
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, math.Copysign(0, -1)}, []float64{1, 0}, 0)
	RequireSliceNearlyEqual(t, []float64{1.0000001}, []float64{1}, 1e-6)
	RequireFinite(t, []float64{0, -1, 1e300})
	RequireSilent(t, []float64{0, math.Copysign(0, -1)})
}
