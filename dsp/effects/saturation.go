package effects

// SaturationThreshold is the amount at or below which SaturateBlock leaves
// its input untouched.
const SaturationThreshold = 0.01

// Saturate soft-clips sample with a drive-scaled tanh and renormalizes the
// output gain so that heavier settings do not jump in loudness:
//
//	drive = 1 + 15*amount
//	y     = tanh(sample*drive) / (1 + 3*amount)
//
// amount is nominally in [0, 0.5]. Saturate(x, 0) == x up to tanh precision
// for small x; use SaturateBlock for a bit-exact bypass.
func Saturate(sample, amount float64) float64 {
	drive := 1 + 15*amount
	return mathTanh(sample*drive) / (1 + amount*3)
}

// SaturateBlock applies Saturate to every sample of buf in place when
// amount exceeds SaturationThreshold. Otherwise buf is not touched.
func SaturateBlock(buf []float64, amount float64) {
	if !(amount > SaturationThreshold) {
		return
	}

	drive := 1 + 15*amount
	norm := 1 / (1 + amount*3)
	for i, x := range buf {
		buf[i] = mathTanh(x*drive) * norm
	}
}
