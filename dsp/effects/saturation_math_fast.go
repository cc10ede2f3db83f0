//go:build fastmath

package effects

import "github.com/meko-christian/algo-approx"

// tanhLimit is where tanh reaches ±1 in float64.
const tanhLimit = 20.0

// mathTanh computes tanh(x) using fast approximation.
// Uses the identity: tanh(x) = 1 - 2/(e^(2x) + 1)
func mathTanh(x float64) float64 {
	if x >= tanhLimit {
		return 1
	}
	if x <= -tanhLimit {
		return -1
	}
	return 1 - 2/(approx.FastExp(2*x)+1)
}
