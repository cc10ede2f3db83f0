// Package effects provides reusable non-I/O DSP effect kernels.
//
// Subpackages:
//   - github.com/cwbudde/algo-reverb/dsp/effects/spatial
//
// Effects in this package:
//   - Saturate / SaturateBlock: tanh soft clipping with makeup gain.
//
// Building with the fastmath tag swaps math.Tanh for an approximation.
//
// All effects are designed for real-time processing with zero-allocation
// hot paths and support both single-sample and buffer-based processing.
package effects
