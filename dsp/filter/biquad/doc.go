// Package biquad provides the second-order IIR section used to shape the
// reverb's tank input, together with RBJ low-pass and high-pass designs.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients].
package biquad
