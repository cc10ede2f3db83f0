// Package decay measures how a reverb tail dies away.
//
// Reverberation times come from a linear fit to the Schroeder backward
// integral of the squared response:
//
//   - EDT: early decay, fitted from 0 to -10 dB
//   - T20, T30: fitted from -5 to -25 dB and from -5 to -35 dB
//   - RT60: T30 when available, otherwise T20
//
// [BandEnergies] splits the response energy into frequency bands with an
// FFT, which shows how strongly damping darkens the tail.
//
//	a := decay.NewAnalyzer(48000)
//	m, err := a.Analyze(impulseResponse)
//	fmt.Printf("RT60 = %.2f s, EDT = %.2f s\n", m.RT60, m.EDT)
package decay
