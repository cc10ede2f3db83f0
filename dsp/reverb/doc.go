// Package reverb implements the reverberator at the centre of the effect:
// a decay-time curve that maps user seconds to an internal room size, and a
// stereo Schroeder/Freeverb-style engine built from damped comb filters and
// series allpasses.
//
// The engine allocates only in [New] and [Reverb.SetSampleRate]. All other
// methods are safe to call from a real-time audio callback.
package reverb
