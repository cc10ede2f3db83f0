// Package spatial provides reusable non-I/O spatial audio effects.
//
// Included processors:
//   - PanGains / Pan / PanStereo: linear stereo balance.
package spatial
