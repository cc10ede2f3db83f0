// Package processor runs the reverb effect over host audio blocks.
//
// A Processor snapshots the controls once per block, maps the decay time to
// a room size, runs the stereo or mono reverb, then applies saturation and
// (for stereo) pan in place. Prepare and Release may allocate and log;
// Process never does either.
package processor
