// Package params describes the reverb's user controls and carries their
// values across threads.
//
// A Set is an immutable per-block snapshot of every control. A Store holds
// one lock-free atomic scalar per control: a non-real-time writer (UI,
// automation) calls Set, the audio thread calls Snapshot exactly once per
// block so that a block never observes a torn or half-updated value.
package params
