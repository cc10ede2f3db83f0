// Package buffer provides the multi-channel audio block handed to the block
// processor. Audio is a thin view over per-channel []float64 slices owned by
// the caller; the processor mutates it in place and never retains it beyond
// one call. Pool offers allocation reuse for offline rendering loops.
package buffer
