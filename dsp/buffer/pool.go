package buffer

import "sync"

// Pool provides sync.Pool-based Audio reuse to reduce GC pressure
// in offline rendering loops. It must not be used from a real-time callback.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Audio{}
			},
		},
	}
}

// Get returns a zeroed block with the requested shape.
// Callers must return it via Put when done.
func (p *Pool) Get(numChannels, frames int) *Audio {
	a := p.pool.Get().(*Audio)
	if numChannels < 0 {
		numChannels = 0
	}
	if cap(a.channels) < numChannels {
		grown := make([][]float64, numChannels)
		copy(grown, a.channels[:cap(a.channels)])
		a.channels = grown
	}
	a.channels = a.channels[:numChannels]
	a.Resize(frames)
	a.Clear()
	return a
}

// Put returns a block to the pool for reuse.
// The caller must not use the block after calling Put.
func (p *Pool) Put(a *Audio) {
	if a == nil {
		return
	}
	p.pool.Put(a)
}
