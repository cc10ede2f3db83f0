package reverb

import "github.com/cwbudde/algo-reverb/dsp/core"

// comb is a feedback comb with a one-pole lowpass in its loop.
type comb struct {
	buffer []float64
	index  int
	last   float64
}

func (c *comb) setSize(n int) {
	if n < 1 {
		n = 1
	}
	c.buffer = make([]float64, n)
	c.index = 0
	c.last = 0
}

func (c *comb) process(input, damp, feedback float64) float64 {
	output := c.buffer[c.index]
	c.last = core.FlushDenormals(output*(1-damp) + c.last*damp)
	c.buffer[c.index] = core.FlushDenormals(input + c.last*feedback)

	c.index++
	if c.index >= len(c.buffer) {
		c.index = 0
	}
	return output
}

func (c *comb) reset() {
	core.Zero(c.buffer)
	c.index = 0
	c.last = 0
}

// allpass is a Schroeder allpass diffuser with fixed 0.5 feedback.
type allpass struct {
	buffer []float64
	index  int
}

const allpassFeedback = 0.5

func (a *allpass) setSize(n int) {
	if n < 1 {
		n = 1
	}
	a.buffer = make([]float64, n)
	a.index = 0
}

func (a *allpass) process(input float64) float64 {
	bufOut := a.buffer[a.index]
	a.buffer[a.index] = core.FlushDenormals(input + bufOut*allpassFeedback)

	a.index++
	if a.index >= len(a.buffer) {
		a.index = 0
	}
	return bufOut - input
}

func (a *allpass) reset() {
	core.Zero(a.buffer)
	a.index = 0
}
