// Package delay provides the fixed-capacity delay line used for pre-delay.
package delay

import "fmt"

// Line is a circular delay line with an integer tap.
// Capacity is fixed at construction; the tap moves freely below it.
type Line struct {
	buffer   []float64
	writePos int
	delay    int
}

// New returns a delay line that can delay by up to maxDelay samples.
func New(maxDelay int) (*Line, error) {
	if maxDelay < 0 {
		return nil, fmt.Errorf("delay length must be >= 0: %d", maxDelay)
	}
	return &Line{buffer: make([]float64, maxDelay+1)}, nil
}

// MaxDelay returns the largest supported delay in samples.
func (d *Line) MaxDelay() int {
	return len(d.buffer) - 1
}

// SetDelay sets the tap in samples, clamped to [0, MaxDelay].
func (d *Line) SetDelay(samples int) {
	if samples < 0 {
		samples = 0
	}
	if samples > d.MaxDelay() {
		samples = d.MaxDelay()
	}
	d.delay = samples
}

// Delay returns the current tap in samples.
func (d *Line) Delay() int {
	return d.delay
}

// Process writes one sample and returns the sample written Delay() calls ago.
// With a zero delay the input is returned unchanged.
func (d *Line) Process(x float64) float64 {
	size := len(d.buffer)
	d.buffer[d.writePos] = x
	readPos := d.writePos - d.delay
	if readPos < 0 {
		readPos += size
	}
	y := d.buffer[readPos]

	d.writePos++
	if d.writePos >= size {
		d.writePos = 0
	}
	return y
}

// Reset clears line state. The tap is kept.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
