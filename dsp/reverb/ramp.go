package reverb

// ramp moves linearly from its current value to a target over a fixed
// number of samples.
type ramp struct {
	current float64
	target  float64
	step    float64
	steps   int
	remain  int
}

func (r *ramp) setLength(steps int) {
	if steps < 0 {
		steps = 0
	}
	r.steps = steps
	r.snap()
}

func (r *ramp) setTarget(v float64) {
	if v == r.target {
		return
	}
	r.target = v
	if r.steps == 0 {
		r.snap()
		return
	}
	r.remain = r.steps
	r.step = (r.target - r.current) / float64(r.steps)
}

func (r *ramp) snap() {
	r.current = r.target
	r.remain = 0
	r.step = 0
}

func (r *ramp) next() float64 {
	if r.remain <= 0 {
		return r.target
	}
	r.remain--
	if r.remain == 0 {
		r.current = r.target
	} else {
		r.current += r.step
	}
	return r.current
}
