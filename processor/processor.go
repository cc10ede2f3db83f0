package processor

import (
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-reverb/dsp/buffer"
	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/effects"
	"github.com/cwbudde/algo-reverb/dsp/effects/spatial"
	"github.com/cwbudde/algo-reverb/dsp/params"
	"github.com/cwbudde/algo-reverb/dsp/reverb"
)

// msPerSecond converts the pre-delay control to engine seconds.
const msPerSecond = 1000.0

// Processor applies the reverb, saturation and pan chain to audio blocks.
// It is not safe for concurrent use; controls should reach it through a
// params.Store or a per-block params.Set.
type Processor struct {
	cfg config

	engine     *reverb.Reverb
	sampleRate float64
	maxBlock   int
	// primed is false until the first block after Prepare has set the
	// engine coefficients.
	primed bool
}

// New creates an unprepared processor. Call Prepare before processing.
func New(opts ...Option) (*Processor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Processor{cfg: cfg}, nil
}

// Prepare allocates the engine for sampleRate and blocks of up to
// maxBlockSize frames and clears all state. It reports configuration errors
// matching core.ErrInvalidSampleRate or core.ErrInvalidBlockSize.
func (p *Processor) Prepare(sampleRate float64, maxBlockSize int) error {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(maxBlockSize),
	)
	if err := cfg.Validate(); err != nil {
		p.cfg.logger.Error("prepare rejected", "sample_rate", sampleRate, "block_size", maxBlockSize, "err", err)
		return fmt.Errorf("processor: prepare: %w", err)
	}

	if p.engine == nil {
		engine, err := reverb.New(cfg.SampleRate)
		if err != nil {
			return fmt.Errorf("processor: prepare: %w", err)
		}
		p.engine = engine
	} else if err := p.engine.SetSampleRate(cfg.SampleRate); err != nil {
		return fmt.Errorf("processor: prepare: %w", err)
	}

	p.sampleRate = cfg.SampleRate
	p.maxBlock = cfg.BlockSize
	p.primed = false

	p.cfg.logger.Info("prepared", "sample_rate", p.sampleRate, "block_size", p.maxBlock)

	return nil
}

// Release frees the engine. The processor passes audio through until it is
// prepared again.
func (p *Processor) Release() {
	if p.engine == nil {
		return
	}

	p.engine = nil
	p.cfg.logger.Info("released")
}

// Reset silences the reverb tail. It must not run concurrently with Process.
func (p *Processor) Reset() {
	if p.engine == nil {
		return
	}

	p.engine.Reset()
	p.cfg.logger.Debug("reset")
}

// Prepared reports whether Prepare has succeeded since the last Release.
func (p *Processor) Prepared() bool {
	return p.engine != nil
}

// SampleRate returns the prepared sample rate, or 0.
func (p *Processor) SampleRate() float64 {
	if p.engine == nil {
		return 0
	}
	return p.sampleRate
}

// MaxBlockSize returns the prepared block size, or 0.
func (p *Processor) MaxBlockSize() int {
	if p.engine == nil {
		return 0
	}
	return p.maxBlock
}

// TailLength returns how long output keeps ringing after input stops with
// the given controls, including pre-delay.
func (p *Processor) TailLength(ps params.Set) time.Duration {
	ps = ps.Clamp()
	seconds := reverb.RT60(reverb.MapDecayTime(ps.DecayTime)) + ps.PreDelay/msPerSecond
	return time.Duration(math.Ceil(seconds * float64(time.Second)))
}

// ProcessStore snapshots store and processes buf with the result.
func (p *Processor) ProcessStore(buf *buffer.Audio, store *params.Store) {
	p.Process(buf, store.Snapshot())
}

// Process runs one host block in place.
//
// Channels beyond the configured input count are cleared first. A single
// channel is reverberated as mono. Two or more channels reverberate the
// first pair as stereo and leave the rest untouched. Blocks longer than the
// prepared size are processed in slices. Before Prepare, buf is left as is.
func (p *Processor) Process(buf *buffer.Audio, ps params.Set) {
	if buf == nil || p.engine == nil {
		return
	}

	numCh := buf.NumChannels()
	if in := p.cfg.inputChannels; in > 0 {
		for ch := in; ch < numCh; ch++ {
			buf.ClearChannel(ch)
		}
	}

	frames := buf.NumSamples()
	if numCh == 0 || frames == 0 {
		return
	}

	ps = ps.Clamp()
	p.engine.SetCoefficients(reverb.Coefficients{
		RoomSize: reverb.MapDecayTime(ps.DecayTime),
		Damping:  ps.Damping,
		WetLevel: ps.Mix,
		DryLevel: 1 - ps.Mix,
		Width:    1,
	})
	p.engine.SetPreDelay(ps.PreDelay / msPerSecond)
	p.engine.SetTone(ps.LowCut, ps.HighCut)
	if !p.primed {
		p.engine.SnapCoefficients()
		p.primed = true
	}

	for start := 0; start < frames; start += p.maxBlock {
		end := min(start+p.maxBlock, frames)
		if numCh == 1 {
			p.processMono(buf.Channel(0)[start:end], ps)
		} else {
			p.processStereo(buf.Channel(0)[start:end], buf.Channel(1)[start:end], ps)
		}
	}
}

func (p *Processor) processMono(samples []float64, ps params.Set) {
	p.engine.ProcessMono(samples)
	effects.SaturateBlock(samples, ps.Saturation)
}

func (p *Processor) processStereo(left, right []float64, ps params.Set) {
	p.engine.ProcessStereo(left, right)
	effects.SaturateBlock(left, ps.Saturation)
	effects.SaturateBlock(right, ps.Saturation)
	spatial.PanStereo(left, right, ps.Pan)
}
