//go:build plugin

// Command elouverb-vst builds the reverb as a VST2 effect plugin:
//
//	go build -tags plugin -buildmode c-shared -o elouverb.so ./cmd/elouverb-vst
package main

import (
	"fmt"
	"log/slog"
	"os"

	"pipelined.dev/audio/vst2"

	"github.com/cwbudde/algo-reverb/dsp/params"
	"github.com/cwbudde/algo-reverb/internal/config"
	"github.com/cwbudde/algo-reverb/internal/hostio"
	"github.com/cwbudde/algo-reverb/internal/logging"
	"github.com/cwbudde/algo-reverb/processor"
)

var pluginID = [4]byte{'E', 'l', 'V', 'b'}

const (
	pluginName = "Elouverb"
	version    = int32(100)

	// Larger host blocks are processed in slices of this size.
	maxBlock = 4096
	numChannels     = 2
)

type plugin struct {
	host   vst2.Host
	logger *slog.Logger

	store  *params.Store
	params []*vst2.Parameter
	proc   *processor.Processor
	bridge *hostio.Bridge

	src, dst [numChannels][]float32
}

func newPlugin(h vst2.Host) (*plugin, error) {
	logger, err := logging.New(os.Stderr, os.Getenv("ELOUVERB_LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	proc, err := processor.New(processor.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	p := &plugin{
		host:   h,
		logger: logger,
		store:  params.NewStore(),
		proc:   proc,
		bridge: hostio.NewBridge(numChannels, maxBlock),
	}
	for _, d := range params.Descriptors() {
		p.params = append(p.params, newParameter(d))
	}
	p.prepare(float64(h.GetSampleRate()))
	return p, nil
}

func newParameter(d params.Descriptor) *vst2.Parameter {
	return &vst2.Parameter{
		Name:  d.Name,
		Unit:  d.Unit,
		Value: float32(d.Normalize(d.Default)),
		GetValueFunc: func(v float32) float32 {
			return float32(d.Denormalize(float64(v)))
		},
		GetValueLabelFunc: func(v float32) string {
			return fmt.Sprintf("%.2f", v)
		},
	}
}

// syncParams copies the host-automated parameter values into the store.
func (p *plugin) syncParams() {
	for i, d := range params.Descriptors() {
		_ = p.store.SetNormalized(d.ID, float64(p.params[i].Value))
	}
}

// loadPreset replaces every control and mirrors it into the host parameters.
func (p *plugin) loadPreset(set params.Set) {
	p.store.Load(set)
	snap := p.store.Snapshot()
	for i, d := range params.Descriptors() {
		v, _ := snap.Value(d.ID)
		p.params[i].Value = float32(d.Normalize(v))
	}
}

// prepare allocates the processor for sampleRate. It runs from the
// dispatcher, never from process.
func (p *plugin) prepare(sampleRate float64) {
	if err := p.proc.Prepare(sampleRate, maxBlock); err != nil {
		p.logger.Warn("prepare", "sample_rate", sampleRate, "err", err)
	}
}

func (p *plugin) process(in, out vst2.FloatBuffer) {
	for ch := range numChannels {
		p.src[ch] = in.Channel(ch)
		p.dst[ch] = out.Channel(ch)
	}
	if !p.proc.Prepared() {
		for ch := range numChannels {
			copy(p.dst[ch], p.src[ch])
		}
		return
	}

	p.syncParams()
	ps := p.store.Snapshot()

	var src, dst [numChannels][]float32
	for start := 0; start < out.Frames; start += maxBlock {
		end := min(start+maxBlock, out.Frames)
		for ch := range numChannels {
			src[ch] = p.src[ch][start:end]
			dst[ch] = p.dst[ch][start:end]
		}
		buf := p.bridge.Load(src[:])
		p.proc.Process(buf, ps)
		p.bridge.Store(dst[:])
	}
}

func (p *plugin) chunk() []byte {
	data, err := config.MarshalPreset(p.store.Snapshot())
	if err != nil {
		p.logger.Error("save preset", "err", err)
		return nil
	}
	return data
}

func (p *plugin) setChunk(data []byte) {
	set, err := config.ParsePreset(data)
	if err != nil {
		p.logger.Warn("load preset", "err", err)
		return
	}
	p.loadPreset(set)
}

func init() {
	vst2.PluginAllocator = func(h vst2.Host) (vst2.Plugin, vst2.Dispatcher) {
		p, err := newPlugin(h)
		if err != nil {
			panic(err)
		}
		return vst2.Plugin{
				UniqueID:         pluginID,
				Version:          version,
				InputChannels:    numChannels,
				OutputChannels:   numChannels,
				Name:             pluginName,
				Vendor:           "cwbudde",
				Category:         vst2.PluginCategoryRoomFx,
				Flags:            vst2.PluginProgramChunks,
				Parameters:       p.params,
				ProcessFloatFunc: p.process,
			}, vst2.Dispatcher{
				CanDoFunc: func(vst2.PluginCanDoString) vst2.CanDoResponse {
					return vst2.NoCanDo
				},
				SetSampleRateFunc: func(sampleRate float32) {
					p.prepare(float64(sampleRate))
				},
				CloseFunc: p.proc.Release,
				GetChunkFunc: func(bool) []byte {
					return p.chunk()
				},
				SetChunkFunc: func(data []byte, _ bool) {
					p.setChunk(data)
				},
			}
	}
}

func main() {}
