// Command elouverb-render runs a WAV file through the reverb processor.
//
// Usage:
//
//	elouverb-render [flags] input.wav
//
// Settings come from an optional YAML or JSON file (-config) and are then
// overridden by any parameter flag given on the command line.
//
// Examples:
//
//	elouverb-render -o wet.wav dry.wav
//	elouverb-render -config hall.yml -o wet.wav dry.wav
//	elouverb-render -decay 12 -mix 0.6 -autotail -play -o wet.wav dry.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-reverb/dsp/buffer"
	"github.com/cwbudde/algo-reverb/dsp/params"
	"github.com/cwbudde/algo-reverb/internal/config"
	"github.com/cwbudde/algo-reverb/internal/logging"
	"github.com/cwbudde/algo-reverb/internal/wavio"
	"github.com/cwbudde/algo-reverb/measure/level"
	"github.com/cwbudde/algo-reverb/processor"
)

var errUsage = errors.New("usage")

type options struct {
	input    string
	output   string
	config   string
	play     bool
	logLevel string

	overrides map[string]float64
	tail      float64
	autoTail  bool
	bitDepth  int
	blockSize int
}

// paramFlags maps command-line flag names onto effect controls.
var paramFlags = []struct {
	flag string
	id   params.ID
}{
	{"decay", params.DecayTime},
	{"damping", params.Damping},
	{"mix", params.Mix},
	{"saturation", params.Saturation},
	{"pan", params.Pan},
	{"predelay", params.PreDelay},
	{"lowcut", params.LowCut},
	{"highcut", params.HighCut},
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(2)
	}

	logger, err := logging.New(os.Stderr, opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if err := run(opts, logger); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("elouverb-render", flag.ContinueOnError)
	var opts options
	fs.StringVar(&opts.output, "o", "", "output WAV file (required)")
	fs.StringVar(&opts.config, "config", "", "YAML or JSON render settings")
	fs.BoolVar(&opts.play, "play", false, "play the result after rendering")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.Float64Var(&opts.tail, "tail", 0, "seconds of reverb tail appended after the input")
	fs.BoolVar(&opts.autoTail, "autotail", false, "append the estimated tail length instead of -tail")
	fs.IntVar(&opts.bitDepth, "bits", 0, "output bit depth: 16 or 24")
	fs.IntVar(&opts.blockSize, "block", 0, "processing block size in frames")

	values := make(map[string]*float64, len(paramFlags))
	for _, pf := range paramFlags {
		d, _ := params.Lookup(pf.id)
		usage := fmt.Sprintf("%s [%g, %g]", d.Name, d.Min, d.Max)
		if d.Unit != "" {
			usage += " " + d.Unit
		}
		values[pf.flag] = fs.Float64(pf.flag, d.Default, usage)
	}

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: elouverb-render [flags] input.wav\n\n")
		fmt.Fprintf(out, "Renders a WAV file through the reverb, saturation and pan chain.\n\n")
		fmt.Fprintf(out, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  elouverb-render -o wet.wav dry.wav\n")
		fmt.Fprintf(out, "  elouverb-render -config hall.yml -decay 12 -autotail -o wet.wav dry.wav\n")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() != 1 || opts.output == "" {
		fs.Usage()
		return options{}, errUsage
	}
	opts.input = fs.Arg(0)

	// Only flags given explicitly override the config file.
	opts.overrides = make(map[string]float64)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tail", "autotail", "bits", "block":
			opts.overrides[f.Name] = 1
		default:
			if v, ok := values[f.Name]; ok {
				opts.overrides[f.Name] = *v
			}
		}
	})

	return opts, nil
}

func loadSettings(opts options) (config.Render, error) {
	cfg := config.Default()
	if opts.config != "" {
		var err error
		cfg, err = config.Load(opts.config)
		if err != nil {
			return config.Render{}, err
		}
	}

	for _, pf := range paramFlags {
		if v, ok := opts.overrides[pf.flag]; ok {
			cfg.Params = cfg.Params.With(pf.id, v)
		}
	}
	if _, ok := opts.overrides["tail"]; ok {
		cfg.Tail = opts.tail
	}
	if _, ok := opts.overrides["autotail"]; ok {
		cfg.AutoTail = opts.autoTail
	}
	if _, ok := opts.overrides["bits"]; ok {
		cfg.BitDepth = opts.bitDepth
	}
	if _, ok := opts.overrides["block"]; ok {
		cfg.BlockSize = opts.blockSize
	}

	cfg.Params = cfg.Params.Clamp()
	if err := cfg.Validate(); err != nil {
		return config.Render{}, err
	}
	return cfg, nil
}

func run(opts options, logger *slog.Logger) error {
	cfg, err := loadSettings(opts)
	if err != nil {
		return err
	}

	audio, info, err := wavio.ReadFile(opts.input)
	if err != nil {
		return err
	}
	sampleRate := info.SampleRate
	if cfg.SampleRate > 0 {
		sampleRate = cfg.SampleRate
	}
	logger.Info("input",
		"file", opts.input,
		"sample_rate", info.SampleRate,
		"bit_depth", info.BitDepth,
		"channels", info.Channels,
		"frames", audio.NumSamples(),
	)

	proc, err := processor.New(processor.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := proc.Prepare(float64(sampleRate), cfg.BlockSize); err != nil {
		return err
	}
	defer proc.Release()

	tail := cfg.Tail
	if cfg.AutoTail {
		tail = min(proc.TailLength(cfg.Params).Seconds(), config.MaxTail)
	}
	inputFrames := audio.NumSamples()
	audio.Resize(inputFrames + int(math.Ceil(tail*float64(sampleRate))))
	logger.Debug("tail", "seconds", tail, "frames", audio.NumSamples()-inputFrames)

	in := measure(audio, 0, inputFrames)
	render(proc, audio, cfg)
	out := measure(audio, 0, audio.NumSamples())

	if err := wavio.WriteFile(opts.output, audio, sampleRate, cfg.BitDepth); err != nil {
		return err
	}
	logger.Info("wrote", "file", opts.output, "bit_depth", cfg.BitDepth, "frames", audio.NumSamples())

	if err := report(in, out); err != nil {
		return err
	}

	if opts.play {
		logger.Info("playing", "seconds", float64(audio.NumSamples())/float64(sampleRate))
		return play(audio, sampleRate)
	}
	return nil
}

// render feeds the buffer to the processor in host-sized blocks.
func render(proc *processor.Processor, audio *buffer.Audio, cfg config.Render) {
	var view *buffer.Audio
	for start := 0; start < audio.NumSamples(); start += cfg.BlockSize {
		end := min(start+cfg.BlockSize, audio.NumSamples())
		view = audio.Slice(view, start, end)
		proc.Process(view, cfg.Params)
	}
}

func measure(audio *buffer.Audio, start, end int) []level.Stats {
	stats := make([]level.Stats, audio.NumChannels())
	for ch := range stats {
		stats[ch] = level.Calculate(audio.Channel(ch)[start:end])
	}
	return stats
}

func report(in, out []level.Stats) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Channel\tIn Peak [dB]\tIn RMS [dB]\tOut Peak [dB]\tOut RMS [dB]\tCrest [dB]\tClipped\n")
	_, _ = fmt.Fprintf(tw, "-------\t------------\t-----------\t-------------\t------------\t----------\t-------\n")
	for ch := range out {
		_, _ = fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%d\n",
			ch, in[ch].PeakDB, in[ch].RMSDB, out[ch].PeakDB, out[ch].RMSDB, out[ch].CrestDB, out[ch].Clipped)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}
