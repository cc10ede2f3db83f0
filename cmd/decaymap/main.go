// Command decaymap prints how the decay-time control maps onto the reverb
// engine, and optionally measures the resulting impulse responses.
//
// Usage:
//
//	decaymap [flags] [decay-seconds ...]
//
// Without arguments it prints a sweep across the whole control range.
//
// Examples:
//
//	decaymap
//	decaymap -measure 1 4 8 25
//	decaymap -measure -damping 0.9 -rate 48000 8
//	decaymap -params
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-reverb/dsp/buffer"
	"github.com/cwbudde/algo-reverb/dsp/params"
	"github.com/cwbudde/algo-reverb/dsp/reverb"
	"github.com/cwbudde/algo-reverb/measure/decay"
)

var defaultSweep = []float64{0.1, 0.5, 1, 2, 4, 6, 8, 10, 12, 16, 20, 25}

// Band split used for the high/low energy ratio.
var bandEdges = []float64{0, 1000, 8000}

func main() {
	rate := flag.Float64("rate", 44100, "sample rate in Hz for measurements")
	damping := flag.Float64("damping", 0.5, "damping control [0, 1] for measurements")
	measure := flag.Bool("measure", false, "render and measure impulse responses (slow for long decays)")
	showParams := flag.Bool("params", false, "list the effect controls and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: decaymap [flags] [decay-seconds ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the decay-time to room-size map of the reverb engine.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, sweeps the whole decay range.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  decaymap 1 8 25\n")
		fmt.Fprintf(os.Stderr, "  decaymap -measure -damping 0.9 8\n")
		fmt.Fprintf(os.Stderr, "  decaymap -params\n")
	}
	flag.Parse()

	if *showParams {
		printParams()
		return
	}

	times, err := parseTimes(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := printMap(times, *rate, *damping, *measure); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseTimes(args []string) ([]float64, error) {
	if len(args) == 0 {
		return defaultSweep, nil
	}

	times := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("decay time %q: %w", a, err)
		}
		times = append(times, v)
	}
	return times, nil
}

func printParams() {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Name\tID\tMin\tMax\tDefault\tUnit\n")
	_, _ = fmt.Fprintf(tw, "----\t--\t---\t---\t-------\t----\n")
	for _, d := range params.Descriptors() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%s\n", d.Name, d.ID, d.Min, d.Max, d.Default, d.Unit)
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

type row struct {
	seconds  float64
	roomSize float64
	estRT60  float64
	measured decay.Metrics
	hfRatio  float64
}

func printMap(times []float64, rate, damping float64, measure bool) error {
	pool := buffer.NewPool()
	rows := make([]row, 0, len(times))
	for _, s := range times {
		r := row{seconds: s, roomSize: reverb.MapDecayTime(s)}
		r.estRT60 = reverb.RT60(r.roomSize)
		if measure {
			if err := measureRow(&r, rate, damping, pool); err != nil {
				return err
			}
		}
		rows = append(rows, r)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "Decay [s]\tRoom Size\tEst. RT60 [s]"
	rule := "---------\t---------\t-------------"
	if measure {
		header += "\tRT60 [s]\tEDT [s]\tC80 [dB]\tHF/LF [dB]"
		rule += "\t--------\t-------\t--------\t----------"
	}
	if _, err := fmt.Fprintf(tw, "%s\n%s\n", header, rule); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, r := range rows {
		line := fmt.Sprintf("%.2f\t%.4f\t%.2f", r.seconds, r.roomSize, r.estRT60)
		if measure {
			line += fmt.Sprintf("\t%.2f\t%.2f\t%.1f\t%.1f", r.measured.RT60, r.measured.EDT, r.measured.C80, r.hfRatio)
		}
		if _, err := fmt.Fprintln(tw, line); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	return tw.Flush()
}

func measureRow(r *row, rate, damping float64, pool *buffer.Pool) error {
	engine, err := reverb.New(rate)
	if err != nil {
		return err
	}
	engine.SetCoefficients(reverb.Coefficients{
		RoomSize: r.roomSize,
		Damping:  damping,
		WetLevel: 1,
		Width:    1,
	})
	engine.SnapCoefficients()

	length := int(math.Ceil(min(1.5*r.estRT60+0.5, 40) * rate))
	a := pool.Get(1, length)
	defer pool.Put(a)
	ir := a.Channel(0)
	ir[0] = 1
	engine.ProcessMono(ir)

	r.measured, err = decay.NewAnalyzer(rate).Analyze(ir)
	if err != nil {
		return fmt.Errorf("decay %.2f s: %w", r.seconds, err)
	}

	bands, err := decay.BandEnergies(ir, rate, bandEdges)
	if err != nil {
		return fmt.Errorf("decay %.2f s: %w", r.seconds, err)
	}
	r.hfRatio = 10 * math.Log10(bands[1]/bands[0])
	return nil
}
