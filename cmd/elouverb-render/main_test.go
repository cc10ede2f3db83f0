package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/buffer"
	"github.com/cwbudde/algo-reverb/dsp/params"
	"github.com/cwbudde/algo-reverb/internal/config"
	"github.com/cwbudde/algo-reverb/internal/logging"
	"github.com/cwbudde/algo-reverb/internal/testutil"
	"github.com/cwbudde/algo-reverb/internal/wavio"
)

func TestParseFlagsRequiresOutputAndInput(t *testing.T) {
	for _, args := range [][]string{
		{"in.wav"},
		{"-o", "out.wav"},
		{"-o", "out.wav", "a.wav", "b.wav"},
	} {
		_, err := parseFlags(args)
		if !errors.Is(err, errUsage) {
			t.Errorf("parseFlags(%q) error = %v, want errUsage", args, err)
		}
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "hall.yml")
	data := []byte("blockSize: 256\nbitDepth: 16\ntail: 2\nparams:\n  decayTime: 4\n  damping: 0.2\n  mix: 0.5\n  pan: 0.5\n  preDelay: 10\n  lowCut: 20\n  highCut: 20000\n")
	if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := parseFlags([]string{"-config", cfgPath, "-decay", "12", "-bits", "24", "-o", "out.wav", "in.wav"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	cfg, err := loadSettings(opts)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}

	if cfg.Params.DecayTime != 12 {
		t.Errorf("DecayTime = %g, want flag value 12", cfg.Params.DecayTime)
	}
	if cfg.Params.Damping != 0.2 || cfg.Params.PreDelay != 10 {
		t.Errorf("file values lost: %+v", cfg.Params)
	}
	if cfg.BitDepth != 24 || cfg.BlockSize != 256 || cfg.Tail != 2 {
		t.Errorf("render settings = %+v", cfg)
	}
}

func TestOverridesAreClamped(t *testing.T) {
	opts, err := parseFlags([]string{"-decay", "99", "-mix", "-1", "-o", "out.wav", "in.wav"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	cfg, err := loadSettings(opts)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if cfg.Params.DecayTime != 25 || cfg.Params.Mix != 0 {
		t.Fatalf("params = %+v, want clamped decay 25 and mix 0", cfg.Params)
	}
}

func TestInvalidSettingsRejected(t *testing.T) {
	opts, err := parseFlags([]string{"-bits", "12", "-o", "out.wav", "in.wav"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if _, err := loadSettings(opts); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("loadSettings error = %v, want config.ErrInvalid", err)
	}
}

func TestRunWritesTail(t *testing.T) {
	const sampleRate = 22050
	dir := t.TempDir()
	in := filepath.Join(dir, "dry.wav")
	out := filepath.Join(dir, "wet.wav")

	dry, err := buffer.FromChannels([][]float64{
		testutil.Impulse(2048, 0),
		testutil.Impulse(2048, 0),
	})
	if err != nil {
		t.Fatal(err)
	}
	for ch := range dry.NumChannels() {
		dry.Channel(ch)[0] = 0.5
	}
	if err := wavio.WriteFile(in, dry, sampleRate, 16); err != nil {
		t.Fatal(err)
	}

	opts, err := parseFlags([]string{"-tail", "0.5", "-mix", "1", "-o", out, in})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if err := run(opts, logging.Discard()); err != nil {
		t.Fatalf("run: %v", err)
	}

	wet, info, err := wavio.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if info.SampleRate != sampleRate || info.BitDepth != 24 || info.Channels != 2 {
		t.Fatalf("info = %+v", info)
	}
	if want := 2048 + sampleRate/2; wet.NumSamples() != want {
		t.Fatalf("frames = %d, want %d", wet.NumSamples(), want)
	}
	if e := testutil.Energy(wet.Channel(0)[2048:]); e == 0 {
		t.Fatal("tail is silent")
	}
}

func TestParamFlagsCoverEveryControl(t *testing.T) {
	seen := make(map[params.ID]bool)
	for _, pf := range paramFlags {
		seen[pf.id] = true
	}
	for _, d := range params.Descriptors() {
		if !seen[d.ID] {
			t.Errorf("no flag for %s", d.ID)
		}
	}
}
