package main

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-reverb/dsp/buffer"
	"github.com/cwbudde/algo-reverb/internal/hostio"
)

// play blocks until audio has been played on the default output device.
// Only the first two channels are audible.
func play(audio *buffer.Audio, sampleRate int) error {
	channels := audio.Channels()
	if len(channels) > 2 {
		channels = channels[:2]
	}
	stereo, err := buffer.FromChannels(channels)
	if err != nil {
		return err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: stereo.NumChannels(),
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(hostio.NewFloat32Reader(stereo))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
	return nil
}
