// audio_stream.go - Live playback driver: snapshots the chip state from the
// backend's audio goroutine, renders through the synthesizer and hands the
// buffer to the device.

package main

import (
	"github.com/golang/glog"
)

type LiveStream struct {
	state      *ChipState
	synth      *Synthesizer
	output     AudioOutput
	sampleRate int
}

func NewLiveStream(state *ChipState, output AudioOutput, sampleRate int) *LiveStream {
	return &LiveStream{
		state:      state,
		synth:      NewSynthesizer(sampleRate),
		output:     output,
		sampleRate: sampleRate,
	}
}

// ReadSamples implements SampleSource. It runs on the backend's audio
// goroutine under a deadline: one snapshot per callback, no logging, no
// allocation beyond the synthesizer's warmed scratch buffers.
func (ls *LiveStream) ReadSamples(out []float32) {
	snap := ls.state.Snapshot()
	ls.synth.RenderInto(out, snap)
}

// Start begins continuous playback. Failure to start the device is returned
// to the caller; nothing inside the render path can fail after this point.
func (ls *LiveStream) Start() error {
	if err := ls.output.Start(ls); err != nil {
		return err
	}
	glog.Infof("live stream started at %d Hz", ls.sampleRate)
	return nil
}

func (ls *LiveStream) Stop() {
	ls.output.Stop()
	glog.Info("live stream stopped")
}

func (ls *LiveStream) IsPlaying() bool {
	return ls.output.IsStarted()
}

// toInt16 converts float samples to the fixed-point PCM form devices and
// file formats without float support expect, clamping first.
func toInt16(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, v := range samples {
		if v > 1.0 {
			v = 1.0
		} else if v < -1.0 {
			v = -1.0
		}
		out[i] = int16(v * 32767)
	}
	return out
}
