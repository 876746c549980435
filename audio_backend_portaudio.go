//go:build !headless

// audio_backend_portaudio.go - PortAudio callback-model output, the fallback
// for environments where oto cannot open a context.

package main

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

type PortAudioOutput struct {
	stream     *portaudio.Stream
	sampleRate int
	started    bool
	mutex      sync.Mutex
}

func NewPortAudioOutput(sampleRate int) (AudioOutput, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	return &PortAudioOutput{sampleRate: sampleRate}, nil
}

func (o *PortAudioOutput) Start(src SampleSource) error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.started {
		return nil
	}

	cb := func(out []float32) {
		src.ReadSamples(out)
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(o.sampleRate), 0, cb)
	if err != nil {
		return fmt.Errorf("open portaudio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("start portaudio stream: %w", err)
	}
	o.stream = stream
	o.started = true
	return nil
}

func (o *PortAudioOutput) Stop() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.started && o.stream != nil {
		o.stream.Stop()
		o.stream.Close()
		o.stream = nil
		o.started = false
	}
}

func (o *PortAudioOutput) Close() {
	o.Stop()
	portaudio.Terminate()
}

func (o *PortAudioOutput) IsStarted() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.started
}
