//go:build !headless

// audio_backend_oto.go - OTO v3 audio output implementation.

package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

type OtoOutput struct {
	ctx       *oto.Context
	player    *oto.Player
	src       atomic.Pointer[SampleSource] // atomic for the lock-free Read hot path
	sampleBuf []float32
	started   bool
	mutex     sync.Mutex // setup/control only, never held in Read
}

func NewOtoOutput(sampleRate int) (AudioOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &OtoOutput{
		ctx:       ctx,
		sampleBuf: make([]float32, 4096),
	}, nil
}

func (o *OtoOutput) Start(src SampleSource) error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.src.Store(&src)
	if o.player == nil {
		o.player = o.ctx.NewPlayer(o)
	}
	if !o.started {
		o.player.Play()
		o.started = true
	}
	return nil
}

// Read is the oto pull callback: it renders len(p)/4 float32 samples and
// copies them out as little-endian bytes.
func (o *OtoOutput) Read(p []byte) (n int, err error) {
	srcPtr := o.src.Load()
	if srcPtr == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	numSamples := len(p) / 4
	if numSamples == 0 {
		return 0, nil
	}
	if len(o.sampleBuf) < numSamples {
		o.sampleBuf = make([]float32, numSamples)
	}
	samples := o.sampleBuf[:numSamples]

	(*srcPtr).ReadSamples(samples)

	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:numSamples*4])
	return numSamples * 4, nil
}

func (o *OtoOutput) Stop() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.started && o.player != nil {
		o.player.Pause()
		o.started = false
	}
}

func (o *OtoOutput) Close() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	o.started = false
}

func (o *OtoOutput) IsStarted() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.started
}
