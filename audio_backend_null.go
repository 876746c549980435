// audio_backend_null.go - Device-less output that pulls samples at roughly
// real time and discards them. Used for tests, CI and the -backend null flag;
// it keeps the sequencer and stream code paths honest without a sound card.

package main

import (
	"sync"
	"time"
)

const NULL_BLOCK_SIZE = 2048

type NullOutput struct {
	sampleRate int
	started    bool
	stop       chan struct{}
	done       chan struct{}
	mutex      sync.Mutex
}

func NewNullOutput(sampleRate int) *NullOutput {
	return &NullOutput{sampleRate: sampleRate}
}

func (o *NullOutput) Start(src SampleSource) error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.started {
		return nil
	}
	o.stop = make(chan struct{})
	o.done = make(chan struct{})
	o.started = true

	interval := time.Duration(NULL_BLOCK_SIZE) * time.Second / time.Duration(o.sampleRate)
	go func() {
		defer close(o.done)
		buf := make([]float32, NULL_BLOCK_SIZE)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-o.stop:
				return
			case <-ticker.C:
				src.ReadSamples(buf)
			}
		}
	}()
	return nil
}

func (o *NullOutput) Stop() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.started {
		close(o.stop)
		<-o.done
		o.started = false
	}
}

func (o *NullOutput) Close() {
	o.Stop()
}

func (o *NullOutput) IsStarted() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.started
}
