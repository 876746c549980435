// audio_output.go - Audio backend abstraction and selection.

package main

import (
	"fmt"

	"github.com/golang/glog"
)

const (
	AUDIO_BACKEND_AUTO = iota
	AUDIO_BACKEND_OTO
	AUDIO_BACKEND_PORTAUDIO
	AUDIO_BACKEND_NULL
)

// SampleSource produces mono float32 PCM on demand. The backend calls it from
// its audio goroutine at a fixed cadence; implementations must not block.
type SampleSource interface {
	ReadSamples(out []float32)
}

// AudioOutput is implemented by all playback backends.
type AudioOutput interface {
	// Start begins pulling samples from src. Device failures surface here as
	// an error result, never later from inside the render path.
	Start(src SampleSource) error
	// Stop stops pulling samples. Safe to call when not started.
	Stop()
	// Close releases the device. The output cannot be restarted afterwards.
	Close()
	// IsStarted reports whether the output is currently running.
	IsStarted() bool
}

// NewAudioOutput opens the requested backend. AUDIO_BACKEND_AUTO tries oto
// first and falls back to portaudio, which covers the environments where
// oto's context cannot start.
func NewAudioOutput(backend int, sampleRate int) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		return NewOtoOutput(sampleRate)
	case AUDIO_BACKEND_PORTAUDIO:
		return NewPortAudioOutput(sampleRate)
	case AUDIO_BACKEND_NULL:
		return NewNullOutput(sampleRate), nil
	case AUDIO_BACKEND_AUTO:
		out, err := NewOtoOutput(sampleRate)
		if err == nil {
			return out, nil
		}
		glog.Warningf("oto backend unavailable (%v), trying portaudio", err)
		out, paErr := NewPortAudioOutput(sampleRate)
		if paErr == nil {
			return out, nil
		}
		return nil, fmt.Errorf("no audio backend available: oto: %v, portaudio: %v", err, paErr)
	default:
		return nil, fmt.Errorf("unknown audio backend %d", backend)
	}
}

// AudioBackendFromName maps the CLI flag value to a backend constant.
func AudioBackendFromName(name string) (int, error) {
	switch name {
	case "auto":
		return AUDIO_BACKEND_AUTO, nil
	case "oto":
		return AUDIO_BACKEND_OTO, nil
	case "portaudio":
		return AUDIO_BACKEND_PORTAUDIO, nil
	case "null":
		return AUDIO_BACKEND_NULL, nil
	default:
		return 0, fmt.Errorf("unknown audio backend %q (want auto, oto, portaudio or null)", name)
	}
}
