//go:build headless

// audio_backend_headless.go - Build-tag stubs so headless builds carry no
// audio device dependencies. Both real backends resolve to the null output.

package main

func NewOtoOutput(sampleRate int) (AudioOutput, error) {
	return NewNullOutput(sampleRate), nil
}

func NewPortAudioOutput(sampleRate int) (AudioOutput, error) {
	return NewNullOutput(sampleRate), nil
}
