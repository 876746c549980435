// psg_state.go - Complete AY-3-8914 chip state, the single source of truth
// shared by the editing surface, the sequencer and the audio stream.
//
// Concurrency contract: one control goroutine mutates a ChipState through its
// setters or Apply; the audio goroutine only ever calls Snapshot and renders
// from the returned value. The mutex is held for the duration of a field copy
// and never while rendering.

package main

import "sync"

// Apply parameter selectors, the command boundary the (out-of-scope) UI layer
// drives. Channel-scoped parameters take ch 0-2; the rest ignore it.
const (
	PARAM_FREQ = iota
	PARAM_VOLUME
	PARAM_TONE_ENABLE
	PARAM_NOISE_ENABLE
	PARAM_ENV_MODE
	PARAM_NOISE_PERIOD
	PARAM_ENV_PERIOD
	PARAM_ENV_SHAPE
)

type ChipState struct {
	mu             sync.Mutex
	channels       [NUM_CHANNELS]Channel
	noisePeriod    int
	envelopePeriod int
	envelopeShape  int
}

// ChipSnapshot is an independent copy of chip state, safe to read from any
// goroutine. It shares no mutable storage with the ChipState it came from.
type ChipSnapshot struct {
	Channels       [NUM_CHANNELS]Channel
	NoisePeriod    int
	EnvelopePeriod int
	EnvelopeShape  int
}

// NewChipState returns the editor defaults: all three channels at 440 Hz
// volume 12 tone-on, noise period 1 so the noise generator is ready to use.
func NewChipState() *ChipState {
	s := &ChipState{noisePeriod: 1}
	for i := range s.channels {
		s.channels[i] = NewChannel()
	}
	return s
}

// Snapshot takes the short-held lock, copies every field and returns the
// copy. This is the only synchronization point between the control and audio
// goroutines.
func (s *ChipState) Snapshot() ChipSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ChipSnapshot{
		Channels:       s.channels,
		NoisePeriod:    s.noisePeriod,
		EnvelopePeriod: s.envelopePeriod,
		EnvelopeShape:  s.envelopeShape,
	}
}

// Channel returns a copy of one channel's parameters.
func (s *ChipState) Channel(ch int) Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channels[ch]
}

func (s *ChipState) SetFrequency(ch int, hz float64) {
	s.mu.Lock()
	s.channels[ch].SetFrequency(hz)
	s.mu.Unlock()
}

// SetPeriod sets a channel's pitch from a raw 12-bit period value, the form
// sequencer track events carry.
func (s *ChipState) SetPeriod(ch int, period int) {
	s.SetFrequency(ch, PeriodToFrequency(clampInt(period, MIN_PERIOD, MAX_PERIOD)))
}

func (s *ChipState) SetVolume(ch int, v int) {
	s.mu.Lock()
	s.channels[ch].SetVolume(v)
	s.mu.Unlock()
}

func (s *ChipState) SetToneEnabled(ch int, on bool) {
	s.mu.Lock()
	s.channels[ch].SetToneEnabled(on)
	s.mu.Unlock()
}

func (s *ChipState) SetNoiseEnabled(ch int, on bool) {
	s.mu.Lock()
	s.channels[ch].SetNoiseEnabled(on)
	s.mu.Unlock()
}

func (s *ChipState) SetEnvelopeMode(ch int, on bool) {
	s.mu.Lock()
	s.channels[ch].SetEnvelopeMode(on)
	s.mu.Unlock()
}

func (s *ChipState) SetNoisePeriod(v int) {
	s.mu.Lock()
	s.noisePeriod = clampInt(v, 0, MAX_NOISE)
	s.mu.Unlock()
}

func (s *ChipState) SetEnvelopePeriod(v int) {
	s.mu.Lock()
	s.envelopePeriod = clampInt(v, 0, MAX_ENV_PERIOD)
	s.mu.Unlock()
}

func (s *ChipState) SetEnvelopeShape(v int) {
	s.mu.Lock()
	s.envelopeShape = clampInt(v, 0, MAX_ENV_SHAPE)
	s.mu.Unlock()
}

// MuteChannel silences one channel without touching its pitch, so a later
// event can re-voice it where it left off.
func (s *ChipState) MuteChannel(ch int) {
	s.mu.Lock()
	s.channels[ch].SetVolume(0)
	s.mu.Unlock()
}

// MuteAll silences every channel.
func (s *ChipState) MuteAll() {
	s.mu.Lock()
	for i := range s.channels {
		s.channels[i].SetVolume(0)
	}
	s.mu.Unlock()
}

// Apply dispatches a single parameter change, the command form the UI layer
// forwards. Boolean parameters treat any non-zero value as true. Unknown
// parameters and out-of-range channel indices are no-ops returning false;
// out-of-range values are clamped, never rejected.
func (s *ChipState) Apply(param int, ch int, value float64) bool {
	switch param {
	case PARAM_FREQ, PARAM_VOLUME, PARAM_TONE_ENABLE, PARAM_NOISE_ENABLE, PARAM_ENV_MODE:
		if ch < 0 || ch >= NUM_CHANNELS {
			return false
		}
	}

	switch param {
	case PARAM_FREQ:
		s.SetFrequency(ch, value)
	case PARAM_VOLUME:
		s.SetVolume(ch, int(value))
	case PARAM_TONE_ENABLE:
		s.SetToneEnabled(ch, value != 0)
	case PARAM_NOISE_ENABLE:
		s.SetNoiseEnabled(ch, value != 0)
	case PARAM_ENV_MODE:
		s.SetEnvelopeMode(ch, value != 0)
	case PARAM_NOISE_PERIOD:
		s.SetNoisePeriod(int(value))
	case PARAM_ENV_PERIOD:
		s.SetEnvelopePeriod(int(value))
	case PARAM_ENV_SHAPE:
		s.SetEnvelopeShape(int(value))
	default:
		return false
	}
	return true
}

// ToRegisters flattens the live state to the 16-register map.
func (s *ChipState) ToRegisters() RegisterFile {
	return s.Snapshot().ToRegisters()
}

// ToRegisters assembles the full register file: per-channel periods and
// volume bytes, R7 built from all-disabled with a bit cleared per enabled
// gate, then the shared noise and envelope registers.
func (snap ChipSnapshot) ToRegisters() RegisterFile {
	var rf RegisterFile

	mixer := uint8(MIXER_ALL_OFF)
	for ch := range snap.Channels {
		snap.Channels[ch].ToRegisters(ch, &rf)
		if snap.Channels[ch].ToneEnabled() {
			mixer &^= mixerToneBit(ch)
		}
		if snap.Channels[ch].NoiseEnabled() {
			mixer &^= mixerNoiseBit(ch)
		}
	}
	rf[REG_MIXER] = mixer

	rf[REG_NOISE] = uint8(snap.NoisePeriod & 0x1F)
	rf[REG_ENV_FINE] = uint8(snap.EnvelopePeriod & 0xFF)
	rf[REG_ENV_COARSE] = uint8(snap.EnvelopePeriod >> 8 & 0xFF)
	rf[REG_ENV_SHAPE] = uint8(snap.EnvelopeShape & 0x0F)
	return rf
}

// ChipStateFromRegisters reconstructs chip state from a register file:
// channels from their period/volume registers, then tone/noise enables
// overridden from the inverted R7 bits, then the shared fields.
func ChipStateFromRegisters(rf RegisterFile) *ChipState {
	s := NewChipState()
	for ch := 0; ch < NUM_CHANNELS; ch++ {
		c := ChannelFromRegisters(rf[ch*2], rf[ch*2+1], rf.VolumeByte(ch))
		c.SetToneEnabled(rf.ToneEnabled(ch))
		c.SetNoiseEnabled(rf.NoiseEnabled(ch))
		s.channels[ch] = c
	}
	s.noisePeriod = rf.NoisePeriod()
	s.envelopePeriod = rf.EnvelopePeriod()
	s.envelopeShape = rf.EnvelopeShape()
	return s
}
