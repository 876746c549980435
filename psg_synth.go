// psg_synth.go - Phase-continuous PCM synthesis from a chip state snapshot.
//
// Implements the AY-3-8914's actual mixing behavior: a single shared noise
// generator, per-channel tone/noise gating from R7, and a digital AND of the
// two signals when a channel has both enabled. Per-channel phase and the
// noise LFSR persist across render calls so successive buffers join without
// clicks.
//
// A Synthesizer is not safe for concurrent renders; the playback driver must
// call it from exactly one goroutine, in order. Nothing in the render path
// allocates after the scratch buffers have grown to the backend's block size,
// and no input can make it fail: degenerate periods render silence.

package main

import "math"

type Synthesizer struct {
	sampleRate int

	// Tone phase accumulators, one per channel, each in [0, 1).
	phase [NUM_CHANNELS]float64

	// 17-bit noise LFSR and its last emitted level. Seeded once at
	// construction, never reset; restarting playback mid-stream is expected
	// to be audibly discontinuous.
	lfsr    uint32
	lfsrOut float32

	noiseBuf []float32
	toneBuf  []float32
}

func NewSynthesizer(sampleRate int) *Synthesizer {
	return &Synthesizer{
		sampleRate: sampleRate,
		lfsr:       1,
		lfsrOut:    1.0,
	}
}

// Render allocates and fills a buffer of n mono samples in [-1, 1].
func (s *Synthesizer) Render(n int, snap ChipSnapshot) []float32 {
	if n <= 0 {
		return nil
	}
	buf := make([]float32, n)
	s.RenderInto(buf, snap)
	return buf
}

// RenderInto fills buf from the snapshot. This is the real-time entry point;
// backends call it with a pre-allocated buffer.
func (s *Synthesizer) RenderInto(buf []float32, snap ChipSnapshot) {
	n := len(buf)
	if n == 0 {
		return
	}
	for i := range buf {
		buf[i] = 0
	}

	regs := snap.ToRegisters()
	s.grow(n)

	noise := s.noiseBuf[:n]
	s.renderNoise(noise, regs.NoisePeriod())

	for ch := 0; ch < NUM_CHANNELS; ch++ {
		toneOn := regs.ToneEnabled(ch)
		noiseOn := regs.NoiseEnabled(ch)
		if !toneOn && !noiseOn {
			continue
		}

		amp := float32(VolumeToAmplitude(int(regs.VolumeByte(ch) & 0x0F)))
		freq := PeriodToFrequency(regs.Period(ch))

		switch {
		case toneOn && noiseOn:
			if freq <= 0 {
				for i := range buf {
					buf[i] += noise[i] * amp
				}
				continue
			}
			tone := s.toneBuf[:n]
			s.renderTone(tone, ch, freq)
			// Digital AND: high only where both signals are high.
			for i := range buf {
				if tone[i] > 0 && noise[i] > 0 {
					buf[i] += amp
				} else {
					buf[i] -= amp
				}
			}
		case toneOn:
			if freq <= 0 {
				continue // invalid period: silence, phase untouched
			}
			tone := s.toneBuf[:n]
			s.renderTone(tone, ch, freq)
			for i := range buf {
				buf[i] += tone[i] * amp
			}
		default:
			for i := range buf {
				buf[i] += noise[i] * amp
			}
		}
	}

	// Rescale only when the mix actually clips, leaving quiet buffers alone.
	var peak float32
	for _, v := range buf {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	if peak > 1.0 {
		inv := 1.0 / peak
		for i := range buf {
			buf[i] *= inv
		}
	}

	for i, v := range buf {
		if v > 1.0 {
			buf[i] = 1.0
		} else if v < -1.0 {
			buf[i] = -1.0
		}
	}
}

// renderTone writes a square wave at freq Hz into dst, continuing from the
// channel's saved phase and saving the ending phase back.
func (s *Synthesizer) renderTone(dst []float32, ch int, freq float64) {
	inc := freq / float64(s.sampleRate)
	phase := s.phase[ch]
	for i := range dst {
		if math.Mod(phase, 1.0) < 0.5 {
			dst[i] = 1.0
		} else {
			dst[i] = -1.0
		}
		phase += inc
	}
	s.phase[ch] = math.Mod(phase, 1.0)
}

// renderNoise writes the shared noise waveform into dst. The LFSR advances
// once every sampleRate/noiseFreq samples and the output level holds between
// advances. Period 0 is defined as silence.
func (s *Synthesizer) renderNoise(dst []float32, period int) {
	if period == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}

	noiseFreq := PSG_CLOCK_NTSC / (32.0 * float64(period))
	step := int(float64(s.sampleRate) / noiseFreq)
	if step < 1 {
		step = 1
	}

	for i := 0; i < len(dst); i += step {
		bit := (s.lfsr ^ (s.lfsr >> 3)) & 1
		s.lfsr = (s.lfsr >> 1) | (bit << 16)
		if s.lfsr&1 != 0 {
			s.lfsrOut = 1.0
		} else {
			s.lfsrOut = -1.0
		}

		end := i + step
		if end > len(dst) {
			end = len(dst)
		}
		for j := i; j < end; j++ {
			dst[j] = s.lfsrOut
		}
	}
}

func (s *Synthesizer) grow(n int) {
	if len(s.noiseBuf) < n {
		s.noiseBuf = make([]float32, n)
		s.toneBuf = make([]float32, n)
	}
}
