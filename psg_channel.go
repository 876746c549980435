// psg_channel.go - Domain model for one AY-3-8914 tone channel.
//
// A Channel carries the user-facing parameters (frequency in Hz, 4-bit
// volume, mixer enables) rather than raw register bytes. Every numeric
// mutation clamps, so a Channel is never out of range regardless of what the
// UI or a loaded file feeds it.

package main

type Channel struct {
	frequency    float64
	volume       int
	toneEnabled  bool
	noiseEnabled bool
	envelopeMode bool
}

// NewChannel returns a channel with the editor defaults: concert A, a
// comfortable volume, tone on, noise off.
func NewChannel() Channel {
	return Channel{
		frequency:   440.0,
		volume:      12,
		toneEnabled: true,
	}
}

func (c Channel) Frequency() float64 { return c.frequency }
func (c Channel) Volume() int        { return c.volume }
func (c Channel) ToneEnabled() bool  { return c.toneEnabled }
func (c Channel) NoiseEnabled() bool { return c.noiseEnabled }
func (c Channel) EnvelopeMode() bool { return c.envelopeMode }

func (c *Channel) SetFrequency(hz float64) {
	c.frequency = clampFloat(hz, MIN_FREQ, MAX_FREQ)
}

func (c *Channel) SetVolume(v int) {
	c.volume = clampInt(v, 0, MAX_VOLUME)
}

func (c *Channel) SetToneEnabled(on bool)  { c.toneEnabled = on }
func (c *Channel) SetNoiseEnabled(on bool) { c.noiseEnabled = on }
func (c *Channel) SetEnvelopeMode(on bool) { c.envelopeMode = on }

// ToRegisters encodes the channel into rf: the 12-bit period split across the
// fine/coarse pair for channel index ch (0=A, 1=B, 2=C) and the volume byte
// with the envelope-mode flag in bit 4. The mixer bits live in shared R7 and
// are assembled by ChipState, not here.
func (c Channel) ToRegisters(ch int, rf *RegisterFile) {
	rf.SetPeriod(ch, FrequencyToPeriod(c.frequency))
	vb := uint8(c.volume & 0x0F)
	if c.envelopeMode {
		vb |= VOLUME_ENV_BIT
	}
	rf.SetVolumeByte(ch, vb)
}

// ChannelFromRegisters decodes a fine/coarse period pair and a volume byte.
// Tone/noise enables come from R7 and must be set by the caller afterward.
func ChannelFromRegisters(fine, coarse, volumeByte uint8) Channel {
	c := NewChannel()
	period := int(coarse&0x0F)<<8 | int(fine)
	c.SetFrequency(PeriodToFrequency(period))
	c.SetVolume(int(volumeByte & 0x0F))
	c.SetEnvelopeMode(volumeByte&VOLUME_ENV_BIT != 0)
	return c
}
