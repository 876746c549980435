// psg_channel_test.go - Tests for the channel model and register encoding.

package main

import "testing"

func TestChannelDefaults(t *testing.T) {
	c := NewChannel()
	if c.Frequency() != 440.0 {
		t.Fatalf("default frequency = %f, want 440", c.Frequency())
	}
	if c.Volume() != 12 {
		t.Fatalf("default volume = %d, want 12", c.Volume())
	}
	if !c.ToneEnabled() || c.NoiseEnabled() || c.EnvelopeMode() {
		t.Fatal("expected tone on, noise off, envelope off by default")
	}
}

func TestChannelClampsOnMutation(t *testing.T) {
	c := NewChannel()

	c.SetFrequency(5.0)
	if c.Frequency() != MIN_FREQ {
		t.Fatalf("frequency = %f, want clamp to %f", c.Frequency(), MIN_FREQ)
	}
	c.SetFrequency(1e6)
	if c.Frequency() != MAX_FREQ {
		t.Fatalf("frequency = %f, want clamp to %f", c.Frequency(), MAX_FREQ)
	}

	c.SetVolume(99)
	if c.Volume() != MAX_VOLUME {
		t.Fatalf("volume = %d, want clamp to %d", c.Volume(), MAX_VOLUME)
	}
	c.SetVolume(-1)
	if c.Volume() != 0 {
		t.Fatalf("volume = %d, want clamp to 0", c.Volume())
	}
}

func TestChannelGettersOnReturnedValues(t *testing.T) {
	// Accessors must work on channels handed out by value, the form every
	// caller receives from ChipState.Channel and Snapshot.
	state := NewChipState()
	if got := state.Channel(0).Frequency(); got != 440.0 {
		t.Fatalf("frequency via returned value = %f, want 440", got)
	}
	if got := state.Channel(1).Volume(); got != 12 {
		t.Fatalf("volume via returned value = %d, want 12", got)
	}
	snap := state.Snapshot()
	if !snap.Channels[2].ToneEnabled() || snap.Channels[2].NoiseEnabled() || snap.Channels[2].EnvelopeMode() {
		t.Fatal("enable flags via snapshot value wrong")
	}
}

func TestChannelToRegisters(t *testing.T) {
	c := NewChannel()
	c.SetFrequency(440)
	c.SetVolume(15)

	var rf RegisterFile
	c.ToRegisters(2, &rf) // channel C: R4/R5 period, R12 volume

	if rf.Period(2) != 254 {
		t.Fatalf("period = %d, want 254", rf.Period(2))
	}
	if rf[REG_C_VOL] != 15 {
		t.Fatalf("volume byte = 0x%02X, want 0x0F", rf[REG_C_VOL])
	}
	// Other channels untouched.
	if rf.Period(0) != 0 || rf[REG_A_VOL] != 0 {
		t.Fatal("encoding channel C touched channel A registers")
	}
}

func TestChannelEnvelopeModeBit(t *testing.T) {
	c := NewChannel()
	c.SetVolume(7)
	c.SetEnvelopeMode(true)

	var rf RegisterFile
	c.ToRegisters(0, &rf)
	if rf[REG_A_VOL] != 7|VOLUME_ENV_BIT {
		t.Fatalf("volume byte = 0x%02X, want 0x%02X", rf[REG_A_VOL], 7|VOLUME_ENV_BIT)
	}
}

func TestChannelFromRegisters(t *testing.T) {
	c := ChannelFromRegisters(0xFE, 0x00, 0x1C)

	// Period 254 -> 440.34 Hz.
	if c.Frequency() < 435 || c.Frequency() > 445 {
		t.Fatalf("frequency = %f, want ~440", c.Frequency())
	}
	if c.Volume() != 12 {
		t.Fatalf("volume = %d, want 12", c.Volume())
	}
	if !c.EnvelopeMode() {
		t.Fatal("expected envelope mode decoded from bit 4")
	}
}

func TestChannelFromRegistersZeroPeriod(t *testing.T) {
	// Period 0 decodes to 0 Hz which clamps to the channel's floor.
	c := ChannelFromRegisters(0, 0, 0)
	if c.Frequency() != MIN_FREQ {
		t.Fatalf("frequency = %f, want %f", c.Frequency(), MIN_FREQ)
	}
}
