// psg_registers_test.go - Tests for the register file and its wire boundary.

package main

import "testing"

func TestRegisterFilePeriodPacking(t *testing.T) {
	var rf RegisterFile
	rf.SetPeriod(1, 0x0ABC)

	if rf[REG_B_FINE] != 0xBC {
		t.Fatalf("fine byte = 0x%02X, want 0xBC", rf[REG_B_FINE])
	}
	if rf[REG_B_COARSE] != 0x0A {
		t.Fatalf("coarse byte = 0x%02X, want 0x0A", rf[REG_B_COARSE])
	}
	if got := rf.Period(1); got != 0x0ABC {
		t.Fatalf("Period(1) = 0x%03X, want 0x0ABC", got)
	}
}

func TestRegisterFilePeriodCoarseMasked(t *testing.T) {
	var rf RegisterFile
	// Only the low 4 bits of the coarse byte count toward the period.
	rf[REG_A_COARSE] = 0xFF
	rf[REG_A_FINE] = 0x00
	if got := rf.Period(0); got != 0x0F00 {
		t.Fatalf("Period(0) = 0x%03X, want 0x0F00", got)
	}
}

func TestToWireHasAllSixteenKeys(t *testing.T) {
	var rf RegisterFile
	wire := rf.ToWire()
	if len(wire) != PSG_REG_COUNT {
		t.Fatalf("wire map has %d keys, want %d", len(wire), PSG_REG_COUNT)
	}
	for _, name := range registerNames {
		if _, ok := wire[name]; !ok {
			t.Fatalf("wire map missing %s", name)
		}
	}
}

func TestFromWireLenientIgnoresUnknownKey(t *testing.T) {
	rf, err := RegisterFileFromWire(map[string]int{"R0": 10, "R99": 1}, false)
	if err != nil {
		t.Fatalf("lenient load failed: %v", err)
	}
	if rf[REG_A_FINE] != 10 {
		t.Fatalf("R0 = %d, want 10", rf[REG_A_FINE])
	}
}

func TestFromWireStrictRejectsUnknownKey(t *testing.T) {
	if _, err := RegisterFileFromWire(map[string]int{"R99": 1}, true); err == nil {
		t.Fatal("expected strict load to reject unknown key")
	}
}

func TestFromWireDefaults(t *testing.T) {
	rf, err := RegisterFileFromWire(map[string]int{}, false)
	if err != nil {
		t.Fatalf("empty load failed: %v", err)
	}
	// Absent mixer byte must not un-mute anything.
	if rf[REG_MIXER] != MIXER_ALL_OFF {
		t.Fatalf("default mixer = 0x%02X, want 0x%02X", rf[REG_MIXER], MIXER_ALL_OFF)
	}
	if rf.Period(0) != 0 {
		t.Fatalf("default period = %d, want 0", rf.Period(0))
	}
}

func TestFromWireClampsBytes(t *testing.T) {
	rf, _ := RegisterFileFromWire(map[string]int{"R6": 999, "R0": -7}, false)
	if rf[REG_NOISE] != 255 {
		t.Fatalf("R6 = %d, want clamp to 255", rf[REG_NOISE])
	}
	if rf[REG_A_FINE] != 0 {
		t.Fatalf("R0 = %d, want clamp to 0", rf[REG_A_FINE])
	}
}

func TestMixerDecode(t *testing.T) {
	var rf RegisterFile
	rf[REG_MIXER] = 0xFF &^ (MIXER_TONE_A | MIXER_NOISE_C)

	if !rf.ToneEnabled(0) {
		t.Fatal("expected A tone enabled")
	}
	if rf.ToneEnabled(1) || rf.ToneEnabled(2) {
		t.Fatal("expected B/C tone disabled")
	}
	if !rf.NoiseEnabled(2) {
		t.Fatal("expected C noise enabled")
	}
	if rf.NoiseEnabled(0) || rf.NoiseEnabled(1) {
		t.Fatal("expected A/B noise disabled")
	}
}
