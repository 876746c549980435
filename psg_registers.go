// psg_registers.go - Fixed 16-slot register file and the string-keyed wire
// format used by persistence and external consumers.

package main

import "fmt"

// RegisterFile holds the flat R0-R15 byte map, the canonical serialization of
// chip state and the contract with persistence and the synthesizer. Internal
// code indexes it with the REG_* constants; the open string-keyed form only
// exists at the load/save boundary.
type RegisterFile [PSG_REG_COUNT]uint8

var registerNames = [PSG_REG_COUNT]string{
	"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7",
	"R8", "R9", "R10", "R11", "R12", "R13", "R14", "R15",
}

var registerIndex = func() map[string]int {
	m := make(map[string]int, PSG_REG_COUNT)
	for i, name := range registerNames {
		m[name] = i
	}
	return m
}()

// Period returns the 12-bit tone period for channel ch (0=A, 1=B, 2=C).
func (r *RegisterFile) Period(ch int) int {
	fine := int(r[ch*2])
	coarse := int(r[ch*2+1] & 0x0F)
	return coarse<<8 | fine
}

// SetPeriod stores a 12-bit period as a fine/coarse byte pair.
func (r *RegisterFile) SetPeriod(ch int, period int) {
	r[ch*2] = uint8(period & 0xFF)
	r[ch*2+1] = uint8((period >> 8) & 0x0F)
}

// VolumeByte returns the raw volume/envelope-mode byte for channel ch.
func (r *RegisterFile) VolumeByte(ch int) uint8 {
	return r[REG_A_VOL+ch]
}

func (r *RegisterFile) SetVolumeByte(ch int, value uint8) {
	r[REG_A_VOL+ch] = value
}

func (r *RegisterFile) Mixer() uint8 {
	return r[REG_MIXER]
}

func (r *RegisterFile) NoisePeriod() int {
	return int(r[REG_NOISE] & 0x1F)
}

func (r *RegisterFile) EnvelopePeriod() int {
	return int(r[REG_ENV_COARSE])<<8 | int(r[REG_ENV_FINE])
}

func (r *RegisterFile) EnvelopeShape() int {
	return int(r[REG_ENV_SHAPE] & 0x0F)
}

// ToneEnabled and NoiseEnabled decode the inverted R7 logic: bit clear means
// the signal feeds the channel.
func (r *RegisterFile) ToneEnabled(ch int) bool {
	return r[REG_MIXER]&mixerToneBit(ch) == 0
}

func (r *RegisterFile) NoiseEnabled(ch int) bool {
	return r[REG_MIXER]&mixerNoiseBit(ch) == 0
}

// ToWire flattens the register file to the string-keyed map used by project
// files. The result always carries exactly 16 keys.
func (r RegisterFile) ToWire() map[string]int {
	wire := make(map[string]int, PSG_REG_COUNT)
	for i, name := range registerNames {
		wire[name] = int(r[i])
	}
	return wire
}

// RegisterFileFromWire rebuilds a register file from the wire map. Values are
// clamped to a byte. Missing keys default to zero except R7, which defaults
// to all-disabled so an absent mixer byte cannot un-mute channels. In strict
// mode an unknown key is a descriptive error; otherwise it is ignored, so
// malformed project files still load.
func RegisterFileFromWire(wire map[string]int, strict bool) (RegisterFile, error) {
	var rf RegisterFile
	rf[REG_MIXER] = MIXER_ALL_OFF
	for name, value := range wire {
		idx, ok := registerIndex[name]
		if !ok {
			if strict {
				return rf, fmt.Errorf("unknown register key %q", name)
			}
			continue
		}
		rf[idx] = uint8(clampInt(value, 0, 255))
	}
	return rf, nil
}
