// psg_constants.go - AY-3-8914 register layout, clocks and value ranges.

package main

const (
	// NTSC color subcarrier / 2, the clock fed to the Intellivision PSG.
	// PAL machines feed 4.0 MHz instead.
	PSG_CLOCK_NTSC = 3579545
	PSG_CLOCK_PAL  = 4000000

	PSG_REG_COUNT = 16

	MIN_PERIOD = 1
	MAX_PERIOD = 4095 // 12-bit period register

	MIN_FREQ = 27.0
	MAX_FREQ = 20000.0

	MAX_VOLUME     = 15
	MAX_NOISE      = 31    // R6 is 5 bits
	MAX_ENV_PERIOD = 65535 // R13/R14 pair
	MAX_ENV_SHAPE  = 15

	SAMPLE_RATE = 44100
	FRAME_RATE  = 60 // sequencer frame grid

	NUM_CHANNELS = 3
)

// Register indices. Fine/coarse period pairs sit at ch*2 and ch*2+1, volume
// registers follow the R10/R11/R12 convention. R8/R9 stay as plain slots so
// the wire map is always 16 entries.
const (
	REG_A_FINE     = 0
	REG_A_COARSE   = 1
	REG_B_FINE     = 2
	REG_B_COARSE   = 3
	REG_C_FINE     = 4
	REG_C_COARSE   = 5
	REG_NOISE      = 6
	REG_MIXER      = 7
	REG_A_VOL      = 10
	REG_B_VOL      = 11
	REG_C_VOL      = 12
	REG_ENV_FINE   = 13
	REG_ENV_COARSE = 14
	REG_ENV_SHAPE  = 15
)

// R7 mixer control uses inverted logic: a clear bit enables the signal.
const (
	MIXER_TONE_A  = 0x01
	MIXER_TONE_B  = 0x02
	MIXER_TONE_C  = 0x04
	MIXER_NOISE_A = 0x08
	MIXER_NOISE_B = 0x10
	MIXER_NOISE_C = 0x20

	MIXER_ALL_OFF = 0xFF
)

// Bit 4 of a volume register selects the envelope generator instead of the
// fixed 4-bit level. Stored and round-tripped, not sonified.
const VOLUME_ENV_BIT = 0x10

func mixerToneBit(ch int) uint8 {
	return uint8(1) << uint(ch)
}

func mixerNoiseBit(ch int) uint8 {
	return uint8(1) << uint(ch+3)
}
