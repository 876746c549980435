// psg_freq.go - Period/frequency/amplitude conversions for the AY-3-8914.
//
// The chip divides its input clock by 16 and then by the 12-bit period
// register; combined with the Intellivision's half-rate feed that gives an
// effective divisor of 32 against PSG_CLOCK_NTSC.

package main

import "math"

// PeriodToFrequency converts a 12-bit period register value to Hz.
// A period of zero has no defined pitch and maps to 0 Hz.
func PeriodToFrequency(period int) float64 {
	if period <= 0 {
		return 0
	}
	return PSG_CLOCK_NTSC / (32.0 * float64(period))
}

// FrequencyToPeriod converts Hz to the nearest representable period value,
// clamped to [MIN_PERIOD, MAX_PERIOD]. Non-positive frequencies map to the
// maximum period, the lowest pitch the register can express.
func FrequencyToPeriod(freq float64) int {
	if freq <= 0 {
		return MAX_PERIOD
	}
	period := int(math.Round(PSG_CLOCK_NTSC / (32.0 * freq)))
	return clampInt(period, MIN_PERIOD, MAX_PERIOD)
}

// VolumeToAmplitude maps a 4-bit volume level to linear amplitude [0.0, 1.0].
func VolumeToAmplitude(volume int) float64 {
	return float64(clampInt(volume, 0, MAX_VOLUME)) / float64(MAX_VOLUME)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
