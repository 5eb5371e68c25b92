package mbe

import "math"

const earThreshold = 30000.0

// earProtection finds the maximum sample in the buffer and, if above the
// set point, attenuates the whole frame. Being x dB over reduces the level
// by 2x dB, so large excursions from bit errors are cut harder.
func earProtection(inOut []float64) {
	maxSample := 0.0
	for _, v := range inOut {
		if a := math.Abs(v); a > maxSample {
			maxSample = a
		}
	}
	over := maxSample / earThreshold
	if over > 1.0 {
		gain := 1.0 / (over * over)
		for i := range inOut {
			inOut[i] *= gain
		}
	}
}

// scaleOutput converts 16-bit unit samples to [-1, 1] with the output gain.
func scaleOutput(in []float64, gain float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		s := v * gain / 32768.0
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = float32(s)
	}
	return out
}
