package imbe

import "fmt"

// Blocks is the number of spectral blocks per frame.
const Blocks = 6

const (
	gainMin  = -2.842205
	gainStep = 0.185
)

// GainLevels is the 6-bit quantiser for the first gain coefficient (b2).
var GainLevels = func() [64]float64 {
	var t [64]float64
	for i := range t {
		t[i] = gainMin + float64(i)*gainStep
	}
	return t
}()

// Gain returns GainLevels[b2], panicking on an impossible index.
func Gain(b2 int) float64 {
	if b2 < 0 || b2 >= len(GainLevels) {
		panic(fmt.Sprintf("imbe: gain index %d exceeds %d-entry table", b2, len(GainLevels)))
	}
	return GainLevels[b2]
}

// stepFactor[B] is the uniform quantiser step for B bits, in units of the
// coefficient's standard deviation.
var stepFactor = [11]float64{0, 1.2, 0.85, 0.65, 0.40, 0.28, 0.15, 0.08, 0.04, 0.02, 0.01}

// MaxCoefficientBits caps the allocation to any one coefficient.
const MaxCoefficientBits = len(stepFactor) - 1

// gainSigma holds the standard deviations of G2..G6.
var gainSigma = [5]float64{0.307, 0.241, 0.207, 0.190, 0.179}

// hocSigma indexes the higher order coefficient standard deviation by k.
var hocSigma = [11]float64{0, 0, 0.300, 0.250, 0.210, 0.180, 0.160, 0.140, 0.130, 0.120, 0.110}

func sigmaHOC(k int) float64 {
	if k < len(hocSigma) {
		return hocSigma[k]
	}
	return 0.100
}

// Dequantize maps a B-bit code to its reconstruction level for a
// coefficient with standard deviation sigma.
func Dequantize(code, nbits int, sigma float64) float64 {
	if nbits == 0 {
		return 0
	}
	if nbits > MaxCoefficientBits || code >= 1<<uint(nbits) {
		panic(fmt.Sprintf("imbe: code %d does not fit %d-bit quantiser", code, nbits))
	}
	step := stepFactor[nbits] * sigma
	return step * (float64(code) - float64(int(1)<<uint(nbits-1)) + 0.5)
}

var blockLengths = func() [57][Blocks]int {
	var t [57][Blocks]int
	for l := 9; l <= 56; l++ {
		base, extra := l/Blocks, l%Blocks
		for i := 0; i < Blocks; i++ {
			t[l][i] = base
			if i >= Blocks-extra {
				t[l][i]++
			}
		}
	}
	return t
}()

// BlockLengths returns J1..J6 for l harmonics.
func BlockLengths(l int) [Blocks]int {
	if l < 9 || l > 56 {
		panic(fmt.Sprintf("imbe: no block lengths for L=%d", l))
	}
	return blockLengths[l]
}

// bandIndex[K][l] is the voicing band (1..K) of harmonic l.
var bandIndex = func() [13][57]int {
	var t [13][57]int
	for k := 3; k <= 12; k++ {
		for l := 1; l <= 56; l++ {
			b := (l + 2) / 3
			if b > k {
				b = k
			}
			t[k][l] = b
		}
	}
	return t
}()

// Band returns the voicing band of harmonic l when the frame carries k bands.
func Band(k, l int) int {
	return bandIndex[k][l]
}
