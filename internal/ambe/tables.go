package ambe

import "fmt"

// Codebook is a vector quantiser table.
type Codebook struct {
	K     int         // Dimension of each vector.
	Log2M int         // Number of bits in the index.
	M     int         // Number of codebook entries.
	CB    [][]float64 // The codebook data.
}

// Vector returns entry i. An index outside the table means the field
// extraction upstream is broken, so it panics.
func (c *Codebook) Vector(name string, i int) []float64 {
	if i < 0 || i >= c.M {
		panic(fmt.Sprintf("ambe: %s index %d exceeds %d-entry codebook", name, i, c.M))
	}
	return c.CB[i]
}

// latticeCodebook builds a product codebook: the index bits are split MSB
// first across the dimensions and each dimension is a uniform mid-rise
// quantiser with the given step.
func latticeCodebook(dimBits []int, steps []float64) Codebook {
	total := 0
	for _, b := range dimBits {
		total += b
	}
	m := 1 << uint(total)
	cb := make([][]float64, m)
	for idx := 0; idx < m; idx++ {
		v := make([]float64, len(dimBits))
		shift := total
		for d, b := range dimBits {
			if b == 0 {
				continue
			}
			shift -= b
			q := (idx >> uint(shift)) & (1<<uint(b) - 1)
			v[d] = steps[d] * (float64(q) - float64(int(1)<<uint(b)-1)/2)
		}
		cb[idx] = v
	}
	return Codebook{K: len(dimBits), Log2M: total, M: m, CB: cb}
}

// VUV is the 5-bit voicing codebook, one decision per frequency band (0..7).
// Several codes share a row.
var VUV = [32][8]uint8{
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 0, 0},
	{1, 1, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 0, 0, 0},
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 0, 0},
	{1, 1, 1, 1, 1, 0, 0, 0},
	{1, 1, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 0, 0, 0},
	{1, 1, 1, 1, 1, 1, 0, 0},
	{1, 1, 1, 1, 1, 0, 0, 0},
	{1, 1, 1, 1, 0, 0, 0, 0},
	{1, 1, 1, 1, 1, 1, 0, 0},
	{1, 1, 1, 1, 1, 1, 0, 0},
	{1, 1, 1, 1, 0, 0, 0, 0},
	{1, 1, 1, 1, 0, 0, 0, 0},
	{1, 1, 1, 0, 0, 0, 0, 0},
	{1, 1, 1, 0, 0, 0, 0, 0},
	{1, 1, 1, 0, 0, 0, 0, 1},
	{1, 1, 0, 0, 0, 0, 0, 0},
	{1, 1, 0, 0, 0, 0, 1, 1},
	{1, 1, 0, 0, 0, 0, 0, 0},
	{1, 0, 0, 0, 0, 0, 0, 0},
	{1, 0, 0, 0, 0, 0, 0, 0},
	{1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

// GainDelta is the differential gain quantiser indexed by b2.
var GainDelta = [32]float64{
	-2.000000, -0.670000, 0.297941, 0.663728, 1.036829, 1.438136, 1.890077, 2.227970,
	2.478289, 2.667544, 2.793619, 2.893261, 3.020630, 3.138586, 3.237579, 3.322570,
	3.432367, 3.571863, 3.696650, 3.814917, 3.920932, 4.022503, 4.123569, 4.228291,
	4.370569, 4.543700, 4.707443, 4.848382, 5.056378, 5.250152, 5.434289, 5.669572,
}

// Gain returns GainDelta[b2], panicking on an impossible index.
func Gain(b2 int) float64 {
	if b2 < 0 || b2 >= len(GainDelta) {
		panic(fmt.Sprintf("ambe: gain index %d exceeds %d-entry table", b2, len(GainDelta)))
	}
	return GainDelta[b2]
}

// Voicing returns the VUV row for b1, panicking on an impossible index.
func Voicing(b1 int) [8]uint8 {
	if b1 < 0 || b1 >= len(VUV) {
		panic(fmt.Sprintf("ambe: voicing index %d exceeds %d-entry table", b1, len(VUV)))
	}
	return VUV[b1]
}

var (
	// PRBA24 holds G2..G4 of the prediction residual block average vector (b3).
	PRBA24 = latticeCodebook([]int{3, 3, 3}, []float64{0.32, 0.26, 0.22})
	// PRBA58 holds G5..G8 (b4).
	PRBA58 = latticeCodebook([]int{2, 2, 2, 1}, []float64{0.30, 0.26, 0.24, 0.30})

	// HOC[i] holds the higher order DCT coefficients of block i+1 (b5..b8).
	HOC = [4]Codebook{
		latticeCodebook([]int{2, 1, 1, 1}, []float64{0.22, 0.30, 0.26, 0.24}),
		latticeCodebook([]int{1, 1, 1, 1}, []float64{0.30, 0.26, 0.24, 0.22}),
		latticeCodebook([]int{1, 1, 1, 1}, []float64{0.28, 0.24, 0.22, 0.20}),
		latticeCodebook([]int{1, 1, 1, 0}, []float64{0.26, 0.22, 0.20, 0}),
	}
)

// Blocks is the number of spectral blocks per frame.
const Blocks = 4

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

// BlockLengths returns J1..J4 for l harmonics. Longer blocks sit at the high
// end of the spectrum.
func BlockLengths(l int) [Blocks]int {
	if l < 9 || l > 56 {
		panic(fmt.Sprintf("ambe: no block lengths for L=%d", l))
	}
	return blockLengths[l]
}
