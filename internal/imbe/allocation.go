package imbe

import (
	"fmt"
	"math"
)

const (
	// InfoBits is the number of information bits in a frame.
	InfoBits = 88

	b0Bits = 8
	b2Bits = 6

	// spectralBits is shared by b1 and b3..b(L+1).
	spectralBits = InfoBits - b0Bits - b2Bits
)

// Coefficient identifies what a spectral field b3..b(L+1) quantises.
type Coefficient struct {
	Gain  int // 2..6 for G2..G6, 0 otherwise.
	Block int // 1..6 for a higher order coefficient, 0 otherwise.
	K     int // Position within the block, 2..J.
}

// Sigma returns the coefficient's standard deviation.
func (c Coefficient) Sigma() float64 {
	if c.Gain != 0 {
		return gainSigma[c.Gain-2]
	}
	return sigmaHOC(c.K)
}

// BitRef names bit Bit (0 = LSB) of field b_Field.
type BitRef struct {
	Field int
	Bit   int
}

// Layout is the per-L description of the information bits.
type Layout struct {
	L      int
	K      int
	Coeffs []Coefficient // Indexed by field m; entries 0..2 are unused.
	Bits   []int         // Bits[m] is the width of b_m.
	Order  [InfoBits]BitRef
}

var layouts = func() [57]*Layout {
	var t [57]*Layout
	for l := 9; l <= 56; l++ {
		t[l] = buildLayout(l)
	}
	return t
}()

// LayoutFor returns the bit layout for l harmonics.
func LayoutFor(l int) *Layout {
	if l < 9 || l > 56 || layouts[l] == nil {
		panic(fmt.Sprintf("imbe: no layout for L=%d", l))
	}
	return layouts[l]
}

func buildLayout(l int) *Layout {
	k := Bands(l)
	n := l + 2
	lay := &Layout{L: l, K: k, Coeffs: make([]Coefficient, n), Bits: make([]int, n)}
	lay.Bits[0] = b0Bits
	lay.Bits[1] = k
	lay.Bits[2] = b2Bits

	m := 3
	for g := 2; g <= Blocks; g++ {
		lay.Coeffs[m] = Coefficient{Gain: g}
		m++
	}
	for i, j := range BlockLengths(l) {
		for kk := 2; kk <= j; kk++ {
			lay.Coeffs[m] = Coefficient{Block: i + 1, K: kk}
			m++
		}
	}

	// Reverse water-filling: each bit goes to the coefficient with the
	// largest remaining log2 deviation. Ties go to the lower field.
	for left := spectralBits - k; left > 0; left-- {
		best, bestScore := -1, math.Inf(-1)
		for m := 3; m < n; m++ {
			if lay.Bits[m] >= MaxCoefficientBits {
				continue
			}
			s := math.Log2(lay.Coeffs[m].Sigma()) - float64(lay.Bits[m])
			if s > bestScore {
				best, bestScore = m, s
			}
		}
		lay.Bits[best]++
	}

	// Order: b0 high bits, b2, b1, then b3..b(L+1) from the top bit plane
	// down. The b0 low bits sit in u7 bits 2 and 1, ahead of the last
	// spectral bit.
	pos := 0
	add := func(field, bit int) {
		lay.Order[pos] = BitRef{Field: field, Bit: bit}
		pos++
	}
	for b := b0Bits - 1; b >= 2; b-- {
		add(0, b)
	}
	for b := b2Bits - 1; b >= 0; b-- {
		add(2, b)
	}
	for b := k - 1; b >= 0; b-- {
		add(1, b)
	}
	for plane := MaxCoefficientBits - 1; plane >= 0; plane-- {
		for m := 3; m < n; m++ {
			if lay.Bits[m] > plane {
				add(m, plane)
			}
		}
	}
	last := lay.Order[pos-1]
	pos--
	add(0, 1)
	add(0, 0)
	add(last.Field, last.Bit)
	return lay
}
