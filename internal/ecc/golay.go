// Package ecc implements the block codes protecting AMBE and IMBE frames.
//
// Every decoder works in place on a bits.Frame at a bit offset, flips the
// corrected bits and returns the number of bits it corrected.
package ecc

import (
	mbits "math/bits"

	"github.com/blues/mbe/internal/bits"
)

const (
	// GolayGenerator is g(x) = x^11 + x^10 + x^6 + x^5 + x^4 + x^2 + 1.
	GolayGenerator = 0xC75

	Golay23Length = 23
	Golay24Length = 24
	GolayData     = 12

	// Uncorrectable is returned by Golay24 when it detects four errors.
	Uncorrectable = 4
)

// golaySyndromes maps each of the 2047 non-zero syndromes to the unique
// error pattern of weight three or less that produces it.
var golaySyndromes = buildGolaySyndromes()

func golayRemainder(v uint32) uint32 {
	for i := Golay23Length - 1; i >= Golay23Length-GolayData; i-- {
		if v&(1<<uint(i)) != 0 {
			v ^= GolayGenerator << uint(i-11)
		}
	}
	return v & 0x7FF
}

func buildGolaySyndromes() []uint32 {
	table := make([]uint32, 1<<11)
	for a := 0; a < Golay23Length; a++ {
		e1 := uint32(1) << uint(a)
		table[golayRemainder(e1)] = e1
		for b := a + 1; b < Golay23Length; b++ {
			e2 := e1 | 1<<uint(b)
			table[golayRemainder(e2)] = e2
			for c := b + 1; c < Golay23Length; c++ {
				e3 := e2 | 1<<uint(c)
				table[golayRemainder(e3)] = e3
			}
		}
	}
	return table
}

// Golay23Encode returns the systematic 23-bit codeword for 12 data bits:
// data in bits 22..11, parity in bits 10..0.
func Golay23Encode(data uint32) uint32 {
	cw := (data & 0xFFF) << 11
	return cw | golayRemainder(cw)
}

// Golay23Correct corrects a 23-bit codeword value and returns the corrected
// codeword and the number of bits flipped. The code is perfect, so every
// received word lies within distance three of exactly one codeword.
func Golay23Correct(cw uint32) (uint32, int) {
	cw &= 0x7FFFFF
	e := golaySyndromes[golayRemainder(cw)]
	return cw ^ e, mbits.OnesCount32(e)
}

// Golay24Encode returns the extended 24-bit codeword: the Golay(23,12)
// codeword in bits 23..1 and an even-parity bit in bit 0.
func Golay24Encode(data uint32) uint32 {
	cw := Golay23Encode(data)
	return cw<<1 | uint32(mbits.OnesCount32(cw)&1)
}

// Golay24Correct corrects an extended codeword value. Four-bit error patterns
// are detected through the parity bit; the word is then returned unchanged
// with an error count of Uncorrectable.
func Golay24Correct(cw uint32) (uint32, int) {
	cw &= 0xFFFFFF
	fixed, n := Golay23Correct(cw >> 1)
	parity := cw & 1
	if uint32(mbits.OnesCount32(fixed)&1) != parity {
		if n == 3 {
			return cw, Uncorrectable
		}
		parity ^= 1
		n++
	}
	return fixed<<1 | parity, n
}

// Golay23 corrects the 23-bit codeword at offset in f.
func Golay23(f *bits.Frame, offset int) int {
	rx := f.Field(offset, Golay23Length)
	cw, n := Golay23Correct(rx)
	if n > 0 {
		f.SetField(offset, Golay23Length, cw)
	}
	return n
}

// Golay24 corrects the 24-bit extended codeword at offset in f.
func Golay24(f *bits.Frame, offset int) int {
	rx := f.Field(offset, Golay24Length)
	cw, n := Golay24Correct(rx)
	if cw != rx {
		f.SetField(offset, Golay24Length, cw)
	}
	return n
}
