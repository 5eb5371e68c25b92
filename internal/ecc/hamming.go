package ecc

import "github.com/blues/mbe/internal/bits"

const (
	Hamming15Length = 15
	Hamming15Data   = 11
)

// hammingColumns holds the parity-check matrix column for each codeword bit,
// most significant (first transmitted) bit first: the eleven data columns are
// the 4-bit values of weight two or more, the parity columns are the unit
// vectors.
var hammingColumns = [Hamming15Length]uint8{
	0xF, 0xE, 0xD, 0xC, 0xB, 0xA, 0x9, 0x7, 0x6, 0x5, 0x3,
	0x8, 0x4, 0x2, 0x1,
}

// hammingPositions inverts hammingColumns: syndrome -> bit position.
var hammingPositions = func() [16]int {
	var p [16]int
	p[0] = -1
	for i, c := range hammingColumns {
		p[c] = i
	}
	return p
}()

func hammingSyndrome(cw uint32) uint8 {
	var s uint8
	for i := 0; i < Hamming15Length; i++ {
		if cw&(1<<uint(Hamming15Length-1-i)) != 0 {
			s ^= hammingColumns[i]
		}
	}
	return s
}

// Hamming15Encode returns the 15-bit codeword for 11 data bits: data in bits
// 14..4, parity in bits 3..0.
func Hamming15Encode(data uint32) uint32 {
	cw := (data & 0x7FF) << 4
	return cw | uint32(hammingSyndrome(cw))
}

// Hamming15Correct corrects at most one bit error in a 15-bit codeword value.
func Hamming15Correct(cw uint32) (uint32, int) {
	cw &= 0x7FFF
	s := hammingSyndrome(cw)
	if s == 0 {
		return cw, 0
	}
	pos := hammingPositions[s]
	return cw ^ 1<<uint(Hamming15Length-1-pos), 1
}

// Hamming15 corrects the 15-bit codeword at offset in f.
func Hamming15(f *bits.Frame, offset int) int {
	cw, n := Hamming15Correct(f.Field(offset, Hamming15Length))
	if n > 0 {
		f.SetField(offset, Hamming15Length, cw)
	}
	return n
}
