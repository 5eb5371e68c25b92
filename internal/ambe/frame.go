// Package ambe decodes 72-bit AMBE 3600x2450 voice frames into their
// quantiser fields.
//
// On the channel the four cosets are interleaved bit by bit. After
// deinterleaving, C0 (Golay(24,12)) is followed by C1 (Golay(23,12),
// scrambled with a PRNG seeded from the C0 data) and the 25 unprotected bits
// of C2 and C3. The 49 information bits are the C0 and C1 data followed by
// C2 and C3.
package ambe

import (
	"fmt"

	"github.com/blues/mbe/internal/bits"
	"github.com/blues/mbe/internal/ecc"
	"github.com/blues/mbe/internal/voice"
)

const (
	FrameBits  = 72
	FrameBytes = 9

	// InfoBits is the number of information bits in a frame.
	InfoBits = 49

	c0Offset = 0
	c1Offset = 24
	c1Length = 23
	cOffset  = 47

	// toneConflictErrors is the corrected-bit count at which a frame whose
	// index says TONE but whose tone pattern does not check is discarded.
	toneConflictErrors = 2
)

// Channel bit positions of C0, C1 and C2/C3, first transmitted codeword bit
// first.
var (
	aTable = [24]int{
		0, 4, 8, 12, 16, 20, 24, 28, 32, 36, 40, 44,
		48, 52, 56, 60, 64, 68, 1, 5, 9, 13, 17, 21,
	}
	bTable = [23]int{
		25, 29, 33, 37, 41, 45, 49, 53, 57, 61, 65, 69,
		2, 6, 10, 14, 18, 22, 26, 30, 34, 38, 42,
	}
	cTable = [25]int{
		46, 50, 54, 58, 62, 66, 70, 3, 7, 11, 15, 19, 23,
		27, 31, 35, 39, 43, 47, 51, 55, 59, 63, 67, 71,
	}
)

// interleave[p] is the channel position of deinterleaved bit p.
var interleave = func() [FrameBits]int {
	var t [FrameBits]int
	n := copy(t[:], aTable[:])
	n += copy(t[n:], bTable[:])
	copy(t[n:], cTable[:])
	return t
}()

// info maps information bit numbers to deinterleaved frame positions.
func info(d ...int) []int {
	p := make([]int, len(d))
	for i, v := range d {
		switch {
		case v < ecc.GolayData:
			p[i] = c0Offset + v
		case v < 2*ecc.GolayData:
			p[i] = c1Offset + v - ecc.GolayData
		default:
			p[i] = cOffset + v - 2*ecc.GolayData
		}
	}
	return p
}

// Field bit positions within the deinterleaved frame, most significant bit
// first.
var (
	B0 = info(0, 1, 2, 3, 37, 38, 39)
	B1 = info(4, 5, 6, 7, 35)
	B2 = info(8, 9, 10, 11, 36)
	B3 = info(12, 13, 14, 15, 16, 17, 18, 19, 40)
	B4 = info(20, 21, 22, 23, 41, 42, 43)
	B5 = info(24, 25, 26, 27, 44)
	B6 = info(28, 29, 30, 45)
	B7 = info(31, 32, 33, 46)
	B8 = info(34, 47, 48)

	fields = [9][]int{B0, B1, B2, B3, B4, B5, B6, B7, B8}

	ToneCheckA = info(0, 1, 2, 3, 4, 5)
	ToneCheckB = info(37, 38)
	ToneAmp    = info(6, 7, 8, 9, 10, 11, 36)
	ToneID1    = info(12, 13, 14, 15, 16, 17, 18, 19)
	ToneID2    = info(20, 21, 22, 23, 41, 42, 43, 44)
)

const (
	toneCheckAValue = 0x3F
	toneCheckBValue = 0x3
)

// Frame holds the decoded fields of one AMBE frame.
type Frame struct {
	Fundamental voice.Fundamental
	Type        voice.FrameType
	B           [9]int // b0..b8
	Errors      [2]int // Bits corrected in C0 and C1.

	ToneID        int
	ToneAmplitude int
	ToneConflict  bool // Index said TONE but the tone pattern failed.
}

// TotalErrors returns the number of corrected bits over both protected cosets.
func (f *Frame) TotalErrors() int {
	return f.Errors[0] + f.Errors[1]
}

// scramble XORs the C1 bits with the sequence seeded from the C0 data.
func scramble(f *bits.Frame, seed uint32) {
	pr := 16 * seed
	for i := 0; i < c1Length; i++ {
		pr = (173*pr + 13849) % 65536
		if pr >= 32768 {
			f.Flip(c1Offset + i)
		}
	}
}

// Decode error-corrects and unpacks a 9-byte frame. The input is not modified.
func Decode(data []byte) (*Frame, error) {
	if len(data) != FrameBytes {
		return nil, fmt.Errorf("ambe: frame length %d, want %d", len(data), FrameBytes)
	}
	raw := bits.FromBytes(data)
	f := bits.NewFrame(FrameBits)
	for p, r := range interleave {
		f.SetTo(p, raw.Get(r))
	}
	out := &Frame{}

	out.Errors[0] = ecc.Golay24(f, c0Offset)
	scramble(f, f.Field(c0Offset, ecc.GolayData))
	out.Errors[1] = ecc.Golay23(f, c1Offset)

	for i, idx := range fields {
		out.B[i] = f.Int(idx)
	}
	fund, err := LookupFundamental(out.B[0])
	if err != nil {
		return nil, err
	}
	out.Fundamental = fund
	out.Type = fund.Type

	if out.Type == voice.Tone {
		out.ToneID = f.Int(ToneID1)
		out.ToneAmplitude = f.Int(ToneAmp)
		ok := f.Int(ToneCheckA) == toneCheckAValue &&
			f.Int(ToneCheckB) == toneCheckBValue &&
			out.ToneID == f.Int(ToneID2)
		if !ok {
			out.ToneConflict = true
			if out.TotalErrors() >= toneConflictErrors {
				out.Type = voice.Erasure
			}
		}
	}
	return out, nil
}

// Encode packs b0..b8 into a frame with valid C0/C1 codewords. It is used to
// build test vectors and frame files.
func Encode(b [9]int) []byte {
	f := bits.NewFrame(FrameBits)
	for i, idx := range fields {
		f.SetInt(idx, b[i])
	}
	return protect(f)
}

// EncodeTone packs a tone frame for tone id with the given amplitude.
func EncodeTone(id, amplitude int) []byte {
	f := bits.NewFrame(FrameBits)
	f.SetInt(ToneCheckA, toneCheckAValue)
	f.SetInt(ToneCheckB, toneCheckBValue)
	f.SetInt(ToneAmp, amplitude)
	f.SetInt(ToneID1, id)
	f.SetInt(ToneID2, id)
	return protect(f)
}

// protect replaces the C0 and C1 parity with valid codewords for their data
// bits, applies the C1 scrambler and interleaves the result.
func protect(f *bits.Frame) []byte {
	d0 := f.Field(c0Offset, ecc.GolayData)
	d1 := f.Field(c1Offset, ecc.GolayData)
	f.SetField(c0Offset, ecc.Golay24Length, ecc.Golay24Encode(d0))
	f.SetField(c1Offset, ecc.Golay23Length, ecc.Golay23Encode(d1))
	scramble(f, d0)

	raw := bits.NewFrame(FrameBits)
	for p, r := range interleave {
		raw.SetTo(r, f.Get(p))
	}
	return raw.Bytes()
}
