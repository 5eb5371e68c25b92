// Package imbe decodes 144-bit IMBE 7200x4400 voice frames into their
// quantiser fields.
//
// After deinterleaving, a frame carries eight code vectors: u0..u3 are
// Golay(23,12), u4..u6 Hamming(15,11) and u7 is seven unprotected bits.
// u1..u6 are scrambled with a PRNG seeded from the u0 data.
package imbe

import (
	"fmt"

	"github.com/blues/mbe/internal/bits"
	"github.com/blues/mbe/internal/ecc"
	"github.com/blues/mbe/internal/voice"
)

const (
	FrameBits  = 144
	FrameBytes = 18

	Vectors = 8

	scrambleOffset = 23
	scrambleLength = 114

	// b0LowBit is the information bit holding b0 bit 1.
	b0LowBit = InfoBits - 3
)

type vector struct {
	offset, length, data int
	golay                bool
}

var vectors = [Vectors]vector{
	{0, 23, 12, true},
	{23, 23, 12, true},
	{46, 23, 12, true},
	{69, 23, 12, true},
	{92, 15, 11, false},
	{107, 15, 11, false},
	{122, 15, 11, false},
	{137, 7, 7, false},
}

// infoPos[d] is the deinterleaved bit holding information bit d.
var infoPos = func() [InfoBits]int {
	var t [InfoBits]int
	d := 0
	for _, v := range vectors {
		for i := 0; i < v.data; i++ {
			t[d] = v.offset + i
			d++
		}
	}
	return t
}()

// Frame holds the decoded fields of one IMBE frame.
type Frame struct {
	Fundamental voice.Fundamental
	Type        voice.FrameType
	Layout      *Layout // Nil for an invalid frame.
	B           []int   // b0..b(L+1).
	Errors      [Vectors - 1]int
}

// TotalErrors returns the number of corrected bits over all protected vectors.
func (f *Frame) TotalErrors() int {
	n := 0
	for _, e := range f.Errors {
		n += e
	}
	return n
}

func scramble(f *bits.Frame, seed uint32) {
	pr := 16 * seed
	for i := 0; i < scrambleLength; i++ {
		pr = (173*pr + 13849) % 65536
		if pr >= 32768 {
			f.Flip(scrambleOffset + i)
		}
	}
}

// Decode deinterleaves, error-corrects and unpacks an 18-byte frame. A b0
// code above the table yields a frame of type Invalid with only B[0] set.
func Decode(data []byte) (*Frame, error) {
	if len(data) != FrameBytes {
		return nil, fmt.Errorf("imbe: frame length %d, want %d", len(data), FrameBytes)
	}
	raw := bits.FromBytes(data)
	f := bits.NewFrame(FrameBits)
	for p, r := range interleave {
		f.SetTo(p, raw.Get(r))
	}

	out := &Frame{}
	out.Errors[0] = ecc.Golay23(f, vectors[0].offset)
	scramble(f, f.Field(0, ecc.GolayData))
	for i := 1; i < Vectors-1; i++ {
		if vectors[i].golay {
			out.Errors[i] = ecc.Golay23(f, vectors[i].offset)
		} else {
			out.Errors[i] = ecc.Hamming15(f, vectors[i].offset)
		}
	}

	// b0 is split between the head of u0 and u7 bits 2 and 1.
	b0 := f.Int(infoPos[:6])<<2 | f.Int(infoPos[b0LowBit:b0LowBit+2])
	out.Fundamental = LookupFundamental(b0)
	out.Type = out.Fundamental.Type
	if out.Type == voice.Invalid {
		out.B = []int{b0}
		return out, nil
	}

	lay := LayoutFor(out.Fundamental.L)
	out.Layout = lay
	out.B = make([]int, lay.L+2)
	for d, ref := range lay.Order {
		if f.Get(infoPos[d]) {
			out.B[ref.Field] |= 1 << uint(ref.Bit)
		}
	}
	return out, nil
}

// Encode packs b0..b(L+1) into a protected, scrambled and interleaved frame.
// len(b) must be L+2 for the L implied by b[0]. An invalid b0 is packed
// with the remaining information bits cleared.
func Encode(b []int) []byte {
	f := bits.NewFrame(FrameBits)
	fund := LookupFundamental(b[0])
	if fund.Type == voice.Invalid {
		bb := b[0]
		for i := 0; i < 6; i++ {
			f.SetTo(infoPos[i], bb&(1<<uint(7-i)) != 0)
		}
		f.SetTo(infoPos[b0LowBit], bb&2 != 0)
		f.SetTo(infoPos[b0LowBit+1], bb&1 != 0)
	} else {
		lay := LayoutFor(fund.L)
		if len(b) != lay.L+2 {
			panic(fmt.Sprintf("imbe: %d fields for L=%d", len(b), lay.L))
		}
		for d, ref := range lay.Order {
			f.SetTo(infoPos[d], b[ref.Field]&(1<<uint(ref.Bit)) != 0)
		}
	}

	for _, v := range vectors {
		d := f.Field(v.offset, v.data)
		switch {
		case v.golay:
			f.SetField(v.offset, v.length, ecc.Golay23Encode(d))
		case v.length == ecc.Hamming15Length:
			f.SetField(v.offset, v.length, ecc.Hamming15Encode(d))
		}
	}
	scramble(f, f.Field(0, ecc.GolayData))

	raw := bits.NewFrame(FrameBits)
	for p, r := range interleave {
		raw.SetTo(r, f.Get(p))
	}
	return raw.Bytes()
}
