// Package bits provides the fixed-size bit container used by the frame
// decoders.
//
// Bit 0 of a Frame is the most significant bit of the first byte, bit 7 is
// the least significant bit of that byte, bit 8 the most significant bit of
// the second byte, and so on. This matches the order in which AMBE and IMBE
// codewords are transmitted.
package bits

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	WordSize   = 8   // Size of a byte in bits.
	IndexMask  = 0x7 // Mask to pick the bit index within a byte.
	ShiftRight = 3   // Right-shift amount to convert a bit index to a byte index.
)

// Frame is a fixed-length, randomly addressable bit vector.
type Frame struct {
	size int
	data []byte
}

// NewFrame returns an all-zero frame of size bits.
func NewFrame(size int) *Frame {
	return &Frame{
		size: size,
		data: make([]byte, (size+WordSize-1)/WordSize),
	}
}

// FromBytes copies b into a new frame of len(b)*8 bits.
func FromBytes(b []byte) *Frame {
	f := NewFrame(len(b) * WordSize)
	copy(f.data, b)
	return f
}

// FromHex parses an ASCII hex string (two characters per byte, optional
// surrounding whitespace) into a frame.
func FromHex(s string) (*Frame, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parse hex frame: %w", err)
	}
	return FromBytes(b), nil
}

// Size returns the frame length in bits.
func (f *Frame) Size() int {
	return f.size
}

// Bytes returns a copy of the packed frame contents.
func (f *Frame) Bytes() []byte {
	out := make([]byte, len(f.data))
	copy(out, f.data)
	return out
}

// Clone returns an independent copy of f.
func (f *Frame) Clone() *Frame {
	return &Frame{size: f.size, data: f.Bytes()}
}

func mask(i int) byte {
	return 0x80 >> uint(i&IndexMask)
}

// Get reports whether bit i is set.
func (f *Frame) Get(i int) bool {
	return f.data[i>>ShiftRight]&mask(i) != 0
}

// Set sets bit i.
func (f *Frame) Set(i int) {
	f.data[i>>ShiftRight] |= mask(i)
}

// Clear clears bit i.
func (f *Frame) Clear(i int) {
	f.data[i>>ShiftRight] &^= mask(i)
}

// Flip inverts bit i.
func (f *Frame) Flip(i int) {
	f.data[i>>ShiftRight] ^= mask(i)
}

// SetTo sets bit i to v.
func (f *Frame) SetTo(i int, v bool) {
	if v {
		f.Set(i)
	} else {
		f.Clear(i)
	}
}

// Int assembles the bits at indices into an unsigned value. indices[0] is
// the most significant bit of the result, whatever its position in the frame.
func (f *Frame) Int(indices []int) int {
	v := 0
	for _, i := range indices {
		v <<= 1
		if f.Get(i) {
			v |= 1
		}
	}
	return v
}

// Field returns width contiguous bits starting at offset, MSB first.
func (f *Frame) Field(offset, width int) uint32 {
	var v uint32
	for i := offset; i < offset+width; i++ {
		v <<= 1
		if f.Get(i) {
			v |= 1
		}
	}
	return v
}

// SetField writes the low width bits of v at offset, MSB first.
func (f *Frame) SetField(offset, width int, v uint32) {
	for i := 0; i < width; i++ {
		f.SetTo(offset+i, v&(1<<uint(width-1-i)) != 0)
	}
}

// SetInt writes v across indices, indices[0] receiving the most significant bit.
func (f *Frame) SetInt(indices []int, v int) {
	n := len(indices)
	for k, i := range indices {
		f.SetTo(i, v&(1<<uint(n-1-k)) != 0)
	}
}

// Xor exclusive-ors other into f. Both frames must have the same size.
func (f *Frame) Xor(other *Frame) {
	if other.size != f.size {
		panic(fmt.Sprintf("bits: xor of %d-bit frame with %d-bit frame", f.size, other.size))
	}
	for i := range f.data {
		f.data[i] ^= other.data[i]
	}
}

// Rotate rotates the bits in [offset, offset+width) left by n positions.
// A negative n rotates right.
func (f *Frame) Rotate(offset, width, n int) {
	if width <= 0 {
		return
	}
	n %= width
	if n < 0 {
		n += width
	}
	if n == 0 {
		return
	}
	tmp := make([]bool, width)
	for i := 0; i < width; i++ {
		tmp[i] = f.Get(offset + (i+n)%width)
	}
	for i, v := range tmp {
		f.SetTo(offset+i, v)
	}
}

// Count returns the number of set bits.
func (f *Frame) Count() int {
	c := 0
	for i := 0; i < f.size; i++ {
		if f.Get(i) {
			c++
		}
	}
	return c
}

// String renders the frame as an upper-case hex string.
func (f *Frame) String() string {
	return strings.ToUpper(hex.EncodeToString(f.data))
}
