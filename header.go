package mbe

import "fmt"

// .mbe file header constants
var (
	MagicByte1   = byte(0xc0)
	MagicByte2   = byte(0xde)
	MagicByte3   = byte(0xbe)
	VersionMajor = byte(0x01)
	VersionMinor = byte(0x00)
)

// HeaderSize is the length of a .mbe file header.
const HeaderSize = 7

var Magic = []byte{MagicByte1, MagicByte2, MagicByte3}

// Header represents the .mbe file format header
type Header struct {
	Magic        [3]byte
	VersionMajor byte
	VersionMinor byte
	Mode         byte
	Flags        byte
}

// NewHeader creates a header for frames of the given codec.
func NewHeader(c Codec) Header {
	h := Header{
		VersionMajor: VersionMajor,
		VersionMinor: VersionMinor,
		Mode:         byte(c),
	}
	copy(h.Magic[:], Magic)
	return h
}

// Bytes returns the header's wire form.
func (h Header) Bytes() []byte {
	return []byte{h.Magic[0], h.Magic[1], h.Magic[2], h.VersionMajor, h.VersionMinor, h.Mode, h.Flags}
}

// IsHeader checks if data starts with a .mbe header.
func IsHeader(data []byte) bool {
	if len(data) < HeaderSize {
		return false
	}
	return data[0] == MagicByte1 &&
		data[1] == MagicByte2 &&
		data[2] == MagicByte3
}

// ParseHeader reads the header at the start of data and returns it with the
// codec its mode byte names.
func ParseHeader(data []byte) (Header, Codec, error) {
	var h Header
	if !IsHeader(data) {
		return h, 0, ErrInvalidHeader
	}
	copy(h.Magic[:], data[0:3])
	h.VersionMajor, h.VersionMinor, h.Mode, h.Flags = data[3], data[4], data[5], data[6]
	c := Codec(h.Mode)
	if c.FrameBytes() == 0 {
		return h, 0, fmt.Errorf("%w: header mode %d", ErrUnsupportedMode, h.Mode)
	}
	return h, c, nil
}
