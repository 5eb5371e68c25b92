// Package voice holds the frame classification shared by the AMBE and IMBE
// frame decoders.
package voice

import (
	"fmt"
	"math"
)

// FrameType classifies a decoded frame.
type FrameType int

const (
	Voice FrameType = iota
	Silence
	Erasure
	Tone
	Invalid
)

func (t FrameType) String() string {
	switch t {
	case Voice:
		return "VOICE"
	case Silence:
		return "SILENCE"
	case Erasure:
		return "ERASURE"
	case Tone:
		return "TONE"
	case Invalid:
		return "INVALID"
	}
	return fmt.Sprintf("FrameType(%d)", int(t))
}

const (
	MinHarmonics = 9
	MaxHarmonics = 56
)

// Fundamental is one row of a codec's fundamental frequency table.
type Fundamental struct {
	Index int       // Quantiser index b0.
	W0    float64   // Fundamental frequency in radians per sample.
	L     int       // Number of harmonics.
	Type  FrameType // Classification implied by the index.
}

// Harmonics returns the MBE harmonic count for w0:
// L = floor(0.9254 * floor(pi/w0 + 0.25)).
func Harmonics(w0 float64) int {
	return int(math.Floor(0.9254 * math.Floor(math.Pi/w0+0.25)))
}
