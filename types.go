package mbe

import (
	"fmt"
	"math"
	"strings"

	"github.com/blues/mbe/internal/voice"
)

// Basic constants.
const (
	PI     = math.Pi
	TWO_PI = 2.0 * math.Pi
)

// Frame and synthesis constants.
const (
	SampleRate      = 8000
	SamplesPerFrame = 160 // 20ms
	MaxHarmonics    = voice.MaxHarmonics

	AMBEFrameBytes = 9
	IMBEFrameBytes = 18

	DefaultGain = 1.0
	MaxGain     = 16.0

	// Default silent parameter set.
	DefaultW0                 = 0.02985 * PI
	DefaultL                  = 30
	DefaultLocalEnergy        = 75000.0
	DefaultAmplitudeThreshold = 20480.0

	// maxRepeats consecutive repeats are allowed before the decoder mutes.
	maxRepeats = 4
)

// FrameType classifies a decoded frame.
type FrameType = voice.FrameType

const (
	FrameVoice   = voice.Voice
	FrameSilence = voice.Silence
	FrameErasure = voice.Erasure
	FrameTone    = voice.Tone
	FrameInvalid = voice.Invalid
)

// Codec selects a frame format. The values double as the .mbe header mode byte.
type Codec int

const (
	CodecAMBE Codec = 1
	CodecIMBE Codec = 2
)

func (c Codec) String() string {
	switch c {
	case CodecAMBE:
		return "AMBE 3600x2450"
	case CodecIMBE:
		return "IMBE 7200x4400"
	}
	return fmt.Sprintf("Codec(%d)", int(c))
}

// FrameBytes returns the size of one encoded frame.
func (c Codec) FrameBytes() int {
	switch c {
	case CodecAMBE:
		return AMBEFrameBytes
	case CodecIMBE:
		return IMBEFrameBytes
	}
	return 0
}

// ParseCodec accepts "ambe" or "imbe" in any case.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(s) {
	case "ambe":
		return CodecAMBE, nil
	case "imbe":
		return CodecIMBE, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

// Parameters holds the model parameters for one frame. Slices indexed by
// harmonic have length L+1; index 0 is unused.
type Parameters struct {
	Index int       // Fundamental index b0.
	W0    float64   // Fundamental frequency in radians per sample.
	L     int       // Number of harmonics.
	Type  FrameType // Frame classification.
	Gain  float64   // AMBE: gamma. IMBE: first gain coefficient.

	Voiced   []bool
	Log2M    []float64 // log2 spectral amplitudes.
	M        []float64 // Spectral amplitudes.
	Enhanced []float64 // Amplitudes after enhancement and smoothing.

	LocalEnergy        float64
	AmplitudeThreshold float64
	ErrorRate          float64
	Errors             []int // Corrected bits per protected code vector.
	TotalErrors        int
	RepeatCount        int
	Muted              bool
}

// defaultParameters returns the silent parameter set used at startup, after
// a reset and when consecutive repeats run out.
func defaultParameters() *Parameters {
	p := newParameters(DefaultL)
	p.Index = -1
	p.W0 = DefaultW0
	p.Type = FrameSilence
	p.LocalEnergy = DefaultLocalEnergy
	p.AmplitudeThreshold = DefaultAmplitudeThreshold
	return p
}

func newParameters(l int) *Parameters {
	return &Parameters{
		L:        l,
		Voiced:   make([]bool, l+1),
		Log2M:    make([]float64, l+1),
		M:        make([]float64, l+1),
		Enhanced: make([]float64, l+1),
	}
}

// Clone returns a deep copy of p.
func (p *Parameters) Clone() *Parameters {
	c := *p
	c.Voiced = append([]bool(nil), p.Voiced...)
	c.Log2M = append([]float64(nil), p.Log2M...)
	c.M = append([]float64(nil), p.M...)
	c.Enhanced = append([]float64(nil), p.Enhanced...)
	c.Errors = append([]int(nil), p.Errors...)
	return &c
}

// log2At reads the log2 amplitude curve at harmonic i, holding the end
// points for indices outside 1..L.
func (p *Parameters) log2At(i int) float64 {
	if i > p.L {
		i = p.L
	}
	if i < 1 {
		i = 1
	}
	return p.Log2M[i]
}

// unvoicedCount returns the number of unvoiced harmonics.
func (p *Parameters) unvoicedCount() int {
	n := 0
	for l := 1; l <= p.L; l++ {
		if !p.Voiced[l] {
			n++
		}
	}
	return n
}
