package ambe

import (
	"fmt"
	"math"

	"github.com/blues/mbe/internal/voice"
)

const (
	// FundamentalCount is the number of b0 codes.
	FundamentalCount = 128

	firstErasure = 120
	firstSilence = 124
	firstTone    = 126

	// SilenceW0 and SilenceL are used for every non-voice index.
	SilenceW0 = 2 * math.Pi / 32
	SilenceL  = 14
)

// voiceTable holds f0 in cycles per sample and L for the voice codes. f0
// follows 2^(-4.311767578125 - 0.02198*(b0+0.5)) and L is
// floor(0.9254*pi/w0).
var voiceTable = [firstErasure]struct {
	f0 float64
	l  int
}{
	{0.049971, 9}, {0.049216, 9}, {0.048472, 9}, {0.047739, 9},
	{0.047017, 9}, {0.046306, 9}, {0.045606, 10}, {0.044916, 10},
	{0.044237, 10}, {0.043568, 10}, {0.042910, 10}, {0.042261, 10},
	{0.041622, 11}, {0.040992, 11}, {0.040373, 11}, {0.039762, 11},
	{0.039161, 11}, {0.038569, 11}, {0.037986, 12}, {0.037411, 12},
	{0.036846, 12}, {0.036289, 12}, {0.035740, 12}, {0.035200, 13},
	{0.034667, 13}, {0.034143, 13}, {0.033627, 13}, {0.033119, 13},
	{0.032618, 14}, {0.032125, 14}, {0.031639, 14}, {0.031161, 14},
	{0.030689, 15}, {0.030225, 15}, {0.029768, 15}, {0.029318, 15},
	{0.028875, 16}, {0.028438, 16}, {0.028008, 16}, {0.027585, 16},
	{0.027168, 17}, {0.026757, 17}, {0.026352, 17}, {0.025954, 17},
	{0.025562, 18}, {0.025175, 18}, {0.024794, 18}, {0.024420, 18},
	{0.024050, 19}, {0.023687, 19}, {0.023329, 19}, {0.022976, 20},
	{0.022628, 20}, {0.022286, 20}, {0.021949, 21}, {0.021617, 21},
	{0.021291, 21}, {0.020969, 22}, {0.020652, 22}, {0.020339, 22},
	{0.020032, 23}, {0.019729, 23}, {0.019431, 23}, {0.019137, 24},
	{0.018848, 24}, {0.018563, 24}, {0.018282, 25}, {0.018006, 25},
	{0.017733, 26}, {0.017465, 26}, {0.017201, 26}, {0.016941, 27},
	{0.016685, 27}, {0.016433, 28}, {0.016184, 28}, {0.015939, 29},
	{0.015698, 29}, {0.015461, 29}, {0.015227, 30}, {0.014997, 30},
	{0.014770, 31}, {0.014547, 31}, {0.014327, 32}, {0.014110, 32},
	{0.013897, 33}, {0.013687, 33}, {0.013480, 34}, {0.013276, 34},
	{0.013075, 35}, {0.012878, 35}, {0.012683, 36}, {0.012491, 37},
	{0.012302, 37}, {0.012116, 38}, {0.011933, 38}, {0.011753, 39},
	{0.011575, 39}, {0.011400, 40}, {0.011228, 41}, {0.011058, 41},
	{0.010891, 42}, {0.010726, 43}, {0.010564, 43}, {0.010404, 44},
	{0.010247, 45}, {0.010092, 45}, {0.009939, 46}, {0.009789, 47},
	{0.009641, 47}, {0.009495, 48}, {0.009352, 49}, {0.009210, 50},
	{0.009071, 51}, {0.008934, 51}, {0.008799, 52}, {0.008666, 53},
	{0.008535, 54}, {0.008406, 55}, {0.008279, 55}, {0.008153, 56},
}

var fundamentals = buildFundamentals()

func buildFundamentals() [FundamentalCount]voice.Fundamental {
	var t [FundamentalCount]voice.Fundamental
	for i := range t {
		switch {
		case i < firstErasure:
			v := voiceTable[i]
			t[i] = voice.Fundamental{Index: i, W0: 2 * math.Pi * v.f0, L: v.l, Type: voice.Voice}
		case i < firstSilence:
			t[i] = voice.Fundamental{Index: i, W0: SilenceW0, L: SilenceL, Type: voice.Erasure}
		case i < firstTone:
			t[i] = voice.Fundamental{Index: i, W0: SilenceW0, L: SilenceL, Type: voice.Silence}
		default:
			t[i] = voice.Fundamental{Index: i, W0: SilenceW0, L: SilenceL, Type: voice.Tone}
		}
	}
	return t
}

// LookupFundamental returns the table row for b0.
func LookupFundamental(b0 int) (voice.Fundamental, error) {
	if b0 < 0 || b0 >= FundamentalCount {
		return voice.Fundamental{}, fmt.Errorf("ambe: fundamental index %d out of range [0,%d)", b0, FundamentalCount)
	}
	return fundamentals[b0], nil
}

// FrameTypeOf classifies a b0 code.
func FrameTypeOf(b0 int) (voice.FrameType, error) {
	f, err := LookupFundamental(b0)
	if err != nil {
		return voice.Invalid, err
	}
	return f.Type, nil
}
