package mbe

import (
	"math"

	"github.com/blues/mbe/internal/ambe"
)

const (
	ambeErrorWeight   = 0.001064
	ambeMuteErrorRate = 0.096
	ambePrediction    = 0.65
)

// ambeRepeat reports whether the frame's fields must be discarded.
func ambeRepeat(f *ambe.Frame) bool {
	c0 := f.Errors[0]
	return f.Type == FrameErasure || c0 >= 4 || (c0 >= 2 && f.TotalErrors() >= 6)
}

// decodeAMBE reconstructs the model parameters of a VOICE or SILENCE frame.
func decodeAMBE(f *ambe.Frame, prev *Parameters) *Parameters {
	fund := f.Fundamental
	l := fund.L
	p := newParameters(l)
	p.Index = fund.Index
	p.W0 = fund.W0
	p.Type = f.Type

	// Voicing: harmonic l falls in band floor(l * w0 * 16 / 2pi).
	vuv := ambe.Voicing(f.B[1])
	for i := 1; i <= l; i++ {
		band := int(float64(i) * p.W0 * 16 / TWO_PI)
		if band > 7 {
			band = 7
		}
		p.Voiced[i] = f.Type == FrameVoice && vuv[band] == 1
	}

	p.Gain = ambe.Gain(f.B[2]) + 0.5*prev.Gain

	// Prediction residual block averages G1..G8, G1 = 0.
	g := make([]float64, 8)
	copy(g[1:4], ambe.PRBA24.Vector("PRBA24", f.B[3]))
	copy(g[4:8], ambe.PRBA58.Vector("PRBA58", f.B[4]))
	r := idct(g, 8)

	t := make([]float64, 0, l+1)
	t = append(t, 0)
	for i, j := range ambe.BlockLengths(l) {
		hoc := ambe.HOC[i].Vector("HOC", f.B[5+i])
		c := make([]float64, j)
		c[0] = 0.5 * (r[2*i] + r[2*i+1])
		c[1] = (r[2*i] - r[2*i+1]) / (2 * math.Sqrt2)
		for k := 3; k <= j && k-3 < len(hoc); k++ {
			c[k-1] = hoc[k-3]
		}
		t = append(t, blockIDCT(c, j)...)
	}

	sumT := 0.0
	for i := 1; i <= l; i++ {
		sumT += t[i]
	}
	bigGamma := p.Gain - 0.5*math.Log2(float64(l)) - sumT/float64(l)

	pred := predict(prev, l, ambePrediction)
	for i := 1; i <= l; i++ {
		p.Log2M[i] = t[i] + pred[i] + bigGamma
	}
	amplitudes(p)
	return p
}
