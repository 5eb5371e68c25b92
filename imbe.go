package mbe

import (
	"github.com/blues/mbe/internal/imbe"
)

const (
	imbeErrorWeight   = 0.000365
	imbeMuteErrorRate = 0.0875
)

// imbeRepeat reports whether the frame's fields must be discarded.
func imbeRepeat(f *imbe.Frame, prev *Parameters) bool {
	if f.Type == FrameInvalid {
		return true
	}
	return f.Errors[0] >= 4 || float64(f.TotalErrors()) >= 10+40*prev.ErrorRate
}

// imbePrediction returns the prediction coefficient for l harmonics.
func imbePrediction(l int) float64 {
	switch {
	case l <= 15:
		return 0.4
	case l <= 24:
		return 0.03*float64(l) - 0.05
	}
	return 0.7
}

// decodeIMBE reconstructs the model parameters of a VOICE frame.
func decodeIMBE(f *imbe.Frame, prev *Parameters) *Parameters {
	lay := f.Layout
	l := lay.L
	p := newParameters(l)
	p.Index = f.Fundamental.Index
	p.W0 = f.Fundamental.W0
	p.Type = FrameVoice

	// b1 carries one decision per band, band 1 in the MSB.
	for i := 1; i <= l; i++ {
		band := imbe.Band(lay.K, i)
		p.Voiced[i] = f.B[1]&(1<<uint(lay.K-band)) != 0
	}

	gains := make([]float64, imbe.Blocks)
	gains[0] = imbe.Gain(f.B[2])
	p.Gain = gains[0]

	var coeffs [imbe.Blocks][]float64
	jl := imbe.BlockLengths(l)
	for i, j := range jl {
		coeffs[i] = make([]float64, j)
	}
	for m := 3; m < l+2; m++ {
		c := lay.Coeffs[m]
		v := imbe.Dequantize(f.B[m], lay.Bits[m], c.Sigma())
		if c.Gain != 0 {
			gains[c.Gain-1] = v
		} else {
			coeffs[c.Block-1][c.K-1] = v
		}
	}

	r := idct(gains, imbe.Blocks)
	t := make([]float64, 0, l+1)
	t = append(t, 0)
	for i, j := range jl {
		coeffs[i][0] = r[i]
		t = append(t, blockIDCT(coeffs[i], j)...)
	}

	pred := predict(prev, l, imbePrediction(l))
	for i := 1; i <= l; i++ {
		p.Log2M[i] = t[i] + pred[i]
	}
	amplitudes(p)
	return p
}
