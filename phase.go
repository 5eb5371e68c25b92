package mbe

import (
	"math"
)

const (
	// noiseSeed is the startup register of the unvoiced noise generator.
	noiseSeed = 3147

	// Harmonics at or above largeJumpHarmonic, or any harmonic when w0 moves
	// by at least largeJumpRatio of itself, are cross-faded instead of
	// phase-interpolated.
	largeJumpHarmonic = 8
	largeJumpRatio    = 0.1
)

// RandSource supplies uniform values in [0, 1) for phase injection.
// *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// noiseGen is the multiplicative congruential generator feeding the
// unvoiced synthesizer: s' = (171 s + 11213) mod 53125.
type noiseGen struct {
	s uint32
}

func (g *noiseGen) next() float64 {
	g.s = (171*g.s + 11213) % 53125
	return float64(g.s)
}

// harmonic returns the amplitude and voicing of harmonic l, or zero and
// unvoiced beyond p.L.
func harmonic(p *Parameters, l int) (float64, bool) {
	if l > p.L {
		return 0, false
	}
	return p.Enhanced[l], p.Voiced[l]
}

func wrapPhase(x float64) float64 {
	return x - TWO_PI*math.Floor((x+PI)/TWO_PI)
}

// voiced adds the voiced component of the frame to out, advancing the phase
// tracks. prev is the previous frame's parameters.
func (s *synthesizer) voiced(p, prev *Parameters, out []float64) {
	n := len(out)
	half := float64(n) / 2
	maxL := p.L
	if prev.L > maxL {
		maxL = prev.L
	}

	prevO := s.phaseO
	luv := float64(p.unvoicedCount()) / float64(p.L)
	for l := 1; l <= maxL; l++ {
		fl := float64(l)
		s.phaseV[l] = wrapPhase(s.phaseV[l] + (prev.W0+p.W0)*half*fl)
		if l <= p.L/4 {
			s.phaseO[l] = s.phaseV[l]
		} else {
			s.phaseO[l] = s.phaseV[l] + luv*(s.rand.Float64()*TWO_PI-PI)
		}
	}

	w0p, w0 := prev.W0, p.W0
	large := math.Abs(w0-w0p) >= largeJumpRatio*w0
	for l := 1; l <= maxL; l++ {
		fl := float64(l)
		mp, vp := harmonic(prev, l)
		mc, vc := harmonic(p, l)
		switch {
		case !vp && !vc:
			continue

		case vp && vc && !large && l < largeJumpHarmonic:
			dphi := wrapPhase(s.phaseO[l] - prevO[l] - (w0p+w0)*half*fl)
			dw := dphi / float64(n)
			for i := 0; i < n; i++ {
				t := float64(i)
				a := mp + t/float64(n)*(mc-mp)
				theta := prevO[l] + (w0p*fl+dw)*t + (w0-w0p)*fl*t*t/(2*float64(n))
				out[i] += 2 * a * math.Cos(theta)
			}

		default:
			for i := 0; i < n; i++ {
				v := 0.0
				if vp {
					v += synthesisWindow(i) * mp * math.Cos(w0p*float64(i)*fl+prevO[l])
				}
				if vc {
					v += synthesisWindow(i-n) * mc * math.Cos(w0*float64(i-n)*fl+s.phaseO[l])
				}
				out[i] += 2 * v
			}
		}
	}
}
