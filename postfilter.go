package mbe

import "math"

const (
	minLocalEnergy   = 10000.0
	localEnergyDecay = 0.95
)

// enhance computes p.Enhanced from p.M and updates the local energy estimate
// unless the frame has no energy.
// Harmonics with 8l <= L pass unchanged; the rest are weighted by the
// spectral envelope, limited to [0.5, 1.2] and renormalised to the frame's
// energy.
func enhance(p *Parameters, prev *Parameters) {
	l := p.L
	rm0, rm1 := 0.0, 0.0
	for i := 1; i <= l; i++ {
		m2 := p.M[i] * p.M[i]
		rm0 += m2
		rm1 += m2 * math.Cos(p.W0*float64(i))
	}

	if rm0 == 0 {
		for i := range p.Enhanced {
			p.Enhanced[i] = 0
		}
		// A silent frame holds the estimate.
		p.LocalEnergy = prev.LocalEnergy
		return
	}
	p.LocalEnergy = math.Max(minLocalEnergy, localEnergyDecay*prev.LocalEnergy+(1-localEnergyDecay)*rm0)

	den := p.W0 * rm0 * (rm0*rm0 - rm1*rm1)
	e := 0.0
	for i := 1; i <= l; i++ {
		m := p.M[i]
		if 8*i <= l || den <= 0 {
			p.Enhanced[i] = m
		} else {
			num := PI * 0.96 * (rm0*rm0 + rm1*rm1 - 2*rm0*rm1*math.Cos(p.W0*float64(i)))
			w := math.Sqrt(m) * math.Pow(num/den, 0.25)
			switch {
			case w > 1.2:
				p.Enhanced[i] = m * 1.2
			case w < 0.5:
				p.Enhanced[i] = m * 0.5
			default:
				p.Enhanced[i] = m * w
			}
		}
		e += p.Enhanced[i] * p.Enhanced[i]
	}

	if e > 0 {
		g := math.Sqrt(rm0 / e)
		for i := 1; i <= l; i++ {
			p.Enhanced[i] *= g
		}
	}
}
