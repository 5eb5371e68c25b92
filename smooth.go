package mbe

import "math"

// smooth applies the adaptive smoother. coset is the corrected-bit count of
// the code vector the voicing threshold keys on.
func smooth(p *Parameters, prev *Parameters, coset int) {
	er := p.ErrorRate
	total := p.TotalErrors

	vm := math.Inf(1)
	if er > 0.005 || total > 4 {
		if er <= 0.0125 && coset == 0 {
			vm = 45.255 * math.Pow(p.LocalEnergy, 0.375) / math.Exp(277.26*er)
		} else {
			vm = 1.414 * math.Pow(p.LocalEnergy, 0.375)
		}
	}

	sum := 0.0
	for l := 1; l <= p.L; l++ {
		if p.Enhanced[l] > vm {
			p.Voiced[l] = true
		}
		sum += p.Enhanced[l]
	}

	tm := DefaultAmplitudeThreshold
	if er > 0.005 || total > 6 {
		tm = math.Max(0, 6000-300*float64(total)+prev.AmplitudeThreshold)
	}
	if sum > tm {
		g := tm / sum
		for l := 1; l <= p.L; l++ {
			p.Enhanced[l] *= g
		}
	}
	p.AmplitudeThreshold = tm
}
