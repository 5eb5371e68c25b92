package mbe

import "math"

// idct is the inverse DCT used for gain and block average vectors:
// out[i] = sum_m a(m) x[m] cos(pi (m-1) (i-0.5) / n), a(1) = 1, a(m>1) = 2,
// with 1-based i and m over 0-based slices.
func idct(x []float64, n int) []float64 {
	out := make([]float64, n)
	for i := 1; i <= n; i++ {
		s := 0.0
		for m := 1; m <= len(x) && m <= n; m++ {
			a := 2.0
			if m == 1 {
				a = 1.0
			}
			s += a * x[m-1] * math.Cos(PI*float64(m-1)*(float64(i)-0.5)/float64(n))
		}
		out[i-1] = s
	}
	return out
}

// blockIDCT expands the coefficients c[0..] (C1..CJ) of one J-block into J
// per-harmonic residuals: C1 + 2 sum_{k>=2} Ck cos(pi (k-1) (j-0.5) / J).
func blockIDCT(c []float64, j int) []float64 {
	out := make([]float64, j)
	for jj := 1; jj <= j; jj++ {
		s := c[0]
		for k := 2; k <= len(c) && k <= j; k++ {
			s += 2 * c[k-1] * math.Cos(PI*float64(k-1)*(float64(jj)-0.5)/float64(j))
		}
		out[jj-1] = s
	}
	return out
}

// predict interpolates prev's log2 amplitude curve onto l harmonics and
// returns rho times the prediction with its mean removed, indexed 1..l.
func predict(prev *Parameters, l int, rho float64) []float64 {
	pred := make([]float64, l+1)
	kappa := float64(prev.L) / float64(l)
	sum := 0.0
	for i := 1; i <= l; i++ {
		k := kappa * float64(i)
		il := int(math.Floor(k))
		dl := k - float64(il)
		pred[i] = (1-dl)*prev.log2At(il) + dl*prev.log2At(il+1)
		sum += pred[i]
	}
	mean := sum / float64(l)
	for i := 1; i <= l; i++ {
		pred[i] = rho * (pred[i] - mean)
	}
	return pred
}

// amplitudes fills p.M from p.Log2M, attenuating unvoiced harmonics.
func amplitudes(p *Parameters) {
	unvoiced := 0.2046 / math.Sqrt(p.W0)
	for l := 1; l <= p.L; l++ {
		p.M[l] = math.Exp(math.Ln2 * p.Log2M[l])
		if !p.Voiced[l] {
			p.M[l] *= unvoiced
		}
	}
}
