package mbe

import (
	"math"
	"math/cmplx"
)

const (
	fftSize = 256

	// gammaW normalises the windowed noise spectrum to the band amplitude.
	gammaW = 146.643

	// Synthesis window: flat to |n| = windowFlat, linear to zero at windowEdge.
	windowFlat = 55
	windowEdge = 105
)

// synthesisWindow is the symmetric edge-tapered window used by both the
// noise analysis and the overlap-add.
func synthesisWindow(n int) float64 {
	if n < 0 {
		n = -n
	}
	switch {
	case n <= windowFlat:
		return 1
	case n <= windowEdge:
		return float64(windowEdge-n) / float64(windowEdge-windowFlat)
	}
	return 0
}

// synthesizer holds the state carried between frames by the output stage.
type synthesizer struct {
	fft  FFT
	rand RandSource

	noise    noiseGen
	noiseBuf [fftSize]float64
	uwPrev   []float64

	phaseV [MaxHarmonics + 1]float64
	phaseO [MaxHarmonics + 1]float64
}

func newSynthesizer(r RandSource) *synthesizer {
	s := &synthesizer{
		fft:  NewFFT(fftSize),
		rand: r,
	}
	s.reset()
	return s
}

// reset clears the phase tracks and buffers and reseeds the noise generator.
func (s *synthesizer) reset() {
	s.noise = noiseGen{s: noiseSeed}
	for i := SamplesPerFrame; i < fftSize; i++ {
		s.noiseBuf[i] = s.noise.next()
	}
	s.uwPrev = make([]float64, fftSize)
	s.phaseV = [MaxHarmonics + 1]float64{}
	s.phaseO = [MaxHarmonics + 1]float64{}
}

// synthesizeOneFrame returns SamplesPerFrame samples for p, using prev as
// the previous frame, in 16-bit sample units.
func (s *synthesizer) synthesizeOneFrame(p, prev *Parameters) []float64 {
	out := make([]float64, SamplesPerFrame)
	s.unvoiced(p, out)
	s.voiced(p, prev, out)
	return out
}

// unvoiced writes the unvoiced component of the frame to out: band-shaped
// noise combined with the previous frame by weighted overlap-add.
func (s *synthesizer) unvoiced(p *Parameters, out []float64) {
	n := len(out)
	keep := fftSize - n
	copy(s.noiseBuf[:keep], s.noiseBuf[n:])
	for i := keep; i < fftSize; i++ {
		s.noiseBuf[i] = s.noise.next()
	}

	x := make([]float64, fftSize)
	for i := range x {
		x[i] = s.noiseBuf[i] * synthesisWindow(i-fftSize/2)
	}
	u := s.fft.Forward(x)

	uw := s.fft.Inverse(noiseSpectrum(p, u))
	overlapAdd(s.uwPrev, uw, out)
	s.uwPrev = uw
}

// noiseSpectrum scales the windowed noise spectrum u so that the mean bin
// energy of each unvoiced band is (gammaW * amplitude)^2. Voiced and
// out-of-band bins are zero. The result is conjugate symmetric.
func noiseSpectrum(p *Parameters, u []complex128) []complex128 {
	y := make([]complex128, fftSize)
	binScale := float64(fftSize) / TWO_PI
	for l := 1; l <= p.L; l++ {
		if p.Voiced[l] {
			continue
		}
		a := int(math.Ceil(binScale * (float64(l) - 0.5) * p.W0))
		b := int(math.Ceil(binScale * (float64(l) + 0.5) * p.W0))
		if a < 1 {
			a = 1
		}
		if b > fftSize/2 {
			b = fftSize / 2
		}
		if a >= b {
			continue
		}
		e := 0.0
		for k := a; k < b; k++ {
			e += real(u[k])*real(u[k]) + imag(u[k])*imag(u[k])
		}
		e /= float64(b - a)
		if e == 0 {
			continue
		}
		g := complex(gammaW*p.Enhanced[l]/math.Sqrt(e), 0)
		for k := a; k < b; k++ {
			y[k] = u[k] * g
			y[fftSize-k] = cmplx.Conj(y[k])
		}
	}
	return y
}

// overlapAdd combines the previous and current inverse transforms into out.
// Offsets are relative to each buffer's centre sample.
func overlapAdd(prev, cur, out []float64) {
	n := len(out)
	for i := 0; i < n; i++ {
		w1, w2 := synthesisWindow(i), synthesisWindow(i-n)
		num := 0.0
		if j := i + fftSize/2; j < fftSize {
			num += w1 * prev[j]
		}
		if j := i - n + fftSize/2; j >= 0 {
			num += w2 * cur[j]
		}
		out[i] = num / (w1*w1 + w2*w2)
	}
}
