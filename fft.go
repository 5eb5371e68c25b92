package mbe

import "github.com/mjibson/go-dsp/fft"

// FFT is the transform used by the unvoiced synthesizer.
type FFT interface {
	Forward(in []float64) []complex128
	Inverse(in []complex128) []float64
}

// defaultFFT implements FFT using go-dsp/fft.
type defaultFFT struct {
	size int
}

// NewFFT creates a new FFT instance for the given size.
func NewFFT(size int) FFT {
	return &defaultFFT{size: size}
}

// Forward returns the FFT of a real-valued input.
func (f *defaultFFT) Forward(in []float64) []complex128 {
	return fft.FFTReal(in[:f.size])
}

// Inverse returns the real part of the inverse FFT, scaled by 1/N.
func (f *defaultFFT) Inverse(in []complex128) []float64 {
	complexOut := fft.IFFT(in[:f.size])
	realOut := make([]float64, len(complexOut))
	for i, v := range complexOut {
		realOut[i] = real(v)
	}
	return realOut
}
