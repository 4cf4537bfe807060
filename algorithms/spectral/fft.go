package spectral

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT wraps the mjibson/go-dsp transform used as the black-box FFT
// collaborator of the feature pipeline
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute returns the complex bins of a real frame. go-dsp handles any
// length, including non powers of two.
func (f *FFT) Compute(frame []float64) []complex128 {
	if len(frame) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(frame)
}

// Magnitude returns |X[k]| for the lower, non-redundant half of the bins of
// a real frame: len(frame)/2 values
func (f *FFT) Magnitude(frame []float64) []float64 {
	return ModulusComplex(f.Compute(frame), true)
}

// ModulusFFT returns sqrt(re²+im²) for each (real, imaginary) pair. With
// removeHalf the redundant upper half of a real-input FFT is discarded
// first. The input is not modified.
func ModulusFFT(bins [][2]float64, removeHalf bool) []float64 {
	if removeHalf {
		bins = bins[:len(bins)/2]
	}

	modulus := make([]float64, len(bins))
	for i, bin := range bins {
		modulus[i] = math.Hypot(bin[0], bin[1])
	}
	return modulus
}

// ModulusComplex is ModulusFFT over complex128 bins
func ModulusComplex(bins []complex128, removeHalf bool) []float64 {
	if removeHalf {
		bins = bins[:len(bins)/2]
	}

	modulus := make([]float64, len(bins))
	for i, bin := range bins {
		modulus[i] = cmplx.Abs(bin)
	}
	return modulus
}

// ComplexPairs converts complex bins to (real, imaginary) pairs
func ComplexPairs(bins []complex128) [][2]float64 {
	pairs := make([][2]float64, len(bins))
	for i, bin := range bins {
		pairs[i] = [2]float64{real(bin), imag(bin)}
	}
	return pairs
}
