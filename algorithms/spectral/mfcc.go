package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

// DefaultMFCCSize is the number of cepstral coefficients kept per frame
const DefaultMFCCSize = 12

// MFCC computes Mel-Frequency Cepstral Coefficients from FFT magnitude (or
// power) spectra of a fixed size. It is safe for concurrent use once built.
type MFCC struct {
	config          MelConfig
	numCoefficients int

	filterBank *FilterBank
	dctMatrix  [][]float64
}

// NewMFCC validates the configuration once and prepares the filter bank and
// DCT basis. coefficients <= 0 selects DefaultMFCCSize. Asking for more
// coefficients than cfg.BankCount is a caller error; Compute then returns
// BankCount values.
func NewMFCC(cfg MelConfig, coefficients int) (*MFCC, error) {
	if coefficients <= 0 {
		coefficients = DefaultMFCCSize
	}

	filterBank, err := NewFilterBank(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build mel filter bank: %w", err)
	}

	mfcc := &MFCC{
		config:          cfg,
		numCoefficients: min(coefficients, cfg.BankCount),
		filterBank:      filterBank,
	}
	mfcc.dctMatrix = dctBasis(mfcc.numCoefficients, cfg.BankCount)

	return mfcc, nil
}

// Compute runs filter bank → ln(1+e) → DCT-II on one spectrum and keeps the
// first coefficients. The spectrum length must equal the configured FFT size.
func (m *MFCC) Compute(spectrum []float64) ([]float64, error) {
	if len(spectrum) != m.config.FFTSize {
		return nil, fmt.Errorf("passed in FFT bins were incorrect size, expected %d but was %d: %w",
			m.config.FFTSize, len(spectrum), common.ErrSizeMismatch)
	}

	melSpectrum, err := m.filterBank.Apply(spectrum)
	if err != nil {
		return nil, err
	}

	// ln(1+e): silent bands map to 0
	for i, energy := range melSpectrum {
		melSpectrum[i] = math.Log1p(energy)
	}

	coefficients := make([]float64, m.numCoefficients)
	for k, basis := range m.dctMatrix {
		coefficients[k] = floats.Dot(basis, melSpectrum)
	}

	return coefficients, nil
}

// ComputeFrames processes a sequence of spectra, stopping at the first error
func (m *MFCC) ComputeFrames(spectrogram [][]float64) ([][]float64, error) {
	mfccFrames := make([][]float64, len(spectrogram))

	for t, spectrum := range spectrogram {
		coefficients, err := m.Compute(spectrum)
		if err != nil {
			return nil, fmt.Errorf("failed to compute MFCC for frame %d: %w", t, err)
		}
		mfccFrames[t] = coefficients
	}

	return mfccFrames, nil
}

// FilterBank returns the mel filter bank (for inspection)
func (m *MFCC) FilterBank() *FilterBank {
	return m.filterBank
}

// Config returns the mel configuration the transform was built with
func (m *MFCC) Config() MelConfig {
	return m.config
}

// NumCoefficients returns the output vector length
func (m *MFCC) NumCoefficients() int {
	return m.numCoefficients
}

// DCT computes the unnormalized DCT-II with scale 2:
// y[k] = 2 * sum_n x[n] * cos(pi * k * (n + 0.5) / N)
func DCT(signal []float64) []float64 {
	basis := dctBasis(len(signal), len(signal))
	out := make([]float64, len(signal))
	for k := range out {
		out[k] = floats.Dot(basis[k], signal)
	}
	return out
}

// dctBasis builds rows × n DCT-II rows, scale folded in
func dctBasis(rows, n int) [][]float64 {
	matrix := make([][]float64, rows)
	for k := range rows {
		matrix[k] = make([]float64, n)
		for i := range n {
			matrix[k][i] = 2.0 * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/float64(n))
		}
	}
	return matrix
}
