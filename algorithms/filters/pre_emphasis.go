package filters

import (
	"fmt"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

// DefaultPreEmphasis is the coefficient commonly used ahead of MFCC analysis
// of speech
const DefaultPreEmphasis = 0.97

// PreEmphasis is a first-order high-pass filter that lifts the high
// frequencies of speech before spectral analysis.
//
// The filter implements the difference equation:
// y[n] = x[n] - α*x[n-1]
//
// References:
//   - L.R. Rabiner, R.W. Schafer, "Digital Processing of Speech Signals",
//     Prentice-Hall, 1978, Chapter 4
type PreEmphasis struct {
	coefficient float64
	lastSample  float64
}

// NewPreEmphasis creates a pre-emphasis filter. The coefficient must lie in
// (0, 1).
func NewPreEmphasis(coefficient float64) (*PreEmphasis, error) {
	if coefficient <= 0.0 || coefficient >= 1.0 {
		return nil, fmt.Errorf("pre-emphasis coefficient must be between 0 and 1, got %f: %w",
			coefficient, common.ErrInvalidConfig)
	}
	return &PreEmphasis{coefficient: coefficient}, nil
}

// Process filters a single sample
func (pe *PreEmphasis) Process(input float64) float64 {
	output := input - pe.coefficient*pe.lastSample
	pe.lastSample = input
	return output
}

// ProcessBuffer filters a whole signal into a new slice, continuing from
// the current state
func (pe *PreEmphasis) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = pe.Process(sample)
	}
	return output
}

// Reset clears the filter state between unrelated signals
func (pe *PreEmphasis) Reset() {
	pe.lastSample = 0.0
}

// Coefficient returns α
func (pe *PreEmphasis) Coefficient() float64 {
	return pe.coefficient
}
