package filters

import (
	"math"
)

// DCRemoval implements a DC blocking filter (a one-pole high-pass) that
// removes the 0 Hz offset some recorders leave in speech files.
//
// References:
//   - Julius O. Smith III, "Introduction to Digital Filters with Audio Applications"
//     https://ccrma.stanford.edu/~jos/filters/DC_Blocker.html
type DCRemoval struct {
	poleLocation float64 // R parameter (0 < R < 1)

	// State variables
	x1 float64 // Previous input sample x[n-1]
	y1 float64 // Previous output sample y[n-1]
}

// NewDCRemoval creates a DC removal filter with the standard pole location
// of 0.995
func NewDCRemoval() *DCRemoval {
	return &DCRemoval{poleLocation: 0.995}
}

// NewDCRemovalWithCutoff creates a DC removal filter with the given -3dB
// cutoff. The pole location is R = 1 - 2*pi*fc/fs, clamped to (0, 1).
func NewDCRemovalWithCutoff(sampleRate int, cutoffFreq float64) *DCRemoval {
	if sampleRate <= 0 || cutoffFreq <= 0 {
		return NewDCRemoval()
	}

	pole := 1.0 - (2.0 * math.Pi * cutoffFreq / float64(sampleRate))
	pole = min(max(pole, 0.001), 0.999)
	return &DCRemoval{poleLocation: pole}
}

// Process applies DC removal to a single sample.
// Implements the difference equation:
// y[n] = x[n] - x[n-1] + R * y[n-1]
func (dc *DCRemoval) Process(input float64) float64 {
	output := input - dc.x1 + dc.poleLocation*dc.y1

	dc.x1 = input
	dc.y1 = output

	return output
}

// ProcessBuffer applies DC removal to an entire buffer of samples.
func (dc *DCRemoval) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = dc.Process(sample)
	}
	return output
}

// Reset clears the filter's internal state.
func (dc *DCRemoval) Reset() {
	dc.x1 = 0.0
	dc.y1 = 0.0
}

// CutoffFrequency returns the approximate -3dB cutoff, fc ≈ (1-R)*fs/(2*pi)
func (dc *DCRemoval) CutoffFrequency(sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0.0
	}
	return (1.0 - dc.poleLocation) * float64(sampleRate) / (2.0 * math.Pi)
}
