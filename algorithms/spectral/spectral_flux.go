package spectral

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

// SpectralFlux is the half-wave rectified spectral change between two
// consecutive magnitude spectra: the L2 norm of the bin-wise increases
func SpectralFlux(previous, current []float64) (float64, error) {
	if len(previous) != len(current) {
		return 0, fmt.Errorf("spectra have %d and %d bins: %w",
			len(previous), len(current), common.ErrDimensionMismatch)
	}

	sum := 0.0
	for f := range current {
		if diff := current[f] - previous[f]; diff > 0 {
			sum += diff * diff
		}
	}
	return math.Sqrt(sum), nil
}

// SpectralFluxFrames returns the flux of every frame against its
// predecessor. The first frame has no predecessor and scores 0.
func SpectralFluxFrames(spectra [][]float64) ([]float64, error) {
	flux := make([]float64, len(spectra))
	for t := 1; t < len(spectra); t++ {
		value, err := SpectralFlux(spectra[t-1], spectra[t])
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", t, err)
		}
		flux[t] = value
	}
	return flux, nil
}
