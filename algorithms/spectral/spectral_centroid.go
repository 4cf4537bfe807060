package spectral

import (
	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

// SpectralCentroid returns the energy-weighted mean bin index of a magnitude
// spectrum, sum(i*x[i]) / sum(x[i]). A frame with zero total energy yields
// NaN; callers filter silent frames when they need a number.
func SpectralCentroid(frame []float64) float64 {
	numerator := 0.0
	for i, x := range frame {
		numerator += float64(i) * x
	}
	return numerator / floats.Sum(frame)
}

// SpectralCentroidSRF estimates the centroid as the energy median: the
// roll-off point at a 50% cutoff
func SpectralCentroidSRF(frame []float64, sampleRate int) float64 {
	return SpectralRollOffPoint(frame, sampleRate, common.Half, false)
}

// SpectralCentroidFrames computes SpectralCentroid for every frame
func SpectralCentroidFrames(spectrogram [][]float64) []float64 {
	centroids := make([]float64, len(spectrogram))
	for t, spectrum := range spectrogram {
		centroids[t] = SpectralCentroid(spectrum)
	}
	return centroids
}
