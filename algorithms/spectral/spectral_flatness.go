package spectral

import (
	"math"
)

// flatnessFloor bounds bins from below so empty bins do not send the
// geometric mean to log(0)
const flatnessFloor = 1e-10

// SpectralFlatness is the ratio of the geometric to the arithmetic mean of a
// magnitude spectrum (Wiener entropy), in [0, 1]. Voiced speech sits low,
// noise close to 1. A silent frame scores 0.
func SpectralFlatness(frame []float64) float64 {
	if len(frame) == 0 {
		return 0.0
	}

	logSum := 0.0
	arithmeticMean := 0.0
	for _, magnitude := range frame {
		arithmeticMean += magnitude
		logSum += math.Log(max(magnitude, flatnessFloor))
	}
	arithmeticMean /= float64(len(frame))

	if arithmeticMean <= flatnessFloor {
		return 0.0
	}

	geometricMean := math.Exp(logSum / float64(len(frame)))
	return min(geometricMean/arithmeticMean, 1.0)
}
