package spectral

import (
	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

// SpectralRollOffPoint accumulates the energy of the frame bin by bin and
// returns the index of the bin at which the running sum reaches cutoff of
// the total (85% is the usual cutoff). With asHz the index is converted with
// sampleRate / (2 * len(frame)).
//
// A cutoff of 100% returns the last index when the last bin carries energy.
// A silent frame returns 0; a cutoff above 100% returns the last index.
func SpectralRollOffPoint(frame []float64, sampleRate int, cutoff common.Ratio, asHz bool) float64 {
	if len(frame) == 0 {
		return 0
	}

	total := 0.0
	for _, x := range frame {
		total += x
	}

	target := cutoff.Float() * total
	index := len(frame) - 1
	running := 0.0
	for i, x := range frame {
		running += x
		if running >= target {
			index = i
			break
		}
	}

	if asHz {
		return float64(sampleRate) / (2.0 * float64(len(frame))) * float64(index)
	}
	return float64(index)
}

// SpectralRollOffFrames computes SpectralRollOffPoint (as bin index) for
// every frame
func SpectralRollOffFrames(spectrogram [][]float64, sampleRate int, cutoff common.Ratio) []float64 {
	rolloffs := make([]float64, len(spectrogram))
	for t, spectrum := range spectrogram {
		rolloffs[t] = SpectralRollOffPoint(spectrum, sampleRate, cutoff, false)
	}
	return rolloffs
}
