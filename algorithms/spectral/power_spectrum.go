package spectral

// PowerSpectrum estimates the power spectral density from FFT amplitudes,
// a[i]^2 / len(a). It normalizes raw FFT magnitudes before filter bank
// application when no power estimate is available.
func PowerSpectrum(amplitudes []float64) []float64 {
	if len(amplitudes) == 0 {
		return []float64{}
	}

	n := float64(len(amplitudes))
	power := make([]float64, len(amplitudes))
	for i, a := range amplitudes {
		power[i] = a * a / n
	}

	return power
}

// PowerSpectrumFrames applies PowerSpectrum to every frame
func PowerSpectrumFrames(spectrogram [][]float64) [][]float64 {
	power := make([][]float64, len(spectrogram))
	for t, amplitudes := range spectrogram {
		power[t] = PowerSpectrum(amplitudes)
	}
	return power
}
