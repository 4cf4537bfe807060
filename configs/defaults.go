package configs

import (
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/spectral"
)

// setDefaults registers a default for every key so Unmarshal and
// AutomaticEnv see the full key set
func setDefaults(v *viper.Viper) {
	mel := spectral.DefaultMelConfig()

	// Application defaults
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", "json")

	// Mel filter bank defaults (16 kHz speech)
	v.SetDefault("mel.fft_size", mel.FFTSize)
	v.SetDefault("mel.bank_count", mel.BankCount)
	v.SetDefault("mel.low_frequency", mel.LowFrequency)
	v.SetDefault("mel.high_frequency", mel.HighFrequency)
	v.SetDefault("mel.sample_rate", mel.SampleRate)

	// Extraction defaults
	v.SetDefault("extract.mfcc_size", spectral.DefaultMFCCSize)
	v.SetDefault("extract.overlap", "50%")
	v.SetDefault("extract.cutoff", "85%")
	v.SetDefault("extract.zcr_threshold", 0.0)
	v.SetDefault("extract.window", "rectangular")
	v.SetDefault("extract.pre_emphasis", 0.0)
	v.SetDefault("extract.remove_dc", false)
	v.SetDefault("extract.workers", 0)
	v.SetDefault("extract.normalization", "none")
	v.SetDefault("extract.deltas", false)
	v.SetDefault("extract.resample", true)
	v.SetDefault("extract.resample_quality", "high")

	// Output defaults
	v.SetDefault("output.raw_dir", "")
	v.SetDefault("output.include_fft", false)
	v.SetDefault("output.pretty", true)
	v.SetDefault("output.raw_suffix", ".mfcc.raw")
}
