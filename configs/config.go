package configs

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/spectral"
	"github.com/RyanBlaney/sonido-mfcc/extractor"
	"github.com/RyanBlaney/sonido-mfcc/logging"
)

// EnvPrefix prefixes every environment override, e.g. SONIDO_MFCC_MEL_FFT_SIZE
const EnvPrefix = "SONIDO_MFCC"

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Mel filter bank
	Mel spectral.MelConfig `mapstructure:"mel"`

	// Feature extraction
	Extract ExtractConfig `mapstructure:"extract"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`
}

// ExtractConfig contains feature extraction settings. Percentages stay
// strings here and are parsed once by ExtractorOptions.
type ExtractConfig struct {
	MFCCSize        int     `mapstructure:"mfcc_size"`
	Overlap         string  `mapstructure:"overlap"`
	Cutoff          string  `mapstructure:"cutoff"`
	ZCRThreshold    float64 `mapstructure:"zcr_threshold"`
	Window          string  `mapstructure:"window"`
	PreEmphasis     float64 `mapstructure:"pre_emphasis"`
	RemoveDC        bool    `mapstructure:"remove_dc"`
	Workers         int     `mapstructure:"workers"`
	Normalization   string  `mapstructure:"normalization"`
	Deltas          bool    `mapstructure:"deltas"`
	Resample        bool    `mapstructure:"resample"`
	ResampleQuality string  `mapstructure:"resample_quality"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	RawDir     string `mapstructure:"raw_dir"`
	IncludeFFT bool   `mapstructure:"include_fft"`
	Pretty     bool   `mapstructure:"pretty"`
	RawSuffix  string `mapstructure:"raw_suffix"`
}

// LoadConfig decodes v (the global viper when nil) after applying defaults
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	setDefaults(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// NewViper returns a viper instance reading SONIDO_MFCC_* environment
// overrides, with defaults applied
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if _, err := logging.ParseLevel(config.LogLevel); err != nil {
		return err
	}

	switch strings.ToLower(config.OutputFormat) {
	case "json", "yaml", "none":
	default:
		return fmt.Errorf("output format must be json, yaml or none, got %q", config.OutputFormat)
	}

	if config.Extract.MFCCSize < 0 {
		return fmt.Errorf("mfcc size cannot be negative")
	}

	if config.Extract.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}

	options, err := config.ExtractorOptions()
	if err != nil {
		return err
	}
	return options.Validate()
}

// ExtractorOptions converts the configuration into extractor options
func (c *Config) ExtractorOptions() (extractor.Options, error) {
	overlap, err := common.ParsePercent(c.Extract.Overlap)
	if err != nil {
		return extractor.Options{}, fmt.Errorf("extract.overlap: %w", err)
	}

	cutoff, err := common.ParsePercent(c.Extract.Cutoff)
	if err != nil {
		return extractor.Options{}, fmt.Errorf("extract.cutoff: %w", err)
	}

	return extractor.Options{
		Mel:             c.Mel,
		MFCCSize:        c.Extract.MFCCSize,
		Overlap:         overlap,
		Cutoff:          cutoff,
		ZCRThreshold:    c.Extract.ZCRThreshold,
		Window:          c.Extract.Window,
		PreEmphasis:     c.Extract.PreEmphasis,
		RemoveDC:        c.Extract.RemoveDC,
		Workers:         c.Extract.Workers,
		Normalization:   c.Extract.Normalization,
		Deltas:          c.Extract.Deltas,
		Resample:        c.Extract.Resample,
		ResampleQuality: c.Extract.ResampleQuality,
	}, nil
}
