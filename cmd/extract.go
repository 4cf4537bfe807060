package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-mfcc/configs"
	"github.com/RyanBlaney/sonido-mfcc/extractor"
	"github.com/RyanBlaney/sonido-mfcc/logging"
	"github.com/RyanBlaney/sonido-mfcc/transcode"
)

func newExtractCommand(v *viper.Viper) *cobra.Command {
	extractCmd := &cobra.Command{
		Use:   "extract <file.wav>",
		Short: "Extract MFCC and spectral features from a WAV file",
		Long: `Decode a WAV file (first channel), frame it at twice the FFT size and
print every per-frame feature as JSON or YAML.

With --raw-dir the MFCC matrix is also written as headerless little-endian
float32 (<name>.mfcc.raw), plus <name>.delta.raw and <name>.delta_delta.raw
when --deltas is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, v, args[0])
		},
	}

	flags := extractCmd.Flags()
	flags.Int("mfcc-size", 12, "number of cepstral coefficients per frame")
	flags.String("overlap", "50%", "hop between windows as a share of the window")
	flags.String("cutoff", "85%", "energy share for the spectral roll-off point")
	flags.Float64("zcr-threshold", 0, "clipping band for the zero-crossing rate")
	flags.String("window", "rectangular", "analysis window (rectangular, hann, hamming)")
	flags.Float64("pre-emphasis", 0, "pre-emphasis coefficient, e.g. 0.97 (0 disables)")
	flags.Bool("remove-dc", false, "remove the DC offset before framing")
	flags.Int("workers", 0, "concurrent frame workers (0 picks from the CPU count)")
	flags.String("normalization", "none", "per-coefficient normalization across frames (none, cmn, cmvn)")
	flags.Bool("deltas", false, "add delta and delta-delta MFCC sequences")
	flags.Bool("resample", true, "resample input to the filter bank sample rate")
	flags.String("resample-quality", "high", "resampler quality (quick, low, medium, high, very_high)")
	flags.String("raw-dir", "", "directory for raw float32 feature files")
	flags.Bool("include-fft", false, "include the magnitude spectrum of every frame")

	return extractCmd
}

func runExtract(cmd *cobra.Command, v *viper.Viper, path string) error {
	logger := logging.WithFields(logging.Fields{
		"component": "cli",
		"function":  "runExtract",
		"file":      path,
	})

	config, err := configs.LoadConfig(v)
	if err != nil {
		return err
	}
	if err := configs.ValidateConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	options, err := config.ExtractorOptions()
	if err != nil {
		return err
	}

	e, err := extractor.New(options)
	if err != nil {
		return err
	}

	params, err := e.ExtractFile(cmd.Context(), path)
	if err != nil {
		return err
	}

	logger.Info("Extracted features", logging.Fields{
		"frames":      params.FrameCount,
		"sample_rate": params.SampleRate,
	})

	if config.Output.RawDir != "" {
		if err := writeRawFeatures(config, path, params); err != nil {
			return err
		}
	}

	if !config.Output.IncludeFFT {
		params = params.WithoutSpectra()
	}
	return writeParams(cmd.OutOrStdout(), config, params)
}

// writeRawFeatures writes the MFCC matrix and any deltas next to each other
// in the raw directory, named after the input file
func writeRawFeatures(config *configs.Config, path string, params *extractor.Params) error {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	outputs := []struct {
		name   string
		frames [][]float64
	}{
		{base + config.Output.RawSuffix, params.MFCC},
		{base + ".delta.raw", params.Delta},
		{base + ".delta_delta.raw", params.DeltaDelta},
	}

	for _, out := range outputs {
		if out.frames == nil {
			continue
		}
		written, err := transcode.WriteRawFile(config.Output.RawDir, out.name, out.frames)
		if err != nil {
			return err
		}
		logging.Debug("Wrote raw features", logging.Fields{"path": written})
	}
	return nil
}

func writeParams(w io.Writer, config *configs.Config, params *extractor.Params) error {
	switch strings.ToLower(config.OutputFormat) {
	case "none":
		return nil
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(params); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return encoder.Close()
	default:
		encoder := json.NewEncoder(w)
		if config.Output.Pretty {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(params); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}
