package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-mfcc/configs"
	"github.com/RyanBlaney/sonido-mfcc/logging"
)

// flagKeys maps flag names onto nested config keys. Flags not listed bind to
// their own name with dashes replaced by underscores.
var flagKeys = map[string]string{
	"output":           "output_format",
	"fft-size":         "mel.fft_size",
	"bank-count":       "mel.bank_count",
	"low-frequency":    "mel.low_frequency",
	"high-frequency":   "mel.high_frequency",
	"sample-rate":      "mel.sample_rate",
	"mfcc-size":        "extract.mfcc_size",
	"overlap":          "extract.overlap",
	"cutoff":           "extract.cutoff",
	"zcr-threshold":    "extract.zcr_threshold",
	"window":           "extract.window",
	"pre-emphasis":     "extract.pre_emphasis",
	"remove-dc":        "extract.remove_dc",
	"workers":          "extract.workers",
	"normalization":    "extract.normalization",
	"deltas":           "extract.deltas",
	"resample":         "extract.resample",
	"resample-quality": "extract.resample_quality",
	"raw-dir":          "output.raw_dir",
	"include-fft":      "output.include_fft",
}

// NewRootCommand builds the command tree around its own viper instance
func NewRootCommand() *cobra.Command {
	v := configs.NewViper()
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "sonido-mfcc",
		Short: "MFCC and acoustic feature extraction for speech audio",
		Long: `Extract mel-frequency cepstral coefficients and companion spectral
features from WAV files.

Per frame the extractor reports:
- MFCC vectors over a configurable mel filter bank
- Zero-crossing rate, spectral centroid and roll-off
- Short-time energy and the low-energy ratio
- Optional delta and delta-delta MFCC sequences`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfigFile(v, configFile); err != nil {
				return err
			}
			if err := bindFlags(cmd, v); err != nil {
				return err
			}
			return configureLogging(v, cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/sonido-mfcc/sonido-mfcc.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.StringP("output", "o", "json", "output format (json, yaml, none)")

	// Mel filter bank
	flags.Int("fft-size", 32, "spectrum bins per frame; the analysis window is twice this")
	flags.Int("bank-count", 24, "number of triangular mel filters")
	flags.Float64("low-frequency", 1, "lowest filter center in Hz")
	flags.Float64("high-frequency", 8000, "highest filter center in Hz")
	flags.Int("sample-rate", 16000, "sample rate the filter bank is designed for")

	rootCmd.AddCommand(newExtractCommand(v))
	rootCmd.AddCommand(newFilterBankCommand(v))
	rootCmd.AddCommand(newResampleCommand(v))

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// readConfigFile reads the explicit config file, or the first sonido-mfcc.yaml
// found on the search path
func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "sonido-mfcc"))
	}
	v.AddConfigPath("/etc/sonido-mfcc")
	v.AddConfigPath("./configs")
	v.SetConfigName("sonido-mfcc")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// configureLogging installs a stderr logger at the configured level so
// stdout carries only results
func configureLogging(v *viper.Viper, stderr io.Writer) error {
	level, err := logging.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return err
	}
	if v.GetBool("verbose") && level > logging.DebugLevel {
		level = logging.DebugLevel
	}

	logger := logging.NewDefaultLoggerWithWriters(stderr, stderr, false)
	logger.SetLevel(level)
	logging.SetGlobalLogger(logger)
	return nil
}

// bindFlags binds each cobra flag to its associated viper configuration
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" {
			return
		}

		key, ok := flagKeys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(key) {
			val := v.Get(key)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				lastErr = err
			}
		}

		// Bind the flag to viper
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}
