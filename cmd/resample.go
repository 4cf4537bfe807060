package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-mfcc/configs"
	"github.com/RyanBlaney/sonido-mfcc/logging"
	"github.com/RyanBlaney/sonido-mfcc/transcode"
)

func newResampleCommand(v *viper.Viper) *cobra.Command {
	resampleCmd := &cobra.Command{
		Use:   "resample <in.wav> <out.wav>",
		Short: "Convert a WAV file to the filter bank sample rate",
		Long: `Decode the first channel of a WAV file, resample it to the configured
mel.sample_rate and write it back as 16-bit mono PCM. Useful to inspect
exactly what the extractor analyses.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResample(v, args[0], args[1])
		},
	}

	resampleCmd.Flags().String("resample-quality", "high", "resampler quality (quick, low, medium, high, very_high)")

	return resampleCmd
}

func runResample(v *viper.Viper, input, output string) error {
	logger := logging.WithFields(logging.Fields{
		"component": "cli",
		"function":  "runResample",
		"input":     input,
		"output":    output,
	})

	config, err := configs.LoadConfig(v)
	if err != nil {
		return err
	}
	if err := config.Mel.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	decoderConfig := transcode.DefaultDecoderConfig()
	decoderConfig.TargetSampleRate = config.Mel.SampleRate
	decoderConfig.ResampleQuality = config.Extract.ResampleQuality

	audio, err := transcode.NewDecoder(decoderConfig).DecodeFile(input)
	if err != nil {
		return err
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer file.Close()

	if err := transcode.EncodeWAV(file, audio.PCM, audio.SampleRate); err != nil {
		return err
	}

	logger.Info("Wrote resampled audio", logging.Fields{
		"from":      audio.SourceSampleRate,
		"to":        audio.SampleRate,
		"resampled": audio.Resampled,
		"duration":  audio.Duration.String(),
	})
	return file.Close()
}
