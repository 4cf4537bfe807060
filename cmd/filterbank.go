package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/spectral"
	"github.com/RyanBlaney/sonido-mfcc/configs"
)

func newFilterBankCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "filterbank",
		Short: "Print the peaks and supports of the configured mel filter bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := configs.LoadConfig(v)
			if err != nil {
				return err
			}

			bank, err := spectral.NewFilterBank(config.Mel)
			if err != nil {
				return fmt.Errorf("failed to build filter bank: %w", err)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), bank.Describe(config.Mel.SampleRate))
			return err
		},
	}
}
