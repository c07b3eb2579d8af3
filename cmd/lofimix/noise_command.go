package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lofimix/internal/noise"
)

func newNoiseCommand(ctx *commandContext) *cobra.Command {
	var rainOnly, vinylOnly bool
	var duration int
	var rainOutput, vinylOutput string

	cmd := &cobra.Command{
		Use:   "noise",
		Short: "Generate rain and vinyl ambience assets",
		Long:  "Synthesizes the rain.wav and vinyl.wav ambience assets from shaped white noise. Without --rain or --vinyl both are generated into the configured asset directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			engine, err := ctx.engine()
			if err != nil {
				return err
			}

			gen := noise.New(engine, logger)
			both := !rainOnly && !vinylOnly

			rainPath := rainOutput
			if rainPath == "" {
				rainPath = filepath.Join(cfg.Paths.AssetDir, "rain.wav")
			}
			vinylPath := vinylOutput
			if vinylPath == "" {
				vinylPath = filepath.Join(cfg.Paths.AssetDir, "vinyl.wav")
			}

			out := cmd.OutOrStdout()
			if rainOnly || both {
				if err := gen.Generate(cmd.Context(), noise.RainSpec(rainPath, duration)); err != nil {
					return err
				}
				fmt.Fprintf(out, "Rain ambience written to %s\n", rainPath)
			}
			if vinylOnly || both {
				if err := gen.Generate(cmd.Context(), noise.VinylSpec(vinylPath, duration)); err != nil {
					return err
				}
				fmt.Fprintf(out, "Vinyl texture written to %s\n", vinylPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rainOnly, "rain", false, "Generate only the rain asset")
	cmd.Flags().BoolVar(&vinylOnly, "vinyl", false, "Generate only the vinyl asset")
	cmd.Flags().IntVar(&duration, "duration", noise.DefaultDuration, "Asset duration in seconds")
	cmd.Flags().StringVar(&rainOutput, "rain-output", "", "Output path for the rain asset")
	cmd.Flags().StringVar(&vinylOutput, "vinyl-output", "", "Output path for the vinyl asset")
	return cmd
}
