package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"lofimix/internal/pipeline"
	"lofimix/internal/processor"
)

// pipelineFlags collects the parameter overrides shared by process and batch.
type pipelineFlags struct {
	tempo            float64
	pitch            float64
	rain             string
	vinyl            string
	rainVolume       float64
	vinylVolume      float64
	loop             int
	noCrossfade      bool
	skipEQ           bool
	keepIntermediate bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.tempo, "tempo", 0, "Tempo factor (default from config, 0.975 = -2.5%)")
	cmd.Flags().Float64Var(&f.pitch, "pitch", 0, "Pitch factor (default from config, 0.99 = -1%)")
	cmd.Flags().StringVar(&f.rain, "rain", "", "Rain ambience file (default: rain.wav in the asset dir; skipped if absent)")
	cmd.Flags().StringVar(&f.vinyl, "vinyl", "", "Vinyl noise file (default: vinyl.wav in the asset dir; skipped if absent)")
	cmd.Flags().Float64Var(&f.rainVolume, "rain-volume", 0, "Rain mix volume (0-1)")
	cmd.Flags().Float64Var(&f.vinylVolume, "vinyl-volume", 0, "Vinyl mix volume (0-1)")
	cmd.Flags().IntVar(&f.loop, "loop", 0, "Loop repeat count for long videos (0 = no loop)")
	cmd.Flags().BoolVar(&f.noCrossfade, "no-crossfade", false, "Disable crossfade preference when looping")
	cmd.Flags().BoolVar(&f.skipEQ, "skip-eq", false, "Skip the EQ stage (not recommended)")
	cmd.Flags().BoolVar(&f.keepIntermediate, "keep-intermediate", false, "Keep intermediate stage files")
}

// apply merges flag overrides into the config-derived run configuration.
func (f *pipelineFlags) apply(cmd *cobra.Command, run pipeline.RunConfig) pipeline.RunConfig {
	if cmd.Flags().Changed("tempo") {
		run.TempoRatio = f.tempo
	}
	if cmd.Flags().Changed("pitch") {
		run.PitchRatio = f.pitch
	}
	if cmd.Flags().Changed("rain") {
		run.RainAsset = f.rain
	}
	if cmd.Flags().Changed("vinyl") {
		run.VinylAsset = f.vinyl
	}
	if cmd.Flags().Changed("rain-volume") {
		run.RainVolume = f.rainVolume
	}
	if cmd.Flags().Changed("vinyl-volume") {
		run.VinylVolume = f.vinylVolume
	}
	run.LoopCount = f.loop
	run.Crossfade = !f.noCrossfade
	run.SkipEQ = f.skipEQ
	run.KeepIntermediates = f.keepIntermediate
	return run
}

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var flags pipelineFlags
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "process <input>",
		Short: "Run one audio file through the pipeline",
		Args:  cobra.ExactArgs(1),
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

			source, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}

			proc := processor.New(engine, logger)
			result, err := proc.Run(cmd.Context(), processor.Request{
				Source: source,
				Output: outputFlag,
				Config: flags.apply(cmd, cfg.RunConfig()),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Processed %s in %s\n", filepath.Base(source), result.Duration.Round(time.Millisecond))
			fmt.Fprintf(out, "Output: %s\n", result.Output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file name (default: <name>_processed.wav)")
	return cmd
}
