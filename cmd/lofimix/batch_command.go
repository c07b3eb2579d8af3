package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"lofimix/internal/batch"
	"lofimix/internal/processor"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var flags pipelineFlags
	var jobsFlag int

	cmd := &cobra.Command{
		Use:   "batch <folder>",
		Short: "Process every audio file in a folder",
		Long:  "Runs an independent pipeline for each audio file in the folder. Files run in parallel up to --jobs; one file's failure never stops the others.",
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

			dir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve folder path: %w", err)
			}

			jobs := cfg.Batch.Jobs
			if cmd.Flags().Changed("jobs") {
				jobs = jobsFlag
			}

			run := flags.apply(cmd, cfg.RunConfig())
			// Intermediates live next to each source in folder mode so
			// outputs stay with their inputs.
			run.WorkDir = ""

			runner := batch.New(processor.New(engine, logger), logger, jobs, cfg.Batch.Extensions)
			outcomes, err := runner.Run(cmd.Context(), dir, run)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(outcomes))
			failed := 0
			for _, outcome := range outcomes {
				status := "ok"
				detail := outcome.Output
				if outcome.Err != nil {
					failed++
					status = "failed"
					detail = outcome.Err.Error()
				}
				rows = append(rows, []string{
					filepath.Base(outcome.Source),
					status,
					outcome.Duration.Round(time.Millisecond).String(),
					detail,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Status", "Duration", "Result"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d/%d files processed successfully\n", len(outcomes)-failed, len(outcomes))
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(outcomes))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&jobsFlag, "jobs", 0, "Number of files to process in parallel (default from config)")
	return cmd
}
