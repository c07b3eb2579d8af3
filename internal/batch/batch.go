package batch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lofimix/internal/logging"
	"lofimix/internal/pipeline"
	"lofimix/internal/processor"
	"lofimix/internal/services"
)

// processedSuffix marks batch outputs so later runs skip them.
const processedSuffix = "_processed"

// Runner executes per-file pipelines across a folder.
type Runner struct {
	proc       *processor.Processor
	logger     *slog.Logger
	jobs       int
	extensions map[string]struct{}
}

// Outcome reports one file's run.
type Outcome struct {
	Source   string
	Output   string
	Err      error
	Duration time.Duration
}

// New constructs a Runner. jobs below 1 is clamped to 1; extensions are
// matched case-insensitively without leading dots.
func New(proc *processor.Processor, logger *slog.Logger, jobs int, extensions []string) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	if jobs < 1 {
		jobs = 1
	}
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			set[ext] = struct{}{}
		}
	}
	return &Runner{proc: proc, logger: logger, jobs: jobs, extensions: set}
}

// Run processes every matching file in dir with the given run configuration.
// Each file gets an independent plan; one file's failure is recorded in its
// Outcome and never aborts the others. The returned slice is ordered by
// source path.
func (r *Runner) Run(ctx context.Context, dir string, cfg pipeline.RunConfig) ([]Outcome, error) {
	sources, err := r.scan(dir)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, services.Wrap(services.ErrMissingSource, "batch", "scan", "no audio files found in "+dir, nil)
	}

	r.logger.Info("batch started",
		logging.String("dir", dir),
		logging.Int("files", len(sources)),
		logging.Int("jobs", r.jobs),
	)

	outcomes := make([]Outcome, len(sources))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.jobs)

	for i, source := range sources {
		i, source := i, source
		group.Go(func() error {
			started := time.Now()
			result, runErr := r.proc.Run(groupCtx, processor.Request{
				Source: source,
				Output: outputPath(source),
				Config: cfg,
			})
			outcome := Outcome{Source: source, Err: runErr, Duration: time.Since(started)}
			if result != nil {
				outcome.Output = result.Output
			}
			outcomes[i] = outcome

			if runErr != nil {
				r.logger.Error("file failed", logging.String("source", source), logging.Error(runErr))
			}
			// Per-file isolation: never propagate into the group.
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return outcomes, err
	}

	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.Err == nil {
			succeeded++
		}
	}
	r.logger.Info("batch completed",
		logging.Int("succeeded", succeeded),
		logging.Int("failed", len(outcomes)-succeeded),
	)
	return outcomes, nil
}

// scan collects matching audio files directly inside dir, skipping previous
// batch outputs.
func (r *Runner) scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrMissingSource, "batch", "read dir", dir, err)
	}

	var sources []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		if _, ok := r.extensions[ext]; !ok {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if strings.HasSuffix(stem, processedSuffix) {
			continue
		}
		sources = append(sources, filepath.Join(dir, name))
	}
	sort.Strings(sources)
	return sources, nil
}

func outputPath(source string) string {
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(filepath.Dir(source), stem+processedSuffix+".wav")
}
