package processor

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"lofimix/internal/fileutil"
	"lofimix/internal/logging"
	"lofimix/internal/pipeline"
	"lofimix/internal/services"
)

// Engine runs one resolved stage invocation to completion.
type Engine interface {
	Process(ctx context.Context, inv pipeline.Invocation) error
}

// Request describes one pipeline execution.
type Request struct {
	Source string
	// Output is the destination for the final artifact; empty derives
	// <stem>_processed.wav next to the source.
	Output string
	Config pipeline.RunConfig
}

// StageResult records one completed stage.
type StageResult struct {
	Kind     pipeline.Kind
	Output   string
	Duration time.Duration
}

// Result summarizes a completed run.
type Result struct {
	Source   string
	Output   string
	RunID    string
	Stages   []StageResult
	Duration time.Duration
}

// Processor drives plans through the engine sequentially.
type Processor struct {
	engine Engine
	logger *slog.Logger
}

// New constructs a Processor. A nil logger is replaced with a no-op one.
func New(engine Engine, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{engine: engine, logger: logger}
}

// Run plans and executes the pipeline for one source file.
func (p *Processor) Run(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()

	plan, err := pipeline.Plan(req.Config, req.Source)
	if err != nil {
		return nil, err
	}

	runID := shortRunID()
	ctx = services.WithSource(ctx, req.Source)
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, p.logger)

	for _, warning := range req.Config.Warnings() {
		logger.Warn("parameter outside recommended band", logging.String("detail", warning))
	}

	workDir := strings.TrimSpace(req.Config.WorkDir)
	if workDir == "" {
		workDir = filepath.Dir(req.Source)
	}
	stem := strings.TrimSuffix(filepath.Base(req.Source), filepath.Ext(req.Source))

	// One run per source at a time: concurrent runs would overwrite each
	// other's intermediates, which share the source stem.
	lock := flock.New(filepath.Join(workDir, "."+stem+".lofimix.lock"))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "run", "lock", "acquire work dir lock", err)
	}
	if !acquired {
		return nil, services.Wrap(services.ErrConfiguration, "run", "lock", "another run is already processing "+req.Source, nil)
	}
	defer func() {
		_ = lock.Unlock()
		_ = fileutil.RemoveIfExists(lock.Path())
	}()

	output := strings.TrimSpace(req.Output)
	if output == "" {
		output = filepath.Join(filepath.Dir(req.Source), stem+"_processed.wav")
	}

	result := &Result{Source: req.Source, Output: output, RunID: runID}

	logger.Info("pipeline started",
		logging.String(logging.FieldEventType, "pipeline_start"),
		logging.Int("stages", len(plan)),
		logging.String("output", output),
	)

	for _, inv := range plan {
		stageCtx := services.WithStage(ctx, string(inv.Kind))
		stageLogger := logging.WithContext(stageCtx, p.logger)

		stageLogger.Info("stage started",
			logging.String(logging.FieldEventType, "stage_start"),
			logging.String("input", inv.Input),
			logging.String("output", inv.Output),
		)

		stageStart := time.Now()
		if err := p.engine.Process(stageCtx, inv); err != nil {
			stageLogger.Error("stage failed",
				logging.String(logging.FieldEventType, "stage_failure"),
				logging.Error(err),
			)
			if !req.Config.KeepIntermediates {
				p.removeArtifacts(stageLogger, produced(result.Stages), inv.Output)
			}
			return nil, err
		}

		elapsed := time.Since(stageStart)
		result.Stages = append(result.Stages, StageResult{Kind: inv.Kind, Output: inv.Output, Duration: elapsed})
		stageLogger.Info("stage completed",
			logging.String(logging.FieldEventType, "stage_complete"),
			logging.Duration("duration", elapsed),
		)
	}

	if err := p.finalize(logger, plan, result, req.Config.KeepIntermediates); err != nil {
		return nil, err
	}

	result.Duration = time.Since(started)
	logger.Info("pipeline completed",
		logging.String(logging.FieldEventType, "pipeline_complete"),
		logging.String("output", result.Output),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

// finalize moves the last artifact to the requested output and removes the
// remaining intermediates unless retention was requested.
func (p *Processor) finalize(logger *slog.Logger, plan []pipeline.Invocation, result *Result, keep bool) error {
	final := plan[len(plan)-1].Output
	if final != result.Output {
		if err := fileutil.MoveFile(final, result.Output); err != nil {
			return services.Wrap(services.ErrStageExecution, "finalize", "move output", result.Output, err)
		}
	}
	if !keep {
		intermediates := make([]string, 0, len(plan)-1)
		for _, inv := range plan[:len(plan)-1] {
			intermediates = append(intermediates, inv.Output)
		}
		p.removeArtifacts(logger, intermediates, "")
	}
	return nil
}

// removeArtifacts deletes produced stage outputs, plus the possibly partial
// artifact of a failed stage.
func (p *Processor) removeArtifacts(logger *slog.Logger, paths []string, partial string) {
	if partial != "" {
		paths = append(paths, partial)
	}
	for _, path := range paths {
		if err := fileutil.RemoveIfExists(path); err != nil {
			logger.Warn("could not remove intermediate file",
				logging.String("path", path),
				logging.Error(err),
			)
		}
	}
}

func produced(stages []StageResult) []string {
	paths := make([]string, 0, len(stages))
	for _, stage := range stages {
		paths = append(paths, stage.Output)
	}
	return paths
}

func shortRunID() string {
	id := uuid.NewString()
	return strings.ReplaceAll(id, "-", "")[:12]
}
