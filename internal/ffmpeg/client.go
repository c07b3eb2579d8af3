package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"lofimix/internal/pipeline"
	"lofimix/internal/services"
)

// diagnosticLines bounds how much engine output is carried into an error.
const diagnosticLines = 12

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps FFmpeg CLI interactions for pipeline stages and noise
// synthesis.
type Client struct {
	binary       string
	stageTimeout time.Duration
	exec         Executor
}

// New constructs an FFmpeg client. stageTimeoutSeconds bounds a single
// invocation; zero disables the bound.
func New(binary string, stageTimeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, services.Wrap(services.ErrConfiguration, "ffmpeg", "new", "binary required", nil)
	}
	client := &Client{
		binary:       binary,
		stageTimeout: time.Duration(stageTimeoutSeconds) * time.Second,
		exec:         commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Process executes one pipeline stage and blocks until the engine exits.
func (c *Client) Process(ctx context.Context, inv pipeline.Invocation) error {
	args, err := Arguments(inv)
	if err != nil {
		return err
	}
	return c.Execute(ctx, string(inv.Kind), args)
}

// Synthesize produces an ambience asset from the noise source.
func (c *Client) Synthesize(ctx context.Context, spec NoiseSpec) error {
	args, err := NoiseArguments(spec)
	if err != nil {
		return err
	}
	return c.Execute(ctx, "noise", args)
}

// Execute runs the engine with the given arguments, tagging failures with
// the stage name and the tail of the engine's diagnostic output.
func (c *Client) Execute(ctx context.Context, stage string, args []string) error {
	runCtx := ctx
	if c.stageTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.stageTimeout)
		defer cancel()
	}

	var mu sync.Mutex
	tail := make([]string, 0, diagnosticLines)
	record := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if len(tail) == diagnosticLines {
			copy(tail, tail[1:])
			tail = tail[:diagnosticLines-1]
		}
		tail = append(tail, line)
	}

	if err := c.exec.Run(runCtx, c.binary, args, record); err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrStageExecution, stage, "ffmpeg", fmt.Sprintf("timed out after %s", c.stageTimeout), err)
		}
		mu.Lock()
		detail := strings.Join(tail, " | ")
		mu.Unlock()
		return services.Wrap(services.ErrStageExecution, stage, "ffmpeg", detail, err)
	}
	return nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			if onLine != nil {
				onLine(scanner.Text())
			}
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
