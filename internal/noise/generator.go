// Package noise synthesizes the rain and vinyl ambience assets layered into
// the mix. Both are shaped white noise from FFmpeg's anoisesrc source: rain
// keeps the low band, vinyl crackle the high band. Fixed seeds make the
// assets reproducible.
package noise

import (
	"context"
	"log/slog"
	"path/filepath"

	"lofimix/internal/ffmpeg"
	"lofimix/internal/logging"
)

// DefaultDuration is the asset length in seconds when the caller does not
// choose one. Sixty seconds loops cleanly under amix.
const DefaultDuration = 60

// Engine executes a synthesis argument vector.
type Engine interface {
	Synthesize(ctx context.Context, spec ffmpeg.NoiseSpec) error
}

// Generator produces ambience assets through the engine.
type Generator struct {
	engine Engine
	logger *slog.Logger
}

// New constructs a Generator. A nil logger is replaced with a no-op one.
func New(engine Engine, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generator{engine: engine, logger: logger}
}

// RainSpec describes the rain ambience: low-passed noise with the hiss
// removed, kept quiet.
func RainSpec(output string, duration int) ffmpeg.NoiseSpec {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return ffmpeg.NoiseSpec{
		Output:   output,
		Duration: duration,
		Seed:     42,
		Filter:   "lowpass=f=2000,highpass=f=200,volume=0.3",
	}
}

// VinylSpec describes the vinyl texture: band-passed noise emphasizing
// crackle frequencies, even quieter than rain.
func VinylSpec(output string, duration int) ffmpeg.NoiseSpec {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return ffmpeg.NoiseSpec{
		Output:   output,
		Duration: duration,
		Seed:     123,
		Filter:   "highpass=f=1000,lowpass=f=8000,volume=0.2",
	}
}

// Generate synthesizes one asset.
func (g *Generator) Generate(ctx context.Context, spec ffmpeg.NoiseSpec) error {
	g.logger.Info("generating ambience asset",
		logging.String("output", spec.Output),
		logging.Int("duration", spec.Duration),
	)
	if err := g.engine.Synthesize(ctx, spec); err != nil {
		return err
	}
	g.logger.Info("ambience asset ready", logging.String("output", spec.Output))
	return nil
}

// GenerateDefaults writes rain.wav and vinyl.wav into dir.
func (g *Generator) GenerateDefaults(ctx context.Context, dir string, duration int) error {
	if err := g.Generate(ctx, RainSpec(filepath.Join(dir, "rain.wav"), duration)); err != nil {
		return err
	}
	return g.Generate(ctx, VinylSpec(filepath.Join(dir, "vinyl.wav"), duration))
}
