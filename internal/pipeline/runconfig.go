package pipeline

import (
	"fmt"

	"lofimix/internal/services"
)

// Documented defaults for the lofi workflow: slow the track by 2.5%, drop the
// pitch by 1%, keep ambience layers quiet, cut harsh mids and boost warmth.
const (
	DefaultTempoRatio  = 0.975
	DefaultPitchRatio  = 0.99
	DefaultRainVolume  = 0.05
	DefaultVinylVolume = 0.03
	DefaultSampleRate  = 44100

	// Recommended bands; values outside are legal but flagged.
	TempoBandLow  = 0.97
	TempoBandHigh = 1.03
	PitchBandLow  = 0.99
	PitchBandHigh = 1.01
)

// DefaultBands returns the stock EQ curve: reduce harsh mids around 3 kHz
// and add low-end warmth at 150 Hz.
func DefaultBands() []Band {
	return []Band{
		{Frequency: 3000, Width: 1, Gain: -3},
		{Frequency: 150, Width: 1, Gain: 2},
	}
}

// RunConfig holds the resolved parameter values for one pipeline execution.
type RunConfig struct {
	TempoRatio  float64
	PitchRatio  float64
	RainAsset   string
	VinylAsset  string
	RainVolume  float64
	VinylVolume float64
	Bands       []Band
	LoopCount   int
	Crossfade   bool
	SkipEQ      bool

	// KeepIntermediates retains per-stage artifacts after the run.
	KeepIntermediates bool

	// SampleRate is the base rate used to derive the pitch resample pair.
	SampleRate int

	// WorkDir receives intermediate artifacts; empty means the source
	// file's directory.
	WorkDir string
}

// DefaultRunConfig returns a RunConfig seeded with the documented defaults.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		TempoRatio:  DefaultTempoRatio,
		PitchRatio:  DefaultPitchRatio,
		RainVolume:  DefaultRainVolume,
		VinylVolume: DefaultVinylVolume,
		Bands:       DefaultBands(),
		Crossfade:   true,
		SampleRate:  DefaultSampleRate,
	}
}

// Validate checks every numeric parameter against its declared range. It
// fails fast with a validation error before any stage runs.
func (c RunConfig) Validate() error {
	if c.TempoRatio <= 0 {
		return services.Wrap(services.ErrValidation, "plan", "tempo", fmt.Sprintf("tempo ratio %v must be positive", c.TempoRatio), nil)
	}
	if c.PitchRatio <= 0 {
		return services.Wrap(services.ErrValidation, "plan", "pitch", fmt.Sprintf("pitch ratio %v must be positive", c.PitchRatio), nil)
	}
	if c.RainVolume < 0 || c.RainVolume > 1 {
		return services.Wrap(services.ErrValidation, "plan", "rain volume", fmt.Sprintf("%v outside [0, 1]", c.RainVolume), nil)
	}
	if c.VinylVolume < 0 || c.VinylVolume > 1 {
		return services.Wrap(services.ErrValidation, "plan", "vinyl volume", fmt.Sprintf("%v outside [0, 1]", c.VinylVolume), nil)
	}
	if c.LoopCount < 0 {
		return services.Wrap(services.ErrValidation, "plan", "loop", fmt.Sprintf("loop count %d must not be negative", c.LoopCount), nil)
	}
	if c.SampleRate <= 0 {
		return services.Wrap(services.ErrValidation, "plan", "sample rate", fmt.Sprintf("%d must be positive", c.SampleRate), nil)
	}
	for i, band := range c.Bands {
		if band.Frequency <= 0 {
			return services.Wrap(services.ErrValidation, "plan", "eq", fmt.Sprintf("band %d frequency %v must be positive", i, band.Frequency), nil)
		}
		if band.Width <= 0 {
			return services.Wrap(services.ErrValidation, "plan", "eq", fmt.Sprintf("band %d width %v must be positive", i, band.Width), nil)
		}
	}
	return nil
}

// Warnings reports parameters that validate but sit outside the recommended
// bands. These runs proceed; the caller decides how loudly to flag them.
func (c RunConfig) Warnings() []string {
	var warnings []string
	if c.TempoRatio < TempoBandLow || c.TempoRatio > TempoBandHigh {
		warnings = append(warnings, fmt.Sprintf("tempo ratio %v is outside the recommended band %v-%v", c.TempoRatio, TempoBandLow, TempoBandHigh))
	}
	if c.PitchRatio < PitchBandLow || c.PitchRatio > PitchBandHigh {
		warnings = append(warnings, fmt.Sprintf("pitch ratio %v is outside the recommended band %v-%v", c.PitchRatio, PitchBandLow, PitchBandHigh))
	}
	return warnings
}
