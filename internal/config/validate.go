package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDefaults(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDefaults() error {
	if c.Defaults.Tempo <= 0 {
		return errors.New("defaults.tempo must be positive")
	}
	if c.Defaults.Pitch <= 0 {
		return errors.New("defaults.pitch must be positive")
	}
	if c.Defaults.RainVolume < 0 || c.Defaults.RainVolume > 1 {
		return errors.New("defaults.rain_volume must be between 0 and 1")
	}
	if c.Defaults.VinylVolume < 0 || c.Defaults.VinylVolume > 1 {
		return errors.New("defaults.vinyl_volume must be between 0 and 1")
	}
	if c.Defaults.SampleRate <= 0 {
		return errors.New("defaults.sample_rate must be positive")
	}
	for i, band := range c.EQ.Bands {
		if band.Frequency <= 0 {
			return fmt.Errorf("eq.bands[%d].frequency must be positive", i)
		}
		if band.Width <= 0 {
			return fmt.Errorf("eq.bands[%d].width must be positive", i)
		}
	}
	return nil
}

func (c *Config) validateEngine() error {
	if strings.TrimSpace(c.Engine.FFmpegBinary) == "" {
		return errors.New("engine.ffmpeg_binary must be set")
	}
	if c.Engine.StageTimeout < 0 {
		return errors.New("engine.stage_timeout must not be negative (seconds)")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Jobs < 1 {
		return errors.New("batch.jobs must be at least 1")
	}
	if len(c.Batch.Extensions) == 0 {
		return errors.New("batch.extensions must include at least one extension")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported", c.Logging.Level)
	}
	return nil
}
