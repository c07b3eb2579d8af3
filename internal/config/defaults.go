package config

import "lofimix/internal/pipeline"

const (
	defaultWorkDir      = "~/.local/share/lofimix/work"
	defaultAssetDir     = "~/.local/share/lofimix/assets"
	defaultLogDir       = "~/.local/share/lofimix/logs"
	defaultFFmpegBinary = "ffmpeg"
	defaultStageTimeout = 1800
	defaultBatchJobs    = 2
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

func defaultExtensions() []string {
	return []string{"mp3", "wav", "flac", "m4a", "aac", "ogg"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:  defaultWorkDir,
			AssetDir: defaultAssetDir,
			LogDir:   defaultLogDir,
		},
		Defaults: Defaults{
			Tempo:       pipeline.DefaultTempoRatio,
			Pitch:       pipeline.DefaultPitchRatio,
			RainVolume:  pipeline.DefaultRainVolume,
			VinylVolume: pipeline.DefaultVinylVolume,
			SampleRate:  pipeline.DefaultSampleRate,
		},
		EQ: EQ{
			Bands: pipeline.DefaultBands(),
		},
		Engine: Engine{
			FFmpegBinary: defaultFFmpegBinary,
			StageTimeout: defaultStageTimeout,
		},
		Batch: Batch{
			Jobs:       defaultBatchJobs,
			Extensions: defaultExtensions(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
