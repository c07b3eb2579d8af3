package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lofimix/internal/config"
	"lofimix/internal/pipeline"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Defaults.Tempo != 0.975 || cfg.Defaults.Pitch != 0.99 {
		t.Fatalf("unexpected defaults: tempo %v pitch %v", cfg.Defaults.Tempo, cfg.Defaults.Pitch)
	}
	if len(cfg.EQ.Bands) != 2 {
		t.Fatalf("expected two stock EQ bands, got %d", len(cfg.EQ.Bands))
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("file should not exist")
	}
	if cfg.Engine.FFmpegBinary != "ffmpeg" {
		t.Fatalf("expected default binary, got %q", cfg.Engine.FFmpegBinary)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lofimix.toml")
	body := `
[defaults]
tempo = 0.98
pitch = 1.0

[engine]
ffmpeg_binary = "/opt/ffmpeg/bin/ffmpeg"
stage_timeout = 120

[batch]
jobs = 4
extensions = [".MP3", "wav"]

[[eq.bands]]
frequency = 2500.0
width = 0.8
gain = -4.0
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected existing config, got exists=%v path=%q", exists, resolved)
	}
	if cfg.Defaults.Tempo != 0.98 {
		t.Fatalf("tempo override lost: %v", cfg.Defaults.Tempo)
	}
	if cfg.Engine.FFmpegBinary != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("binary override lost: %q", cfg.Engine.FFmpegBinary)
	}
	if got := cfg.Batch.Extensions; len(got) != 2 || got[0] != "mp3" || got[1] != "wav" {
		t.Fatalf("extensions not normalized: %v", got)
	}
	if len(cfg.EQ.Bands) != 1 || cfg.EQ.Bands[0].Frequency != 2500 {
		t.Fatalf("eq bands override lost: %v", cfg.EQ.Bands)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"zero tempo", "[defaults]\ntempo = 0.0\n", "defaults.tempo"},
		{"volume above one", "[defaults]\nrain_volume = 1.5\n", "defaults.rain_volume"},
		{"zero jobs", "[batch]\njobs = 0\n", "batch.jobs"},
		{"bad log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"negative timeout", "[engine]\nstage_timeout = -1\n", "engine.stage_timeout"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestRunConfigFromDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.AssetDir = "/assets"
	cfg.Paths.WorkDir = "/work"

	run := cfg.RunConfig()
	if run.TempoRatio != cfg.Defaults.Tempo {
		t.Fatalf("tempo not carried: %v", run.TempoRatio)
	}
	if run.RainAsset != filepath.Join("/assets", "rain.wav") {
		t.Fatalf("rain asset path %q", run.RainAsset)
	}
	if run.WorkDir != "/work" {
		t.Fatalf("work dir %q", run.WorkDir)
	}
	if err := run.Validate(); err != nil {
		t.Fatalf("derived run config should validate: %v", err)
	}
}

func TestCreateSampleParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config must load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("sample config should exist")
	}
	// The sample keeps everything commented, so defaults apply.
	if cfg.Defaults.Tempo != pipeline.DefaultTempoRatio {
		t.Fatalf("sample should not change defaults: %v", cfg.Defaults.Tempo)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.AssetDir = filepath.Join(base, "assets")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.WorkDir, cfg.Paths.AssetDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("directory %q missing: %v", dir, err)
		}
	}
}
