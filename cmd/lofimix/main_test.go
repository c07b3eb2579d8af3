package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"lofimix/internal/config"
	"lofimix/internal/testsupport"
)

// newTestEnvironment builds a config with temp directories and a stubbed
// ffmpeg on PATH, written out as a TOML file for the --config flag.
func newTestEnvironment(t *testing.T) (cfgPath, baseDir string) {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedFFmpeg())
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	baseDir = testsupport.BaseDir(cfg)
	cfgPath = filepath.Join(baseDir, "config.toml")
	if err := os.WriteFile(cfgPath, encoded, 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, baseDir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInitAndShow(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected target path in output: %q", out)
	}

	// A second init without --overwrite must refuse.
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing config")
	}

	out, err = runCommand(t, "config", "show", "--path", target)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, fragment := range []string{"tempo = 0.975", "ffmpeg_binary"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in resolved config:\n%s", fragment, out)
		}
	}
}

func TestProcessCommandEndToEnd(t *testing.T) {
	cfgPath, base := newTestEnvironment(t)

	source := filepath.Join(base, "track.mp3")
	testsupport.WriteFile(t, source, 64)
	output := filepath.Join(base, "done.wav")

	out, err := runCommand(t, "process", source, "--config", cfgPath, "-o", output)
	if err != nil {
		t.Fatalf("process: %v\n%s", err, out)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !strings.Contains(out, "Output: "+output) {
		t.Fatalf("expected output path in summary: %q", out)
	}
}

func TestProcessCommandRejectsBadTempo(t *testing.T) {
	cfgPath, base := newTestEnvironment(t)

	source := filepath.Join(base, "track.mp3")
	testsupport.WriteFile(t, source, 64)

	_, err := runCommand(t, "process", source, "--config", cfgPath, "--tempo", "0")
	if err == nil || !strings.Contains(err.Error(), "validation") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckCommandReportsMissingFFmpeg(t *testing.T) {
	cfgPath, base := newTestEnvironment(t)
	t.Setenv("PATH", filepath.Join(base, "nowhere"))

	out, err := runCommand(t, "check", "--config", cfgPath)
	if err == nil {
		t.Fatal("expected failure when ffmpeg is unavailable")
	}
	if !strings.Contains(out, "missing") {
		t.Fatalf("expected missing status in table:\n%s", out)
	}
}

func TestCheckCommandFindsStub(t *testing.T) {
	cfgPath, _ := newTestEnvironment(t)

	out, err := runCommand(t, "check", "--config", cfgPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "FFmpeg") {
		t.Fatalf("expected FFmpeg row:\n%s", out)
	}
}

func TestNoiseCommandWritesAssets(t *testing.T) {
	cfgPath, _ := newTestEnvironment(t)

	out, err := runCommand(t, "noise", "--config", cfgPath, "--duration", "5")
	if err != nil {
		t.Fatalf("noise: %v\n%s", err, out)
	}

	cfg, _, _, err := config.Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"rain.wav", "vinyl.wav"} {
		if _, err := os.Stat(filepath.Join(cfg.Paths.AssetDir, name)); err != nil {
			t.Fatalf("asset %s missing: %v", name, err)
		}
	}
}
