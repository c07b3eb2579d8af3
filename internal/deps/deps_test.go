package deps_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"lofimix/internal/deps"
)

func stubBinary(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinariesFindsStub(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs not usable on windows")
	}
	dir := t.TempDir()
	stubBinary(t, dir, "ffmpeg")
	t.Setenv("PATH", dir)

	statuses := deps.CheckBinaries([]deps.Requirement{{Name: "FFmpeg", Command: "ffmpeg"}})
	if len(statuses) != 1 {
		t.Fatalf("expected one status, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected available, got %+v", statuses[0])
	}
	if statuses[0].Command != filepath.Join(dir, "ffmpeg") {
		t.Fatalf("expected resolved path, got %q", statuses[0].Command)
	}
}

func TestCheckBinariesReportsMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	statuses := deps.CheckBinaries(deps.Requirements("ffmpeg"))
	if len(statuses) != 2 {
		t.Fatalf("expected two statuses, got %d", len(statuses))
	}
	for _, status := range statuses {
		if status.Available {
			t.Fatalf("nothing should resolve on an empty PATH: %+v", status)
		}
		if status.Detail == "" {
			t.Fatalf("missing binary should carry detail: %+v", status)
		}
	}
}

func TestCheckBinariesUnconfiguredCommand(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{{Name: "FFmpeg"}})
	if statuses[0].Available || statuses[0].Detail != "command not configured" {
		t.Fatalf("unexpected status: %+v", statuses[0])
	}
}

func TestRequirementsDeriveSiblingProbe(t *testing.T) {
	reqs := deps.Requirements("/opt/ffmpeg/bin/ffmpeg")
	if reqs[1].Command != filepath.Join("/opt/ffmpeg/bin", "ffprobe") {
		t.Fatalf("expected sibling ffprobe, got %q", reqs[1].Command)
	}

	reqs = deps.Requirements("ffmpeg")
	if reqs[1].Command != "ffprobe" {
		t.Fatalf("expected bare ffprobe, got %q", reqs[1].Command)
	}
}
