package deps

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Requirement defines an external dependency lofimix relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries for the given FFmpeg command.
// ffprobe is optional: it only backs post-run inspection, not the pipeline.
func Requirements(ffmpegCommand string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpegCommand,
			Description: "Executes every pipeline stage and noise synthesis",
		},
		{
			Name:        "ffprobe",
			Command:     probeCommandFor(ffmpegCommand),
			Description: "Inspects processed output files",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// probeCommandFor derives the ffprobe command that matches the configured
// ffmpeg one: a sibling binary when ffmpeg is given as a path, a bare name
// otherwise.
func probeCommandFor(ffmpegCommand string) string {
	ffmpegCommand = strings.TrimSpace(ffmpegCommand)
	if ffmpegCommand == "" || filepath.Base(ffmpegCommand) == ffmpegCommand {
		return "ffprobe"
	}
	return filepath.Join(filepath.Dir(ffmpegCommand), "ffprobe")
}
