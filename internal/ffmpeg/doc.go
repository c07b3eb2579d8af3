// Package ffmpeg wraps the external FFmpeg binary that realizes every
// pipeline stage. The client translates a resolved stage invocation into an
// argument vector, streams the tool's output for diagnostics, and classifies
// non-zero exits as stage execution errors carrying the failing stage's name
// and the last lines of engine output.
package ffmpeg
