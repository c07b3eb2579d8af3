// Package processor executes resolved pipeline plans. Each invocation runs
// to completion before the next starts because every stage consumes its
// predecessor's output file. The processor owns the intermediate-artifact
// lifecycle: on success the final artifact moves to the requested output path
// and intermediates are removed unless retention was requested; a failed
// stage aborts the rest of the run.
package processor
