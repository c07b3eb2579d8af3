// Package batch runs the pipeline over every audio file in a folder.
// Files are processed with bounded parallelism; stages within a file stay
// sequential. Failures are isolated per file so one bad source never stops
// the rest of the batch.
package batch
