// Package format renders durations, rates, counts and progress bars for
// terminal output. It has no dependency on the presentation layer so it can
// be shared by the CLI reporter and the run summary.
package format
