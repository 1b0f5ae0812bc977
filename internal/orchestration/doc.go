// Package orchestration runs a workload over the parallel dispatcher. It
// builds the worker and coordinator bodies, counts item outcomes, and
// reports progress through the ProgressReporter interface so that the
// presentation layer stays out of the run loop.
package orchestration
