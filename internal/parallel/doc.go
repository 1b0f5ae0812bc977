// Package parallel implements a bounded, index-based fork-join dispatcher.
//
// A run hands out the indices [0, items) to a fixed set of worker goroutines
// through a shared Pool. Each worker claims indices with Pool.ClaimWork until
// it receives Exhausted, so every index is processed exactly once regardless
// of how the workers interleave.
//
// A run may optionally be coordinated. The coordinator occupies slot 0, is
// started before any regular worker, and must raise Pool.Start once its own
// setup is complete (or Pool.Stop to abort the run before any worker is
// launched). After the regular workers have been joined, the dispatcher
// raises the finished signal; the coordinator observes it through
// Pool.Finished or Pool.IsFinished and returns.
//
// Nothing survives a run: every call to Dispatcher.Run creates, runs and
// tears down its own pool and workers.
//
// The shared data passed in Job.Data is handed to every worker unchanged.
// It must be safe for concurrent reads; the caller is responsible for
// synchronizing any writes workers perform on it.
package parallel
