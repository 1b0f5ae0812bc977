// Package workload provides the per-item work functions driven by the
// dispatcher. A Workload processes one work index at a time and must be safe
// for concurrent use: every worker of a run calls Process on the same value.
package workload
