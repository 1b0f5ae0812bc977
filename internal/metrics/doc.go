// Package metrics exports dispatcher run metrics to Prometheus and reads
// runtime memory statistics for run summaries.
package metrics
