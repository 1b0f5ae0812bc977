// Package server exposes the process metrics over HTTP: Prometheus
// exposition on /metrics and a liveness probe on /healthz. It is started
// only when a metrics address is configured.
package server
