package config

import "github.com/agbru/forkjoin/internal/parallel"

// ApplyAdaptiveDefaults fills the values left at their zero default with
// hardware-derived ones. User-specified values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = parallel.NumCores()
	}
	return cfg
}
