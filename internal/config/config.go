// Package config parses and validates the forkjoin command-line
// configuration. Values come from flags, then FORKJOIN_* environment
// variables, then defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/forkjoin/internal/errors"
	"github.com/agbru/forkjoin/internal/workload"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "FORKJOIN_"

// Defaults applied when neither a flag nor an environment variable is set.
const (
	DefaultItems    = 1000
	DefaultWorkload = "hash"
	DefaultTimeout  = 5 * time.Minute
	DefaultLogLevel = "warn"

	// MaxWorkers bounds -workers. Zero selects the detected core count.
	MaxWorkers = 4096
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Workers is the number of regular workers. Zero means one per core.
	Workers int
	// Items is the number of work items to process.
	Items int
	// Workload names the registered workload to run.
	Workload string
	// Cost tunes the per-item cost of the workload.
	Cost int
	// Coordinator enables the progress-reporting coordinator.
	Coordinator bool
	// Abort makes the coordinator stop the run before launching workers.
	Abort bool
	// Timeout bounds the whole run.
	Timeout time.Duration
	// MetricsAddr, when set, serves /metrics and /healthz on this address.
	MetricsAddr string
	// LogLevel is the minimum level of structured logs written to stderr.
	LogLevel string
	// Verbose prints the system sample and memory details in the summary.
	Verbose bool
	// Quiet suppresses everything but the final result line.
	Quiet bool
	// NoColor disables colored output.
	NoColor bool
	// Completion, when set, prints a completion script for that shell.
	Completion string
}

// ParseConfig parses args into an AppConfig, applies environment overrides
// for flags that were not given explicitly, and validates the result.
// workloads lists the names accepted by -workload.
func ParseConfig(programName string, args []string, errWriter io.Writer, workloads []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\nRuns a workload over a fork-join worker pool.\n\nOptions:\n", programName)
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEvery option can also be set with %s<NAME>, e.g. %sWORKERS=8.\n", EnvPrefix, EnvPrefix)
		fmt.Fprintf(errWriter, "%sTHEME selects the color theme (dark, light, none).\n", EnvPrefix)
	}

	config := AppConfig{}
	fs.IntVar(&config.Workers, "workers", 0, "Number of workers (0 = one per available core).")
	fs.IntVar(&config.Items, "items", DefaultItems, "Number of work items to dispatch.")
	fs.StringVar(&config.Workload, "workload", DefaultWorkload, fmt.Sprintf("Workload to run (%s).", strings.Join(workloads, ", ")))
	fs.IntVar(&config.Cost, "cost", workload.DefaultCost, "Per-item cost of the workload (rounds, Fibonacci base or microseconds).")
	fs.BoolVar(&config.Coordinator, "coordinator", true, "Gate the start with a coordinator that reports progress.")
	fs.BoolVar(&config.Abort, "abort", false, "Have the coordinator abort the run before any worker starts.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, fmt.Sprintf("Structured log level (%s).", strings.Join(validLogLevels, ", ")))
	fs.BoolVar(&config.Verbose, "v", false, "Show system and memory details (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Show system and memory details.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode: only print the result line (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode: only print the result line.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script (bash, zsh, fish, powershell).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if err := applyEnvOverrides(&config, fs); err != nil {
		return AppConfig{}, err
	}
	config.Workload = strings.ToLower(config.Workload)
	config.LogLevel = strings.ToLower(config.LogLevel)
	if config.Abort {
		config.Coordinator = true
	}

	if err := config.Validate(workloads); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(workloads []string) error {
	if c.Completion != "" {
		return nil
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return apperrors.NewConfigError("workers must be between 0 and %d, got %d", MaxWorkers, c.Workers)
	}
	if c.Items < 0 {
		return apperrors.NewConfigError("items must be non-negative, got %d", c.Items)
	}
	if c.Cost < 0 {
		return apperrors.NewConfigError("cost must be non-negative, got %d", c.Cost)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be strictly positive, got %s", c.Timeout)
	}
	if !slices.Contains(workloads, c.Workload) {
		return apperrors.NewConfigError("unrecognized workload: '%s'. Valid workloads are: %s", c.Workload, strings.Join(workloads, ", "))
	}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return apperrors.NewConfigError("unrecognized log level: '%s'", c.LogLevel)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("quiet and verbose are mutually exclusive")
	}
	return nil
}
