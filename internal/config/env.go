package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/forkjoin/internal/errors"
)

// envBinding ties one FORKJOIN_<Key> variable to the flags it stands in for.
// set parses the raw value into the configuration.
type envBinding struct {
	key   string
	flags []string
	set   func(c *AppConfig, raw string) error
}

func intEnv(field func(*AppConfig) *int) func(*AppConfig, string) error {
	return func(c *AppConfig, raw string) error {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func durationEnv(field func(*AppConfig) *time.Duration) func(*AppConfig, string) error {
	return func(c *AppConfig, raw string) error {
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		*field(c) = d
		return nil
	}
}

func stringEnv(field func(*AppConfig) *string) func(*AppConfig, string) error {
	return func(c *AppConfig, raw string) error {
		*field(c) = strings.TrimSpace(raw)
		return nil
	}
}

func boolEnv(field func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, raw string) error {
		b, ok := parseBoolEnv(raw)
		if !ok {
			return strconv.ErrSyntax
		}
		*field(c) = b
		return nil
	}
}

var envBindings = []envBinding{
	{"WORKERS", []string{"workers"}, intEnv(func(c *AppConfig) *int { return &c.Workers })},
	{"ITEMS", []string{"items"}, intEnv(func(c *AppConfig) *int { return &c.Items })},
	{"COST", []string{"cost"}, intEnv(func(c *AppConfig) *int { return &c.Cost })},
	{"TIMEOUT", []string{"timeout"}, durationEnv(func(c *AppConfig) *time.Duration { return &c.Timeout })},
	{"WORKLOAD", []string{"workload"}, stringEnv(func(c *AppConfig) *string { return &c.Workload })},
	{"METRICS_ADDR", []string{"metrics-addr"}, stringEnv(func(c *AppConfig) *string { return &c.MetricsAddr })},
	{"LOG_LEVEL", []string{"log-level"}, stringEnv(func(c *AppConfig) *string { return &c.LogLevel })},
	{"COORDINATOR", []string{"coordinator"}, boolEnv(func(c *AppConfig) *bool { return &c.Coordinator })},
	{"ABORT", []string{"abort"}, boolEnv(func(c *AppConfig) *bool { return &c.Abort })},
	{"VERBOSE", []string{"v", "verbose"}, boolEnv(func(c *AppConfig) *bool { return &c.Verbose })},
	{"QUIET", []string{"q", "quiet"}, boolEnv(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolEnv(func(c *AppConfig) *bool { return &c.NoColor })},
}

// parseBoolEnv accepts true/1/yes/on and false/0/no/off, in any case.
func parseBoolEnv(raw string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	}
	return false, false
}

// explicitFlags returns the names of the flags given on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyEnvOverrides fills every option whose flag was not given explicitly
// from its FORKJOIN_ variable, so the precedence is flag, then environment,
// then default. An empty variable counts as unset; a malformed one is a
// ConfigError.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	explicit := explicitFlags(fs)
	for _, b := range envBindings {
		if hasAny(explicit, b.flags) {
			continue
		}
		raw := os.Getenv(EnvPrefix + b.key)
		if raw == "" {
			continue
		}
		if err := b.set(config, raw); err != nil {
			return apperrors.NewConfigError("invalid value %q for %s%s", raw, EnvPrefix, b.key)
		}
	}
	return nil
}

func hasAny(set map[string]bool, names []string) bool {
	for _, n := range names {
		if set[n] {
			return true
		}
	}
	return false
}
