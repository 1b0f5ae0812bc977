// Package app wires configuration, logging, metrics and the dispatcher into
// the forkjoin command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/forkjoin/internal/cli"
	"github.com/agbru/forkjoin/internal/config"
	apperrors "github.com/agbru/forkjoin/internal/errors"
	"github.com/agbru/forkjoin/internal/workload"
)

// FactoryFunc builds the workload registry for a given per-item cost.
type FactoryFunc func(cost int) *workload.Factory

// Application represents the forkjoin application instance.
type Application struct {
	Config     config.AppConfig
	Factory    *workload.Factory
	ErrWriter  io.Writer
	newFactory FactoryFunc
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets the constructor of the workload registry.
func WithFactory(f FactoryFunc) AppOption {
	return func(a *Application) { a.newFactory = f }
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, newFactory: workload.NewDefaultFactory}
	for _, opt := range opts {
		opt(app)
	}

	programName := "forkjoin"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	names := app.newFactory(workload.DefaultCost).List()
	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, names)
	if err != nil {
		// The flag package reports its own syntax errors.
		var cfgErr apperrors.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
		}
		return nil, err
	}

	app.Config = config.ApplyAdaptiveDefaults(cfg)
	app.Factory = app.newFactory(app.Config.Cost)
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	return a.runDispatch(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCode returns the exit code for an error returned by New. Flag syntax
// errors count as configuration errors.
func ExitCode(err error) int {
	if err == nil || IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	return apperrors.ExitErrorConfig
}
