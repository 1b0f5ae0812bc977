package app

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/forkjoin/internal/cli"
	"github.com/agbru/forkjoin/internal/logging"
	"github.com/agbru/forkjoin/internal/metrics"
	"github.com/agbru/forkjoin/internal/orchestration"
	"github.com/agbru/forkjoin/internal/parallel"
	"github.com/agbru/forkjoin/internal/server"
	"github.com/agbru/forkjoin/internal/ui"
)

// runDispatch runs the configured workload and presents the result.
func (a *Application) runDispatch(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)
	logger := logging.NewLogger(a.ErrWriter, "forkjoin").WithLevel(logging.ParseLevel(a.Config.LogLevel))

	wl, err := a.Factory.Get(a.Config.Workload)
	if err != nil {
		return cli.HandleRunError(err, a.ErrWriter)
	}

	parallel.Init()
	defer parallel.Shutdown()

	registry := server.NewRegistry()
	dispatcher := parallel.NewDispatcher(
		parallel.WithLogger(logger),
		parallel.WithObserver(metrics.NewDispatchMetrics(registry)),
	)

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.MetricsAddr != "" {
		srvCtx, stopServer := context.WithCancel(context.Background())
		srvDone := make(chan struct{})
		srv := server.New(a.Config.MetricsAddr, registry, server.WithLogger(logger))
		go func() {
			defer close(srvDone)
			if err := srv.Start(srvCtx); err != nil {
				logger.Error("metrics server failed", err, logging.String("addr", a.Config.MetricsAddr))
			}
		}()
		defer func() {
			stopServer()
			<-srvDone
		}()
	}

	if !a.Config.Quiet {
		cli.PrintRunConfig(a.Config, wl.Description(), out)
	}

	var reporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	if !a.Config.Quiet && a.Config.Coordinator {
		reporter = cli.NewSpinnerReporter(out)
	}

	res := orchestration.ExecuteRun(ctx, dispatcher, orchestration.Plan{
		Workers:         a.Config.Workers,
		Items:           a.Config.Items,
		Workload:        wl,
		Coordinated:     a.Config.Coordinator,
		Abort:           a.Config.Abort,
		RefreshInterval: cli.ProgressRefreshRate,
	}, reporter)

	cli.PresentRunResult(res, cli.PresentationOptions{
		Verbose: a.Config.Verbose,
		Quiet:   a.Config.Quiet,
	}, out)
	return cli.HandleRunError(res.Error(), a.ErrWriter)
}
