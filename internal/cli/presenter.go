package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/forkjoin/internal/config"
	apperrors "github.com/agbru/forkjoin/internal/errors"
	"github.com/agbru/forkjoin/internal/format"
	"github.com/agbru/forkjoin/internal/orchestration"
	"github.com/agbru/forkjoin/internal/parallel"
	"github.com/agbru/forkjoin/internal/sysmon"
	"github.com/agbru/forkjoin/internal/ui"
)

// PrintRunConfig displays the parameters of the run about to start.
func PrintRunConfig(cfg config.AppConfig, description string, out io.Writer) {
	st := ui.CurrentStyles()
	mode := "uncoordinated"
	switch {
	case cfg.Abort:
		mode = "coordinated (abort requested)"
	case cfg.Coordinator:
		mode = "coordinated"
	}
	fmt.Fprintln(out, st.Title.Render("forkjoin"))
	rows := [][2]string{
		{"Workload", fmt.Sprintf("%s: %s", cfg.Workload, description)},
		{"Items", format.FormatInt(int64(cfg.Items))},
		{"Workers", fmt.Sprintf("%d (cores: %d)", cfg.Workers, parallel.NumCores())},
		{"Mode", mode},
		{"Timeout", cfg.Timeout.String()},
	}
	writeRows(out, st, rows)
	fmt.Fprintln(out)
}

// PresentationOptions configures how a run result is displayed.
type PresentationOptions struct {
	Verbose bool
	Quiet   bool
}

// PresentRunResult displays the outcome of a run.
func PresentRunResult(res orchestration.Result, opts PresentationOptions, out io.Writer) {
	elapsed := res.Stats.Elapsed
	if opts.Quiet {
		fmt.Fprintf(out, "processed=%d failed=%d skipped=%d elapsed=%s\n",
			res.Processed, res.Failed, res.Skipped, format.FormatExecutionDuration(elapsed))
		return
	}

	st := ui.CurrentStyles()
	status := st.Success.Render("Success")
	switch {
	case res.Err != nil:
		status = st.Error.Render("Failure")
	case res.Stats.Aborted:
		status = st.Warning.Render("Aborted before start")
	case res.Failed > 0:
		status = st.Warning.Render(fmt.Sprintf("Completed with %d failed items", res.Failed))
	}

	rows := [][2]string{
		{"Status", status},
		{"Run ID", res.Stats.RunID},
		{"Workers", fmt.Sprintf("%d launched, %d slots", res.Stats.Workers, res.Stats.Slots)},
		{"Processed", format.FormatInt(res.Processed)},
		{"Failed", format.FormatInt(res.Failed)},
		{"Skipped", format.FormatInt(res.Skipped)},
		{"Elapsed", format.FormatExecutionDuration(elapsed)},
		{"Throughput", format.FormatRate(res.Processed+res.Failed, elapsed)},
	}
	if opts.Verbose {
		sys := sysmon.Sample()
		rows = append(rows,
			[2]string{"Heap delta", format.FormatBytes(res.Memory.HeapAlloc)},
			[2]string{"GC cycles", fmt.Sprintf("%d (pause %s)", res.Memory.NumGC, format.FormatExecutionDuration(res.Memory.PauseTotal))},
			[2]string{"System CPU", fmt.Sprintf("%.1f%%", sys.CPUPercent)},
			[2]string{"System memory", fmt.Sprintf("%.1f%% of %s", sys.MemPercent, format.FormatBytes(int64(sys.MemTotal)))},
			[2]string{"Logical CPUs", fmt.Sprintf("%d", sys.LogicalCores)},
		)
	}

	var b strings.Builder
	b.WriteString(st.Title.Render("Run summary"))
	b.WriteByte('\n')
	writeRows(&b, st, rows)
	fmt.Fprintln(out, st.Box.Render(strings.TrimRight(b.String(), "\n")))
}

// HandleRunError prints a description of err and returns the exit code for it.
func HandleRunError(err error, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	st := ui.CurrentStyles()
	code := apperrors.ExitCodeFor(err)
	var pe *parallel.PanicError
	switch {
	case code == apperrors.ExitErrorTimeout:
		fmt.Fprintf(out, "%s the run exceeded its timeout\n", st.Error.Render("Timeout:"))
	case code == apperrors.ExitErrorCanceled:
		fmt.Fprintf(out, "%s the run was interrupted\n", st.Warning.Render("Canceled:"))
	case code == apperrors.ExitErrorItems:
		fmt.Fprintf(out, "%s %v\n", st.Warning.Render("Item failure:"), err)
	case errors.As(err, &pe):
		fmt.Fprintf(out, "%s %v\n", st.Error.Render("Worker crashed:"), pe)
	default:
		fmt.Fprintf(out, "%s %v\n", st.Error.Render("Error:"), err)
	}
	return code
}

func writeRows(out io.Writer, st ui.Styles, rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r[0]))
	}
	for _, r := range rows {
		label := st.Label.Render(r[0] + ":" + strings.Repeat(" ", width-lipgloss.Width(r[0])))
		fmt.Fprintf(out, "  %s  %s\n", label, st.Value.Render(r[1]))
	}
}
