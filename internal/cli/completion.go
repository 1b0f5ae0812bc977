package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every shell generator reads flagRegistry, so adding a flag only requires
// appending to it.
type FlagCompletion struct {
	Long       string   // long flag name without dashes (e.g., "workers")
	Short      string   // short alias without dash (e.g., "v")
	Help       string   // description text
	Values     []string // suggested values (nil = none)
	ValueName  string   // label of the value; empty for boolean flags
	IsWorkload bool     // true if values come from the workload registry
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "workers", Help: "Number of workers (0 = one per core)", Values: []string{"0", "1", "2", "4", "8", "16"}, ValueName: "count"},
	{Long: "items", Help: "Number of work items", Values: []string{"100", "1000", "10000", "100000"}, ValueName: "count"},
	{Long: "workload", Help: "Workload to run", IsWorkload: true, ValueName: "workload"},
	{Long: "cost", Help: "Per-item cost of the workload", ValueName: "cost"},
	{Long: "coordinator", Help: "Gate the start with a progress coordinator"},
	{Long: "abort", Help: "Abort the run before any worker starts"},
	{Long: "timeout", Help: "Maximum duration of the run", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "metrics-addr", Help: "Serve Prometheus metrics on this address", Values: []string{":9090", "127.0.0.1:9090"}, ValueName: "address"},
	{Long: "log-level", Help: "Structured log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "verbose", Short: "v", Help: "Show system and memory details"},
	{Long: "quiet", Short: "q", Help: "Only print the result line"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion writes a shell completion script for the given shell.
// workloads lists the names offered for -workload.
func GenerateCompletion(out io.Writer, shell string, workloads []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(workloads)
	case "zsh":
		script = zshCompletion(workloads)
	case "fish":
		script = fishCompletion(workloads)
	case "powershell", "ps":
		script = powerShellCompletion(workloads)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// flagValues returns the suggestions for a flag, resolving workload names.
func flagValues(f FlagCompletion, workloads []string) []string {
	if f.IsWorkload {
		return workloads
	}
	return f.Values
}

func bashCompletion(workloads []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, "--"+f.Long)
		patterns := "--" + f.Long + "|-" + f.Long
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
			patterns += "|-" + f.Short
		}
		if f.ValueName == "" {
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
			patterns, strings.Join(flagValues(f, workloads), " "))
	}

	return fmt.Sprintf(`# Bash completion script for forkjoin
# Add this to your ~/.bashrc or ~/.bash_completion

_forkjoin_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _forkjoin_completions forkjoin
`, strings.Join(opts, " "), cases.String())
}

func zshCompletion(workloads []string) string {
	var args []string
	for _, f := range flagRegistry {
		suffix := ""
		if f.ValueName != "" {
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(flagValues(f, workloads), " "))
		}
		if f.Short != "" {
			args = append(args, fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix))
		} else {
			args = append(args, fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix))
		}
	}

	return fmt.Sprintf(`#compdef forkjoin

# Zsh completion script for forkjoin
# Add this to your ~/.zshrc or place in $fpath

_forkjoin() {
    _arguments -s \
%s
}

_forkjoin "$@"
`, strings.Join(args, " \\\n"))
}

func fishCompletion(workloads []string) string {
	lines := []string{
		"# Fish completion script for forkjoin",
		"# Add this to ~/.config/fish/completions/forkjoin.fish",
		"",
		"complete -c forkjoin -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c forkjoin"}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
		if values := flagValues(f, workloads); len(values) > 0 {
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(values, " ")))
		} else if f.ValueName != "" {
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}

func powerShellCompletion(workloads []string) string {
	var options, switches []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			options = append(options, fmt.Sprintf("        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		options = append(options, fmt.Sprintf("        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))

		values := flagValues(f, workloads)
		if len(values) == 0 {
			continue
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = "'" + v + "'"
		}
		switches = append(switches, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	return fmt.Sprintf(`# PowerShell completion script for forkjoin
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'forkjoin' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(options, "\n"), strings.Join(switches, "\n"))
}
