// Package ui provides theme and color support for the command-line output.
// It defines color schemes, ANSI escape helpers and lipgloss styles so that
// presentation code shares a single, switchable look.
package ui
