// Package ui holds the terminal themes shared by the CLI: ANSI color codes
// for inline output and lipgloss styles for headers and outcome labels.
// Colors are disabled by --no-color or the NO_COLOR environment variable.
package ui
