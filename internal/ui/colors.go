package ui

import (
	"github.com/charmbracelet/lipgloss"
)

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Secondary }

// Colorize wraps s in code and a reset. With the no-color theme s is
// returned unchanged.
func Colorize(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + ColorReset()
}

// StatusColor returns the color for an outcome status name as produced by
// abi.Status.String.
func StatusColor(status string) string {
	switch status {
	case "ok":
		return ColorGreen()
	case "division_by_zero", "overflow":
		return ColorYellow()
	}
	return ColorRed()
}

// HeaderStyle is the lipgloss style of section headers.
func HeaderStyle() lipgloss.Style {
	t := GetCurrentTheme()
	style := lipgloss.NewStyle().Bold(t.Name != NoColorTheme.Name)
	if t.Name == NoColorTheme.Name {
		return style
	}
	return style.Foreground(t.Accent).Underline(true)
}

// Header renders a section title.
func Header(title string) string {
	return HeaderStyle().Render(title)
}
