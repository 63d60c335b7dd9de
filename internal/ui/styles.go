// Package ui holds the ANSI styling helpers for ifd terminal output.
package ui

import "fmt"

// ANSI256 color codes.
const (
	colorAccent = 74  // blue, identifiers and headings
	colorMuted  = 245 // medium gray, secondary detail
	colorOK     = 114 // green, successful steps
	colorFail   = 167 // red, failed steps and corrupt results
	colorWarn   = 179 // yellow, skipped or indeterminate
)

var noColor bool

func colored(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent color, used for record ids and headings.
func RenderAccent(s string) string { return colored(colorAccent, s) }

// RenderMuted returns s in the muted color, used for timestamps and hints.
func RenderMuted(s string) string { return colored(colorMuted, s) }

// RenderStatus colors a step status: green for completed, red for failure,
// yellow for anything else (skipped, pending, unknown).
func RenderStatus(status string) string {
	switch status {
	case "completed", "success":
		return colored(colorOK, status)
	case "failed", "error":
		return colored(colorFail, status)
	default:
		return colored(colorWarn, status)
	}
}

// RenderResultState colors a decoded result state: valid green, corrupt red,
// empty muted.
func RenderResultState(state string) string {
	switch state {
	case "valid":
		return colored(colorOK, state)
	case "corrupt":
		return colored(colorFail, state)
	default:
		return colored(colorMuted, state)
	}
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
