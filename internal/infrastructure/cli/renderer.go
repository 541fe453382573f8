package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorGreen  = "32"
	colorYellow = "33"
	colorRed    = "31"
)

// colorize wraps text in an ANSI color when stdout is a terminal.
func colorize(text string, color string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return text
	}
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", color, text)
}

// statusColor picks the color conventionally used for a record status.
func statusColor(status string) string {
	switch status {
	case "success":
		return colorGreen
	case "warning":
		return colorYellow
	default:
		return colorRed
	}
}
