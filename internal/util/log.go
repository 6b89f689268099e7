package util

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// ANSI color codes
const (
	Reset    = "\033[0m"
	Bold     = "\033[1m"
	Dim      = "\033[2m"
	Red      = "\033[31m"
	Green    = "\033[32m"
	Yellow   = "\033[33m"
	Cyan     = "\033[36m"
	BoldRed  = "\033[1;31m"
	BoldCyan = "\033[1;36m"
)

// stderrColorEnabled returns true if stderr is a TTY and NO_COLOR is not set.
var stderrColorEnabled = sync.OnceValue(func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
})

// stdoutColorEnabled returns true if stdout is a TTY and NO_COLOR is not set.
var stdoutColorEnabled = sync.OnceValue(func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
})

// colorizeOut wraps msg in ANSI color codes when w is the process stdout or
// stderr and that stream is a color-capable TTY. Any other writer gets plain text.
func colorizeOut(w io.Writer, c, msg string) string {
	switch {
	case w == io.Writer(os.Stdout) && stdoutColorEnabled():
	case w == io.Writer(os.Stderr) && stderrColorEnabled():
	default:
		return msg
	}
	return c + msg + Reset
}

// Log prints an informational message with a cyan bold "==>" prefix.
func Log(w io.Writer, msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(w, "%s %s\n", colorizeOut(w, BoldCyan, "==>"), formatted)
}

// Success prints a success message with a green "==>" prefix.
func Success(w io.Writer, msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(w, "%s %s\n", colorizeOut(w, Green, "==>"), colorizeOut(w, Green, formatted))
}

// Warn prints a warning message.
func Warn(w io.Writer, msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(w, "%s %s\n", colorizeOut(w, Yellow, "WARN:"), colorizeOut(w, Yellow, formatted))
}

// Section prints a bold section header (e.g., "==> monitoring").
func Section(w io.Writer, msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintln(w, colorizeOut(w, Bold, "==> "+formatted))
}

// StatusTableRow represents a single row in a status table.
type StatusTableRow struct {
	Name   string
	Status string // Display text for status column
	Detail string // Extra info (port, latency, block height)
	Ok     bool   // true = green, false = red
}

// StatusTable prints rows as an aligned, colored table.
func StatusTable(w io.Writer, rows []StatusTableRow) {
	if len(rows) == 0 {
		return
	}

	// Compute column widths (using raw text length, not ANSI-colored length)
	nameW, statusW := 0, 0
	for _, r := range rows {
		if len(r.Name) > nameW {
			nameW = len(r.Name)
		}
		if len(r.Status) > statusW {
			statusW = len(r.Status)
		}
	}

	for _, r := range rows {
		c := Green
		if !r.Ok {
			c = Red
		}
		// Pad before coloring so escape codes don't skew alignment.
		status := colorizeOut(w, c, fmt.Sprintf("%-*s", statusW, r.Status))
		detail := ""
		if r.Detail != "" {
			detail = colorizeOut(w, Dim, r.Detail)
		}
		fmt.Fprintf(w, "  %-*s  %s  %s\n", nameW, r.Name, status, detail)
	}
}
