package logger

import (
	"io"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Out is the destination for all log lines. It defaults to the colorable
// stdout wrapper so ANSI sequences work on Windows terminals too.
// Tests redirect it to a buffer.
var Out io.Writer = color.Output

// quiet suppresses the informational message classes (Header, Section, Info).
// Success, Warn, Error, and Summary always print so that failures and the
// final report survive quiet mode.
var quiet bool

// Color printers for each message class, built on fatih/color.
// Init flips color.NoColor when color is disabled, which turns every
// printer into plain text.
var (
	headerC  = color.New(color.FgCyan, color.Bold)
	sectionC = color.New(color.FgCyan)
	successC = color.New(color.FgGreen)
	warnC    = color.New(color.FgHiMagenta)
	errorC   = color.New(color.FgRed)
	plainC   = color.New()
)

// Init configures the logger once at startup.
// Parameters:
// - quietMode: suppress informational lines (Header, Section, Info).
// - colorEnabled: when false, all printers emit plain uncolored text.
// After Init the logger configuration is treated as immutable; no component
// mutates it mid-run.
func Init(quietMode, colorEnabled bool) {
	quiet = quietMode
	color.NoColor = !colorEnabled
}

// Header prints a bold top-level heading. Suppressed in quiet mode.
func Header(format string, a ...any) {
	if quiet {
		return
	}
	headerC.Fprintf(Out, format, a...)
}

// Section prints a section title, one per package manager. Suppressed in quiet mode.
func Section(format string, a ...any) {
	if quiet {
		return
	}
	sectionC.Fprintf(Out, format, a...)
}

// Info prints an informational line. Suppressed in quiet mode.
func Info(format string, a ...any) {
	if quiet {
		return
	}
	plainC.Fprintf(Out, format, a...)
}

// Success prints a green success line. Always shown.
func Success(format string, a ...any) {
	successC.Fprintf(Out, format, a...)
}

// Warn prints a warning line. Always shown.
func Warn(format string, a ...any) {
	warnC.Fprintf(Out, format, a...)
}

// Error prints an error line. Always shown.
func Error(format string, a ...any) {
	errorC.Fprintf(Out, format, a...)
}

// Summary prints an uncolored report line. Always shown, including in quiet
// mode, so the final report is never lost. Write errors are ignored since
// terminal output is best-effort.
func Summary(format string, a ...any) {
	plainC.Fprintf(Out, format, a...)
}
