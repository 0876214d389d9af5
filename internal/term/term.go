// Package term probes the environment pkgup runs in: whether the output
// terminal can render color, and whether a given external tool is installed.
// All probes are read-only and deterministic for a fixed environment.
package term

import (
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// LookPath resolves an executable on the search path. It is a variable so
// tests can fake tool presence without touching PATH.
var LookPath = exec.LookPath

// SupportsColor reports whether colored output should be enabled for f.
// Color is off when the NO_COLOR convention is honored, when f is not an
// interactive terminal (piped or redirected), or when the terminal profile
// reports no color support at all.
func SupportsColor(f *os.File) bool {
	// Respect the NO_COLOR opt-out regardless of terminal capability.
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Piped or redirected output gets plain text.
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	// Ascii means the terminal advertises no color support.
	return termenv.ColorProfile() != termenv.Ascii
}

// ToolExists reports whether an executable with the given name is resolvable
// on the search path.
func ToolExists(name string) bool {
	_, err := LookPath(name)
	return err == nil
}
