package main

import (
	"pkgup/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// The pkgup project is a convenience wrapper that updates three package managers
// (Homebrew, uv, and pip) in one pass:
//   - Checks which of the three tools are present and skips the ones that are not
//   - Runs each tool's self-update, counts pending updates, and upgrades what is outdated
//   - Shows a spinner around long-running commands and color-coded status lines
//   - Prints a consolidated summary with versions, counts, and total elapsed time
//
// Error handling strategy:
//   - Every external command failure is reported and absorbed; the run always
//     continues to the next step and the next section
//   - The process exit code reflects the last failed command, applied once at
//     the very end so that no failure cuts the run short
//
// Integration points:
//   - Delegates all mutation to the external brew, uv, and pip binaries;
//     pkgup itself holds no state and resolves no dependencies
//   - Prefers the tools' machine-readable output (JSON listings) for counting,
//     falling back to line counting only where no structured mode exists
func main() {
	cmd.Execute()
}
