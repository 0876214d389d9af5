// Package runner executes the external package-manager commands for pkgup.
// It owns dry-run substitution, the spinner shown around long-running
// commands, and the colored result line printed for every command.
//
// Execution goes through the Execute and ExecuteCapture variables so tests
// can record invocations and script exit codes without spawning processes.
package runner

import (
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"pkgup/internal/logger"
)

// Outcome is the result of one external command invocation.
// It is produced and consumed within a single call; nothing stores it.
type Outcome struct {
	Label     string // Human-readable description of the command
	ExitCode  int    // Exit code of the external command (0 on dry-run)
	Succeeded bool   // True when the command exited zero or was dry-run
}

// Execute runs argv with stdout and stderr discarded and returns its exit
// code. A non-nil error means the command could not be started at all
// (e.g. binary vanished between probe and run).
var Execute = func(argv []string) (int, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, err
	}
	return 0, nil
}

// ExecuteCapture runs argv and returns its stdout. Used for the read-only
// listing and version queries; never prints anything itself.
var ExecuteCapture = func(argv []string) (string, error) {
	out, err := exec.Command(argv[0], argv[1:]...).Output()
	return string(out), err
}

// spinnerFrames is the glyph sequence cycled by the progress indicator.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// failLevel selects how a non-zero exit is reported.
type failLevel int

const (
	failError failLevel = iota // red error line with exit code and command
	failWarn                   // warning line; caller treats it as non-fatal
	failInfo                   // informational line; expected-failure cases
)

// Runner executes commands under a fixed run configuration.
// Both fields are resolved once at startup and never change mid-run.
type Runner struct {
	DryRun  bool // Print would-be commands instead of executing them
	Spinner bool // Animate long-running commands (off when quiet or not a TTY)
}

// Run executes argv and prints a result line.
// Under dry-run it prints the safely quoted command instead and reports
// success without executing anything.
func (r *Runner) Run(label string, argv ...string) Outcome {
	return r.run(label, argv, false, failError)
}

// RunSpinner behaves like Run but renders an animated indicator on the
// current terminal line while the command is in flight. The indicator is
// torn down and its line cleared on every exit path before the result line
// prints, so no animation artifacts bleed into later output.
func (r *Runner) RunSpinner(label string, argv ...string) Outcome {
	return r.run(label, argv, true, failError)
}

// RunCheck behaves like RunSpinner but reports a non-zero exit as a warning
// instead of an error. Used for health checks whose failure does not mean
// the run is broken.
func (r *Runner) RunCheck(label string, argv ...string) Outcome {
	return r.run(label, argv, true, failWarn)
}

// RunSoft behaves like RunSpinner but reports a non-zero exit as a plain
// informational line. Used for self-updates of tools that may be managed
// externally, where failure is an expected configuration.
func (r *Runner) RunSoft(label string, argv ...string) Outcome {
	return r.run(label, argv, true, failInfo)
}

// Capture runs a read-only query command and returns its stdout.
// It never prints and never runs under dry-run; callers skip queries there.
func (r *Runner) Capture(argv ...string) (string, error) {
	return ExecuteCapture(argv)
}

// run is the shared execution path behind the public Run variants.
func (r *Runner) run(label string, argv []string, spin bool, onFail failLevel) Outcome {
	if r.DryRun {
		logger.Info("→ [dry-run] would run: %s\n", ShellQuote(argv))
		return Outcome{Label: label, ExitCode: 0, Succeeded: true}
	}

	code, err := r.execute(argv, spin && r.Spinner, label)
	if err != nil {
		// Could not even start the command; treated like an exit code 1.
		logger.Error("✗ %s: %v\n", label, err)
		return Outcome{Label: label, ExitCode: 1, Succeeded: false}
	}

	if code == 0 {
		logger.Success("✓ %s\n", label)
		return Outcome{Label: label, ExitCode: 0, Succeeded: true}
	}

	switch onFail {
	case failWarn:
		logger.Warn("⚠ %s exited %d (%s)\n", label, code, ShellQuote(argv))
	case failInfo:
		logger.Info("%s exited %d (%s)\n", label, code, ShellQuote(argv))
	default:
		logger.Error("✗ %s failed with exit %d: %s\n", label, code, ShellQuote(argv))
	}
	return Outcome{Label: label, ExitCode: code, Succeeded: false}
}

// execute runs argv, optionally decorated with a spinner. The spinner is
// stopped inside a deferred teardown so the line is cleared even when
// Execute panics; the happy path stops it explicitly before returning so
// the result line never races the animation.
func (r *Runner) execute(argv []string, spin bool, label string) (int, error) {
	if !spin {
		return Execute(argv)
	}

	sp, err := pterm.DefaultSpinner.
		WithSequence(spinnerFrames...).
		WithDelay(100 * time.Millisecond).
		WithRemoveWhenDone(true).
		WithWriter(logger.Out).
		Start(label)
	if err != nil {
		// Spinner failed to start; run undecorated.
		return Execute(argv)
	}
	defer func() {
		if sp.IsActive {
			_ = sp.Stop()
		}
	}()

	code, execErr := Execute(argv)
	_ = sp.Stop()
	return code, execErr
}

// ShellQuote renders argv as a single copy-pasteable shell command.
// Arguments containing whitespace or shell metacharacters are wrapped in
// single quotes with embedded quotes escaped.
func ShellQuote(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		parts[i] = quoteArg(arg)
	}
	return strings.Join(parts, " ")
}

// quoteArg quotes a single argument when it would not survive a shell round
// trip unquoted.
func quoteArg(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n\"'\\$&|;<>()*?[]#~`") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// Nonzero maps an Outcome to the exit code the process should remember for
// it: the command's own exit code when it has one, otherwise 1.
func Nonzero(o Outcome) int {
	if o.ExitCode != 0 {
		return o.ExitCode
	}
	return 1
}
