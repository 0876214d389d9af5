// Package updater sequences the three package-manager sections (Homebrew,
// uv, pip) and aggregates the final summary. Each section checks that its
// tool is installed, runs its update steps strictly in order, and records
// timing and counts. Step failures are reported and absorbed: a failing
// command never prevents later steps or later sections from running. The
// only globally visible failure signal is the exit code returned by Run,
// which reflects the most recent failed command.
package updater

import (
	"time"

	"pkgup/internal/logger"
	"pkgup/internal/runner"
	"pkgup/internal/term"
)

// Section names. Each doubles as the external tool's executable name.
const (
	SectionBrew = "brew"
	SectionUv   = "uv"
	SectionPip  = "pip"
)

// RunConfig is the immutable per-run configuration, resolved once from
// flags and the config file before Run is called.
type RunConfig struct {
	DryRun bool     // Print would-be commands instead of executing them
	Only   string   // Restrict execution to a single section; empty means all
	Skip   []string // Section names disabled by the config file
}

// SectionResult records what one section did. Exactly one exists per
// section regardless of whether it ran; skipped sections keep the zero
// counts with Ran=false.
type SectionResult struct {
	Name      string
	Ran       bool
	Elapsed   time.Duration
	Outdated  int
	Succeeded bool
}

// run carries the shared state for one invocation: the configuration, the
// command runner, and the exit code of the most recent failed command.
type run struct {
	cfg      RunConfig
	r        *runner.Runner
	lastExit int
}

// Run executes the selected sections in order, prints the summary, and
// returns the per-section results along with the exit code the process
// should terminate with (0 when every command succeeded).
func Run(cfg RunConfig, r *runner.Runner) ([]SectionResult, int) {
	rn := &run{cfg: cfg, r: r}
	start := time.Now()

	logger.Header("pkgup: updating package managers\n")

	results := []SectionResult{
		rn.section(SectionBrew, rn.brewSection),
		rn.section(SectionUv, rn.uvSection),
		rn.section(SectionPip, rn.pipSection),
	}

	rn.summary(results, time.Since(start))
	return results, rn.lastExit
}

// section drives one section from start to finish: presence check, steps,
// timing. Sections excluded by --only are never entered; an absent tool is
// a warning and a skip, not an error.
func (rn *run) section(name string, steps func(*SectionResult)) SectionResult {
	res := SectionResult{Name: name, Succeeded: true}

	if rn.cfg.Only != "" && rn.cfg.Only != name {
		return res
	}
	if rn.skipped(name) {
		logger.Info("%s disabled in config, skipping\n", name)
		return res
	}
	if !term.ToolExists(name) {
		logger.Warn("⚠ %s not found, skipping\n", name)
		return res
	}

	logger.Section("\n==> Updating %s\n", name)
	start := time.Now()
	res.Ran = true
	steps(&res)
	res.Elapsed = time.Since(start)
	logger.Info("%s finished in %ds\n", name, int(res.Elapsed.Seconds()))
	return res
}

// step folds a command outcome into the section and run state. Failed
// outcomes mark the section unsuccessful and become the candidate exit
// code; the step sequence itself always continues.
func (rn *run) step(res *SectionResult, o runner.Outcome) bool {
	if !o.Succeeded {
		res.Succeeded = false
		rn.lastExit = runner.Nonzero(o)
	}
	return o.Succeeded
}

// skipped reports whether the config file disables the named section.
func (rn *run) skipped(name string) bool {
	for _, s := range rn.cfg.Skip {
		if s == name {
			return true
		}
	}
	return false
}
