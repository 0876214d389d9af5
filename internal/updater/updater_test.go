package updater

import (
	"bytes"
	"errors"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkgup/internal/logger"
	"pkgup/internal/runner"
	"pkgup/internal/term"
)

// recorder replaces the runner's execution seams, recording every external
// invocation (both mutating commands and read-only queries) and answering
// from scripted exit codes and canned outputs keyed by the joined argv.
type recorder struct {
	calls    [][]string
	exitFor  map[string]int
	captures map[string]string
}

// install wires the recorder into the runner package for the duration of
// the test.
func (rec *recorder) install(t *testing.T) {
	t.Helper()
	prevExec := runner.Execute
	prevCap := runner.ExecuteCapture
	runner.Execute = func(argv []string) (int, error) {
		rec.calls = append(rec.calls, argv)
		return rec.exitFor[strings.Join(argv, " ")], nil
	}
	runner.ExecuteCapture = func(argv []string) (string, error) {
		rec.calls = append(rec.calls, argv)
		if out, ok := rec.captures[strings.Join(argv, " ")]; ok {
			return out, nil
		}
		return "", errors.New("no canned output for: " + strings.Join(argv, " "))
	}
	t.Cleanup(func() {
		runner.Execute = prevExec
		runner.ExecuteCapture = prevCap
	})
}

// commands returns every recorded invocation as a joined string.
func (rec *recorder) commands() []string {
	out := make([]string, len(rec.calls))
	for i, argv := range rec.calls {
		out[i] = strings.Join(argv, " ")
	}
	return out
}

// stubTools fakes PATH resolution so only the listed tools appear installed.
func stubTools(t *testing.T, installed ...string) {
	t.Helper()
	prev := term.LookPath
	term.LookPath = func(name string) (string, error) {
		if slices.Contains(installed, name) {
			return "/usr/local/bin/" + name, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
	t.Cleanup(func() { term.LookPath = prev })
}

// captureOutput sends logger output to a buffer with color and styling off.
func captureOutput(t *testing.T, quiet bool) *bytes.Buffer {
	t.Helper()
	pterm.DisableColor()
	buf := &bytes.Buffer{}
	prev := logger.Out
	logger.Out = buf
	logger.Init(quiet, false)
	t.Cleanup(func() {
		logger.Out = prev
		logger.Init(false, false)
	})
	return buf
}

// upToDateCaptures returns canned query outputs describing a system where
// nothing is outdated.
func upToDateCaptures() map[string]string {
	return map[string]string{
		"brew outdated --json=v2":           `{"formulae":[],"casks":[]}`,
		"brew --version":                    "Homebrew 4.4.0",
		"brew list --formula -1":            "git\njq\n",
		"brew list --cask -1":               "kitty\n",
		"uv tool list --outdated":           "",
		"uv tool list":                      "ruff v0.6.0\n- ruff\n",
		"uv --version":                      "uv 0.5.9",
		"pip list --outdated --format=json": `[]`,
		"pip list --format=json":            `[{"name":"requests"},{"name":"rich"}]`,
		"pip --version":                     "pip 24.2 from /usr/lib/python3",
	}
}

// TestOnlyRunsSingleSection verifies that --only restricts execution to one
// section and that no external command at all is issued for the other two.
func TestOnlyRunsSingleSection(t *testing.T) {
	t.Chdir(t.TempDir())
	captureOutput(t, false)
	stubTools(t, "brew", "uv", "pip")
	rec := &recorder{captures: upToDateCaptures()}
	rec.install(t)

	results, code := Run(RunConfig{Only: SectionUv}, &runner.Runner{})

	require.Len(t, results, 3)
	byName := map[string]SectionResult{}
	for _, res := range results {
		byName[res.Name] = res
	}
	assert.True(t, byName[SectionUv].Ran)
	assert.False(t, byName[SectionBrew].Ran)
	assert.False(t, byName[SectionPip].Ran)
	assert.Equal(t, 0, code)

	for _, cmd := range rec.commands() {
		assert.True(t, strings.HasPrefix(cmd, "uv "), "unexpected invocation %q", cmd)
	}
}

// TestDryRunExecutesNothing verifies that dry-run mode issues zero external
// commands and only describes what it would do.
func TestDryRunExecutesNothing(t *testing.T) {
	t.Chdir(t.TempDir())
	out := captureOutput(t, false)
	stubTools(t, "brew", "uv", "pip")
	rec := &recorder{}
	rec.install(t)

	_, code := Run(RunConfig{DryRun: true}, &runner.Runner{DryRun: true})

	assert.Empty(t, rec.calls, "dry-run must not spawn any subprocess")
	assert.Equal(t, 0, code)

	text := out.String()
	assert.Contains(t, text, "would run: brew update")
	assert.Contains(t, text, "would run: brew upgrade")
	assert.Contains(t, text, "would run: uv self update")
	assert.Contains(t, text, "would run: uv tool upgrade --all")
	assert.Contains(t, text, "would run: pip install --upgrade pip")
	assert.Contains(t, text, "dry-run: nothing was changed")
}

// runQuietScenario runs the same fully up-to-date scenario with and without
// quiet and returns the non-empty output lines of each.
func runQuietScenario(t *testing.T, quiet bool) []string {
	t.Helper()
	out := captureOutput(t, quiet)
	rec := &recorder{captures: upToDateCaptures()}
	rec.install(t)

	Run(RunConfig{}, &runner.Runner{})

	var lines []string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// TestQuietPreservesNonInfoLines verifies that quiet mode only removes
// lines: every line printed under quiet also appears in the normal output.
func TestQuietPreservesNonInfoLines(t *testing.T) {
	t.Chdir(t.TempDir())
	stubTools(t, "brew", "uv", "pip")

	loud := runQuietScenario(t, false)
	quiet := runQuietScenario(t, true)

	assert.LessOrEqual(t, len(quiet), len(loud))
	for _, line := range quiet {
		assert.Contains(t, loud, line, "quiet mode must not add lines")
	}
}

// TestFailingStepDoesNotStopSection verifies that a failing cleanup still
// lets brew doctor run, records elapsed time, and surfaces the exit code at
// the end of the run.
func TestFailingStepDoesNotStopSection(t *testing.T) {
	t.Chdir(t.TempDir())
	out := captureOutput(t, false)
	stubTools(t, "brew")
	rec := &recorder{
		exitFor:  map[string]int{"brew cleanup": 1},
		captures: upToDateCaptures(),
	}
	rec.install(t)

	results, code := Run(RunConfig{Only: SectionBrew}, &runner.Runner{})

	commands := rec.commands()
	cleanupIdx := slices.Index(commands, "brew cleanup")
	doctorIdx := slices.Index(commands, "brew doctor")
	require.GreaterOrEqual(t, cleanupIdx, 0)
	require.GreaterOrEqual(t, doctorIdx, 0)
	assert.Greater(t, doctorIdx, cleanupIdx, "doctor must still run after a failed cleanup")

	brew := results[0]
	assert.True(t, brew.Ran)
	assert.False(t, brew.Succeeded)
	assert.Greater(t, brew.Elapsed.Nanoseconds(), int64(0))
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "exit 1")
	assert.Contains(t, out.String(), "brew cleanup")
}

// TestCountFailureFallsBackToZero verifies that a malformed outdated query
// is treated as zero pending updates rather than an error.
func TestCountFailureFallsBackToZero(t *testing.T) {
	t.Chdir(t.TempDir())
	out := captureOutput(t, false)
	stubTools(t, "brew")
	captures := upToDateCaptures()
	captures["brew outdated --json=v2"] = "not json at all"
	rec := &recorder{captures: captures}
	rec.install(t)

	results, code := Run(RunConfig{Only: SectionBrew}, &runner.Runner{})

	assert.Equal(t, 0, results[0].Outdated)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "brew packages up to date")
	assert.NotContains(t, rec.commands(), "brew upgrade")
}

// TestNoToolsInstalled verifies the all-skipped scenario: three warnings,
// N/A versions in the summary, and a clean exit.
func TestNoToolsInstalled(t *testing.T) {
	t.Chdir(t.TempDir())
	out := captureOutput(t, false)
	stubTools(t)
	rec := &recorder{}
	rec.install(t)

	results, code := Run(RunConfig{}, &runner.Runner{})

	assert.Empty(t, rec.calls)
	assert.Equal(t, 0, code)
	for _, res := range results {
		assert.False(t, res.Ran)
		assert.Zero(t, res.Outdated)
	}

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "not found, skipping"))
	assert.Contains(t, text, "N/A")
}

// TestPipUpgradesEachOutdated verifies the pip section against three
// outdated packages: one upgrade per package, ordered progress labels, a
// blank name filtered out, and the final "3 upgraded" line.
func TestPipUpgradesEachOutdated(t *testing.T) {
	t.Chdir(t.TempDir())
	out := captureOutput(t, false)
	stubTools(t, "pip")
	captures := upToDateCaptures()
	captures["pip list --outdated --format=json"] = `[{"name":"requests"},{"name":"rich"},{"name":"   "},{"name":"numpy"}]`
	rec := &recorder{captures: captures}
	rec.install(t)

	results, code := Run(RunConfig{}, &runner.Runner{})

	var upgrades []string
	for _, cmd := range rec.commands() {
		if strings.HasPrefix(cmd, "pip install --upgrade ") && cmd != "pip install --upgrade pip" {
			upgrades = append(upgrades, cmd)
		}
	}
	assert.Equal(t, []string{
		"pip install --upgrade requests",
		"pip install --upgrade rich",
		"pip install --upgrade numpy",
	}, upgrades)

	text := out.String()
	first := strings.Index(text, "(1/3)")
	second := strings.Index(text, "(2/3)")
	third := strings.Index(text, "(3/3)")
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
	assert.Greater(t, third, second)
	assert.Contains(t, text, "3 upgraded")

	byName := map[string]SectionResult{}
	for _, res := range results {
		byName[res.Name] = res
	}
	assert.Equal(t, 3, byName[SectionPip].Outdated)
	assert.False(t, byName[SectionBrew].Ran)
	assert.False(t, byName[SectionUv].Ran)
	assert.Equal(t, 0, code)
}

// TestUvSyncsWhenManifestPresent verifies that a pyproject.toml in the
// working directory selects the project-sync branch over tool upgrades.
func TestUvSyncsWhenManifestPresent(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("pyproject.toml", []byte("[project]\nname = \"demo\"\n"), 0o644))

	captureOutput(t, false)
	stubTools(t, "uv")
	rec := &recorder{captures: upToDateCaptures()}
	rec.install(t)

	_, code := Run(RunConfig{Only: SectionUv}, &runner.Runner{})

	commands := rec.commands()
	assert.Contains(t, commands, "uv sync --upgrade")
	assert.NotContains(t, commands, "uv tool upgrade --all")
	assert.Equal(t, 0, code)
}

// TestUvSelfUpdateFailureIsSoft verifies that a refused uv self update is
// informational: the section still succeeds and the exit code stays zero.
func TestUvSelfUpdateFailureIsSoft(t *testing.T) {
	t.Chdir(t.TempDir())
	out := captureOutput(t, false)
	stubTools(t, "uv")
	rec := &recorder{
		exitFor:  map[string]int{"uv self update": 2},
		captures: upToDateCaptures(),
	}
	rec.install(t)

	results, code := Run(RunConfig{Only: SectionUv}, &runner.Runner{})

	assert.Equal(t, 0, code)
	byName := map[string]SectionResult{}
	for _, res := range results {
		byName[res.Name] = res
	}
	assert.True(t, byName[SectionUv].Succeeded)
	assert.NotContains(t, out.String(), "✗ uv self update")
}

// TestConfigSkipDisablesSection verifies that a section listed in the skip
// list is never entered.
func TestConfigSkipDisablesSection(t *testing.T) {
	t.Chdir(t.TempDir())
	out := captureOutput(t, false)
	stubTools(t, "brew", "uv", "pip")
	rec := &recorder{captures: upToDateCaptures()}
	rec.install(t)

	results, code := Run(RunConfig{Skip: []string{SectionBrew}}, &runner.Runner{})

	for _, cmd := range rec.commands() {
		assert.False(t, strings.HasPrefix(cmd, "brew "), "skipped section invoked %q", cmd)
	}
	assert.False(t, results[0].Ran)
	assert.True(t, results[1].Ran)
	assert.True(t, results[2].Ran)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "brew disabled in config")
}
