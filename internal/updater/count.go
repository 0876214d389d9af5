package updater

import (
	"encoding/json"
	"strings"
)

// Counting helpers. Every counter returns 0 on any failure: a count that
// cannot be determined means "nothing to report", never an error that stops
// the section.
//
// brew and pip expose JSON listing modes, which are used here. uv tool list
// has no structured output mode, so its lines are counted instead; that is
// fragile against upstream format changes and is the documented fallback,
// not the preference.

// brewOutdatedPayload mirrors the brew outdated --json=v2 structure. Only
// the entry counts matter, so entries stay raw.
type brewOutdatedPayload struct {
	Formulae []json.RawMessage `json:"formulae"`
	Casks    []json.RawMessage `json:"casks"`
}

// countBrewOutdated returns the combined number of outdated formulae and
// casks.
func (rn *run) countBrewOutdated() int {
	out, err := rn.r.Capture("brew", "outdated", "--json=v2")
	if err != nil {
		return 0
	}
	var payload brewOutdatedPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		return 0
	}
	return len(payload.Formulae) + len(payload.Casks)
}

// countUvOutdated counts the tools uv reports a newer version for.
// Tool entries look like "ruff v0.6.0 (latest: v0.7.0)"; the indented
// "- ruff" executable lines beneath them are ignored.
func (rn *run) countUvOutdated() int {
	out, err := rn.r.Capture("uv", "tool", "list", "--outdated")
	if err != nil {
		return 0
	}
	n := 0
	for _, line := range strings.Split(out, "\n") {
		if isUvToolLine(line) && strings.Contains(line, "latest") {
			n++
		}
	}
	return n
}

// isUvToolLine reports whether a uv tool list line is a top-level tool
// entry rather than an indented executable line or a blank.
func isUvToolLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	return !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, " ")
}

// pipPackage is one entry of pip's JSON listing output.
type pipPackage struct {
	Name string `json:"name"`
}

// listPipOutdated returns the names of outdated pip packages. Blank and
// whitespace-only names are filtered out so they never reach pip install.
func (rn *run) listPipOutdated() []string {
	out, err := rn.r.Capture("pip", "list", "--outdated", "--format=json")
	if err != nil {
		return nil
	}
	var pkgs []pipPackage
	if err := json.Unmarshal([]byte(out), &pkgs); err != nil {
		return nil
	}
	names := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		if name := strings.TrimSpace(p.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Total-count helpers, used only by the summary.

// countBrewInstalled returns the number of installed formulae plus casks.
func (rn *run) countBrewInstalled() int {
	return rn.countLines("brew", "list", "--formula", "-1") +
		rn.countLines("brew", "list", "--cask", "-1")
}

// countUvTools returns the number of globally installed uv tools.
func (rn *run) countUvTools() int {
	out, err := rn.r.Capture("uv", "tool", "list")
	if err != nil {
		return 0
	}
	n := 0
	for _, line := range strings.Split(out, "\n") {
		if isUvToolLine(line) {
			n++
		}
	}
	return n
}

// countPipInstalled returns the number of installed pip packages.
func (rn *run) countPipInstalled() int {
	out, err := rn.r.Capture("pip", "list", "--format=json")
	if err != nil {
		return 0
	}
	var pkgs []pipPackage
	if err := json.Unmarshal([]byte(out), &pkgs); err != nil {
		return 0
	}
	return len(pkgs)
}

// countLines runs a listing command and counts its non-empty output lines.
func (rn *run) countLines(argv ...string) int {
	out, err := rn.r.Capture(argv...)
	if err != nil {
		return 0
	}
	n := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
