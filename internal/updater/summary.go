package updater

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"pkgup/internal/logger"
)

// ToolStatus is the state of one external tool as observed at summary time.
// It is derived fresh by re-querying the tool; earlier section counts are
// not reused, since the upgrades just performed change them.
type ToolStatus struct {
	Name      string
	Installed bool
	Version   string
	Count     int
}

// summary re-queries each tool whose section ran and prints the
// consolidated report followed by the final status line.
func (rn *run) summary(results []SectionResult, total time.Duration) {
	logger.Header("\nSummary\n")

	data := pterm.TableData{{"Tool", "Version", "Installed", "Outdated", "Time"}}
	for _, res := range results {
		st := rn.toolStatus(res)
		data = append(data, []string{
			st.Name,
			st.Version,
			fmt.Sprintf("%d", st.Count),
			fmt.Sprintf("%d", res.Outdated),
			fmt.Sprintf("%ds", int(res.Elapsed.Seconds())),
		})
	}

	if table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender(); err == nil {
		logger.Summary("%s\n", table)
	}

	note := ""
	if rn.cfg.DryRun {
		note = " (dry-run: nothing was changed)"
	}
	if rn.lastExit == 0 {
		logger.Success("✓ All done in %ds%s\n", int(total.Seconds()), note)
	} else {
		logger.Error("✗ Finished with failures in %ds, last exit %d%s\n",
			int(total.Seconds()), rn.lastExit, note)
	}
}

// toolStatus probes one tool's version string and install count. Sections
// that did not run, and every section under dry-run, report N/A without a
// single query being issued.
func (rn *run) toolStatus(res SectionResult) ToolStatus {
	st := ToolStatus{Name: res.Name, Version: "N/A"}
	if !res.Ran || rn.cfg.DryRun {
		return st
	}

	st.Installed = true
	st.Version = rn.version(res.Name)
	switch res.Name {
	case SectionBrew:
		st.Count = rn.countBrewInstalled()
	case SectionUv:
		st.Count = rn.countUvTools()
	case SectionPip:
		st.Count = rn.countPipInstalled()
	}
	return st
}

// version returns the first line of `<tool> --version`, or N/A when the
// query fails.
func (rn *run) version(tool string) string {
	out, err := rn.r.Capture(tool, "--version")
	if err != nil {
		return "N/A"
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	if line == "" {
		return "N/A"
	}
	return line
}
