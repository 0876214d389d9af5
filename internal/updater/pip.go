package updater

import (
	"fmt"

	"pkgup/internal/logger"
)

// pipSection upgrades pip itself, then upgrades each outdated package
// individually so a single broken package cannot sink the rest. Every
// upgrade is labeled with an (i/total) progress counter.
func (rn *run) pipSection(res *SectionResult) {
	rn.step(res, rn.r.RunSpinner("pip self upgrade", "pip", "install", "--upgrade", "pip"))

	if rn.cfg.DryRun {
		logger.Info("→ [dry-run] would upgrade each outdated package via: pip install --upgrade <package>\n")
		return
	}

	names := rn.listPipOutdated()
	res.Outdated = len(names)
	if len(names) == 0 {
		logger.Success("✓ pip packages up to date\n")
		return
	}

	logger.Info("%d outdated package(s)\n", len(names))
	upgraded := 0
	for i, name := range names {
		label := fmt.Sprintf("(%d/%d) %s", i+1, len(names), name)
		if rn.step(res, rn.r.RunSpinner(label, "pip", "install", "--upgrade", name)) {
			upgraded++
		}
	}
	logger.Success("✓ %d upgraded\n", upgraded)
}
