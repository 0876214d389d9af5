package updater

import (
	"os"

	"pkgup/internal/logger"
)

// uvSection updates uv itself, then either syncs the project in the working
// directory (when a pyproject.toml is present) or upgrades globally
// installed tools.
func (rn *run) uvSection(res *SectionResult) {
	// uv installed through brew or a distro package refuses self update;
	// that is an expected configuration, so a failure here is informational.
	rn.r.RunSoft("uv self update", "uv", "self", "update")

	if _, err := os.Stat("pyproject.toml"); err == nil {
		logger.Info("pyproject.toml present, syncing project environment\n")
		rn.step(res, rn.r.RunSpinner("uv sync --upgrade", "uv", "sync", "--upgrade"))
		return
	}

	if rn.cfg.DryRun {
		rn.r.Run("uv tool upgrade", "uv", "tool", "upgrade", "--all")
		return
	}

	n := rn.countUvOutdated()
	res.Outdated = n
	if n > 0 {
		logger.Info("%d outdated tool(s)\n", n)
		rn.step(res, rn.r.RunSpinner("uv tool upgrade", "uv", "tool", "upgrade", "--all"))
	} else {
		logger.Success("✓ uv tools up to date\n")
	}
}
