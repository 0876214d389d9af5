package updater

import "pkgup/internal/logger"

// brewSection refreshes Homebrew's metadata, upgrades outdated formulae and
// casks in bulk, prunes old downloads, and finishes with brew doctor.
func (rn *run) brewSection(res *SectionResult) {
	rn.step(res, rn.r.RunSpinner("brew update", "brew", "update"))

	if rn.cfg.DryRun {
		// Counting would query external state, so dry-run always shows the
		// upgrade intent instead of deciding whether it is needed.
		rn.r.Run("brew upgrade", "brew", "upgrade")
		rn.r.Run("brew cleanup", "brew", "cleanup")
		rn.r.Run("brew doctor", "brew", "doctor")
		return
	}

	n := rn.countBrewOutdated()
	res.Outdated = n
	if n > 0 {
		logger.Info("%d outdated formulae/casks\n", n)
		rn.step(res, rn.r.RunSpinner("brew upgrade", "brew", "upgrade"))
	} else {
		logger.Success("✓ brew packages up to date\n")
	}

	rn.step(res, rn.r.RunSpinner("brew cleanup", "brew", "cleanup"))

	// brew doctor complains on plenty of healthy systems; a non-zero exit
	// here is a warning, never a failed run.
	rn.r.RunCheck("brew doctor", "brew", "doctor")
}
