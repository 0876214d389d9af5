package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pkgup/internal/config"
	"pkgup/internal/logger"
	"pkgup/internal/runner"
	"pkgup/internal/term"
	"pkgup/internal/updater"
)

// version is stamped at build time via -ldflags "-X pkgup/cmd.version=...".
var version = "dev"

// Flag values bound in init. The optional pkgup.yaml supplies defaults for
// flags the user did not pass explicitly; explicit flags always win.
var (
	dryRun  bool
	only    string
	noColor bool
	quiet   bool
)

// exitCode is the status Execute terminates with. It holds the exit code of
// the last failed external command and is consulted exactly once, at the
// very end, so no mid-run failure cuts the run short.
var exitCode int

// rootCmd is the single pkgup command; there are no subcommands.
var rootCmd = &cobra.Command{
	Use:   "pkgup",
	Short: "Update Homebrew, uv, and pip in one pass",
	Long: `pkgup updates three package managers in sequence: Homebrew
(update, upgrade, cleanup, doctor), uv (self update, then project sync or
tool upgrades), and pip (self upgrade, then each outdated package).

Sections for tools that are not installed are skipped with a warning.
Failures are reported and the run continues; the process exit code
reflects the last failed command.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			// A broken config file is reported but not fatal; flags still work.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		applyConfigDefaults(cmd, cfg)

		if err := validateOnly(); err != nil {
			return err
		}

		colorOK := !noColor && term.SupportsColor(os.Stdout)
		if !colorOK {
			pterm.DisableColor()
		}
		logger.Init(quiet, colorOK)

		r := &runner.Runner{
			DryRun:  dryRun,
			Spinner: !quiet && colorOK,
		}
		_, exitCode = updater.Run(updater.RunConfig{
			DryRun: dryRun,
			Only:   only,
			Skip:   cfg.Skip,
		}, r)
		return nil
	},
}

// Execute parses the command line and runs the update. Argument errors
// print the message and usage to stderr and exit with status 2; otherwise
// the process exits with the last failed command's code (0 on full success).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprint(os.Stderr, rootCmd.UsageString())
		os.Exit(2)
	}
	os.Exit(exitCode)
}

// applyConfigDefaults fills flag values from pkgup.yaml for flags the user
// did not set on the command line.
func applyConfigDefaults(cmd *cobra.Command, cfg config.File) {
	flags := cmd.Flags()
	if !flags.Changed("dry-run") && cfg.DryRun {
		dryRun = true
	}
	if !flags.Changed("quiet") && cfg.Quiet {
		quiet = true
	}
	if !flags.Changed("no-color") && cfg.NoColor {
		noColor = true
	}
	if !flags.Changed("only") && cfg.Only != "" {
		only = cfg.Only
	}
}

// validateOnly rejects --only values that do not name a section.
func validateOnly() error {
	switch only {
	case "", updater.SectionBrew, updater.SectionUv, updater.SectionPip:
		return nil
	}
	return fmt.Errorf("invalid --only value %q (expected brew, uv, or pip)", only)
}

// init registers the flag surface on the root command.
func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print commands instead of executing them")
	rootCmd.Flags().StringVar(&only, "only", "", "Run a single section (brew, uv, or pip)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress informational output")
}
