// Package config loads the optional pkgup.yaml defaults file.
// The file provides defaults for the CLI flags plus a list of sections to
// skip; flags given on the command line always win over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File mirrors the pkgup.yaml structure. The zero value is a valid
// configuration meaning "no defaults".
type File struct {
	DryRun  bool     `yaml:"dry_run"`  // Default for --dry-run
	Quiet   bool     `yaml:"quiet"`    // Default for --quiet
	NoColor bool     `yaml:"no_color"` // Default for --no-color
	Only    string   `yaml:"only"`     // Default for --only (brew, uv, or pip)
	Skip    []string `yaml:"skip"`     // Section names to skip entirely
}

// fileName is the config file looked for in the current directory and under
// the user config directory.
const fileName = "pkgup.yaml"

// Load reads the first pkgup.yaml found, searching the working directory and
// then ~/.config/pkgup/. A missing file is not an error: the zero File is
// returned. A file that exists but fails to parse returns an error so the
// caller can warn without aborting the run.
func Load() (File, error) {
	for _, path := range searchPaths() {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var f File
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return File{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return f, nil
	}
	return File{}, nil
}

// searchPaths returns the candidate config file locations in priority order.
func searchPaths() []string {
	paths := []string{fileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "pkgup", fileName))
	}
	return paths
}
