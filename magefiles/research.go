//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Research builds the CLI and runs the full pipeline for one company.
// See prd001-pipeline for full requirements.
func Research(company, industry string) error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "research", company, "--industry", industry)
}
