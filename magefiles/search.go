//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search builds the CLI and runs one query through the search gateway.
// See prd002-websearch for full requirements.
func Search(query string) error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "search", query)
}
