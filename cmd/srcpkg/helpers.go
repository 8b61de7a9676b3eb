package main

import (
	"fmt"
	"path/filepath"

	"github.com/fcanata061/srcpkg/internal/config"
	"github.com/fcanata061/srcpkg/internal/db"
	"github.com/fcanata061/srcpkg/internal/recipe"
)

// loadRecipe resolves ref against the repo index rooted at cfg.Repo, per
// spec §4.1 (explicit path, repo index, or <name>.json in cwd).
func loadRecipe(ref string) (*recipe.PackageMeta, error) {
	idx, err := recipe.ScanRepo(cfg.Repo, config.RepoCategories)
	if err != nil {
		return nil, fmt.Errorf("scan recipe repo: %w", err)
	}
	return recipe.Load(ref, idx)
}

// isInstalled reports whether name has a database record, for use as
// resolver.Resolve's descent guard (spec §4.9).
func isInstalled(name string) bool {
	rec, err := db.New(cfg.DB).Load(name)
	return err == nil && rec != nil
}

// stageDir returns the per-package DESTDIR work tree for a build.
func stageDir(cfg *config.Config, name string) string {
	return filepath.Join(cfg.Build, name, "stage")
}

// srcDir returns the per-package extracted-source work tree for a build.
func srcDir(cfg *config.Config, name string) string {
	return filepath.Join(cfg.Build, name, "src")
}

// patchesDir returns the per-package downloaded-patch cache.
func patchesDir(cfg *config.Config, name string) string {
	return filepath.Join(cfg.Build, name, "patches")
}
