// Package testutil provides shared test helpers for building isolated
// root directories, mirroring the teacher's per-test-config fixture
// pattern.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fcanata061/srcpkg/internal/config"
	"github.com/stretchr/testify/require"
)

// NewTestRoots builds a fully-initialized Config rooted under a fresh
// t.TempDir(), with every directory already created.
func NewTestRoots(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Root:  root,
		Build: filepath.Join(root, "build"),
		Pkgs:  filepath.Join(root, "packages"),
		Src:   filepath.Join(root, "sources"),
		DB:    filepath.Join(root, "db"),
		Logs:  filepath.Join(root, "logs"),
		Hooks: filepath.Join(root, "hooks"),
		Repo:  filepath.Join(root, "repo"),
	}
	require.NoError(t, cfg.EnsureDirectories())
	require.NoError(t, os.MkdirAll(cfg.Repo, 0o755))
	return cfg
}

// WriteFile writes contents to a path relative to dir, creating parent
// directories as needed.
func WriteFile(t *testing.T, dir, rel, contents string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}
