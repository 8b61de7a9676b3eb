// Package config resolves the filesystem roots srcpkg operates under.
//
// All roots derive from a base directory (SRCPKG_ROOT) with per-category
// environment overrides, following the same "documented env var constant +
// Default* resolver" shape used throughout this codebase.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvRoot overrides the base directory for all srcpkg state.
	EnvRoot = "SRCPKG_ROOT"
	// EnvBuild overrides the build work-tree area.
	EnvBuild = "SRCPKG_BUILD"
	// EnvPkgs overrides the packages-output directory.
	EnvPkgs = "SRCPKG_PKGS"
	// EnvSrc overrides the sources cache directory.
	EnvSrc = "SRCPKG_SRC"
	// EnvRepo overrides the recipe repository root.
	EnvRepo = "REPO"

	// DefaultRootSuffix is appended to $HOME for the default root.
	DefaultRootSuffix = ".local/share/srcpkg"
	// DefaultRepoSuffix is appended to $HOME for the default recipe repo.
	DefaultRepoSuffix = "srcpkg-repo"
)

// Config holds every filesystem root srcpkg needs during a single invocation.
type Config struct {
	Root  string // base directory
	Build string // ephemeral work trees
	Pkgs  string // packaged .tar.xz output
	Src   string // shared sources cache
	DB    string // package database (one JSON record per installed package)
	Logs  string // per-package append-only build logs
	Hooks string // hooks directory, containing post-install.d / post-remove.d
	Repo  string // recipe repository root (base/x11/extras/desktop)
}

// PostInstallDir returns the global post_install drop-in directory.
func (c *Config) PostInstallDir() string { return filepath.Join(c.Hooks, "post-install.d") }

// PostRemoveDir returns the global post_remove drop-in directory.
func (c *Config) PostRemoveDir() string { return filepath.Join(c.Hooks, "post-remove.d") }

// PackagePath returns the path a packaged archive for name/version will be written to.
func (c *Config) PackagePath(name, version string) string {
	return filepath.Join(c.Pkgs, fmt.Sprintf("%s-%s-1.tar.xz", name, version))
}

// RecordPath returns the path of the database record for a given package name.
func (c *Config) RecordPath(name string) string {
	return filepath.Join(c.DB, name+".json")
}

// LogPath returns the append-only log file path for a given package name.
func (c *Config) LogPath(name string) string {
	return filepath.Join(c.Logs, name+".log")
}

// Default builds a Config from environment variables and $HOME defaults.
func Default() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	root := os.Getenv(EnvRoot)
	if root == "" {
		root = filepath.Join(home, DefaultRootSuffix)
	}

	repo := os.Getenv(EnvRepo)
	if repo == "" {
		repo = filepath.Join(home, DefaultRepoSuffix)
	}

	cfg := &Config{
		Root:  root,
		Build: envOr(EnvBuild, filepath.Join(root, "build")),
		Pkgs:  envOr(EnvPkgs, filepath.Join(root, "packages")),
		Src:   envOr(EnvSrc, filepath.Join(root, "sources")),
		DB:    filepath.Join(root, "db"),
		Logs:  filepath.Join(root, "logs"),
		Hooks: filepath.Join(root, "hooks"),
		Repo:  repo,
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnsureDirectories creates every root directory srcpkg needs, idempotently.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Root, c.Build, c.Pkgs, c.Src, c.DB, c.Logs,
		c.Hooks, c.PostInstallDir(), c.PostRemoveDir(),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", d, err)
		}
	}
	return nil
}

// RepoCategories are the four top-level recipe-repository subdirectories
// scanned recursively for *.json recipe files.
var RepoCategories = []string{"base", "x11", "extras", "desktop"}
