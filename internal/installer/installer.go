// Package installer copies a completed staging tree onto the live
// filesystem and records the result in the package database (spec
// §4.7), and reverses that operation on removal (spec §4.8).
package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fcanata061/srcpkg/internal/config"
	"github.com/fcanata061/srcpkg/internal/db"
	"github.com/fcanata061/srcpkg/internal/errs"
	"github.com/fcanata061/srcpkg/internal/hooks"
	"github.com/fcanata061/srcpkg/internal/log"
	"github.com/fcanata061/srcpkg/internal/recipe"
	"golang.org/x/sys/unix"
)

// RequireRoot enforces the effective-UID-0 precondition for any operation
// that mutates the live filesystem (spec §4.7).
func RequireRoot() error {
	if unix.Geteuid() != 0 {
		return &errs.NotPrivilegedError{}
	}
	return nil
}

// Install copies every file under stageDir onto the live root (/ by
// convention, overridable via liveRoot for testing), builds the file
// manifest, persists the database record, then runs post_install hooks
// — in that order, so a record always exists before a hook can observe
// the package as installed (spec §4.7/§9).
func Install(meta *recipe.PackageMeta, stageDir, liveRoot string, cfg *config.Config, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNoop()
	}
	if err := RequireRoot(); err != nil {
		return err
	}

	files, err := copyTree(stageDir, liveRoot)
	if err != nil {
		return err
	}

	rec := &db.InstalledPkg{
		Name:    meta.Name,
		Version: meta.Version,
		Depends: meta.Depends,
		Files:   files,
		Recipe:  *meta,
	}
	if err := db.New(cfg.DB).Save(rec); err != nil {
		return fmt.Errorf("save database record for %s: %w", meta.Name, err)
	}

	hooks.RunRecipeHooks(meta.Hooks.PostInstall, liveRoot, logger)
	hooks.RunGlobalHooks(cfg.PostInstallDir(), meta.Name, logger)
	return nil
}

// copyTree copies every regular file, directory, and symlink under
// stageDir into the corresponding path under liveRoot, preserving mode
// and modification time, and returns the absolute live-root paths it
// wrote (the install manifest).
func copyTree(stageDir, liveRoot string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(stageDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(stageDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(liveRoot, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case info.Mode()&os.ModeSymlink != 0:
			linkTarget, err := os.Readlink(path)
			if err != nil {
				return err
			}
			os.Remove(target)
			if err := os.Symlink(linkTarget, target); err != nil {
				return err
			}
		default:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			if err := copyFile(path, target, info.Mode()); err != nil {
				return err
			}
			if err := os.Chtimes(target, info.ModTime(), info.ModTime()); err != nil {
				return err
			}
		}
		files = append(files, target)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("install staged tree: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		return copyErr
	}
	return closeErr
}

// Remove loads the database record for name, warning and returning (not
// an error) if it is absent, then deletes every file the package owns in
// descending path-length order (so a directory is removed only after its
// contents), pruning empty parent directories upward until it reaches
// liveRoot or a non-empty directory, then runs removal hooks and unlinks
// the database record (spec §4.8). Per-path failures are collected but
// do not abort the rest of the removal.
func Remove(name, liveRoot string, cfg *config.Config, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNoop()
	}
	if err := RequireRoot(); err != nil {
		return err
	}

	store := db.New(cfg.DB)
	rec, err := store.Load(name)
	if err != nil {
		return err
	}
	if rec == nil {
		logger.Warn("package not installed, nothing to remove", "name", name)
		return nil
	}

	paths := append([]string(nil), rec.Files...)
	sort.Slice(paths, func(i, j int) bool { return len(paths[i]) > len(paths[j]) })

	var failures []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			failures = append(failures, &errs.RemovalPartialError{Path: p, Err: err})
			continue
		}
		pruneEmptyParents(filepath.Dir(p), liveRoot)
	}

	hooks.RunRecipeHooks(rec.Recipe.Hooks.PostRemove, liveRoot, logger)
	hooks.RunGlobalHooks(cfg.PostRemoveDir(), name, logger)

	if err := store.Remove(name); err != nil {
		return err
	}

	if len(failures) > 0 {
		msgs := make([]string, len(failures))
		for i, f := range failures {
			msgs[i] = f.Error()
		}
		return fmt.Errorf("removal completed with errors: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// pruneEmptyParents walks upward from dir removing directories that have
// become empty, stopping at stopAt (exclusive) or the first non-empty
// directory.
func pruneEmptyParents(dir, stopAt string) {
	stopAt = filepath.Clean(stopAt)
	for {
		dir = filepath.Clean(dir)
		if dir == stopAt || dir == string(filepath.Separator) || dir == "." {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
