// Package hooks runs per-recipe and global drop-in hook scripts
// (spec §4.7/§4.8/§9). Hook failures are logged as warnings; they never
// abort an install or removal in progress.
package hooks

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/fcanata061/srcpkg/internal/errs"
	"github.com/fcanata061/srcpkg/internal/log"
)

// RunRecipeHooks runs each command string in lines as a shell command,
// with cwd set to workDir. Each failure is logged and skipped; the
// remaining hooks still run.
func RunRecipeHooks(lines []string, workDir string, logger log.Logger) {
	if logger == nil {
		logger = log.NewNoop()
	}
	for _, line := range lines {
		cmd := exec.Command(shellFor(), "-c", line)
		cmd.Dir = workDir
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			logger.Warn("recipe hook failed", "err", (&errs.HookFailedError{Hook: line, Err: err}).Error())
		}
	}
}

// RunGlobalHooks executes every executable entry in dir, in lexicographic
// order, passing pkgName as the sole argument. Non-executable entries are
// skipped. Failures are logged and do not stop the remaining hooks.
func RunGlobalHooks(dir, pkgName string, logger log.Logger) {
	if logger == nil {
		logger = log.NewNoop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.Mode()&0o111 == 0 {
			continue
		}

		cmd := exec.Command(path, pkgName)
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			logger.Warn("global hook failed", "err", (&errs.HookFailedError{Hook: path, Err: err}).Error())
		}
	}
}

func shellFor() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}
