// Package patcher applies ordered PatchSpecs to an extracted source tree
// using the external `patch` tool (spec §4.4).
package patcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fcanata061/srcpkg/internal/errs"
	"github.com/fcanata061/srcpkg/internal/fetcher"
	"github.com/fcanata061/srcpkg/internal/recipe"
)

// Apply resolves and applies each patch in declaration order against
// srcRoot. A failed patch aborts immediately.
func Apply(patches []recipe.PatchSpec, srcRoot, patchesDir string) error {
	for i, p := range patches {
		path, err := resolve(p, patchesDir, i)
		if err != nil {
			return err
		}

		if p.SHA256 != nil {
			sum, err := fetcher.SHA256File(path)
			if err != nil {
				return fmt.Errorf("checksum patch %s: %w", path, err)
			}
			if sum != *p.SHA256 {
				return &errs.ChecksumMismatchError{Path: path, Expected: *p.SHA256, Got: sum}
			}
		}

		if err := applyOne(path, srcRoot, p.Strip); err != nil {
			return &errs.PatchFailedError{Patch: path, Err: err}
		}
	}
	return nil
}

// resolve returns a local filesystem path for a patch, downloading it first
// when it is URL-typed.
func resolve(p recipe.PatchSpec, patchesDir string, index int) (string, error) {
	if !p.IsURL() {
		return p.Path, nil
	}

	if err := os.MkdirAll(patchesDir, 0o755); err != nil {
		return "", fmt.Errorf("create patches dir: %w", err)
	}
	dest := filepath.Join(patchesDir, fmt.Sprintf("%d-%s", index, filepath.Base(p.URL)))

	if path, err := exec.LookPath("wget"); err == nil {
		cmd := exec.Command(path, "-O", dest, p.URL)
		cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
		if err := cmd.Run(); err != nil {
			return "", &errs.NetworkError{URL: p.URL, Err: err}
		}
		return dest, nil
	}
	if path, err := exec.LookPath("curl"); err == nil {
		cmd := exec.Command(path, "-fsSL", "-o", dest, p.URL)
		cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
		if err := cmd.Run(); err != nil {
			return "", &errs.NetworkError{URL: p.URL, Err: err}
		}
		return dest, nil
	}
	return "", &errs.NoDownloaderError{}
}

// applyOne invokes `patch -p<N> -t -N -r - -i <file>`: strict, non-
// interactive, reverse-rejects routed to stderr (spec §4.4).
func applyOne(patchFile, srcRoot string, strip int) error {
	cmd := exec.Command("patch",
		fmt.Sprintf("-p%d", strip),
		"-t", "-N", "-r", "-",
		"-i", patchFile,
	)
	cmd.Dir = srcRoot
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
