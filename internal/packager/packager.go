// Package packager turns a completed DESTDIR staging tree into a
// distributable tar.xz archive, optionally stripping binaries first
// (spec §4.6).
package packager

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fcanata061/srcpkg/internal/errs"
	"github.com/fcanata061/srcpkg/internal/log"
	"github.com/fcanata061/srcpkg/internal/recipe"
	"github.com/ulikunitz/xz"
)

// Package walks stageDir and writes a tar.xz archive to outputPath, rooted
// at "./" so extracting it reproduces the staged layout.
// When opts.Strip is set, owner-executable files and files carrying a
// ".so" component are passed through `strip --strip-unneeded` first;
// strip failures are logged and skipped rather than aborting the package.
func Package(stageDir, outputPath string, opts recipe.PackageOptions, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNoop()
	}

	if opts.Strip {
		if err := stripTree(stageDir, logger); err != nil {
			return err
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create package file: %w", err)
	}
	defer out.Close()

	xw, err := xz.NewWriter(out)
	if err != nil {
		return fmt.Errorf("open xz stream: %w", err)
	}
	defer xw.Close()

	tw := tar.NewWriter(xw)
	defer tw.Close()

	return filepath.WalkDir(stageDir, func(path string, d os.DirEntry, err error) error {
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

		info, err := d.Info()
		if err != nil {
			return err
		}

		var link string
		if info.Mode()&os.ModeSymlink != 0 {
			link, err = os.Readlink(path)
			if err != nil {
				return err
			}
		}

		hdr, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return err
		}
		hdr.Name = "./" + filepath.ToSlash(rel)
		if d.IsDir() {
			hdr.Name += "/"
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			_, copyErr := io.Copy(tw, f)
			f.Close()
			if copyErr != nil {
				return copyErr
			}
		}
		return nil
	})
}

// stripTree runs strip on every regular file under root that is either
// owner-executable or whose name contains ".so". Failures are non-fatal.
func stripTree(root string, logger log.Logger) error {
	stripPath, err := exec.LookPath("strip")
	if err != nil {
		logger.Warn("strip not available, skipping binary stripping")
		return nil
	}

	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !shouldStrip(path, info) {
			return nil
		}

		cmd := exec.Command(stripPath, "--strip-unneeded", path)
		if runErr := cmd.Run(); runErr != nil {
			logger.Warn("strip failed", "err", (&errs.StripFailedError{Path: path, Err: runErr}).Error())
		}
		return nil
	})
}

func shouldStrip(path string, info os.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	if info.Mode().Perm()&0o100 != 0 {
		return true
	}
	return strings.Contains(filepath.Base(path), ".so")
}
