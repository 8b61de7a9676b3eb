// Package extractor dispatches archive unpacking by filename suffix
// (spec §4.3) and applies the single-root collapse rule.
package extractor

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fcanata061/srcpkg/internal/errs"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// tarSuffixes are the compressed-tar suffixes handled by the built-in tar
// reader; order does not matter since every entry is a full suffix.
var tarSuffixes = []string{".tar.gz", ".tgz", ".tar.bz2", ".tbz2", ".tar.xz", ".txz"}

// Extract unpacks archivePath into dest (clearing dest first if it already
// exists, per spec §4.3) and returns the effective source root after
// applying the single-root collapse rule.
func Extract(archivePath, dest string) (string, error) {
	if _, err := os.Stat(dest); err == nil {
		if err := os.RemoveAll(dest); err != nil {
			return "", fmt.Errorf("clear extraction destination %s: %w", dest, err)
		}
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("create extraction destination: %w", err)
	}

	name := strings.ToLower(archivePath)
	switch {
	case hasAnySuffix(name, tarSuffixes):
		if err := extractTar(archivePath, dest); err != nil {
			return "", err
		}
	case strings.HasSuffix(name, ".tar.zst"):
		if err := extractTarZstExternal(archivePath, dest); err != nil {
			return "", err
		}
	case strings.HasSuffix(name, ".zip"):
		if err := extractZip(archivePath, dest); err != nil {
			return "", err
		}
	case strings.HasSuffix(name, ".7z") || strings.HasSuffix(name, ".7zip"):
		if err := extract7zExternal(archivePath, dest); err != nil {
			return "", err
		}
	default:
		return "", &errs.UnsupportedArchiveError{Filename: archivePath}
	}

	return collapseSingleRoot(dest)
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// collapseSingleRoot implements spec §4.3: if extraction produced exactly
// one entry and that entry is a directory, it becomes the effective root.
func collapseSingleRoot(dest string) (string, error) {
	entries, err := os.ReadDir(dest)
	if err != nil {
		return "", fmt.Errorf("read extraction destination: %w", err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dest, entries[0].Name()), nil
	}
	return dest, nil
}

func extractTar(archivePath, dest string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	name := strings.ToLower(archivePath)
	switch {
	case strings.HasSuffix(name, ".tar.gz") || strings.HasSuffix(name, ".tgz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(name, ".tar.bz2") || strings.HasSuffix(name, ".tbz2"):
		r = bzip2.NewReader(f)
	case strings.HasSuffix(name, ".tar.xz") || strings.HasSuffix(name, ".txz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			return fmt.Errorf("open xz stream: %w", err)
		}
		r = xr
	}

	return writeTarEntries(tar.NewReader(r), dest)
}

func writeTarEntries(tr *tar.Reader, dest string) error {
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar entry: %w", err)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		default:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			out.Close()
		}
	}
}

func extractZip(archivePath, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
		if err != nil {
			rc.Close()
			return err
		}
		_, copyErr := io.Copy(out, rc)
		rc.Close()
		out.Close()
		if copyErr != nil {
			return copyErr
		}
	}
	return nil
}

// safeJoin rejects archive entries that would escape dest (zip-slip/path
// traversal guard).
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}
	return target, nil
}

func extractTarZstExternal(archivePath, dest string) error {
	cmd := exec.Command("tar", "--zstd", "-xf", archivePath, "-C", dest)
	cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("external tar --zstd failed: %w", err)
	}
	return nil
}

func extract7zExternal(archivePath, dest string) error {
	cmd := exec.Command("7z", "x", "-y", "-o"+dest, archivePath)
	cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("external 7z failed: %w", err)
	}
	return nil
}
