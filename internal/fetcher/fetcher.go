// Package fetcher implements archive and git retrieval with a checksum
// gate (spec §4.2).
package fetcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/cavaliergopher/grab/v3"
	"github.com/fcanata061/srcpkg/internal/errs"
	"github.com/fcanata061/srcpkg/internal/log"
	"github.com/fcanata061/srcpkg/internal/recipe"
)

// chunkSize is the fixed streaming chunk used for checksum computation,
// per spec §4.2 ("1 MiB").
const chunkSize = 1 << 20

// Fetcher retrieves SourceSpec artifacts into a shared sources cache
// (archives) or a per-package clone directory (git).
type Fetcher struct {
	CacheDir string
	Logger   log.Logger
}

// New builds a Fetcher rooted at cacheDir.
func New(cacheDir string) *Fetcher {
	return &Fetcher{CacheDir: cacheDir, Logger: log.Default()}
}

// Fetch resolves a SourceSpec into a local path: the cached archive file,
// or the git working directory.
func (f *Fetcher) Fetch(ctx context.Context, src *recipe.SourceSpec, workDir string) (string, error) {
	switch src.Kind {
	case recipe.SourceGit:
		return f.fetchGit(ctx, src, workDir)
	default:
		return f.fetchArchive(ctx, src)
	}
}

func (f *Fetcher) fetchArchive(ctx context.Context, src *recipe.SourceSpec) (string, error) {
	filename := filepath.Base(src.URL)
	dest := filepath.Join(f.CacheDir, filename)

	if _, err := os.Stat(dest); err == nil {
		f.Logger.Info("sources cache hit", "file", filename)
	} else {
		if err := os.MkdirAll(f.CacheDir, 0o755); err != nil {
			return "", fmt.Errorf("create sources cache: %w", err)
		}
		tmp := dest + ".part"
		if err := f.download(ctx, src.URL, tmp); err != nil {
			return "", err
		}
		if err := os.Rename(tmp, dest); err != nil {
			return "", fmt.Errorf("finalize download %s: %w", dest, err)
		}
	}

	if src.HasChecksum() {
		sum, err := sha256File(dest)
		if err != nil {
			return "", fmt.Errorf("checksum %s: %w", dest, err)
		}
		if sum != *src.SHA256 {
			// Operator-inspection: the cached file is NOT deleted (spec §4.2).
			return "", &errs.ChecksumMismatchError{Path: dest, Expected: *src.SHA256, Got: sum}
		}
	}

	return dest, nil
}

// download invokes the first available external downloader (wget, curl),
// falling back to the in-process grab client only when neither is on PATH.
func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	if path, err := exec.LookPath("wget"); err == nil {
		return runDownloader(ctx, path, "-O", dest, url)
	}
	if path, err := exec.LookPath("curl"); err == nil {
		return runDownloader(ctx, path, "-fsSL", "-o", dest, url)
	}

	f.Logger.Debug("no wget/curl on PATH, falling back to in-process downloader", "url", url)
	resp, err := grab.Get(dest, url)
	if err != nil {
		if resp != nil {
			return &errs.NetworkError{URL: url, Err: err}
		}
		return &errs.NoDownloaderError{Err: err}
	}
	if resp.HTTPResponse != nil && resp.HTTPResponse.StatusCode >= 400 {
		return &errs.NetworkError{URL: url, Err: fmt.Errorf("http status %s", resp.HTTPResponse.Status)}
	}
	return nil
}

func runDownloader(ctx context.Context, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return &errs.NetworkError{URL: args[len(args)-1], Err: err}
	}
	return nil
}

func (f *Fetcher) fetchGit(ctx context.Context, src *recipe.SourceSpec, workDir string) (string, error) {
	name := filepath.Base(src.URL)
	cloneDir := filepath.Join(f.CacheDir, "git", name)

	if _, err := os.Stat(filepath.Join(cloneDir, ".git")); err == nil {
		f.Logger.Info("git cache hit, fetching", "repo", name)
		cmd := exec.CommandContext(ctx, "git", "-C", cloneDir, "fetch", "--all")
		cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
		if err := cmd.Run(); err != nil {
			return "", &errs.NetworkError{URL: src.URL, Err: err}
		}
		return cloneDir, nil
	}

	if err := os.MkdirAll(filepath.Dir(cloneDir), 0o755); err != nil {
		return "", fmt.Errorf("create git cache dir: %w", err)
	}
	cmd := exec.CommandContext(ctx, "git", "clone", src.URL, cloneDir)
	cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
	if err := cmd.Run(); err != nil {
		return "", &errs.NetworkError{URL: src.URL, Err: err}
	}
	if src.Git != nil && src.Git.Ref != "" {
		checkout := exec.CommandContext(ctx, "git", "-C", cloneDir, "checkout", src.Git.Ref)
		checkout.Stdout, checkout.Stderr = os.Stderr, os.Stderr
		if err := checkout.Run(); err != nil {
			return "", &errs.NetworkError{URL: src.URL, Err: err}
		}
	}
	return cloneDir, nil
}

// sha256File streams a file's SHA-256 digest in fixed 1 MiB chunks.
func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SHA256File is exported for the patcher, which needs the same streaming
// checksum gate for downloaded patch files.
func SHA256File(path string) (string, error) { return sha256File(path) }
