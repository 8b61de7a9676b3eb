package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fcanata061/srcpkg/internal/errs"
	"github.com/fcanata061/srcpkg/internal/log"
	"github.com/fcanata061/srcpkg/internal/recipe"
	"github.com/stretchr/testify/require"
)

func TestFetchArchiveChecksumMismatchDoesNotDeleteCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello world"))
	}))
	defer srv.Close()

	cacheDir := t.TempDir()
	f := New(cacheDir)
	f.Logger = log.NewNoop()

	wrongSum := "0000000000000000000000000000000000000000000000000000000000000"
	src := &recipe.SourceSpec{Kind: recipe.SourceArchive, URL: srv.URL + "/hello.tar.gz", SHA256: &wrongSum}

	// Force the download path: no wget/curl assumed present in the sandbox.
	_, err := f.Fetch(context.Background(), src, t.TempDir())
	require.Error(t, err)

	var mismatch *errs.ChecksumMismatchError
	require.ErrorAs(t, err, &mismatch)

	// cached file must still exist for operator inspection
	_, statErr := os.Stat(filepath.Join(cacheDir, "hello.tar.gz"))
	require.NoError(t, statErr)
}

func TestFetchArchiveCacheHitSkipsDownload(t *testing.T) {
	cacheDir := t.TempDir()
	cached := filepath.Join(cacheDir, "already.tar.gz")
	require.NoError(t, os.WriteFile(cached, []byte("cached-bytes"), 0o644))

	f := New(cacheDir)
	f.Logger = log.NewNoop()
	src := &recipe.SourceSpec{Kind: recipe.SourceArchive, URL: "https://example.invalid/already.tar.gz"}

	path, err := f.Fetch(context.Background(), src, t.TempDir())
	require.NoError(t, err)
	require.Equal(t, cached, path)
}
