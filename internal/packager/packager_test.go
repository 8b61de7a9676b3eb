package packager

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"

	"github.com/fcanata061/srcpkg/internal/recipe"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func TestPackageProducesRootedTarXz(t *testing.T) {
	dir := t.TempDir()
	stage := filepath.Join(dir, "stage")
	require.NoError(t, os.MkdirAll(filepath.Join(stage, "usr", "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stage, "usr", "bin", "hello"), []byte("#!/bin/sh\necho hi\n"), 0o644))

	out := filepath.Join(dir, "hello-1.0-1.tar.xz")
	err := Package(stage, out, recipe.PackageOptions{}, nil)
	require.NoError(t, err)

	names := readTarXzNames(t, out)
	require.Contains(t, names, "./usr/")
	require.Contains(t, names, "./usr/bin/")
	require.Contains(t, names, "./usr/bin/hello")
}

func readTarXzNames(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	xr, err := xz.NewReader(f)
	require.NoError(t, err)

	tr := tar.NewReader(xr)
	var names []string
	for {
		hdr, err := tr.Next()
		if err != nil {
			break
		}
		names = append(names, hdr.Name)
	}
	return names
}
