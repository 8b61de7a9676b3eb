package extractor

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func writeTarGz(t *testing.T, path string, entries map[string]string, singleRootDir string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	if singleRootDir != "" {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: singleRootDir + "/", Typeflag: tar.TypeDir, Mode: 0o755}))
	}
	for name, content := range entries {
		full := name
		if singleRootDir != "" {
			full = singleRootDir + "/" + name
		}
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: full, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestExtractSingleRootCollapse(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg.tar.gz")
	writeTarGz(t, archive, map[string]string{"README": "hi"}, "pkg-1.0")

	dest := filepath.Join(dir, "work")
	root, err := Extract(archive, dest)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dest, "pkg-1.0"), root)

	data, err := os.ReadFile(filepath.Join(root, "README"))
	require.NoError(t, err)
	require.Equal(t, "hi", string(data))
}

func TestExtractMultiRootNoCollapse(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg.tar.gz")
	writeTarGz(t, archive, map[string]string{"a": "1", "b": "2"}, "")

	dest := filepath.Join(dir, "work")
	root, err := Extract(archive, dest)
	require.NoError(t, err)
	require.Equal(t, dest, root)
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.tar.gz")

	f, err := os.Create(archive)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "../../etc/passwd", Typeflag: tar.TypeReg, Mode: 0o644, Size: 3}))
	_, _ = tw.Write([]byte("hi\n"))
	tw.Close()
	gz.Close()
	f.Close()

	dest := filepath.Join(dir, "work")
	_, err = Extract(archive, dest)
	require.Error(t, err)
}

func TestExtractUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg.rar")
	require.NoError(t, os.WriteFile(archive, []byte("x"), 0o644))

	_, err := Extract(archive, filepath.Join(dir, "work"))
	require.Error(t, err)
}

func TestExtractClearsStaleDestination(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "work")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "stale"), []byte("old"), 0o644))

	archive := filepath.Join(dir, "pkg.tar.gz")
	writeTarGz(t, archive, map[string]string{"fresh": "new"}, "")

	root, err := Extract(archive, dest)
	require.NoError(t, err)
	require.Equal(t, dest, root)

	_, err = os.Stat(filepath.Join(dest, "stale"))
	require.True(t, os.IsNotExist(err))
}
