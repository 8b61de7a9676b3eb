package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeRecipe(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadByPath(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "hello.json", `{
		"name": "hello",
		"version": "1.0",
		"source": {"type": "archive", "url": "https://example.com/hello-1.0.tar.gz"},
		"build": {"compile": ["true"], "install": ["true"]}
	}`)

	meta, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, "hello", meta.Name)
	require.Equal(t, DefaultCategory, meta.Category)
}

func TestLoadMissingRequiredFields(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "bad.json", `{"name": "bad"}`)

	_, err := Load(path, nil)
	require.Error(t, err)
}

func TestLoadByNameFallsBackToCurrentDir(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	writeRecipe(t, dir, "foo.json", `{
		"name": "foo", "version": "2.0",
		"source": {"type": "archive", "url": "https://example.com/foo.tar.gz"},
		"build": {}
	}`)

	meta, err := Load("foo", RepoIndex{})
	require.NoError(t, err)
	require.Equal(t, "foo", meta.Name)
}

func TestLoadByNameUsesRepoIndex(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "bar.json", `{
		"name": "bar", "version": "3.0",
		"source": {"type": "archive", "url": "https://example.com/bar.tar.gz"},
		"build": {}
	}`)

	meta, err := Load("bar", RepoIndex{"bar": path})
	require.NoError(t, err)
	require.Equal(t, "bar", meta.Name)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("nonexistent-xyz", RepoIndex{})
	require.Error(t, err)
}

func TestPatchMustBeExactlyOneOfPathOrURL(t *testing.T) {
	m := &PackageMeta{
		Name: "p", Version: "1",
		Patches: []PatchSpec{{}},
	}
	require.Error(t, m.Validate())

	m.Patches[0].Path = "a.patch"
	m.Patches[0].URL = "https://example.com/a.patch"
	require.Error(t, m.Validate())

	m.Patches[0].URL = ""
	require.NoError(t, m.Validate())
}

func TestNormalizeDefaultsPatchStrip(t *testing.T) {
	m := &PackageMeta{Patches: []PatchSpec{{Path: "a"}, {Path: "b", Strip: 2}}}
	m.Normalize()
	require.Equal(t, 1, m.Patches[0].Strip)
	require.Equal(t, 2, m.Patches[1].Strip)
}

func TestScanRepoRecursiveLastWins(t *testing.T) {
	root := t.TempDir()
	baseDir := filepath.Join(root, "base", "nested")
	require.NoError(t, os.MkdirAll(baseDir, 0o755))
	extrasDir := filepath.Join(root, "extras")
	require.NoError(t, os.MkdirAll(extrasDir, 0o755))

	writeRecipe(t, baseDir, "dup.json", `{"name":"dup","version":"1.0","source":{"type":"archive","url":"https://x/a.tar.gz"},"build":{}}`)
	writeRecipe(t, extrasDir, "dup2.json", `{"name":"dup","version":"2.0","source":{"type":"archive","url":"https://x/b.tar.gz"},"build":{}}`)

	idx, err := ScanRepo(root, []string{"base", "extras"})
	require.NoError(t, err)
	require.Contains(t, idx, "dup")
	require.Equal(t, filepath.Join(extrasDir, "dup2.json"), idx["dup"])
}
