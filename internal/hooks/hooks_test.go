package hooks

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunRecipeHooksExecutesInOrder(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "order.log")

	lines := []string{
		"echo one >> " + out,
		"echo two >> " + out,
	}
	RunRecipeHooks(lines, dir, nil)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(data))
}

func TestRunRecipeHooksContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "order.log")

	lines := []string{
		"exit 1",
		"echo survived >> " + out,
	}
	RunRecipeHooks(lines, dir, nil)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "survived\n", string(data))
}

func TestRunGlobalHooksSkipsNonExecutableAndRunsInLexOrder(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit semantics do not apply on windows")
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "calls.log")

	writeHook(t, filepath.Join(dir, "10-second"), out, "second")
	writeHook(t, filepath.Join(dir, "01-first"), out, "first")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "00-disabled"), []byte("#!/bin/sh\necho should-not-run >> "+out+"\n"), 0o644))

	RunGlobalHooks(dir, "somepkg", nil)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "first somepkg\nsecond somepkg\n", string(data))
}

func writeHook(t *testing.T, path, logPath, tag string) {
	t.Helper()
	script := "#!/bin/sh\necho " + tag + " \"$1\" >> " + logPath + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
}
