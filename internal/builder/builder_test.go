package builder

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fcanata061/srcpkg/internal/recipe"
	"github.com/stretchr/testify/require"
)

func TestRunPhasesInOrderWithDestDir(t *testing.T) {
	dir := t.TempDir()
	srcRoot := filepath.Join(dir, "src")
	destDir := filepath.Join(dir, "dest")
	require.NoError(t, os.MkdirAll(srcRoot, 0o755))
	require.NoError(t, os.MkdirAll(destDir, 0o755))

	spec := &recipe.BuildSpec{
		Prepare: []string{"echo prepare >> order.log"},
		Compile: []string{"echo compile >> order.log"},
		Install: []string{"mkdir -p \"$DESTDIR/usr/bin\" && cp order.log \"$DESTDIR/usr/bin/order.log\""},
	}

	var logBuf bytes.Buffer
	err := Run(spec, Options{SrcRoot: srcRoot, DestDir: destDir, Log: &logBuf})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(destDir, "usr", "bin", "order.log"))
	require.NoError(t, err)
	require.Equal(t, "prepare\ncompile\n", string(data))
}

func TestRunSkipsInstallInBuildOnlyMode(t *testing.T) {
	dir := t.TempDir()
	srcRoot := filepath.Join(dir, "src")
	destDir := filepath.Join(dir, "dest")
	require.NoError(t, os.MkdirAll(srcRoot, 0o755))
	require.NoError(t, os.MkdirAll(destDir, 0o755))

	spec := &recipe.BuildSpec{
		Install: []string{"touch \"$DESTDIR/should-not-exist\""},
	}

	err := Run(spec, Options{SrcRoot: srcRoot, DestDir: destDir, BuildOnly: true})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(destDir, "should-not-exist"))
	require.True(t, os.IsNotExist(err))
}

func TestRunAbortsOnNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	srcRoot := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcRoot, 0o755))

	spec := &recipe.BuildSpec{
		Prepare: []string{"exit 7"},
		Compile: []string{"touch should-not-run"},
	}

	err := Run(spec, Options{SrcRoot: srcRoot, DestDir: dir})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(srcRoot, "should-not-run"))
	require.True(t, os.IsNotExist(statErr))
}

func TestBuildEnvExpandsVariablesAndOverlaysRecipeEnv(t *testing.T) {
	t.Setenv("SRCPKG_TEST_BASE", "base-value")

	spec := &recipe.BuildSpec{
		Env: map[string]string{
			"PREFIX": "/usr",
			"FULL":   "${PREFIX}/local-${SRCPKG_TEST_BASE}",
		},
	}

	env := buildEnv(spec, map[string]string{"DESTDIR": "/stage"})

	want := map[string]string{
		"PREFIX":  "/usr",
		"FULL":    "/usr/local-base-value",
		"DESTDIR": "/stage",
	}
	got := envToMap(env)
	for k, v := range want {
		require.Equal(t, v, got[k], "env var %s", k)
	}
}

func envToMap(env []string) map[string]string {
	m := make(map[string]string, len(env))
	for _, kv := range env {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				m[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	return m
}
