// Package builder runs the three scripted build phases (prepare, compile,
// install) into a staging root (spec §4.5).
package builder

import (
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/fcanata061/srcpkg/internal/errs"
	"github.com/fcanata061/srcpkg/internal/recipe"
)

// Options controls a single build invocation.
type Options struct {
	SrcRoot   string    // where phases run (cmd.Dir)
	DestDir   string    // staging root injected as $DESTDIR
	BuildOnly bool      // skip the install phase
	Log       io.Writer // interleaved stdout/stderr sink (per-package build log)
}

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// buildEnv constructs the phase environment per spec §4.5: inherit the
// process environment, overlay the recipe's env map, overlay injected
// variables, then expand $VAR/${VAR} against the accumulated environment.
func buildEnv(spec *recipe.BuildSpec, injected map[string]string) []string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	for k, v := range spec.Env {
		env[k] = v
	}
	for k, v := range injected {
		env[k] = v
	}

	expanded := make(map[string]string, len(env))
	for k, v := range env {
		expanded[k] = expand(v, env)
	}

	out := make([]string, 0, len(expanded))
	for k, v := range expanded {
		out = append(out, k+"="+v)
	}
	return out
}

func expand(value string, env map[string]string) string {
	return varPattern.ReplaceAllStringFunc(value, func(m string) string {
		sub := varPattern.FindStringSubmatch(m)
		name := sub[1]
		if name == "" {
			name = sub[2]
		}
		return env[name]
	})
}

// shellFor returns the interactive shell to run phases with: $SHELL, or
// /bin/sh by default.
func shellFor() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// Run executes prepare, compile, then (unless BuildOnly) install, in order.
// Any non-zero shell exit aborts immediately with BuildScriptFailedError.
func Run(spec *recipe.BuildSpec, opts Options) error {
	injected := map[string]string{"DESTDIR": opts.DestDir}

	phases := []struct {
		name  string
		lines []string
	}{
		{"prepare", spec.Prepare},
		{"compile", spec.Compile},
		{"install", spec.Install},
	}

	for _, phase := range phases {
		if phase.name == "install" && opts.BuildOnly {
			continue
		}
		if len(phase.lines) == 0 {
			continue
		}
		if err := runPhase(phase.name, phase.lines, spec, opts, injected); err != nil {
			return err
		}
	}
	return nil
}

func runPhase(name string, lines []string, spec *recipe.BuildSpec, opts Options, injected map[string]string) error {
	script := strings.Join(lines, "\n")
	cmd := exec.Command(shellFor(), "-exc", script)
	cmd.Dir = opts.SrcRoot
	cmd.Env = buildEnv(spec, injected)
	if opts.Log != nil {
		cmd.Stdout = opts.Log
		cmd.Stderr = opts.Log
	} else {
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if ee, ok := err.(*exec.ExitError); ok {
			exitCode = ee.ExitCode()
		}
		return &errs.BuildScriptFailedError{Phase: name, ExitCode: exitCode, Err: err}
	}
	return nil
}
