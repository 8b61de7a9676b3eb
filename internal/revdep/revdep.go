// Package revdep scans installed packages for shared-library consumers
// whose dynamic dependencies are no longer satisfiable, and can trigger
// a rebuild pass over them (spec §4.10).
package revdep

import (
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/fcanata061/srcpkg/internal/db"
	"github.com/fcanata061/srcpkg/internal/log"
)

// notFoundPattern matches ldd's "<soname> => not found" lines.
var notFoundPattern = regexp.MustCompile(`^\s*(\S+)\s*=>\s*not found`)

// Broken describes one installed package with at least one unresolved
// shared-library dependency.
type Broken struct {
	Package        string   `json:"package" yaml:"package"`
	MissingLibrary []string `json:"missing_libraries" yaml:"missing_libraries"`
}

// ProviderMap maps a shared-library basename (e.g. "libz.so.1") to the
// sorted set of installed package names that ship a file with that
// basename, built from every record's file manifest. More than one
// package can legitimately provide the same basename (e.g. a 32-bit and
// 64-bit build living side by side), so this is a set, not a single
// winner.
func ProviderMap(records []*db.InstalledPkg) map[string][]string {
	seen := make(map[string]map[string]bool)
	for _, rec := range records {
		for _, f := range rec.Files {
			base := filepath.Base(f)
			if !isSharedObject(base) {
				continue
			}
			if seen[base] == nil {
				seen[base] = make(map[string]bool)
			}
			seen[base][rec.Name] = true
		}
	}

	providers := make(map[string][]string, len(seen))
	for base, names := range seen {
		list := make([]string, 0, len(names))
		for name := range names {
			list = append(list, name)
		}
		sort.Strings(list)
		providers[base] = list
	}
	return providers
}

// isSharedObject reports whether name looks like a shared-library
// basename: it starts with "lib" and carries a ".so" component (spec
// §4.10 Phase 1), e.g. "libz.so.1" or "libpng16.so.16".
func isSharedObject(name string) bool {
	return strings.HasPrefix(name, "lib") && strings.Contains(name, ".so")
}

// Audit runs `ldd` against every ELF file owned by each installed
// package and reports packages with at least one "not found" dependency.
// Files ldd cannot inspect (non-ELF files, directories) are skipped rather
// than reported as broken. If ldd is not on PATH, a warning is logged and
// no package is reported.
func Audit(records []*db.InstalledPkg, logger log.Logger) []Broken {
	if logger == nil {
		logger = log.NewNoop()
	}
	lddPath, err := exec.LookPath("ldd")
	if err != nil {
		logger.Warn("ldd not available, skipping reverse-dependency audit")
		return nil
	}

	var broken []Broken
	for _, rec := range records {
		missing := auditPackage(lddPath, rec)
		if len(missing) > 0 {
			broken = append(broken, Broken{Package: rec.Name, MissingLibrary: missing})
		}
	}
	return broken
}

func auditPackage(lddPath string, rec *db.InstalledPkg) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, f := range rec.Files {
		out, err := exec.Command(lddPath, f).CombinedOutput()
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(out), "\n") {
			m := notFoundPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if !seen[m[1]] {
				seen[m[1]] = true
				missing = append(missing, m[1])
			}
		}
	}
	return missing
}

// RebuildOrder returns the broken packages in enumeration order, the
// order a rebuild pass should process them in (spec §4.10: no
// topological re-sort, just the order they were reported).
func RebuildOrder(broken []Broken) []string {
	names := make([]string, len(broken))
	for i, b := range broken {
		names[i] = b.Package
	}
	return names
}
