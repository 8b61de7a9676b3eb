// Package resolver computes an install-ready dependency closure for a
// requested package (spec §4.9): a depth-first traversal that orders
// each dependency before the packages that need it, detecting cycles,
// and stopping descent through any dependency already present in the
// package database.
package resolver

import (
	"github.com/fcanata061/srcpkg/internal/errs"
	"github.com/fcanata061/srcpkg/internal/recipe"
)

// state distinguishes "currently on the DFS stack" from "fully resolved",
// so a dependency encountered a second time via a different path is not
// mistaken for a cycle.
type state int

const (
	unvisited state = iota
	visiting
	resolved
)

// Resolve returns meta's transitive dependencies followed by meta itself,
// each appearing exactly once, dependencies always preceding dependents.
// load is called once per distinct package name to obtain its recipe.
// isInstalled, when non-nil, is consulted for every dependency name before
// it is loaded or visited; a database hit stops descent through it (spec
// §4.9: an already-installed dependency is neither rebuilt nor
// reinstalled). isInstalled is never consulted for meta itself, only for
// its dependencies.
func Resolve(meta *recipe.PackageMeta, load func(name string) (*recipe.PackageMeta, error), isInstalled func(name string) bool) ([]*recipe.PackageMeta, error) {
	if isInstalled == nil {
		isInstalled = func(string) bool { return false }
	}
	states := make(map[string]state)
	cache := map[string]*recipe.PackageMeta{meta.Name: meta}
	var order []*recipe.PackageMeta

	var visit func(m *recipe.PackageMeta) error
	visit = func(m *recipe.PackageMeta) error {
		switch states[m.Name] {
		case resolved:
			return nil
		case visiting:
			return &errs.UnresolvedDependencyError{Name: m.Name, For: "dependency cycle"}
		}
		states[m.Name] = visiting

		for _, depName := range m.Depends {
			if isInstalled(depName) {
				states[depName] = resolved
				continue
			}
			dep, ok := cache[depName]
			if !ok {
				loaded, err := load(depName)
				if err != nil {
					return &errs.UnresolvedDependencyError{Name: depName, For: m.Name}
				}
				dep = loaded
				cache[depName] = dep
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		states[m.Name] = resolved
		order = append(order, m)
		return nil
	}

	if err := visit(meta); err != nil {
		return nil, err
	}
	return order, nil
}
