// Package upgrade decides whether an installed package should be rebuilt
// against a newer recipe version (spec §4.12).
package upgrade

import (
	"github.com/fcanata061/srcpkg/internal/db"
	"github.com/fcanata061/srcpkg/internal/recipe"
	"github.com/fcanata061/srcpkg/internal/version"
)

// Candidate pairs an installed record with the recipe currently on disk
// for the same package name.
type Candidate struct {
	Installed *db.InstalledPkg
	Available *recipe.PackageMeta
}

// NeedsUpgrade reports whether Available's version sorts strictly after
// Installed's recorded version.
func (c Candidate) NeedsUpgrade() bool {
	return version.LessThan(c.Installed.Version, c.Available.Version)
}

// Plan returns every candidate whose available recipe version is newer
// than what is installed, in the order of records.
func Plan(records []*db.InstalledPkg, loadAvailable func(name string) (*recipe.PackageMeta, error)) ([]Candidate, error) {
	var plan []Candidate
	for _, rec := range records {
		avail, err := loadAvailable(rec.Name)
		if err != nil {
			return nil, err
		}
		if avail == nil {
			continue
		}
		cand := Candidate{Installed: rec, Available: avail}
		if cand.NeedsUpgrade() {
			plan = append(plan, cand)
		}
	}
	return plan, nil
}
