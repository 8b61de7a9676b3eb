// Package db persists and queries installed-package records: one JSON
// document per package under the database root (spec §4.7/§4.11).
package db

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fcanata061/srcpkg/internal/recipe"
)

// InstalledPkg is the persisted record for one installed package: its
// recipe at install time, plus the live filesystem paths it owns.
type InstalledPkg struct {
	Name    string             `json:"name"`
	Version string             `json:"version"`
	Depends []string           `json:"depends,omitempty"`
	Files   []string           `json:"files"`
	Recipe  recipe.PackageMeta `json:"recipe"`
}

// DB is a handle onto the on-disk package database.
type DB struct {
	Root string
}

// New returns a handle rooted at root (typically Config.DB).
func New(root string) *DB { return &DB{Root: root} }

func (d *DB) path(name string) string {
	return filepath.Join(d.Root, name+".json")
}

// Save writes rec atomically: to a temp file in the same directory, then
// renamed into place, so a crash mid-write never leaves a half-written
// record behind.
func (d *DB) Save(rec *InstalledPkg) error {
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return fmt.Errorf("create db root: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record for %s: %w", rec.Name, err)
	}

	tmp, err := os.CreateTemp(d.Root, rec.Name+".json.tmp-*")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, d.path(rec.Name))
}

// Load reads the record for name. It returns (nil, nil) if no such
// package is installed.
func (d *DB) Load(name string) (*InstalledPkg, error) {
	data, err := os.ReadFile(d.path(name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read record for %s: %w", name, err)
	}
	var rec InstalledPkg
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse record for %s: %w", name, err)
	}
	return &rec, nil
}

// Remove deletes the record for name. Removing a record that does not
// exist is not an error.
func (d *DB) Remove(name string) error {
	err := os.Remove(d.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove record for %s: %w", name, err)
	}
	return nil
}

// All lists every installed record, sorted by name.
func (d *DB) All() ([]*InstalledPkg, error) {
	entries, err := os.ReadDir(d.Root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read db root: %w", err)
	}

	var recs []*InstalledPkg
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		rec, err := d.Load(name)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
	return recs, nil
}

// Orphans returns every installed package that is not a direct dependency
// of any other installed package (spec §4.11): a single, non-recursive
// pass over the full record set.
func (d *DB) Orphans() ([]*InstalledPkg, error) {
	all, err := d.All()
	if err != nil {
		return nil, err
	}

	required := make(map[string]bool)
	for _, rec := range all {
		for _, dep := range rec.Depends {
			required[dep] = true
		}
	}

	var orphans []*InstalledPkg
	for _, rec := range all {
		if !required[rec.Name] {
			orphans = append(orphans, rec)
		}
	}
	return orphans, nil
}
