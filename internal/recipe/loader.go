package recipe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fcanata061/srcpkg/internal/errs"
)

// RepoIndex maps a bare recipe name to the filesystem path of its recipe
// document. It is built once by the (out-of-core) repository scanner and
// handed to the loader; the core only consumes this mapping (spec §1).
type RepoIndex map[string]string

// Load reads and validates a recipe document. ref may be a filesystem path
// (if it exists and is readable) or a bare name, in which case idx is
// consulted first, then the current directory's <name>.json as a fallback,
// per spec §4.1.
func Load(ref string, idx RepoIndex) (*PackageMeta, error) {
	path := ref
	if _, err := os.Stat(ref); err != nil {
		if p, ok := idx[ref]; ok {
			path = p
		} else {
			path = ref + ".json"
			if _, err := os.Stat(path); err != nil {
				return nil, &errs.RecipeNotFoundError{Name: ref}
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.RecipeNotFoundError{Name: ref}
	}

	var meta PackageMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, &errs.RecipeMalformedError{Path: path, Err: err}
	}

	meta.Normalize()
	if err := meta.Validate(); err != nil {
		return nil, &errs.RecipeMalformedError{Path: path, Err: err}
	}

	return &meta, nil
}

// ScanRepo walks the four documented category subdirectories of root,
// recursively globbing *.json, and returns a name->path mapping. On a name
// collision, the last recipe encountered wins — deterministic across runs
// because os.ReadDir returns entries in a stable sorted order, but
// otherwise unspecified, matching spec §6.
func ScanRepo(root string, categories []string) (RepoIndex, error) {
	idx := make(RepoIndex)
	for _, cat := range categories {
		catDir := filepath.Join(root, cat)
		if _, err := os.Stat(catDir); err != nil {
			continue
		}
		err := filepath.WalkDir(catDir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != ".json" {
				return nil
			}
			meta, loadErr := Load(path, nil)
			if loadErr != nil {
				// Unreadable/malformed recipes are skipped during a repo
				// scan and do not appear in the index; Load against the
				// explicit path surfaces the error.
				return nil
			}
			idx[meta.Name] = path
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan repo category %s: %w", cat, err)
		}
	}
	return idx, nil
}
