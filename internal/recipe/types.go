// Package recipe defines the recipe document model (spec §3) and loads it
// from a JSON-shaped document on disk.
package recipe

import "fmt"

// SourceKind discriminates the two SourceSpec variants. Keeping the
// discriminator as its own type (rather than an implicit empty-field check)
// means the archive path never consults Git and the git path never
// consults SHA256, per the re-architecture guidance in spec §9.
type SourceKind string

const (
	SourceArchive SourceKind = "archive"
	SourceGit     SourceKind = "git"
)

// SourceSpec describes how to obtain upstream source. Only one of the two
// variants is meaningful at a time, selected by Kind.
type SourceSpec struct {
	Kind SourceKind `json:"type"`
	URL  string     `json:"url"`

	// SHA256, present only for SourceArchive, is an explicit optional value:
	// a nil pointer means "no checksum declared", distinct from an empty
	// string sentinel (spec §9 "optional checksums ... not sentinel empty
	// strings").
	SHA256 *string `json:"sha256,omitempty"`

	// Git is present only for SourceKind == SourceGit.
	Git *GitSpec `json:"git,omitempty"`
}

// GitSpec carries git-specific clone/fetch details.
type GitSpec struct {
	Ref string `json:"ref,omitempty"` // branch, tag, or commit; empty means default branch
}

// HasChecksum reports whether an archive source declares a SHA-256 gate.
func (s *SourceSpec) HasChecksum() bool {
	return s.Kind == SourceArchive && s.SHA256 != nil && *s.SHA256 != ""
}

// PatchSpec describes one ordered patch to apply after extraction.
type PatchSpec struct {
	Path string `json:"path,omitempty"` // local filesystem path
	URL  string `json:"url,omitempty"`  // remote URL (mutually exclusive with Path)

	SHA256 *string `json:"sha256,omitempty"`

	// Strip is the -p<N> level; zero value is overridden to 1 by Normalize.
	Strip int `json:"strip,omitempty"`
}

// IsURL reports whether the patch is fetched remotely rather than read
// from a local path. Exactly one of Path/URL is expected to be set;
// Validate enforces this.
func (p *PatchSpec) IsURL() bool { return p.URL != "" }

// BuildSpec carries the three ordered script phases and the recipe-level
// environment overlay.
type BuildSpec struct {
	Prepare []string          `json:"prepare,omitempty"`
	Compile []string          `json:"compile,omitempty"`
	Install []string          `json:"install,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// PackageOptions is the `package` options map; currently only `strip` is
// recognised (spec §3).
type PackageOptions struct {
	Strip bool `json:"strip,omitempty"`
}

// Hooks carries the two ordered per-recipe hook lists.
type Hooks struct {
	PostInstall []string `json:"post_install,omitempty"`
	PostRemove  []string `json:"post_remove,omitempty"`
}

// PackageMeta is the immutable description of one package: a recipe.
type PackageMeta struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Category string `json:"category,omitempty"`
	Homepage string `json:"homepage,omitempty"`

	Source  SourceSpec  `json:"source"`
	Patches []PatchSpec `json:"patches,omitempty"`
	Depends []string    `json:"depends,omitempty"`
	Build   BuildSpec   `json:"build"`
	Package PackageOptions `json:"package,omitempty"`
	Hooks   Hooks       `json:"hooks,omitempty"`
}

// DefaultCategory is used when a recipe omits `category`.
const DefaultCategory = "extras"

// Normalize applies documented field defaults: category defaults to
// "extras", and each patch's strip level defaults to 1 (the standard -p1
// convention).
func (m *PackageMeta) Normalize() {
	if m.Category == "" {
		m.Category = DefaultCategory
	}
	for i := range m.Patches {
		if m.Patches[i].Strip == 0 {
			m.Patches[i].Strip = 1
		}
	}
}

// Validate enforces the invariants from spec §3: name and version must be
// present; a patch must be exactly one of local-path or URL-typed.
func (m *PackageMeta) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("recipe is missing required field: name")
	}
	if m.Version == "" {
		return fmt.Errorf("recipe %q is missing required field: version", m.Name)
	}
	if m.Source.Kind == SourceGit && m.Source.Git == nil {
		return fmt.Errorf("recipe %q: source type is git but no git block given", m.Name)
	}
	for i, p := range m.Patches {
		hasPath := p.Path != ""
		hasURL := p.URL != ""
		if hasPath == hasURL {
			return fmt.Errorf("recipe %q: patch[%d] must set exactly one of path or url", m.Name, i)
		}
	}
	return nil
}
