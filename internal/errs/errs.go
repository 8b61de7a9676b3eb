// Package errs defines the core error taxonomy (spec §7). Each kind is a
// distinct type rather than a string sentinel, so callers can errors.As into
// the concrete type for exit-code mapping or operator-facing suggestions,
// in the shape the rest of this codebase uses for structured errors
// (Error() / Unwrap() / Suggestion()).
package errs

import "fmt"

// RecipeNotFoundError is produced by the loader or resolver when a named
// recipe cannot be located in the repository mapping or as <name>.json.
type RecipeNotFoundError struct {
	Name string
}

func (e *RecipeNotFoundError) Error() string {
	return fmt.Sprintf("recipe not found: %s", e.Name)
}
func (e *RecipeNotFoundError) Suggestion() string {
	return fmt.Sprintf("check that %s.json exists under one of the repository categories, or pass an explicit path", e.Name)
}

// RecipeMalformedError is produced by the loader when a recipe document
// fails to parse or fails field validation.
type RecipeMalformedError struct {
	Path string
	Err  error
}

func (e *RecipeMalformedError) Error() string {
	return fmt.Sprintf("malformed recipe %s: %v", e.Path, e.Err)
}
func (e *RecipeMalformedError) Unwrap() error { return e.Err }

// ChecksumMismatchError is produced by the fetcher or patcher when a
// declared SHA-256 does not match the downloaded bytes.
type ChecksumMismatchError struct {
	Path     string
	Expected string
	Got      string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Got)
}

// NoDownloaderError is produced by the fetcher when neither wget nor curl
// is available on PATH and the grab fallback also fails.
type NoDownloaderError struct {
	Err error
}

func (e *NoDownloaderError) Error() string {
	return "no downloader available (tried wget, curl)"
}
func (e *NoDownloaderError) Unwrap() error { return e.Err }

// NetworkError wraps a transport-level failure during fetch.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// UnsupportedArchiveError is produced by the extractor for an unrecognized
// filename suffix.
type UnsupportedArchiveError struct {
	Filename string
}

func (e *UnsupportedArchiveError) Error() string {
	return fmt.Sprintf("unsupported archive format: %s", e.Filename)
}

// BuildScriptFailedError is produced by the builder on a non-zero shell exit.
type BuildScriptFailedError struct {
	Phase    string
	ExitCode int
	Err      error
}

func (e *BuildScriptFailedError) Error() string {
	return fmt.Sprintf("build script failed in phase %q (exit %d): %v", e.Phase, e.ExitCode, e.Err)
}
func (e *BuildScriptFailedError) Unwrap() error { return e.Err }

// PatchFailedError is produced by the patcher when the external patch tool
// rejects a hunk.
type PatchFailedError struct {
	Patch string
	Err   error
}

func (e *PatchFailedError) Error() string {
	return fmt.Sprintf("failed to apply patch %s: %v", e.Patch, e.Err)
}
func (e *PatchFailedError) Unwrap() error { return e.Err }

// NotPrivilegedError is produced by the installer when the effective UID is
// not 0.
type NotPrivilegedError struct{}

func (e *NotPrivilegedError) Error() string {
	return "installer requires root privileges (effective UID 0)"
}

// UnresolvedDependencyError is produced by the resolver when a declared
// dependency's recipe cannot be located.
type UnresolvedDependencyError struct {
	Name string
	For  string
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("unresolved dependency %q required by %q", e.Name, e.For)
}

// HookFailedError is a non-fatal warning-only error from the hook runner.
type HookFailedError struct {
	Hook string
	Err  error
}

func (e *HookFailedError) Error() string {
	return fmt.Sprintf("hook %q failed: %v", e.Hook, e.Err)
}
func (e *HookFailedError) Unwrap() error { return e.Err }

// StripFailedError is a non-fatal warning-only error from the packager.
type StripFailedError struct {
	Path string
	Err  error
}

func (e *StripFailedError) Error() string {
	return fmt.Sprintf("strip failed for %s: %v", e.Path, e.Err)
}
func (e *StripFailedError) Unwrap() error { return e.Err }

// RemovalPartialError is a non-fatal, continue-on-error failure for a single
// path during removal.
type RemovalPartialError struct {
	Path string
	Err  error
}

func (e *RemovalPartialError) Error() string {
	return fmt.Sprintf("failed to remove %s: %v", e.Path, e.Err)
}
func (e *RemovalPartialError) Unwrap() error { return e.Err }

// Interrupted marks an operation aborted by an operator signal (exit 130).
type Interrupted struct{}

func (e *Interrupted) Error() string { return "interrupted" }
