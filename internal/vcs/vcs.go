// Package vcs defines the narrow interface the orchestrator consumes for
// VCS side-effects (spec §4.F), plus a name-keyed registry so a concrete
// backend (internal/vcs/git) can be selected at runtime without the
// orchestrator importing it directly.
package vcs

// Status reports the working tree's dirty/untracked state.
type Status struct {
	Dirty     bool
	Untracked []string
}

// VersionControlSystem is the narrow interface the orchestrator drives
// (spec §4.F): status, stage, commit, tag, latest_tag.
type VersionControlSystem interface {
	// Name returns the backend's identifier (e.g. "git").
	Name() string

	// IsRepository reports whether the working directory is one of this
	// backend's repositories.
	IsRepository() bool

	// Status returns the dirty/untracked state of the working tree.
	Status() (Status, error)

	// Stage adds the given paths (relative to the repository root) to the
	// next commit.
	Stage(paths []string) error

	// Commit records a commit with the given message over the currently
	// staged changes, returning the new commit's identifier.
	Commit(message string) (string, error)

	// Tag creates a tag named name with the given message, optionally GPG-
	// signed.
	Tag(name, message string, sign bool) error

	// LatestTag returns the highest-precedence tag matching glob, or ("",
	// false) if none exist.
	LatestTag(glob string) (string, bool, error)
}
