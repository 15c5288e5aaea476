// Package rewrite implements the file-rewriter pipeline (spec §4.D): for
// one (file, search-template, replace-template) triple, locate occurrences
// and produce a rewritten buffer; coordinate many triples across many files
// atomically into a RewritePlan, built fully before any write.
//
// Grounded on the teacher's internal/plugin/patchers.go (one PatchFunc per
// known manifest file kind, each a regexp.MustCompile'd search/replace) and
// internal/emit/emit.go's WriteToFile (temp-file-then-rename commit).
package rewrite

import (
	"fmt"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
)

// Edit is one applied (search, replace) pair's outcome within a file.
type Edit struct {
	Search      string
	Replace     string
	MatchCount  int
	Rewritten   int // matches whose replacement differed from the original text
}

// FileChange is the planned outcome for a single resolved file path.
type FileChange struct {
	Path     string
	Original []byte
	Rewritten []byte
	Edits    []Edit
	Diff     string
}

// Changed reports whether this file's rewritten content differs from the
// original at all.
func (c FileChange) Changed() bool {
	return string(c.Original) != string(c.Rewritten)
}

// Plan is the full set of per-file outcomes computed for one orchestrator
// run, in FileSpec configuration order (spec §5: "FileSpecs are processed in
// configuration order for both diagnostics and writes").
type Plan struct {
	Changes []FileChange
}

// Paths returns every changed file's path, in plan order, for VCS staging
// (spec §5: "commit staging lists paths in configuration order").
func (p Plan) Paths() []string {
	var paths []string
	for _, c := range p.Changes {
		if c.Changed() {
			paths = append(paths, c.Path)
		}
	}
	return paths
}

// checkNoConflicts fails if two FileChanges in the plan target the same
// resolved path with different rewritten content (spec §9's open question,
// resolved in DESIGN.md: detect and fail before any write).
func checkNoConflicts(changes []FileChange) error {
	seen := make(map[string]string, len(changes))
	for _, c := range changes {
		if prior, ok := seen[c.Path]; ok {
			if prior != string(c.Rewritten) {
				return bumperrors.New(bumperrors.KindConflictingRewrite,
					"two file specs produced conflicting rewrites for %q", c.Path)
			}
			continue
		}
		seen[c.Path] = string(c.Rewritten)
	}
	return nil
}

func (e Edit) String() string {
	return fmt.Sprintf("%q -> %q (%d matches, %d rewritten)", e.Search, e.Replace, e.MatchCount, e.Rewritten)
}
