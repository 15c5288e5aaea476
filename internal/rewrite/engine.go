package rewrite

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
	"github.com/romnn/go-bumpversion/internal/format"
	"github.com/romnn/go-bumpversion/internal/semver"
)

// Spec is the rewrite engine's own view of a configured file target,
// decoupled from internal/config's raw PartSpec/FileSpec so this package
// never imports the config dialect parsers.
type Spec struct {
	Path     string
	Search   []string
	Replace  []string
	Optional bool
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// expand resolves spec.Path (a literal path or a glob) against baseDir.
func expand(fs afero.Fs, baseDir string, spec Spec) ([]string, error) {
	full := spec.Path
	if !strings.HasPrefix(full, "/") {
		full = baseDir + "/" + full
	}

	if !hasGlobMeta(spec.Path) {
		if exists, err := afero.Exists(fs, full); err != nil {
			return nil, bumperrors.Wrap(bumperrors.KindIoError, err, "checking %q", full)
		} else if !exists {
			return nil, bumperrors.New(bumperrors.KindFileNotFound, "configured file %q does not exist", spec.Path)
		}
		return []string{full}, nil
	}

	matches, err := afero.Glob(fs, full)
	if err != nil {
		return nil, bumperrors.Wrap(bumperrors.KindIoError, err, "expanding glob %q", spec.Path)
	}
	return matches, nil
}

// ProcessFile runs the per-file pipeline (spec §4.D steps 1-4) for one
// resolved path: render each (search, replace) pair and substitute all
// non-overlapping matches left-to-right.
func ProcessFile(fs afero.Fs, path string, spec Spec, current, next *semver.Version, env map[string]string) (FileChange, error) {
	original, err := afero.ReadFile(fs, path)
	if err != nil {
		return FileChange{}, bumperrors.Wrap(bumperrors.KindIoError, err, "reading %q", path)
	}

	buf := append([]byte(nil), original...)
	var edits []Edit

	currentEnv := mergeEnv(env, current)
	nextEnv := mergeEnv(env, next)

	for i, searchSrc := range spec.Search {
		replaceSrc := spec.Replace[i]

		searchTmpl, err := format.Parse(searchSrc)
		if err != nil {
			return FileChange{}, bumperrors.Wrap(bumperrors.KindConfigSchema, err, "file %q: bad search template", path)
		}
		replaceTmpl, err := format.Parse(replaceSrc)
		if err != nil {
			return FileChange{}, bumperrors.Wrap(bumperrors.KindConfigSchema, err, "file %q: bad replace template", path)
		}

		patterns := chainPatterns{semver.ComponentPatterns(current), envPatterns(currentEnv)}
		re, err := format.CompileRegex(searchTmpl, patterns)
		if err != nil {
			return FileChange{}, bumperrors.Wrap(bumperrors.KindConfigSchema, err, "file %q: bad search pattern", path)
		}

		replacement, err := format.Render(replaceTmpl, nextEnv)
		if err != nil {
			return FileChange{}, bumperrors.Wrap(bumperrors.KindMissingKey, err, "file %q: rendering replacement", path)
		}

		matches := re.FindAllIndex(buf, -1)
		if len(matches) == 0 {
			if spec.Optional {
				edits = append(edits, Edit{Search: searchSrc, Replace: replaceSrc})
				continue
			}
			return FileChange{}, bumperrors.At(bumperrors.KindNoMatchesInFile,
				bumperrors.Span{Source: path}, "no matches for pattern %q in %q", searchSrc, path)
		}

		buf, edits = substituteAll(buf, matches, replacement, searchSrc, replaceSrc, edits)
	}

	diff := unifiedDiff(path, original, buf)

	return FileChange{
		Path:      path,
		Original:  original,
		Rewritten: buf,
		Edits:     edits,
		Diff:      diff,
	}, nil
}

func substituteAll(buf []byte, matches [][]int, replacement, searchSrc, replaceSrc string, edits []Edit) ([]byte, []Edit) {
	var out []byte
	last := 0
	rewritten := 0
	for _, m := range matches {
		out = append(out, buf[last:m[0]]...)
		original := string(buf[m[0]:m[1]])
		if original != replacement {
			rewritten++
		}
		out = append(out, replacement...)
		last = m[1]
	}
	out = append(out, buf[last:]...)
	edits = append(edits, Edit{Search: searchSrc, Replace: replaceSrc, MatchCount: len(matches), Rewritten: rewritten})
	return out, edits
}

// mergeEnv layers a version's component values (NAME -> value, for the
// version's own Get(name) semantics) on top of the shared environment
// snapshot, without mutating the caller's map.
func mergeEnv(env map[string]string, v *semver.Version) map[string]string {
	merged := make(map[string]string, len(env)+len(v.Values))
	for k, val := range env {
		merged[k] = val
	}
	for k, val := range v.Values {
		merged[k] = val
	}
	return merged
}
