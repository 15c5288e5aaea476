package rewrite

import (
	"context"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
	"github.com/romnn/go-bumpversion/internal/semver"
)

// Build expands and processes every configured Spec into a Plan, reading and
// planning independent files concurrently (spec §5: "File I/O... may
// execute on a cooperative task runtime for parallelism across independent
// files") while preserving configuration order in the returned Plan, since
// the externally observable order the orchestrator and its diagnostics rely
// on is read-all -> plan-all -> write-all, not per-file completion order.
func Build(ctx context.Context, fs afero.Fs, baseDir string, specs []Spec, current, next *semver.Version, env map[string]string) (*Plan, error) {
	type indexed struct {
		index int
		path  string
		spec  Spec
	}

	var jobs []indexed
	for i, spec := range specs {
		spec = ResolveSpec(spec)
		paths, err := expand(fs, baseDir, spec)
		if err != nil {
			if spec.Optional {
				continue
			}
			return nil, err
		}
		if len(paths) == 0 {
			continue
		}
		for _, p := range paths {
			jobs = append(jobs, indexed{index: i, path: p, spec: spec})
		}
	}

	// results[i] corresponds to jobs[i], which was appended in configuration
	// order above; concurrency here only overlaps the I/O, it never
	// reorders the plan the caller sees.
	results := make([]FileChange, len(jobs))
	g, _ := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			change, err := ProcessFile(fs, job.path, job.spec, current, next, env)
			if err != nil {
				return err
			}
			results[i] = change
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := checkNoConflicts(results); err != nil {
		return nil, err
	}

	return &Plan{Changes: results}, nil
}

// Commit writes every changed file in plan via write-to-temp-then-rename on
// the same filesystem (spec §4.D: "each file is written via write-to-temp +
// rename on the same filesystem").
func Commit(fs afero.Fs, plan *Plan) error {
	for _, change := range plan.Changes {
		if !change.Changed() {
			continue
		}
		if err := writeAtomic(fs, change.Path, change.Rewritten); err != nil {
			return err
		}
	}
	return nil
}

func writeAtomic(fs afero.Fs, path string, content []byte) error {
	tmp := path + ".bumpversion.tmp"
	if err := afero.WriteFile(fs, tmp, content, 0o644); err != nil {
		return bumperrors.Wrap(bumperrors.KindIoError, err, "writing temp file for %q", path)
	}
	if err := fs.Rename(tmp, path); err != nil {
		return bumperrors.Wrap(bumperrors.KindIoError, err, "renaming temp file into place for %q", path)
	}
	return nil
}
