// Package orchestrator ties the version model, format engine, config
// loader, file rewriter, and VCS adapter together into the nine-step
// sequence from spec §4.E: load config, merge CLI overrides, check the
// working tree, parse/bump the version, build and (unless dry-run) write
// the RewritePlan, then stage/commit/tag and run hooks.
//
// Grounded on the teacher's cmd/major.go-style command bodies (parse a
// VERSION file, compute, write, report), generalized here into a single
// reusable Run entry point so every bump subcommand (major/minor/patch/
// custom part) shares one pipeline instead of one cobra.Command per
// component the way the teacher does.
package orchestrator

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
	"github.com/romnn/go-bumpversion/internal/config"
	"github.com/romnn/go-bumpversion/internal/format"
	"github.com/romnn/go-bumpversion/internal/hooks"
	"github.com/romnn/go-bumpversion/internal/plugin"
	"github.com/romnn/go-bumpversion/internal/rewrite"
	"github.com/romnn/go-bumpversion/internal/semver"
	"github.com/romnn/go-bumpversion/internal/vcs"
)

// Options carries everything a single `bump` invocation needs beyond the
// loaded config: the target component (or an explicit new version), the CLI
// overrides, and the collaborators (filesystem, VCS, process environment)
// that make the pipeline testable without touching the real disk or git.
type Options struct {
	Dir        string
	Component  string // empty when NewVersion is set directly
	Overrides  config.Overrides
	DryRun     bool
	ProcessEnv map[string]string
	VCS        vcs.VersionControlSystem // nil disables all VCS steps
}

// Result reports what a Run did, for the CLI layer to print.
type Result struct {
	Config        *config.Config
	Current       *semver.Version
	Next          *semver.Version
	CurrentRaw    string
	NextRaw       string
	Plan          *rewrite.Plan
	CommitID      string
	TagName       string
	HookResults   []hooks.Result
	PostHookError error
}

// Run executes the full spec §4.E sequence against fs, returning the
// outcome. A non-nil error means no files were written unless it occurred
// in the write step or later (a failed write partway through the plan, a
// VCS error, or a post-hook failure), per spec §7's propagation rules.
func Run(ctx context.Context, fs afero.Fs, opts Options) (*Result, error) {
	// (1) load config
	cfg, err := config.Load(fs, opts.Dir)
	if err != nil {
		return nil, err
	}

	// (2) apply CLI overrides
	config.Merge(cfg, opts.Overrides)

	// (3) dirty-working-tree check, only when VCS integration is enabled
	if opts.VCS != nil && (cfg.Commit || cfg.Tag) && !cfg.AllowDirty {
		status, err := opts.VCS.Status()
		if err != nil {
			return nil, bumperrors.Wrap(bumperrors.KindVcsError, err, "checking working tree status")
		}
		if status.Dirty {
			return nil, bumperrors.New(bumperrors.KindDirtyWorkingTree,
				"working tree has uncommitted changes; pass --allow-dirty to override")
		}
	}

	specs, err := componentSpecs(cfg)
	if err != nil {
		return nil, err
	}

	parseTemplates, err := parseTemplateList(cfg.Parse)
	if err != nil {
		return nil, err
	}
	serializeTemplates, err := parseTemplateList(cfg.Serialize)
	if err != nil {
		return nil, err
	}

	// (4) parse current version
	var current *semver.Version
	var parseErr error
	for _, tmpl := range parseTemplates {
		current, parseErr = semver.Parse(specs, tmpl, cfg.CurrentVersion)
		if parseErr == nil {
			break
		}
	}
	if parseErr != nil {
		return nil, parseErr
	}

	// (5) compute next version
	var next *semver.Version
	if opts.Overrides.NewVersion != nil {
		next, err = semver.Parse(specs, parseTemplates[0], *opts.Overrides.NewVersion)
	} else {
		next, err = current.Bump(opts.Component)
	}
	if err != nil {
		return nil, err
	}

	currentRaw, err := semver.Serialize(current, serializeTemplates)
	if err != nil {
		return nil, err
	}
	nextRaw, err := semver.Serialize(next, serializeTemplates)
	if err != nil {
		return nil, err
	}

	env, err := buildEnv(opts.ProcessEnv, current, next, currentRaw, nextRaw)
	if err != nil {
		return nil, bumperrors.Wrap(bumperrors.KindIoError, err, "building template environment")
	}

	configDir := filepath.Dir(cfg.SourcePath)

	// Pre-bump hooks run between steps (5) and (6).
	var hookResults []hooks.Result
	if len(cfg.PreHooks) > 0 {
		hookResults, err = hooks.Run(cfg.PreHooks, configDir, env)
		if err != nil {
			return nil, err
		}
	}

	// (6) build RewritePlan, including the config file's own current_version
	// field as a FileSpec auto-injected last (spec §4.D). FileSpec search/
	// replace templates reference the whole version as lowercase
	// {current_version}/{new_version} (spec §6's illustrative schema), not
	// the UPPER_SNAKE hook environment, so the rewriter gets its own env
	// view built the same way commit/tag message templates are.
	rewriteEnv := templateEnv(env, current, next, currentRaw, nextRaw, nil)
	plan, err := rewrite.Build(ctx, fs, opts.Dir, rewriteSpecs(cfg), current, next, rewriteEnv)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Config:      cfg,
		Current:     current,
		Next:        next,
		CurrentRaw:  currentRaw,
		NextRaw:     nextRaw,
		Plan:        plan,
		HookResults: hookResults,
	}

	// (7) dry-run: diffs only, no writes, no VCS, no post-hooks.
	if opts.DryRun {
		return result, nil
	}

	// write plan
	if err := rewrite.Commit(fs, plan); err != nil {
		return result, err
	}

	// (8) VCS side-effects
	if opts.VCS != nil && (cfg.Commit || cfg.Tag) {
		extras := plugin.GetAllTemplateVariables(map[string]string{})
		msgEnv := templateEnv(env, current, next, currentRaw, nextRaw, extras)

		if cfg.Commit {
			if err := stageAndCommit(opts.VCS, plan, cfg, msgEnv, result); err != nil {
				return result, err
			}
		}
		if cfg.Tag {
			if err := tagRelease(opts.VCS, cfg, msgEnv, result); err != nil {
				return result, err
			}
		}
	}

	// (9) post-bump hooks
	if len(cfg.PostHooks) > 0 {
		postResults, err := hooks.Run(cfg.PostHooks, configDir, env)
		result.HookResults = append(result.HookResults, postResults...)
		if err != nil {
			result.PostHookError = err
			return result, err
		}
	}

	return result, nil
}

func stageAndCommit(vc vcs.VersionControlSystem, plan *rewrite.Plan, cfg *config.Config, msgEnv map[string]string, result *Result) error {
	paths := plan.Paths()
	if len(paths) > 0 {
		if err := vc.Stage(paths); err != nil {
			return bumperrors.Wrap(bumperrors.KindVcsError, err, "staging rewritten files")
		}
	}

	msgTmpl, err := format.Parse(cfg.Message)
	if err != nil {
		return bumperrors.Wrap(bumperrors.KindConfigSchema, err, "invalid commit message template")
	}
	message, err := format.Render(msgTmpl, msgEnv)
	if err != nil {
		return bumperrors.Wrap(bumperrors.KindMissingKey, err, "rendering commit message")
	}

	commitID, err := vc.Commit(message)
	if err != nil {
		return bumperrors.Wrap(bumperrors.KindVcsError, err, "committing")
	}
	result.CommitID = commitID
	return nil
}

func tagRelease(vc vcs.VersionControlSystem, cfg *config.Config, msgEnv map[string]string, result *Result) error {
	nameTmpl, err := format.Parse(cfg.TagName)
	if err != nil {
		return bumperrors.Wrap(bumperrors.KindConfigSchema, err, "invalid tag name template")
	}
	name, err := format.Render(nameTmpl, msgEnv)
	if err != nil {
		return bumperrors.Wrap(bumperrors.KindMissingKey, err, "rendering tag name")
	}

	msgTmpl, err := format.Parse(cfg.TagMessage)
	if err != nil {
		return bumperrors.Wrap(bumperrors.KindConfigSchema, err, "invalid tag message template")
	}
	message, err := format.Render(msgTmpl, msgEnv)
	if err != nil {
		return bumperrors.Wrap(bumperrors.KindMissingKey, err, "rendering tag message")
	}

	if err := vc.Tag(name, message, cfg.SignTags); err != nil {
		return bumperrors.Wrap(bumperrors.KindVcsError, err, "creating tag %q", name)
	}
	result.TagName = name
	return nil
}

// ComponentSpecs derives the ordered component list from cfg's primary
// parse template and declared parts, for callers outside Run (cmd's show/
// show-part) that need the Version Model's component shape without running
// the full orchestrator sequence.
func ComponentSpecs(cfg *config.Config) ([]semver.ComponentSpec, error) {
	return componentSpecs(cfg)
}

func componentSpecs(cfg *config.Config) ([]semver.ComponentSpec, error) {
	primary, err := format.Parse(cfg.Parse[0])
	if err != nil {
		return nil, bumperrors.Wrap(bumperrors.KindConfigSchema, err, "invalid primary parse template")
	}

	partsByName := make(map[string]config.PartSpec, len(cfg.Parts))
	for _, p := range cfg.Parts {
		partsByName[p.Name] = p
	}

	seen := make(map[string]bool, len(primary.PlaceholderNames())+len(cfg.Parts))
	specs := make([]semver.ComponentSpec, 0, len(primary.PlaceholderNames())+len(cfg.Parts))
	for _, name := range primary.PlaceholderNames() {
		part, declared := partsByName[name]
		specs = append(specs, buildComponentSpec(name, part, declared))
		seen[name] = true
	}

	// A part declared via [bumpversion:part:<name>] but never referenced by
	// the primary parse template (e.g. one meant to be bumped only
	// explicitly, or one that only appears in `serialize`) still needs a
	// place in the version model, so it's bound here too, trailing the
	// parse-template-driven components. The primary template's order
	// determines significance/reset order (spec §4.A), so a trailing
	// declared-only part ranks below all of them: bumping any of those
	// components resets it to its initial value unless it is independent.
	for _, p := range cfg.Parts {
		if seen[p.Name] {
			continue
		}
		specs = append(specs, buildComponentSpec(p.Name, p, true))
		seen[p.Name] = true
	}

	return specs, nil
}

func buildComponentSpec(name string, part config.PartSpec, declared bool) semver.ComponentSpec {
	if !declared {
		return semver.ComponentSpec{Name: name, Kind: semver.KindNumeric}
	}
	spec := semver.ComponentSpec{Name: name}
	if len(part.Values) > 0 {
		spec.Kind = semver.KindValues
		spec.Values = part.Values
		if part.OptionalValue != "" {
			spec.Optional = true
			spec.OptionalValue = part.OptionalValue
		}
		if part.FirstValue != "" && part.FirstValue != part.Values[0] {
			spec.Values = reorderFirst(part.Values, part.FirstValue)
		}
	} else {
		spec.Kind = semver.KindNumeric
		spec.FirstValue = part.FirstValue
	}
	spec.Independent = part.Independent
	return spec
}

func reorderFirst(values []string, first string) []string {
	out := make([]string, 0, len(values))
	out = append(out, first)
	for _, v := range values {
		if v != first {
			out = append(out, v)
		}
	}
	return out
}

// ParseTemplateList compiles a list of Format Engine template sources,
// exported for the same reason as ComponentSpecs.
func ParseTemplateList(raw []string) ([]*format.Template, error) {
	return parseTemplateList(raw)
}

func parseTemplateList(raw []string) ([]*format.Template, error) {
	out := make([]*format.Template, 0, len(raw))
	for _, src := range raw {
		tmpl, err := format.Parse(src)
		if err != nil {
			return nil, bumperrors.Wrap(bumperrors.KindConfigSchema, err, "invalid template %q", src)
		}
		out = append(out, tmpl)
	}
	return out, nil
}

func rewriteSpecs(cfg *config.Config) []rewrite.Spec {
	specs := make([]rewrite.Spec, 0, len(cfg.Files)+1)
	for _, f := range cfg.Files {
		specs = append(specs, rewrite.Spec{Path: f.Path, Search: f.Search, Replace: f.Replace, Optional: f.Optional})
	}

	if cfg.SourcePath != "" {
		specs = append(specs, selfConfigSpec(cfg))
	}
	return specs
}

// selfConfigSpec builds the auto-injected FileSpec that updates the config
// file's own current_version field in place (spec §4.D), targeting the raw
// bytes with a dialect-specific regex rather than a generic re-serialize so
// comments and layout survive (spec §9).
func selfConfigSpec(cfg *config.Config) rewrite.Spec {
	var search, replace string
	switch cfg.Dialect {
	case "toml":
		search = `current_version = "{current_version}"`
		replace = `current_version = "{new_version}"`
	default:
		search = `current_version = {current_version}`
		replace = `current_version = {new_version}`
	}
	return rewrite.Spec{
		Path:    filepath.Base(cfg.SourcePath),
		Search:  []string{search},
		Replace: []string{replace},
	}
}
