// Package git implements the spec §4.F VersionControlSystem interface
// against a local git working copy via go-git, so the orchestrator never
// shells out to the system `git` binary.
//
// Grounded on the teacher's internal/vcs/git/git_vcs.go: repository-root
// discovery (findGitDir), repository opening, and tag-creation/enumeration
// are kept close to verbatim, since the teacher's tool already needed all
// three for its own (read-only) version queries. Stage/Commit/LatestTag are
// new: the teacher's tool never committed or ranked tags on the user's
// behalf, since it only ever reported the current state.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/romnn/go-bumpversion/internal/plugin"
	"github.com/romnn/go-bumpversion/internal/vcs"
)

// GitVersionControlSystem implements vcs.VersionControlSystem for Git.
type GitVersionControlSystem struct {
	repoRoot string
}

// NewGitVCS creates a new GitVersionControlSystem.
func NewGitVCS() *GitVersionControlSystem {
	return &GitVersionControlSystem{}
}

func (g *GitVersionControlSystem) Name() string { return "git" }

// Types reports this backend also contributes commit/tag template variables.
func (g *GitVersionControlSystem) Types() plugin.PluginTypeSet {
	return plugin.NewPluginTypeSet(plugin.TypeVCS, plugin.TypeTemplateProvider)
}

// GetTemplateVariables supplies git-derived extras (spec §6's template
// environment is explicitly extensible by plugins).
func (g *GitVersionControlSystem) GetTemplateVariables(context map[string]string) map[string]string {
	shortHash := context["ShortHash"]
	vars := map[string]string{}
	if shortHash != "" {
		vars["GitShortHash"] = "git." + shortHash
	}
	if branch, err := g.branchName(); err == nil && branch != "" {
		vars["GitBranch"] = branch
	}
	return vars
}

// IsRepository checks if the current working directory (or an ancestor) is
// a git repository.
func (g *GitVersionControlSystem) IsRepository() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}
	root := findGitDir(cwd)
	if root == "" {
		return false
	}
	g.repoRoot = root
	return true
}

func (g *GitVersionControlSystem) repositoryRoot() (string, error) {
	if g.repoRoot != "" {
		return g.repoRoot, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	root := findGitDir(cwd)
	if root == "" {
		return "", fmt.Errorf("not a git repository")
	}
	g.repoRoot = root
	return root, nil
}

func (g *GitVersionControlSystem) openRepository() (*git.Repository, error) {
	root, err := g.repositoryRoot()
	if err != nil {
		return nil, err
	}
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return repo, nil
}

// Status reports the working tree's dirty/untracked state (spec §4.F).
func (g *GitVersionControlSystem) Status() (vcs.Status, error) {
	repo, err := g.openRepository()
	if err != nil {
		return vcs.Status{}, err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return vcs.Status{}, fmt.Errorf("failed to get working tree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return vcs.Status{}, fmt.Errorf("failed to get git status: %w", err)
	}

	var untracked []string
	for path, s := range status {
		if s.Worktree == git.Untracked {
			untracked = append(untracked, path)
		}
	}
	return vcs.Status{Dirty: !status.IsClean(), Untracked: untracked}, nil
}

// Stage adds paths to the index.
func (g *GitVersionControlSystem) Stage(paths []string) error {
	repo, err := g.openRepository()
	if err != nil {
		return err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get working tree: %w", err)
	}
	for _, p := range paths {
		if _, err := worktree.Add(p); err != nil {
			return fmt.Errorf("failed to stage %q: %w", p, err)
		}
	}
	return nil
}

// Commit records a commit over the currently staged changes.
func (g *GitVersionControlSystem) Commit(message string) (string, error) {
	repo, err := g.openRepository()
	if err != nil {
		return "", err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get working tree: %w", err)
	}

	sig, err := g.signature(repo)
	if err != nil {
		return "", err
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{Author: sig})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return hash.String(), nil
}

// Tag creates an annotated tag at HEAD. This backend does not set go-git's
// CreateTagOptions.Signer and cannot produce signed tags: sign=true always
// returns an error, whatever keys are configured, rather than silently
// producing an unsigned tag.
func (g *GitVersionControlSystem) Tag(name, message string, sign bool) error {
	repo, err := g.openRepository()
	if err != nil {
		return err
	}
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD reference: %w", err)
	}

	sig, err := g.signature(repo)
	if err != nil {
		return err
	}

	opts := &git.CreateTagOptions{Message: message, Tagger: sig}
	if sign {
		return fmt.Errorf("sign-tags requested but no GPG signer is configured for this repository")
	}

	if _, err := repo.CreateTag(name, head.Hash(), opts); err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// LatestTag returns the highest-precedence semver tag matching glob. Tags
// that don't parse as semver are ignored rather than breaking the ranking;
// this is a new capability the teacher's tool never needed (it only ever
// reported the current commit's state, never ranked historical tags).
func (g *GitVersionControlSystem) LatestTag(glob string) (string, bool, error) {
	repo, err := g.openRepository()
	if err != nil {
		return "", false, err
	}
	tagRefs, err := repo.Tags()
	if err != nil {
		return "", false, fmt.Errorf("failed to get tags: %w", err)
	}

	var best *semver.Version
	var bestName string
	err = tagRefs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if glob != "" && !matchGlob(glob, name) {
			return nil
		}
		v, err := semver.NewVersion(strings.TrimPrefix(name, "v"))
		if err != nil {
			return nil
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestName = name
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to iterate tags: %w", err)
	}
	if best == nil {
		return "", false, nil
	}
	return bestName, true, nil
}

func matchGlob(glob, name string) bool {
	ok, err := filepath.Match(glob, name)
	return err == nil && ok
}

func (g *GitVersionControlSystem) signature(repo *git.Repository) (*object.Signature, error) {
	cfg, err := repo.Config()
	if err == nil && cfg.User.Name != "" {
		return &object.Signature{Name: cfg.User.Name, Email: cfg.User.Email, When: time.Now()}, nil
	}
	return &object.Signature{Name: "bumpversion", Email: "bumpversion@localhost", When: time.Now()}, nil
}

func (g *GitVersionControlSystem) branchName() (string, error) {
	repo, err := g.openRepository()
	if err != nil {
		return "", err
	}
	ref, err := repo.Head()
	if err != nil {
		return "", err
	}
	if ref.Name().IsBranch() {
		return ref.Name().Short(), nil
	}
	return "", nil
}

func findGitDir(startPath string) string {
	currentPath := startPath
	for {
		gitPath := filepath.Join(currentPath, ".git")
		if info, err := os.Stat(gitPath); err == nil && info.IsDir() {
			return currentPath
		}
		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			break
		}
		currentPath = parentPath
	}
	return ""
}

func init() {
	gitVCS := NewGitVCS()
	vcs.RegisterVCS(gitVCS)
	plugin.RegisterTemplateProvider(gitVCS)
}
