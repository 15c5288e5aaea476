// Package hooks runs the pre/post-bump command lines from the orchestrator
// sequence (spec §4.E steps 5-6 and 9), parsing each command with POSIX
// shell-style word splitting and running it with the working directory set
// to the config file's directory (spec §6, §9: "treat them as external
// collaborators with stdout/stderr forwarded").
//
// Grounded on the teacher's internal/vcs/git/git_vcs.go pattern of shelling
// out via os/exec and wrapping the result as a bumperrors.KindVcsError-style
// typed error; google/shlex supplies the word-splitting the teacher never
// needed (its own subprocess calls were always to a fixed `git` argv).
package hooks

import (
	"bytes"
	"io"
	"os"
	"os/exec"

	"github.com/google/shlex"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
)

// Result captures one hook invocation's outcome for logging.
type Result struct {
	Command string
	Stdout  string
	Stderr  string
}

// Run executes each command line in order, stopping at the first failure.
// dir is the working directory (the config file's directory); env is the
// full process environment plus the bump-specific variables from spec §6.
func Run(commands []string, dir string, env map[string]string) ([]Result, error) {
	results := make([]Result, 0, len(commands))
	for _, line := range commands {
		result, err := runOne(line, dir, env)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func runOne(line, dir string, env map[string]string) (Result, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return Result{}, bumperrors.Wrap(bumperrors.KindHookFailed, err, "splitting hook command %q", line)
	}
	if len(words) == 0 {
		return Result{}, bumperrors.New(bumperrors.KindHookFailed, "empty hook command")
	}

	cmd := exec.Command(words[0], words[1:]...)
	cmd.Dir = dir
	cmd.Env = envSlice(env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = io.MultiWriter(&stdout, os.Stdout)
	cmd.Stderr = io.MultiWriter(&stderr, os.Stderr)

	if err := cmd.Run(); err != nil {
		return Result{Command: line, Stdout: stdout.String(), Stderr: stderr.String()},
			bumperrors.Wrap(bumperrors.KindHookFailed, err, "hook command %q failed: %s", line, stderr.String())
	}

	return Result{Command: line, Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

func envSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}

// ProcessEnv returns the calling process's environment as a map, the base
// layer the orchestrator overlays its CURRENT_VERSION/NEW_VERSION/per-
// component snapshot onto (spec §6).
func ProcessEnv() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				out[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	return out
}
