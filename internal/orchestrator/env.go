package orchestrator

import (
	"strings"

	"dario.cat/mergo"

	"github.com/romnn/go-bumpversion/internal/semver"
)

// buildEnv assembles the template/hook environment snapshot from spec §6:
// CURRENT_VERSION, NEW_VERSION, each component by name with _CURRENT/_NEW
// suffixes, plus the calling process's environment (captured once, per
// spec §5: "environment variables used by format expansion are captured
// once at orchestrator start into an immutable snapshot"). currentRaw and
// nextRaw are the already-serialized version strings (via the config's own
// serialize templates, not a fixed dotted-join), so CURRENT_VERSION/
// NEW_VERSION match whatever textual form the project's templates produce.
//
// The process environment and the version-derived overlay are two maps of
// independent provenance; mergo.Merge(WithOverride) is used to layer the
// version-derived values on top rather than a manual two-pass copy, the way
// the oarkflow-releaser and compozy config loaders in the example pack
// layer partial config maps onto a base (see DESIGN.md).
func buildEnv(processEnv map[string]string, current, next *semver.Version, currentRaw, nextRaw string) (map[string]string, error) {
	overlay := map[string]string{
		"CURRENT_VERSION": currentRaw,
		"NEW_VERSION":     nextRaw,
	}
	for _, name := range current.Order {
		overlay[strings.ToUpper(name)+"_CURRENT"] = current.Get(name)
	}
	for _, name := range next.Order {
		overlay[strings.ToUpper(name)+"_NEW"] = next.Get(name)
	}

	env := make(map[string]string, len(processEnv))
	for k, v := range processEnv {
		env[k] = v
	}
	if err := mergo.Merge(&env, overlay, mergo.WithOverride); err != nil {
		return nil, err
	}
	return env, nil
}

// templateEnv is the subset of env (plus plugin-contributed extras and the
// literal current_version/new_version/{name}/{name_current} keys) used to
// render commit-message and tag templates (spec §6).
func templateEnv(env map[string]string, current, next *semver.Version, currentRaw, nextRaw string, extras map[string]string) map[string]string {
	out := make(map[string]string, len(env)+len(extras)+4)
	for k, v := range env {
		out[k] = v
	}
	out["current_version"] = currentRaw
	out["new_version"] = nextRaw
	for _, name := range next.Order {
		out[name] = next.Get(name)
		out[name+"_current"] = current.Get(name)
	}
	for k, v := range extras {
		out[k] = v
	}
	return out
}
