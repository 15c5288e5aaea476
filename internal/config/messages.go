package config

// Exported diagnostic strings, kept as named constants so tests assert
// against a single source of truth instead of duplicating literals — the
// teacher's own packages (e.g. internal/vcs) follow this pattern.
const (
	ErrNoConfigFileFound     = "no bumpversion configuration file found"
	ErrUnknownComponentInTpl = "template references unknown component %q"
	WarnUnknownKey           = "unrecognized configuration key %q"
)
