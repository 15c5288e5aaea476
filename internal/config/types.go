// Package config ingests the two upstream configuration surface syntaxes —
// an INI-like dialect and a TOML dialect — into one in-memory tree (spec
// §4.C), tagging values with byte spans so downstream errors can point at
// the offending source range.
//
// Grounded on the teacher's internal/config/config.go (a ConfigManager
// wrapping afero.Fs, building a defaults struct then overlaying a parsed
// file), generalized from the teacher's single YAML surface to the two
// surfaces this spec requires.
package config

import "github.com/romnn/go-bumpversion/internal/bumperrors"

// PartSpec is the config-file representation of one version component
// definition (the `[bumpversion:part:<name>]` / `[tool.bumpversion.parts.<name>]`
// section).
type PartSpec struct {
	Name          string
	Values        []string
	FirstValue    string
	OptionalValue string
	Independent   bool
}

// FileSpec is the config-file representation of one rewrite target.
type FileSpec struct {
	Path     string
	Search   []string
	Replace  []string
	Optional bool
}

// Config is the unified, surface-syntax-independent configuration tree.
type Config struct {
	// SourcePath is the discovered config file's path on disk, used both to
	// resolve hook working directories and to auto-inject the config file
	// itself as the last FileSpec (spec §4.D).
	SourcePath string
	// Dialect records which surface syntax produced this tree ("ini" or
	// "toml"), since the in-place current_version rewrite targets the raw
	// source bytes with a dialect-specific regex rather than a generic
	// re-serialization (spec §9: "no attempt... to losslessly round-trip
	// formatting beyond the single current_version field").
	Dialect string

	CurrentVersion string
	Parse          []string
	Serialize      []string

	Commit     bool
	Tag        bool
	AllowDirty bool
	SignTags   bool

	Message    string
	TagName    string
	TagMessage string

	Parts []PartSpec
	Files []FileSpec

	PreHooks  []string
	PostHooks []string
}

// PartByName returns the part spec for name, and whether one was declared.
func (c *Config) PartByName(name string) (PartSpec, bool) {
	for _, p := range c.Parts {
		if p.Name == name {
			return p, true
		}
	}
	return PartSpec{}, false
}

// New returns a Config populated with the spec's documented defaults, for
// callers building one programmatically (tests, `--new-version`-only runs).
func New() *Config {
	return defaults()
}

// defaults returns a Config with the spec's documented default values,
// overlaid by whichever surface parser ran.
func defaults() *Config {
	return &Config{
		Parse:      []string{"{major}.{minor}.{patch}"},
		Serialize:  []string{"{major}.{minor}.{patch}"},
		Commit:     false,
		Tag:        false,
		AllowDirty: false,
		SignTags:   false,
		Message:    "Bump version: {current_version} → {new_version}",
		TagName:    "v{new_version}",
		TagMessage: "Bump version: {current_version} → {new_version}",
	}
}

func boolOf(value string) (bool, error) {
	switch value {
	case "True", "true", "1", "yes", "on":
		return true, nil
	case "False", "false", "0", "no", "off", "":
		return false, nil
	default:
		return false, bumperrors.New(bumperrors.KindConfigSchema, "invalid boolean value %q", value)
	}
}
