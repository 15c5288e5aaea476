package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
	"github.com/romnn/go-bumpversion/internal/format"
)

// discoveryOrder is spec §6's file discovery order, plus a supplemental
// bumpversion.toml fallback this corpus's teacher convention of a bare
// top-level dotless config name suggested (see SPEC_FULL.md).
var discoveryOrder = []string{
	".bumpversion.toml",
	".bumpversion.cfg",
	"pyproject.toml",
	"setup.cfg",
	"bumpversion.toml",
}

// Discover returns the path of the first existing, schema-matching config
// file in dir, trying discoveryOrder in sequence. pyproject.toml and
// setup.cfg only count as a match if they actually carry the tool's section/
// table; an existing-but-irrelevant pyproject.toml must not shadow a
// .bumpversion.cfg sitting next to it.
func Discover(fs afero.Fs, dir string) (string, error) {
	for _, name := range discoveryOrder {
		path := filepath.Join(dir, name)
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return "", bumperrors.Wrap(bumperrors.KindIoError, err, "checking for config file %q", path)
		}
		if !exists {
			continue
		}
		if name == "pyproject.toml" || name == "setup.cfg" {
			raw, err := afero.ReadFile(fs, path)
			if err != nil {
				return "", bumperrors.Wrap(bumperrors.KindIoError, err, "reading %q", path)
			}
			if !strings.Contains(string(raw), "bumpversion") {
				continue
			}
		}
		return path, nil
	}
	return "", bumperrors.New(bumperrors.KindConfigSchema, ErrNoConfigFileFound)
}

// Load discovers and parses the config file in dir, then validates
// placeholder references and the declared file specs.
func Load(fs afero.Fs, dir string) (*Config, error) {
	path, err := Discover(fs, dir)
	if err != nil {
		return nil, err
	}
	return LoadFile(fs, path)
}

// LoadFile parses a specific config file path, dispatching on extension.
func LoadFile(fs afero.Fs, path string) (*Config, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, bumperrors.Wrap(bumperrors.KindIoError, err, "reading config file %q", path)
	}
	source := string(raw)

	var cfg *Config
	if strings.HasSuffix(path, ".toml") {
		cfg, err = parseTOML(source, path)
	} else {
		cfg, err = parseINI(source, path)
	}
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that every Serialize template's placeholders are a subset
// of the components the primary Parse template declares (spec §4.A:
// "templates with placeholders referring to unknown component names fail at
// config-load time, not at parse time").
func validate(cfg *Config) error {
	if len(cfg.Parse) == 0 {
		return bumperrors.New(bumperrors.KindConfigSchema, "no parse template configured")
	}

	primary, err := format.Parse(cfg.Parse[0])
	if err != nil {
		return bumperrors.Wrap(bumperrors.KindConfigSchema, err, "invalid primary parse template %q", cfg.Parse[0])
	}
	known := primary.PlaceholderNameSet()

	for _, raw := range cfg.Serialize {
		tmpl, err := format.Parse(raw)
		if err != nil {
			return bumperrors.Wrap(bumperrors.KindConfigSchema, err, "invalid serialize template %q", raw)
		}
		for _, name := range tmpl.PlaceholderNames() {
			if !known[name] {
				start, end, _ := tmpl.PlaceholderSpan(name)
				return bumperrors.At(bumperrors.KindConfigSchema,
					bumperrors.Span{Source: raw, Start: start, End: end},
					"serialize template %q references unknown component %q", raw, name)
			}
		}
	}

	for _, fs := range cfg.Files {
		for _, raw := range append(append([]string{}, fs.Search...), fs.Replace...) {
			if _, err := format.Parse(raw); err != nil {
				return bumperrors.Wrap(bumperrors.KindConfigSchema, err, "file %q: invalid template %q", fs.Path, raw)
			}
		}
	}

	return nil
}
