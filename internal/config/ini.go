package config

import (
	"strings"

	"gopkg.in/ini.v1"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
)

const (
	iniSectionRoot        = "bumpversion"
	iniSectionFilePrefix  = "bumpversion:file:"
	iniSectionPartPrefix  = "bumpversion:part:"
	iniSectionHooksRoot   = "bumpversion:hooks"
)

// parseINI parses the `.bumpversion.cfg` / `setup.cfg` dialect (spec §4.C,
// §6). AllowPythonMultilineValues mirrors upstream's own indented-
// continuation-line list syntax for `values = \n    dev\n    rc\n    final`.
func parseINI(source string, path string) (*Config, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		SpaceBeforeInlineComment:   true,
	}, []byte(source))
	if err != nil {
		start, end, line := spanForKey(source, "")
		return nil, bumperrors.At(bumperrors.KindConfigParse,
			bumperrors.Span{Source: path, Start: start, End: end, Line: line}, "failed to parse INI configuration: %v", err)
	}

	cfg := defaults()
	cfg.SourcePath = path
	cfg.Dialect = "ini"

	root := f.Section(iniSectionRoot)
	if root == nil || !hasSectionNamed(f, iniSectionRoot) {
		return nil, bumperrors.New(bumperrors.KindConfigSchema, "missing required [%s] section", iniSectionRoot)
	}

	if err := applyRootKeysINI(cfg, root, source, path); err != nil {
		return nil, err
	}

	for _, sec := range f.Sections() {
		name := sec.Name()
		switch {
		case name == iniSectionRoot || name == ini.DefaultSection:
			continue
		case strings.HasPrefix(name, iniSectionPartPrefix):
			part, err := partFromINISection(sec)
			if err != nil {
				return nil, err
			}
			cfg.Parts = append(cfg.Parts, part)
		case strings.HasPrefix(name, iniSectionFilePrefix):
			fs, err := fileSpecFromINISection(sec, strings.TrimPrefix(name, iniSectionFilePrefix))
			if err != nil {
				return nil, err
			}
			cfg.Files = append(cfg.Files, fs)
		case name == iniSectionHooksRoot:
			cfg.PreHooks = splitList(sec.Key("pre").String())
			cfg.PostHooks = splitList(sec.Key("post").String())
		}
	}

	return cfg, nil
}

func hasSectionNamed(f *ini.File, name string) bool {
	for _, s := range f.Sections() {
		if s.Name() == name {
			return true
		}
	}
	return false
}

func applyRootKeysINI(cfg *Config, root *ini.Section, source, path string) error {
	if root.HasKey("current_version") {
		cfg.CurrentVersion = root.Key("current_version").String()
	}
	if root.HasKey("parse") {
		cfg.Parse = []string{normalizeParseTemplate(root.Key("parse").String())}
	}
	if root.HasKey("serialize") {
		cfg.Serialize = splitList(root.Key("serialize").String())
	}
	if root.HasKey("message") {
		cfg.Message = root.Key("message").String()
	}
	if root.HasKey("tag_name") {
		cfg.TagName = root.Key("tag_name").String()
	}
	if root.HasKey("tag_message") {
		cfg.TagMessage = root.Key("tag_message").String()
	}

	for _, key := range []struct {
		name string
		dst  *bool
	}{
		{"commit", &cfg.Commit},
		{"tag", &cfg.Tag},
		{"allow_dirty", &cfg.AllowDirty},
		{"sign_tags", &cfg.SignTags},
	} {
		if !root.HasKey(key.name) {
			continue
		}
		b, err := boolOf(root.Key(key.name).String())
		if err != nil {
			start, end, line := spanForKey(source, key.name)
			return bumperrors.WrapAt(bumperrors.KindConfigSchema,
				bumperrors.Span{Source: path, Start: start, End: end, Line: line}, err, "invalid value for %q", key.name)
		}
		*key.dst = b
	}
	return nil
}

func partFromINISection(sec *ini.Section) (PartSpec, error) {
	name := strings.TrimPrefix(sec.Name(), iniSectionPartPrefix)
	p := PartSpec{Name: name}
	if sec.HasKey("values") {
		p.Values = splitList(sec.Key("values").String())
	}
	if sec.HasKey("first_value") {
		p.FirstValue = sec.Key("first_value").String()
	}
	if sec.HasKey("optional_value") {
		p.OptionalValue = sec.Key("optional_value").String()
	}
	if sec.HasKey("independent") {
		ind, err := boolOf(sec.Key("independent").String())
		if err != nil {
			return PartSpec{}, bumperrors.Wrap(bumperrors.KindConfigSchema, err, "part %q: invalid independent flag", name)
		}
		p.Independent = ind
	}
	return p, nil
}

func fileSpecFromINISection(sec *ini.Section, path string) (FileSpec, error) {
	fs := FileSpec{Path: path}
	if sec.HasKey("search") {
		fs.Search = splitList(sec.Key("search").String())
	}
	if sec.HasKey("replace") {
		fs.Replace = splitList(sec.Key("replace").String())
	}
	if sec.HasKey("optional") {
		opt, err := boolOf(sec.Key("optional").String())
		if err != nil {
			return FileSpec{}, bumperrors.Wrap(bumperrors.KindConfigSchema, err, "file %q: invalid optional flag", path)
		}
		fs.Optional = opt
	}
	if len(fs.Search) == 0 {
		fs.Search = []string{"{current_version}"}
		fs.Replace = []string{"{new_version}"}
	}
	return fs, nil
}

// splitList parses upstream's dual list syntax: comma-separated on one line,
// or one value per (indented, continuation-joined) line.
func splitList(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var fields []string
	if strings.Contains(raw, "\n") {
		fields = strings.Split(raw, "\n")
	} else {
		fields = strings.Split(raw, ",")
	}
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
