package rewrite

import (
	"path/filepath"
	"strings"
)

// DefaultTemplate is a (search, replace) pair keyed by a recognized manifest
// file's basename or extension, used when a configured FileSpec names a
// known project-manifest file without declaring its own templates. Adapted
// from the teacher's internal/plugin/patchers.go, which did the same match
// per file kind with a single hardcoded *regexp.Regexp each; here each
// pattern instead becomes a Format Engine template pair so the same
// search/replace machinery (and regex-from-template derivation) that
// handles user-declared FileSpecs also handles these.
type DefaultTemplate struct {
	Search  string
	Replace string
}

// defaultTemplatesByName maps an exact basename to its default templates.
var defaultTemplatesByName = map[string][]DefaultTemplate{
	"package.json": {
		{Search: `"version": "{current_version}"`, Replace: `"version": "{new_version}"`},
	},
	"pyproject.toml": {
		{Search: `version = "{current_version}"`, Replace: `version = "{new_version}"`},
	},
	"Cargo.toml": {
		{Search: `version = "{current_version}"`, Replace: `version = "{new_version}"`},
	},
	"pubspec.yaml": {
		{Search: "version: {current_version}", Replace: "version: {new_version}"},
	},
	"setup.py": {
		{Search: `version="{current_version}"`, Replace: `version="{new_version}"`},
	},
	"build.gradle": {
		{Search: `version = "{current_version}"`, Replace: `version = "{new_version}"`},
	},
	"build.gradle.kts": {
		{Search: `version = "{current_version}"`, Replace: `version = "{new_version}"`},
	},
	"Package.swift": {
		{Search: "// VERSION: {current_version}", Replace: "// VERSION: {new_version}"},
	},
}

// defaultTemplatesByExt maps a file extension to its default templates, for
// manifest kinds identified by suffix rather than exact name (pom.xml-style
// and *.gemspec-style files vary their basename per project).
var defaultTemplatesByExt = map[string][]DefaultTemplate{
	".gemspec": {
		{Search: `.version = "{current_version}"`, Replace: `.version = "{new_version}"`},
	},
}

// LookupDefaultTemplates returns the default search/replace pairs for path,
// and whether any were found.
func LookupDefaultTemplates(path string) ([]DefaultTemplate, bool) {
	base := filepath.Base(path)
	if tmpls, ok := defaultTemplatesByName[base]; ok {
		return tmpls, true
	}
	if strings.EqualFold(base, "pom.xml") {
		return []DefaultTemplate{{Search: "<version>{current_version}</version>", Replace: "<version>{new_version}</version>"}}, true
	}
	if tmpls, ok := defaultTemplatesByExt[filepath.Ext(base)]; ok {
		return tmpls, true
	}
	return nil, false
}

// ResolveSpec fills in a Spec's Search/Replace from LookupDefaultTemplates
// when the configured spec didn't declare its own, so a bare FileSpec
// naming a known manifest file works without explicit templates.
func ResolveSpec(spec Spec) Spec {
	if len(spec.Search) > 0 {
		return spec
	}
	tmpls, ok := LookupDefaultTemplates(spec.Path)
	if !ok {
		return spec
	}
	for _, t := range tmpls {
		spec.Search = append(spec.Search, t.Search)
		spec.Replace = append(spec.Replace, t.Replace)
	}
	return spec
}
