package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
)

type ConfigTestSuite struct {
	suite.Suite
	fs afero.Fs
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.fs = afero.NewMemMapFs()
}

func (s *ConfigTestSuite) writeFile(path, content string) {
	s.Require().NoError(afero.WriteFile(s.fs, path, []byte(content), 0o644))
}

func (s *ConfigTestSuite) TestLoad_INI() {
	s.writeFile("/repo/.bumpversion.cfg", `[bumpversion]
current_version = 1.2.3
commit = True
tag = True

[bumpversion:file:README.md]
search = version {current_version}
replace = version {new_version}

[bumpversion:part:pre_l]
values =
    dev
    rc
    final
optional_value = final
`)

	cfg, err := Load(s.fs, "/repo")
	s.Require().NoError(err)
	s.Equal("1.2.3", cfg.CurrentVersion)
	s.True(cfg.Commit)
	s.True(cfg.Tag)
	s.Require().Len(cfg.Files, 1)
	s.Equal("README.md", cfg.Files[0].Path)
	s.Equal([]string{"version {current_version}"}, cfg.Files[0].Search)

	part, ok := cfg.PartByName("pre_l")
	s.True(ok)
	s.Equal([]string{"dev", "rc", "final"}, part.Values)
	s.Equal("final", part.OptionalValue)
}

func (s *ConfigTestSuite) TestLoad_TOML() {
	s.writeFile("/repo/.bumpversion.toml", `[tool.bumpversion]
current_version = "1.2.3"
commit = true
tag = true

[[tool.bumpversion.files]]
filename = "README.md"
search = "version {current_version}"
replace = "version {new_version}"

[tool.bumpversion.parts.pre_l]
values = ["dev", "rc", "final"]
optional_value = "final"
`)

	cfg, err := Load(s.fs, "/repo")
	s.Require().NoError(err)
	s.Equal("1.2.3", cfg.CurrentVersion)
	s.True(cfg.Commit)
	s.Require().Len(cfg.Files, 1)
	s.Equal("README.md", cfg.Files[0].Path)

	part, ok := cfg.PartByName("pre_l")
	s.True(ok)
	s.Equal([]string{"dev", "rc", "final"}, part.Values)
}

func (s *ConfigTestSuite) TestDiscover_PrefersBumpversionToml() {
	s.writeFile("/repo/.bumpversion.toml", "[tool.bumpversion]\ncurrent_version = \"1.0.0\"\n")
	s.writeFile("/repo/.bumpversion.cfg", "[bumpversion]\ncurrent_version = \"9.9.9\"\n")

	path, err := Discover(s.fs, "/repo")
	s.Require().NoError(err)
	s.Equal("/repo/.bumpversion.toml", path)
}

func (s *ConfigTestSuite) TestDiscover_PyprojectRequiresToolSection() {
	s.writeFile("/repo/pyproject.toml", "[tool.other]\nfoo = 1\n")
	s.writeFile("/repo/.bumpversion.cfg", "[bumpversion]\ncurrent_version = \"1.0.0\"\n")

	path, err := Discover(s.fs, "/repo")
	s.Require().NoError(err)
	s.Equal("/repo/.bumpversion.cfg", path)
}

func (s *ConfigTestSuite) TestDiscover_NoneFound() {
	_, err := Discover(s.fs, "/repo")
	s.Error(err)
}

func (s *ConfigTestSuite) TestLoad_UnknownComponentInSerializeFails() {
	s.writeFile("/repo/.bumpversion.cfg", `[bumpversion]
current_version = 1.2.3
parse = (?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)
serialize = {major}.{minor}.{build}
`)

	_, err := Load(s.fs, "/repo")
	s.Require().Error(err)

	var bumpErr *bumperrors.Error
	s.Require().ErrorAs(err, &bumpErr)
	s.False(bumpErr.Span.IsZero(), "the unknown-component error should point at the offending placeholder")
}

func (s *ConfigTestSuite) TestMerge_OverridesWinPerField() {
	cfg := New()
	cfg.Commit = true

	falseVal := false
	newVersion := "2.0.0"
	Merge(cfg, Overrides{CurrentVersion: &newVersion, Commit: &falseVal})

	s.Equal("2.0.0", cfg.CurrentVersion)
	s.False(cfg.Commit)
}

func (s *ConfigTestSuite) TestMerge_UnsetFieldsUntouched() {
	cfg := New()
	cfg.CurrentVersion = "1.0.0"

	Merge(cfg, Overrides{})
	s.Equal("1.0.0", cfg.CurrentVersion)
}
