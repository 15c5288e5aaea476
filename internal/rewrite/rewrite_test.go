package rewrite

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/romnn/go-bumpversion/internal/format"
	"github.com/romnn/go-bumpversion/internal/semver"
)

func mustTemplate(src string) *format.Template {
	return format.MustParse(src)
}

type RewriteTestSuite struct {
	suite.Suite
	fs afero.Fs
}

func TestRewriteTestSuite(t *testing.T) {
	suite.Run(t, new(RewriteTestSuite))
}

func (s *RewriteTestSuite) SetupTest() {
	s.fs = afero.NewMemMapFs()
}

func (s *RewriteTestSuite) versions(currentVal, nextVal string) (*semver.Version, *semver.Version) {
	specs := []semver.ComponentSpec{
		{Name: "major", Kind: semver.KindNumeric},
		{Name: "minor", Kind: semver.KindNumeric},
		{Name: "patch", Kind: semver.KindNumeric},
	}
	current, err := semver.Parse(specs, mustTemplate("{major}.{minor}.{patch}"), currentVal)
	s.Require().NoError(err)
	next, err := semver.Parse(specs, mustTemplate("{major}.{minor}.{patch}"), nextVal)
	s.Require().NoError(err)
	return current, next
}

func (s *RewriteTestSuite) TestProcessFile_SimpleReplace() {
	s.Require().NoError(afero.WriteFile(s.fs, "/repo/README.md", []byte("version 1.2.3\nother text\n"), 0o644))

	current, next := s.versions("1.2.3", "1.3.0")
	change, err := ProcessFile(s.fs, "/repo/README.md", Spec{
		Path:    "README.md",
		Search:  []string{"version {current_version}"},
		Replace: []string{"version {new_version}"},
	}, current, next, map[string]string{"current_version": "1.2.3", "new_version": "1.3.0"})

	s.Require().NoError(err)
	s.Equal("version 1.3.0\nother text\n", string(change.Rewritten))
	s.True(change.Changed())
	s.NotEmpty(change.Diff)
}

func (s *RewriteTestSuite) TestProcessFile_NoMatchFails() {
	s.Require().NoError(afero.WriteFile(s.fs, "/repo/README.md", []byte("nothing here\n"), 0o644))

	current, next := s.versions("1.2.3", "1.3.0")
	_, err := ProcessFile(s.fs, "/repo/README.md", Spec{
		Path:    "README.md",
		Search:  []string{"version {current_version}"},
		Replace: []string{"version {new_version}"},
	}, current, next, map[string]string{"current_version": "1.2.3", "new_version": "1.3.0"})

	s.Error(err)
}

func (s *RewriteTestSuite) TestProcessFile_OptionalNoMatchSucceeds() {
	s.Require().NoError(afero.WriteFile(s.fs, "/repo/README.md", []byte("nothing here\n"), 0o644))

	current, next := s.versions("1.2.3", "1.3.0")
	change, err := ProcessFile(s.fs, "/repo/README.md", Spec{
		Path:     "README.md",
		Search:   []string{"version {current_version}"},
		Replace:  []string{"version {new_version}"},
		Optional: true,
	}, current, next, map[string]string{"current_version": "1.2.3", "new_version": "1.3.0"})

	s.Require().NoError(err)
	s.False(change.Changed())
}

func (s *RewriteTestSuite) TestBuild_ConflictingRewritesFail() {
	s.Require().NoError(afero.WriteFile(s.fs, "/repo/a.txt", []byte("1.2.3"), 0o644))

	current, next := s.versions("1.2.3", "1.3.0")
	specs := []Spec{
		{Path: "a.txt", Search: []string{"{current_version}"}, Replace: []string{"{new_version}"}},
		{Path: "a.txt", Search: []string{"{current_version}"}, Replace: []string{"9.9.9"}},
	}

	_, err := Build(context.Background(), s.fs, "/repo", specs, current, next, map[string]string{"current_version": "1.2.3", "new_version": "1.3.0"})
	s.Error(err)
}

func (s *RewriteTestSuite) TestBuild_CommitWritesOnlyChangedFiles() {
	s.Require().NoError(afero.WriteFile(s.fs, "/repo/a.txt", []byte("1.2.3"), 0o644))
	s.Require().NoError(afero.WriteFile(s.fs, "/repo/b.txt", []byte("unrelated"), 0o644))

	current, next := s.versions("1.2.3", "1.3.0")
	specs := []Spec{
		{Path: "a.txt", Search: []string{"{current_version}"}, Replace: []string{"{new_version}"}},
		{Path: "b.txt", Search: []string{"{current_version}"}, Replace: []string{"{new_version}"}, Optional: true},
	}

	plan, err := Build(context.Background(), s.fs, "/repo", specs, current, next, map[string]string{"current_version": "1.2.3", "new_version": "1.3.0"})
	s.Require().NoError(err)
	s.Require().NoError(Commit(s.fs, plan))

	contentA, _ := afero.ReadFile(s.fs, "/repo/a.txt")
	s.Equal("1.3.0", string(contentA))
	contentB, _ := afero.ReadFile(s.fs, "/repo/b.txt")
	s.Equal("unrelated", string(contentB))
}

func (s *RewriteTestSuite) TestResolveSpec_DefaultTemplateForKnownManifest() {
	resolved := ResolveSpec(Spec{Path: "package.json"})
	s.Require().Len(resolved.Search, 1)
	s.Contains(resolved.Search[0], "version")
}
