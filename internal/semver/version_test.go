package semver

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/romnn/go-bumpversion/internal/format"
)

type VersionTestSuite struct {
	suite.Suite
}

func TestVersionTestSuite(t *testing.T) {
	suite.Run(t, new(VersionTestSuite))
}

func (s *VersionTestSuite) mmpSpecs() []ComponentSpec {
	return []ComponentSpec{
		{Name: "major", Kind: KindNumeric},
		{Name: "minor", Kind: KindNumeric},
		{Name: "patch", Kind: KindNumeric},
	}
}

// TestRoundTrip_ParseThenSerialize exercises spec §8 property 1: parsing a
// serialized version and re-serializing it reproduces the same value, and
// Version.Equal agrees.
func (s *VersionTestSuite) TestRoundTrip_ParseThenSerialize() {
	specs := s.mmpSpecs()
	parseTmpl := format.MustParse("{major}.{minor}.{patch}")

	v, err := Parse(specs, parseTmpl, "1.2.3")
	s.Require().NoError(err)

	out, err := Serialize(v, []*format.Template{parseTmpl})
	s.Require().NoError(err)
	s.Equal("1.2.3", out)

	roundTripped, err := Parse(specs, parseTmpl, out)
	s.Require().NoError(err)
	s.True(v.Equal(roundTripped))
}

func (s *VersionTestSuite) TestEqual_DifferentValues() {
	specs := s.mmpSpecs()
	a, err := New(specs, map[string]string{"major": "1", "minor": "2", "patch": "3"})
	s.Require().NoError(err)
	b, err := New(specs, map[string]string{"major": "1", "minor": "2", "patch": "4"})
	s.Require().NoError(err)
	s.False(a.Equal(b))
}

// TestBumpResetsDownstream exercises spec §8 property 2: bumping a component
// resets every non-independent component after it to its initial value.
func (s *VersionTestSuite) TestBumpResetsDownstream() {
	specs := s.mmpSpecs()
	v, err := New(specs, map[string]string{"major": "1", "minor": "2", "patch": "3"})
	s.Require().NoError(err)

	next, err := v.Bump("minor")
	s.Require().NoError(err)
	s.Equal("1", next.Get("major"))
	s.Equal("3", next.Get("minor"))
	s.Equal("0", next.Get("patch"))
}

func (s *VersionTestSuite) TestBump_NumericFirstValue() {
	specs := []ComponentSpec{
		{Name: "major", Kind: KindNumeric},
		{Name: "minor", Kind: KindNumeric},
		{Name: "patch", Kind: KindNumeric},
		{Name: "pre_l", Kind: KindValues, Values: []string{"dev", "rc", "final"}, Optional: true, OptionalValue: "final"},
		{Name: "pre_n", Kind: KindNumeric, FirstValue: "1"},
	}
	v, err := New(specs, map[string]string{"major": "1", "minor": "0", "patch": "0", "pre_l": "dev", "pre_n": "1"})
	s.Require().NoError(err)

	next, err := v.Bump("pre_l")
	s.Require().NoError(err)
	s.Equal("rc", next.Get("pre_l"))
	s.Equal("1", next.Get("pre_n"), "pre_n must reset to its configured first_value, not 0")
}

func (s *VersionTestSuite) TestBump_IndependentComponentNotResetByParent() {
	specs := []ComponentSpec{
		{Name: "major", Kind: KindNumeric},
		{Name: "minor", Kind: KindNumeric},
		{Name: "build", Kind: KindNumeric, Independent: true},
	}
	v, err := New(specs, map[string]string{"major": "1", "minor": "2", "build": "42"})
	s.Require().NoError(err)

	next, err := v.Bump("major")
	s.Require().NoError(err)
	s.Equal("0", next.Get("minor"))
	s.Equal("42", next.Get("build"), "independent components must survive a parent bump untouched")
}

func (s *VersionTestSuite) TestBump_ValuesExhausted() {
	specs := []ComponentSpec{
		{Name: "pre_l", Kind: KindValues, Values: []string{"dev", "rc", "final"}},
	}
	v, err := New(specs, map[string]string{"pre_l": "final"})
	s.Require().NoError(err)

	_, err = v.Bump("pre_l")
	s.Error(err)
}

func (s *VersionTestSuite) TestSerialize_FallsBackToFirstTemplateWhenNoneSatisfy() {
	specs := []ComponentSpec{
		{Name: "major", Kind: KindNumeric},
		{Name: "minor", Kind: KindNumeric},
		{Name: "patch", Kind: KindNumeric},
		{Name: "pre_l", Kind: KindValues, Values: []string{"dev", "rc", "final"}, Optional: true, OptionalValue: "final"},
	}
	v, err := New(specs, map[string]string{"major": "1", "minor": "0", "patch": "0", "pre_l": "final"})
	s.Require().NoError(err)

	// Only one template, referencing the omitted component: spec §4.A says
	// fall back to rendering it anyway rather than failing.
	out, err := Serialize(v, []*format.Template{format.MustParse("{major}.{minor}.{patch}-{pre_l}")})
	s.Require().NoError(err)
	s.Equal("1.0.0-final", out)
}

func (s *VersionTestSuite) TestSerialize_PicksBareTemplateWhenOptionalComponentOmitted() {
	specs := []ComponentSpec{
		{Name: "major", Kind: KindNumeric},
		{Name: "minor", Kind: KindNumeric},
		{Name: "patch", Kind: KindNumeric},
		{Name: "pre_l", Kind: KindValues, Values: []string{"dev", "rc", "final"}, Optional: true, OptionalValue: "final"},
	}
	v, err := New(specs, map[string]string{"major": "1", "minor": "0", "patch": "0", "pre_l": "final"})
	s.Require().NoError(err)

	out, err := Serialize(v, []*format.Template{
		format.MustParse("{major}.{minor}.{patch}-{pre_l}"),
		format.MustParse("{major}.{minor}.{patch}"),
	})
	s.Require().NoError(err)
	s.Equal("1.0.0", out)
}

func (s *VersionTestSuite) TestParse_AnchoredFullMatch() {
	specs := s.mmpSpecs()
	parseTmpl := format.MustParse("{major}.{minor}.{patch}")

	_, err := Parse(specs, parseTmpl, "garbage-1.2.3-wrapped")
	s.Error(err, "a parse template must match the whole string, not a substring within garbage")
}
