// Package semver implements the version model from spec §3/§4.A: an ordered
// sequence of named, typed components (numeric or a fixed ordered list of
// values), serialized through one or more format-engine templates, with a
// bump algebra that resets less-significant, non-independent components.
//
// Grounded on the teacher's internal/version/version.go (a small struct
// exposing Increment/Decrement over a fixed major/minor/patch triple),
// generalized here to an arbitrary named-component sequence because the
// spec's config format lets users declare parts like pre_l/pre_n/build.
package semver

import "github.com/romnn/go-bumpversion/internal/bumperrors"

// Kind is the value space a Component draws from.
type Kind int

const (
	// KindNumeric components hold non-negative integers; bumping adds one.
	KindNumeric Kind = iota
	// KindValues components hold one of a fixed, ordered list of strings;
	// bumping advances to the next list entry with no wrap-around.
	KindValues
)

// ComponentSpec is the immutable, config-derived definition of one named
// component: its value space and its reset/independence behavior.
type ComponentSpec struct {
	Name string
	Kind Kind

	// Values is the ordered list of allowed values for KindValues
	// components. Values[0] is the initial/"first" value.
	Values []string

	// Optional marks a KindValues component whose value, when equal to
	// OptionalValue (defaulting to Values[0] if unset), may be omitted
	// from serialization entirely (spec §3, e.g. "final" in pre_l).
	Optional      bool
	OptionalValue string

	// Independent exempts the component from reset-on-parent-bump (spec
	// §3: build-metadata-style fields).
	Independent bool

	// FirstValue overrides the default "0" initial/reset value for a
	// numeric component (e.g. upstream's own pre_n convention of
	// first_value=1). Values-kind components instead honor first_value by
	// reordering Values so Values[0] is already the configured first entry.
	FirstValue string
}

// InitialValue returns the component's default/reset value.
func (c ComponentSpec) InitialValue() string {
	switch c.Kind {
	case KindValues:
		if len(c.Values) == 0 {
			return ""
		}
		return c.Values[0]
	default:
		if c.FirstValue != "" {
			return c.FirstValue
		}
		return "0"
	}
}

// OmissibleValue returns the value that may be omitted from serialization,
// and whether such a value is configured at all.
func (c ComponentSpec) OmissibleValue() (string, bool) {
	if !c.Optional {
		return "", false
	}
	if c.OptionalValue != "" {
		return c.OptionalValue, true
	}
	return c.InitialValue(), true
}

// IndexOf returns the position of value within a values-kind component's
// allowed list, or -1 if absent.
func (c ComponentSpec) IndexOf(value string) int {
	for i, v := range c.Values {
		if v == value {
			return i
		}
	}
	return -1
}

// Validate checks the spec's own invariants: the component has a name, and a
// values-kind component has at least one allowed value.
func (c ComponentSpec) Validate() error {
	if c.Name == "" {
		return bumperrors.New(bumperrors.KindConfigSchema, "component has no name")
	}
	if c.Kind == KindValues && len(c.Values) == 0 {
		return bumperrors.New(bumperrors.KindConfigSchema, "values component %q has no allowed values", c.Name)
	}
	return nil
}
