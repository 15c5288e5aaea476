package semver

import (
	"strconv"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
)

// Version is an ordered sequence of named components (spec §3). Order is
// significance order: components earlier in Order are more significant, and
// bumping a component resets every non-independent component after it.
type Version struct {
	Order  []string
	Specs  map[string]ComponentSpec
	Values map[string]string
}

// New builds a Version from component specs (in significance order) and
// their current values. Missing values default to each spec's initial value.
func New(specs []ComponentSpec, values map[string]string) (*Version, error) {
	order := make([]string, 0, len(specs))
	specMap := make(map[string]ComponentSpec, len(specs))
	seen := make(map[string]bool, len(specs))

	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if seen[s.Name] {
			return nil, bumperrors.New(bumperrors.KindConfigSchema, "duplicate component name %q", s.Name)
		}
		seen[s.Name] = true
		order = append(order, s.Name)
		specMap[s.Name] = s
	}

	v := &Version{Order: order, Specs: specMap, Values: make(map[string]string, len(order))}
	for _, name := range order {
		if val, ok := values[name]; ok {
			v.Values[name] = val
		} else {
			v.Values[name] = specMap[name].InitialValue()
		}
	}
	return v, nil
}

// Clone returns an independent copy of v.
func (v *Version) Clone() *Version {
	values := make(map[string]string, len(v.Values))
	for k, val := range v.Values {
		values[k] = val
	}
	return &Version{Order: v.Order, Specs: v.Specs, Values: values}
}

// Get returns the current value of a named component.
func (v *Version) Get(name string) string {
	return v.Values[name]
}

// Equal reports whether two versions have identical component values. Used
// by the round-trip property (spec §8.1).
func (v *Version) Equal(other *Version) bool {
	if len(v.Values) != len(other.Values) {
		return false
	}
	for k, val := range v.Values {
		if other.Values[k] != val {
			return false
		}
	}
	return true
}

// Bump applies the spec §3 algebra: increments/advances component, then
// resets every non-independent component strictly after it in Order.
func (v *Version) Bump(component string) (*Version, error) {
	spec, ok := v.Specs[component]
	if !ok {
		return nil, bumperrors.New(bumperrors.KindConfigSchema, "unknown component %q", component)
	}

	next := v.Clone()

	switch spec.Kind {
	case KindNumeric:
		current, err := strconv.Atoi(next.Values[component])
		if err != nil {
			return nil, bumperrors.WrapAt(bumperrors.KindInvalidValue, bumperrors.Span{}, err,
				"component %q has non-numeric value %q", component, next.Values[component])
		}
		next.Values[component] = strconv.Itoa(current + 1)
	case KindValues:
		idx := spec.IndexOf(next.Values[component])
		if idx < 0 {
			return nil, bumperrors.New(bumperrors.KindInvalidValue,
				"component %q has value %q which is not in its allowed list", component, next.Values[component])
		}
		if idx+1 >= len(spec.Values) {
			return nil, bumperrors.New(bumperrors.KindBumpExhausted,
				"component %q is already at its last allowed value %q", component, spec.Values[idx])
		}
		next.Values[component] = spec.Values[idx+1]
	}

	resetting := false
	for _, name := range v.Order {
		if name == component {
			resetting = true
			continue
		}
		if !resetting {
			continue
		}
		if next.Specs[name].Independent {
			continue
		}
		next.Values[name] = next.Specs[name].InitialValue()
	}

	return next, nil
}
