package semver

import (
	"github.com/romnn/go-bumpversion/internal/bumperrors"
	"github.com/romnn/go-bumpversion/internal/format"
)

// patternsFor adapts a component-spec map to format.PlaceholderPattern so the
// Format Engine's regex walker can compile a parse template without knowing
// anything about the version model itself.
type patternsFor map[string]ComponentSpec

func (p patternsFor) Pattern(name string) (string, bool) {
	spec, ok := p[name]
	if !ok {
		return format.FreeFormPattern, false
	}
	if spec.Kind == KindValues {
		return format.ValuesPattern(spec.Values), true
	}
	return format.NumericPattern, true
}

// ComponentPatterns exposes v's component kinds as a format.PlaceholderPattern,
// for callers outside this package that need to compile a regex against
// version-component placeholders (the rewriter's search-template compiler).
func ComponentPatterns(v *Version) format.PlaceholderPattern {
	return patternsFor(v.Specs)
}

// Parse matches raw against parseTemplate to extract component values, then
// builds a Version from specs (in significance order). Components the
// template doesn't capture default to their initial value, matching the
// spec §4.A rule that an omitted optional component reads back as absent.
func Parse(specs []ComponentSpec, parseTemplate *format.Template, raw string) (*Version, error) {
	specMap := make(map[string]ComponentSpec, len(specs))
	for _, s := range specs {
		specMap[s.Name] = s
	}

	re, err := format.CompileAnchoredRegex(parseTemplate, patternsFor(specMap))
	if err != nil {
		return nil, bumperrors.Wrap(bumperrors.KindConfigSchema, err, "failed to compile parse template %q", parseTemplate.Source)
	}

	match := re.FindStringSubmatch(raw)
	if match == nil {
		return nil, bumperrors.At(bumperrors.KindUnparseableVer,
			bumperrors.Span{Source: raw}, "version string %q does not match parse template %q", raw, parseTemplate.Source)
	}

	values := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name != "" && match[i] != "" {
			values[name] = match[i]
		}
	}

	return New(specs, values)
}

// Serialize renders v through the first template in templates whose
// placeholders are all satisfiable: every referenced component either has a
// non-omissible current value, or has a value different from its omissible
// default. Templates are tried in order, matching the spec §4.A rule that
// callers list the most specific (longest) template first. If none fits,
// spec §4.A has the caller fall back to the first template rather than
// failing the bump outright.
func Serialize(v *Version, templates []*format.Template) (string, error) {
	if len(templates) == 0 {
		return "", bumperrors.New(bumperrors.KindConfigSchema, "no serialize templates configured")
	}

	env := make(map[string]string, len(v.Values))
	for k, val := range v.Values {
		env[k] = val
	}

	for _, tmpl := range templates {
		if !v.satisfies(tmpl) {
			continue
		}
		if out, err := format.Render(tmpl, env); err == nil {
			return out, nil
		}
	}

	return format.Render(templates[0], env)
}

// satisfies reports whether every placeholder tmpl references names either a
// free-form (non-component) value or a component whose current value is not
// its omissible value.
func (v *Version) satisfies(tmpl *format.Template) bool {
	for _, name := range tmpl.PlaceholderNames() {
		spec, known := v.Specs[name]
		if !known {
			continue // free-form/environment placeholder, always satisfiable
		}
		omissible, has := spec.OmissibleValue()
		if has && v.Values[name] == omissible {
			return false
		}
	}
	return true
}
