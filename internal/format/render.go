package format

import (
	"strings"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
)

// Render produces the literal string for t given a fully-resolved
// environment. Every placeholder name referenced by t must be present in
// env; a missing key is a bumperrors.KindMissingKey error (spec §4.B) rather
// than silently rendering empty, since a silently-dropped value would
// corrupt a rewritten file.
func Render(t *Template, env map[string]string) (string, error) {
	var out strings.Builder
	for _, n := range t.Nodes {
		if !n.IsPlaceholder {
			out.WriteString(n.Literal)
			continue
		}
		val, ok := env[n.Name]
		if !ok {
			return "", bumperrors.At(bumperrors.KindMissingKey,
				bumperrors.Span{Source: t.Source}, "missing value for placeholder %q", n.Name)
		}
		if n.Spec != "" {
			val = parseFieldSpec(n.Spec).apply(val)
		}
		out.WriteString(val)
	}
	return out.String(), nil
}

// RenderPartial is Render but substitutes the empty string for any missing
// placeholder instead of failing, for previewing a template before every
// variable is known.
func RenderPartial(t *Template, env map[string]string) string {
	var out strings.Builder
	for _, n := range t.Nodes {
		if !n.IsPlaceholder {
			out.WriteString(n.Literal)
			continue
		}
		val := env[n.Name]
		if n.Spec != "" {
			val = parseFieldSpec(n.Spec).apply(val)
		}
		out.WriteString(val)
	}
	return out.String()
}
