package format

import (
	"strings"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
)

// Parse compiles a raw template string into a Template. Syntax:
//
//	{name}        placeholder, no format spec
//	{name:spec}   placeholder with a format spec (width/fill/align/pad,
//	              e.g. "03" for zero-padded width 3)
//	{{            literal "{"
//	}}            literal "}"
//
// Unmatched braces and empty names produce a bumperrors.KindConfigSchema
// error carrying the rune-offset span of the offending run, mirroring the span-
// tagged diagnostics the config loader produces for the same reason.
func Parse(source string) (*Template, error) {
	var nodes []Node
	var lit strings.Builder
	litStart := 0

	flushLit := func(end int) {
		if lit.Len() > 0 {
			nodes = append(nodes, Node{Literal: lit.String(), Start: litStart, End: end})
			lit.Reset()
		}
	}

	runes := []rune(source)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch c {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				if lit.Len() == 0 {
					litStart = i
				}
				lit.WriteRune('{')
				i += 2
				continue
			}
			end := indexRune(runes, i+1, '}')
			if end < 0 {
				return nil, bumperrors.At(bumperrors.KindConfigSchema,
					bumperrors.Span{Source: source, Start: i, End: len(runes)},
					"unterminated placeholder starting at offset %d", i)
			}
			flushLit(i)
			body := string(runes[i+1 : end])
			name, spec, hasSpec := strings.Cut(body, ":")
			if name == "" {
				return nil, bumperrors.At(bumperrors.KindConfigSchema,
					bumperrors.Span{Source: source, Start: i, End: end + 1},
					"placeholder has no name")
			}
			if !hasSpec {
				spec = ""
			}
			nodes = append(nodes, Node{IsPlaceholder: true, Name: name, Spec: spec, Start: i, End: end + 1})
			i = end + 1
		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				if lit.Len() == 0 {
					litStart = i
				}
				lit.WriteRune('}')
				i += 2
				continue
			}
			return nil, bumperrors.At(bumperrors.KindConfigSchema,
				bumperrors.Span{Source: source, Start: i, End: i + 1},
				"unmatched '}' at offset %d", i)
		default:
			if lit.Len() == 0 {
				litStart = i
			}
			lit.WriteRune(c)
			i++
		}
	}
	flushLit(len(runes))

	return &Template{Source: source, Nodes: nodes}, nil
}

// MustParse is Parse, panicking on error. Reserved for compile-time-constant
// templates (default patchers, built-in tag/commit message templates).
func MustParse(source string) *Template {
	t, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return t
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
