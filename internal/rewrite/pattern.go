package rewrite

import (
	"regexp"

	"github.com/romnn/go-bumpversion/internal/format"
)

// envPatterns resolves any placeholder with a known environment value to a
// regexp.QuoteMeta'd literal, since at search time its value is already
// fixed (spec §4.B: "{now:%Y-%m-%d} becomes a formatted current-time literal
// before regex construction" — generalized here to every resolved
// environment value, not just the time example).
type envPatterns map[string]string

func (e envPatterns) Pattern(name string) (string, bool) {
	v, ok := e[name]
	if !ok {
		return "", false
	}
	return regexp.QuoteMeta(v), true
}

// chainPatterns tries each source in order, falling back to format.FreeFormPattern.
type chainPatterns []format.PlaceholderPattern

func (c chainPatterns) Pattern(name string) (string, bool) {
	for _, src := range c {
		if p, ok := src.Pattern(name); ok {
			return p, true
		}
	}
	return format.FreeFormPattern, false
}
