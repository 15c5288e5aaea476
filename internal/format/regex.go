package format

import (
	"regexp"
	"sort"
	"strings"
)

// PlaceholderPattern supplies the regex fragment to substitute for one
// placeholder name when a template is compiled for matching rather than
// rendering (spec §4.B: "a search template is both a literal renderer, given
// the current version, and a matcher, via the same placeholders").
type PlaceholderPattern interface {
	// Pattern returns the regex fragment for name, and whether name is a
	// known placeholder at all. Unknown names fall back to a non-greedy
	// free-form match so environment/plugin-contributed variables (which
	// have no fixed value space) still compile to something usable.
	Pattern(name string) (string, bool)
}

// NumericPattern matches a component whose value space is non-negative
// integers.
const NumericPattern = `\d+`

// ValuesPattern builds an alternation over a values-kind component's
// allowed list, longest-first so a value that is a prefix of another (e.g.
// "rc" vs "rc1") never shadows the longer match.
func ValuesPattern(values []string) string {
	sorted := append([]string(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	parts := make([]string, len(sorted))
	for i, v := range sorted {
		parts[i] = regexp.QuoteMeta(v)
	}
	return strings.Join(parts, "|")
}

// FreeFormPattern is used for placeholders with no declared value space
// (environment variables, plugin-contributed template variables).
const FreeFormPattern = `.*?`

// staticPatterns is a PlaceholderPattern backed by a plain map, with
// FreeFormPattern as the fallback for unknown names.
type staticPatterns map[string]string

func (s staticPatterns) Pattern(name string) (string, bool) {
	p, ok := s[name]
	return p, ok
}

// NewStaticPatterns builds a PlaceholderPattern from a name->regex map.
func NewStaticPatterns(m map[string]string) PlaceholderPattern {
	return staticPatterns(m)
}

// CompileRegex compiles t into a regular expression with one named capture
// group per distinct placeholder. Literal segments are escaped with
// regexp.QuoteMeta so punctuation in surrounding file content is matched
// literally, not as regex metacharacters.
func CompileRegex(t *Template, patterns PlaceholderPattern) (*regexp.Regexp, error) {
	var sb strings.Builder
	seen := make(map[string]bool)

	for _, n := range t.Nodes {
		if !n.IsPlaceholder {
			sb.WriteString(regexp.QuoteMeta(n.Literal))
			continue
		}
		frag, known := patterns.Pattern(n.Name)
		if !known || frag == "" {
			frag = FreeFormPattern
		}
		groupName := sanitizeGroupName(n.Name)
		if seen[groupName] {
			// Same placeholder referenced twice in one template: only the
			// first occurrence captures; later ones match the same pattern
			// but are not required to match the same text.
			sb.WriteString(`(?:` + frag + `)`)
			continue
		}
		seen[groupName] = true
		sb.WriteString(`(?P<` + groupName + `>` + frag + `)`)
	}

	return regexp.Compile(sb.String())
}

// CompileAnchoredRegex behaves like CompileRegex but anchors the result to
// match the input in full (spec §4.A: a parse template matches the whole
// version string, not merely a prefix within it). Used by semver.Parse;
// CompileRegex itself stays unanchored for the rewriter's search templates,
// which match a placeholder occurrence inside a larger file.
func CompileAnchoredRegex(t *Template, patterns PlaceholderPattern) (*regexp.Regexp, error) {
	re, err := CompileRegex(t, patterns)
	if err != nil {
		return nil, err
	}
	return regexp.Compile(`^(?:` + re.String() + `)$`)
}

var nonWordRe = regexp.MustCompile(`\W`)

func sanitizeGroupName(name string) string {
	return nonWordRe.ReplaceAllString(name, "_")
}
