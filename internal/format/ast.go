// Package format implements the brace-based template dialect from spec
// §4.B: literal text plus {name} / {name:spec} placeholders, with a Python
// format-mini-language subset (fill/align/width, zero-padding) and {{ }}
// escapes. The same AST drives two independent walkers: Render (produce a
// literal string) and Regex (produce a named-capture-group regular
// expression for search-template matching), per the spec's own design note
// that implementers should "share the parser and specialize the walker".
//
// Grounded in shape on the teacher's internal/emit/emit.go, which also
// builds one small AST/template-data model and renders it two ways (plain
// text output, and — via internal/plugin/patchers.go — a regex for locating
// an existing value to replace). The teacher's own template engine is
// cbroglie/mustache (double-brace, no format specs) and cannot express this
// dialect, so this parser is hand-written; see DESIGN.md.
package format

// Node is one element of a parsed template: either a literal run of text or
// a placeholder reference. Start/End are rune offsets into Template.Source,
// used to attach a Span to diagnostics that point at one placeholder.
type Node struct {
	Literal       string
	IsPlaceholder bool
	Name          string
	Spec          string
	Start, End    int
}

// Template is a fully parsed, immutable template ready for rendering.
type Template struct {
	Source string
	Nodes  []Node
}

// PlaceholderNames returns the set of distinct placeholder names referenced
// by the template, in first-occurrence order.
func (t *Template) PlaceholderNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range t.Nodes {
		if n.IsPlaceholder && !seen[n.Name] {
			seen[n.Name] = true
			names = append(names, n.Name)
		}
	}
	return names
}

// PlaceholderNameSet returns the same names as a set for containment checks.
func (t *Template) PlaceholderNameSet() map[string]bool {
	set := make(map[string]bool)
	for _, n := range t.PlaceholderNames() {
		set[n] = true
	}
	return set
}

// PlaceholderSpan returns the rune offset range of name's first occurrence
// in the template, and whether name occurs at all.
func (t *Template) PlaceholderSpan(name string) (start, end int, ok bool) {
	for _, n := range t.Nodes {
		if n.IsPlaceholder && n.Name == name {
			return n.Start, n.End, true
		}
	}
	return 0, 0, false
}
