package config

import (
	"regexp"
	"strings"
)

var namedGroupRe = regexp.MustCompile(`\(\?P<([A-Za-z_][A-Za-z0-9_]*)>[^)]*\)`)

// normalizeParseTemplate bridges upstream bump-my-version's own `parse =`
// syntax — a raw Python regex with named groups, e.g.
// `(?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)` (spec §6's illustrative
// schema) — onto the Format Engine's single `{name}` placeholder dialect
// that internal/semver.Parse actually operates on (spec §4.A: "substituting
// each placeholder with a named capture group" is the Version Model's own
// job, given a placeholder template, not something the config surface
// should need to spell out itself). Spec §1 requires accepting the existing
// configuration formats unchanged, so a raw-regex `parse` value is rewritten
// into its equivalent placeholder template here, once, at load time.
//
// A template that already uses `{name}` placeholders (no named groups) is
// returned unchanged.
func normalizeParseTemplate(raw string) string {
	if !namedGroupRe.MatchString(raw) {
		return raw
	}
	out := namedGroupRe.ReplaceAllString(raw, `{$1}`)
	return unescapeRegexLiterals(out)
}

// unescapeRegexLiterals undoes the handful of backslash-escapes upstream's
// own default patterns put between capture groups (a literal "." or "-").
// Any other regex metacharacter surviving here is a pattern this bridge
// can't represent as a placeholder template; it passes through unchanged,
// which will surface later as an ordinary template-parse error rather than
// silently mismatching.
func unescapeRegexLiterals(s string) string {
	replacer := strings.NewReplacer(`\.`, ".", `\-`, "-", `\_`, "_")
	return replacer.Replace(s)
}
