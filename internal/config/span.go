package config

import "strings"

// spanForKey does a best-effort textual search for a "key" token in source
// and returns the byte span of its first occurrence plus its 1-based line
// number. Neither gopkg.in/ini.v1 nor BurntSushi/toml's successful-decode
// path exposes per-key byte offsets (only toml.ParseError carries a
// Position, and only for syntax errors), so INI diagnostics (a parse
// failure, a bad boolean) approximate the span by locating the key in the
// raw source rather than tracking an offset through the decoder.
func spanForKey(source, key string) (start, end, line int) {
	lines := strings.Split(source, "\n")
	offset := 0
	for i, l := range lines {
		if idx := strings.Index(l, key); idx >= 0 {
			return offset + idx, offset + idx + len(key), i + 1
		}
		offset += len(l) + 1
	}
	return 0, 0, 0
}
