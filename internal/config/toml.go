package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
)

// parseTOML parses the `.bumpversion.toml` / `pyproject.toml` dialect (spec
// §4.C, §6): a `[tool.bumpversion]` table, `[tool.bumpversion.parts.<name>]`
// sub-tables, and `[[tool.bumpversion.files]]` array-of-tables.
func parseTOML(source string, path string) (*Config, error) {
	var root map[string]interface{}
	meta, err := toml.Decode(source, &root)
	if err != nil {
		span := bumperrors.Span{Source: path}
		if perr, ok := err.(toml.ParseError); ok {
			pos := perr.Position()
			span.Line = pos.Line
			span.Column = pos.Col
			span.Start = pos.Offset
		}
		return nil, bumperrors.WrapAt(bumperrors.KindConfigParse, span, err, "failed to parse TOML configuration")
	}
	_ = meta

	tool, _ := root["tool"].(map[string]interface{})
	table, ok := tool["bumpversion"].(map[string]interface{})
	if !ok {
		return nil, bumperrors.New(bumperrors.KindConfigSchema, "missing required [tool.bumpversion] table")
	}

	cfg := defaults()
	cfg.SourcePath = path
	cfg.Dialect = "toml"

	if v, ok := table["current_version"].(string); ok {
		cfg.CurrentVersion = v
	}
	if v, ok := table["parse"].(string); ok {
		cfg.Parse = []string{normalizeParseTemplate(v)}
	}
	if list, ok := table["serialize"].([]interface{}); ok {
		cfg.Serialize = toStringSlice(list)
	}
	if v, ok := table["commit"].(bool); ok {
		cfg.Commit = v
	}
	if v, ok := table["tag"].(bool); ok {
		cfg.Tag = v
	}
	if v, ok := table["allow_dirty"].(bool); ok {
		cfg.AllowDirty = v
	}
	if v, ok := table["sign_tags"].(bool); ok {
		cfg.SignTags = v
	}
	if v, ok := table["message"].(string); ok {
		cfg.Message = v
	}
	if v, ok := table["tag_name"].(string); ok {
		cfg.TagName = v
	}
	if v, ok := table["tag_message"].(string); ok {
		cfg.TagMessage = v
	}

	if parts, ok := table["parts"].(map[string]interface{}); ok {
		// meta.Keys() is in source order, so walking it keeps cfg.Parts in
		// declaration order; the map walk below only adds parts it missed.
		seen := make(map[string]bool, len(parts))
		for _, key := range meta.Keys() {
			if len(key) != 4 || key[0] != "tool" || key[1] != "bumpversion" || key[2] != "parts" || seen[key[3]] {
				continue
			}
			if section, ok := parts[key[3]].(map[string]interface{}); ok {
				seen[key[3]] = true
				cfg.Parts = append(cfg.Parts, partFromTOMLTable(key[3], section))
			}
		}
		for name, raw := range parts {
			section, ok := raw.(map[string]interface{})
			if !ok || seen[name] {
				continue
			}
			cfg.Parts = append(cfg.Parts, partFromTOMLTable(name, section))
		}
	}

	if files, ok := table["files"].([]map[string]interface{}); ok {
		for _, f := range files {
			cfg.Files = append(cfg.Files, fileSpecFromTOMLTable(f))
		}
	} else if filesAny, ok := table["files"].([]interface{}); ok {
		for _, raw := range filesAny {
			if f, ok := raw.(map[string]interface{}); ok {
				cfg.Files = append(cfg.Files, fileSpecFromTOMLTable(f))
			}
		}
	}

	if hooks, ok := table["hooks"].(map[string]interface{}); ok {
		if pre, ok := hooks["pre"].([]interface{}); ok {
			cfg.PreHooks = toStringSlice(pre)
		}
		if post, ok := hooks["post"].([]interface{}); ok {
			cfg.PostHooks = toStringSlice(post)
		}
	}

	return cfg, nil
}

func partFromTOMLTable(name string, t map[string]interface{}) PartSpec {
	p := PartSpec{Name: name}
	if list, ok := t["values"].([]interface{}); ok {
		p.Values = toStringSlice(list)
	}
	if v, ok := t["first_value"].(string); ok {
		p.FirstValue = v
	}
	if v, ok := t["optional_value"].(string); ok {
		p.OptionalValue = v
	}
	if v, ok := t["independent"].(bool); ok {
		p.Independent = v
	}
	return p
}

func fileSpecFromTOMLTable(t map[string]interface{}) FileSpec {
	fs := FileSpec{}
	if v, ok := t["filename"].(string); ok {
		fs.Path = v
	} else if v, ok := t["path"].(string); ok {
		fs.Path = v
	}
	if v, ok := t["search"].(string); ok {
		fs.Search = []string{v}
	} else if list, ok := t["search"].([]interface{}); ok {
		fs.Search = toStringSlice(list)
	}
	if v, ok := t["replace"].(string); ok {
		fs.Replace = []string{v}
	} else if list, ok := t["replace"].([]interface{}); ok {
		fs.Replace = toStringSlice(list)
	}
	if v, ok := t["optional"].(bool); ok {
		fs.Optional = v
	}
	if len(fs.Search) == 0 {
		fs.Search = []string{"{current_version}"}
		fs.Replace = []string{"{new_version}"}
	}
	return fs
}

func toStringSlice(list []interface{}) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, fmt.Sprint(v))
	}
	return out
}
