package config

// Overrides carries the CLI flags that may override a loaded Config (spec
// §6). A nil pointer field means "not set on the command line" and leaves
// the config value untouched; a non-nil one, including an explicit `false`
// from --no-commit/--no-tag, is applied by Merge. That is why overrides are
// tri-state pointers rather than plain bools (a plain `false` would be
// indistinguishable from "unset").
type Overrides struct {
	CurrentVersion *string
	NewVersion     *string
	DryRun         bool
	AllowDirty     *bool
	Commit         *bool
	Tag            *bool
	SignTags       *bool
	Message        *string
	TagName        *string
	TagMessage     *string
}

// Merge overlays every set override field onto cfg, CLI winning per field
// (spec §4.C: "overrides winning per-field").
func Merge(cfg *Config, o Overrides) {
	if o.CurrentVersion != nil {
		cfg.CurrentVersion = *o.CurrentVersion
	}
	if o.AllowDirty != nil {
		cfg.AllowDirty = *o.AllowDirty
	}
	if o.Commit != nil {
		cfg.Commit = *o.Commit
	}
	if o.Tag != nil {
		cfg.Tag = *o.Tag
	}
	if o.SignTags != nil {
		cfg.SignTags = *o.SignTags
	}
	if o.Message != nil {
		cfg.Message = *o.Message
	}
	if o.TagName != nil {
		cfg.TagName = *o.TagName
	}
	if o.TagMessage != nil {
		cfg.TagMessage = *o.TagMessage
	}
}
