package config

// TranslationConfig holds settings for a single translation file.
// This allows customizing scan behavior per translation, keyed by the
// file's basename (e.g., "en_kjv.json").
//
// Design decision: Audit and Save are *bool rather than bool so that an
// omitted key falls back to the defaults while an explicit "false" still
// overrides a true default. A plain bool cannot distinguish the two.
type TranslationConfig struct {
	// Format overrides the report format for this translation.
	// If empty, the global format is used.
	Format string `yaml:"format,omitempty"`

	// Audit overrides whether the data-quality audit runs for this
	// translation. If nil, the global setting is used.
	Audit *bool `yaml:"audit,omitempty"`

	// Save overrides whether scan results for this translation are
	// saved to the database. If nil, the global setting is used.
	Save *bool `yaml:"save,omitempty"`
}

// File represents the structure of the .biblescan.yaml configuration file.
type File struct {
	// Translations maps file basenames to their translation-specific
	// configurations. Keys should be the basename of the translation file
	// (e.g., "en_kjv.json"), so the same overrides apply wherever the
	// file is found.
	Translations map[string]TranslationConfig `yaml:"translations,omitempty"`

	// Defaults contains default translation configuration applied to all
	// translations unless overridden in the translation-specific configuration.
	Defaults TranslationConfig `yaml:"defaults,omitempty"`

	// IgnorePatterns are path patterns to skip during directory discovery.
	// These apply to the walk as a whole, not to a single translation.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// FollowPatterns are path patterns to include during directory discovery.
	// If specified, only files matching these patterns are scanned.
	FollowPatterns []string `yaml:"followPatterns,omitempty"`
}

// GetTranslationConfig returns the configuration for a specific translation
// file basename. It merges the translation-specific configuration with defaults.
func (cf *File) GetTranslationConfig(basename string) TranslationConfig {
	if cf == nil {
		return TranslationConfig{}
	}

	// Start with defaults
	result := cf.Defaults

	// Override with translation-specific configuration if present
	if tc, ok := cf.Translations[basename]; ok {
		if tc.Format != "" {
			result.Format = tc.Format
		}
		if tc.Audit != nil {
			result.Audit = tc.Audit
		}
		if tc.Save != nil {
			result.Save = tc.Save
		}
	}

	return result
}

// FormatOr returns the configured format, or fallback when unset.
func (tc TranslationConfig) FormatOr(fallback string) string {
	if tc.Format != "" {
		return tc.Format
	}
	return fallback
}

// AuditOr returns the configured audit setting, or fallback when unset.
func (tc TranslationConfig) AuditOr(fallback bool) bool {
	if tc.Audit != nil {
		return *tc.Audit
	}
	return fallback
}

// SaveOr returns the configured save setting, or fallback when unset.
func (tc TranslationConfig) SaveOr(fallback bool) bool {
	if tc.Save != nil {
		return *tc.Save
	}
	return fallback
}
