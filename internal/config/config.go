package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Report format names accepted by the --format flag.
const (
	// FormatText is the human-readable abbreviation report (default).
	FormatText = "text"

	// FormatJSON is the full scan report serialized as JSON.
	FormatJSON = "json"

	// FormatMarkdown is the GitHub Flavored Markdown report.
	FormatMarkdown = "markdown"
)

// Default configuration values.
// These values are chosen based on the layout of typical Bible translation
// repositories and the original biblescan defaults where applicable.
const (
	// DefaultInput is the translation file scanned when no arguments and
	// no --dir are given. "public/en_kjv.json" matches the layout of the
	// thiagobodruk/bible repository, where translation dumps live under
	// a public/ directory named <language>_<version>.json.
	DefaultInput = "public/en_kjv.json"

	// DefaultFormat is the report format used when --format is not specified.
	// Text output is the format most useful at a terminal; JSON and Markdown
	// are opt-in for tooling and documentation.
	DefaultFormat = FormatText

	// DefaultMaxDepth of 8 covers every translation repository layout we
	// have seen (dumps sit at most two or three levels deep) while keeping
	// --dir from wandering into unrelated trees like node_modules.
	// Depth 0 means only the root directory itself.
	DefaultMaxDepth = 8

	// DefaultConcurrency of 4 parallel scans balances throughput with
	// memory usage. Each in-flight scan holds a fully decoded translation,
	// and large translations run to tens of megabytes.
	DefaultConcurrency = 4

	// DefaultMaxFileSize limits the maximum document size to read.
	// 64MB is roughly ten times the largest translation dump we know of,
	// so legitimate documents always fit while a runaway file cannot
	// exhaust memory.
	DefaultMaxFileSize int64 = 64 * 1024 * 1024 // 64MB

	// AppName is the application name used for XDG directory paths.
	AppName = "biblescan"
)

// Config holds all configuration options for biblescan.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ScanConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// Inputs is the list of translation files to scan.
	// Populated from positional arguments, or from directory discovery
	// when Dir is set. Must contain at least one path unless Dir is set.
	Inputs []string

	// Dir is a directory to search for translation files.
	// When set, *.json files found under it (up to MaxDepth) are scanned
	// in addition to any explicitly listed Inputs.
	Dir string

	// Format selects the report output format.
	// Must be one of FormatText, FormatJSON, or FormatMarkdown.
	Format string

	// OutputFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	OutputFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Audit enables the data-quality audit step. Audit findings are
	// appended after the abbreviation report; they never alter it.
	Audit bool

	// SaveToDB indicates whether to save scan results to the database.
	// Enabled by default so that compare and history work out of the box;
	// the --no-save flag turns it off.
	SaveToDB bool

	// DBDir is the directory path for storing the SQLite database.
	// When empty, the XDG data directory is used (see DatabaseDir).
	DBDir string

	// MaxDepth is the maximum recursion depth for directory discovery.
	// Depth 0 means only files directly under Dir.
	MaxDepth int

	// IgnorePatterns are path patterns to skip during directory discovery.
	// Patterns are matched against the path relative to Dir using glob syntax.
	IgnorePatterns []string

	// FollowPatterns are path patterns to include during directory discovery.
	// If specified, only files matching these patterns are scanned.
	FollowPatterns []string

	// Concurrency is the number of parallel scans when processing
	// multiple translation files. Higher values increase throughput but
	// hold more decoded documents in memory at once.
	Concurrency int

	// MaxFileSize is the maximum document size in bytes to read.
	// Documents larger than this fail the scan. Set to 0 to use the
	// default (64MB).
	MaxFileSize int64

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .biblescan.yaml in the current
	// directory and then in the XDG config directory.
	ConfigFilePath string

	// TranslationConfigs holds per-translation settings loaded from the
	// config file. This is populated by LoadConfigFile and consulted
	// during scanning.
	TranslationConfigs *File
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., format, depth,
// concurrency). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Format:      DefaultFormat,
		SaveToDB:    true,
		MaxDepth:    DefaultMaxDepth,
		Concurrency: DefaultConcurrency,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// DatabaseDir returns the directory holding the scan history database.
// It is DBDir when set, otherwise the XDG data directory.
func (c *Config) DatabaseDir() string {
	if c.DBDir != "" {
		return c.DBDir
	}
	return XDGDataDir()
}

// XDGDataDir returns the XDG data directory for biblescan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/biblescan
// On macOS: ~/Library/Application Support/biblescan
// On Windows: %LOCALAPPDATA%\biblescan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for biblescan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/biblescan
// On macOS: ~/Library/Application Support/biblescan
// On Windows: %APPDATA%\biblescan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for biblescan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.cache/biblescan
// On macOS: ~/Library/Caches/biblescan
// On Windows: %LOCALAPPDATA%\biblescan\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scanning begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have something to scan: explicit files or a directory
	if len(c.Inputs) == 0 && c.Dir == "" {
		return ErrNoInput
	}

	// Format must be one of the known report formats
	switch c.Format {
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		return ErrInvalidFormat
	}

	// MaxDepth must be non-negative; zero means the root directory only
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}

	// Concurrency must be positive; zero would mean no scanning
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// MaxFileSize must be non-negative; zero means use the default
	if c.MaxFileSize < 0 {
		return ErrInvalidMaxFileSize
	}

	return nil
}
