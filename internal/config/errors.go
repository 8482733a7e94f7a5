package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoInput is returned when no translation file or directory is specified.
	// This error occurs when neither a positional argument nor --dir provides
	// an input.
	ErrNoInput = errors.New("no input specified: provide a translation file or use --dir")

	// ErrInvalidFormat is returned when the report format is not recognized.
	// Only the text, json, and markdown formats are supported.
	ErrInvalidFormat = errors.New("invalid format: must be one of text, json, markdown")

	// ErrInvalidMaxDepth is returned when the directory depth limit is negative.
	// A depth of zero is valid and restricts discovery to the root directory.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	// A concurrency of zero would mean no parallel scans, effectively stopping
	// the scanning process.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidMaxFileSize is returned when the max file size is negative.
	// A negative file size is invalid; use 0 to use the default limit.
	ErrInvalidMaxFileSize = errors.New("invalid max file size: must be non-negative")
)
