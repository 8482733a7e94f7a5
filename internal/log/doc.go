// Package log provides privacy-aware logging functionality with automatic
// rewriting of home-relative paths, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic rewriting of paths under the user's home directory to ~ form
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Privacy Features
//
// The RedactHandler rewrites filesystem paths in log output:
//   - Path attributes (path, file, dir, db, output, config)
//   - Keys following the _path, _file, and _dir suffix conventions
//   - Grouped attributes, recursively
//
// Scan logs are often pasted into bug reports or CI output that other
// people read; rewriting the home directory prefix keeps local usernames
// out of shared logs even in verbose mode.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("document loaded",
//	    "file", "/home/alice/bibles/en_kjv.json", // Logged as "~/bibles/en_kjv.json"
//	    "books", 66,
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
