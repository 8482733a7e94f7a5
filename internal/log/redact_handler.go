package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// pathKeys contains attribute keys whose values are filesystem paths.
// Values logged under these keys are rewritten so that the user's home
// directory appears as "~".
var pathKeys = map[string]bool{
	// Scan inputs
	"path": true,
	"file": true,
	"dir":  true,
	"root": true,

	// Persistence and output
	"db":       true,
	"database": true,
	"output":   true,

	// Configuration
	"config": true,
}

// TildePrefix is the string that replaces the home directory in log output.
const TildePrefix = "~"

// RedactHandler wraps an slog.Handler to rewrite paths under the user's
// home directory. It intercepts log records and replaces the home directory
// prefix with "~" in path attribute values before passing them to the
// underlying handler.
//
// Scan logs are routinely pasted into bug reports and CI output; rewriting
// the home directory prefix keeps local usernames out of shared logs.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites keep logging real paths; rewriting happens in one place
type RedactHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// home is the user's home directory, or empty when it cannot be resolved.
	// An empty home disables rewriting.
	home string
}

// NewRedactHandler creates a new RedactHandler wrapping the given handler.
// All path attributes will be rewritten before being passed to the underlying handler.
// If handler is nil, the returned RedactHandler will use slog.Default().Handler().
func NewRedactHandler(handler slog.Handler) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &RedactHandler{handler: handler, home: home}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's path attributes and passes it to the underlying handler.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	// Create a new record with rewritten attributes
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	// Rewrite each attribute
	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.redactAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewrittenAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewrittenAttrs[i] = h.redactAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(rewrittenAttrs), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name), home: h.home}
}

// redactAttr rewrites a single attribute, recursively handling groups.
func (h *RedactHandler) redactAttr(a slog.Attr) slog.Attr {
	// Handle groups recursively
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewrittenAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewrittenAttrs[i] = h.redactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewrittenAttrs...)}
	}

	// Only string values under path keys are rewritten
	if a.Value.Kind() != slog.KindString {
		return a
	}
	keyLower := strings.ToLower(a.Key)
	if !pathKeys[keyLower] && !hasPathSuffix(keyLower) {
		return a
	}

	return slog.String(a.Key, h.redactPath(a.Value.String()))
}

// hasPathSuffix checks if the key names a path by suffix convention.
// Keys like "db_path", "report_file", and "cache_dir" carry paths even
// though they are not in the pathKeys map.
func hasPathSuffix(key string) bool {
	pathSuffixes := []string{"_path", "_file", "_dir"}

	for _, suffix := range pathSuffixes {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}

// redactPath replaces the user's home directory prefix with "~".
// Paths outside the home directory are returned unchanged, including
// siblings that merely share the home directory as a string prefix
// (e.g., /home/alice2 when home is /home/alice).
func (h *RedactHandler) redactPath(value string) string {
	if h.home == "" || value == "" {
		return value
	}
	if value == h.home {
		return TildePrefix
	}
	if strings.HasPrefix(value, h.home+string(os.PathSeparator)) {
		return TildePrefix + value[len(h.home):]
	}
	return value
}

// NewLogger creates a new slog.Logger with home directory redaction.
// The logger rewrites home-relative paths in all log output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	redactHandler := NewRedactHandler(textHandler)

	return slog.New(redactHandler)
}

// NewJSONLogger creates a new slog.Logger with home directory redaction
// that outputs JSON format. Useful for structured log aggregation.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger configured for JSON output with path rewriting.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	redactHandler := NewRedactHandler(jsonHandler)

	return slog.New(redactHandler)
}
