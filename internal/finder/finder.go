package finder

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Finder walks a directory tree and collects translation documents.
// It respects a depth limit and ignore/follow glob patterns.
//
// Design decision: We collect paths and return them as a sorted slice
// rather than streaming through a callback because:
//  1. Simpler API for callers
//  2. Paths are small relative to total memory
//  3. Sorting after the walk guarantees deterministic batch order
type Finder struct {
	// maxDepth limits how deep to descend below the root.
	// 0 means only files directly in the root, 1 adds one directory
	// level, and so on.
	maxDepth int

	// ignorePatterns are path patterns to skip during discovery.
	// Patterns use glob syntax (e.g., "backup/*", "*.bak") and are
	// matched against the slash-separated path relative to the root.
	ignorePatterns []string

	// followPatterns are path patterns to follow during discovery.
	// If set, only paths matching these patterns are collected.
	// Empty means all paths are allowed (subject to ignorePatterns).
	followPatterns []string

	// logger for structured logging.
	logger *slog.Logger

	// dirsVisited tracks directories entered.
	dirsVisited int

	// filesMatched tracks documents collected.
	filesMatched int

	// skipped tracks entries excluded by depth, patterns, or symlinks.
	skipped int
}

// Option configures a Finder.
type Option func(*Finder)

// WithMaxDepth sets the maximum descent depth.
// 0 = only the root directory, 1 = root plus one level, etc.
func WithMaxDepth(depth int) Option {
	return func(f *Finder) {
		f.maxDepth = depth
	}
}

// WithIgnorePatterns sets path patterns to skip during discovery.
// Patterns use glob syntax (e.g., "backup/*", "*.bak").
// Paths matching any of these patterns are not collected.
func WithIgnorePatterns(patterns []string) Option {
	return func(f *Finder) {
		f.ignorePatterns = patterns
	}
}

// WithFollowPatterns sets path patterns to follow during discovery.
// Patterns use glob syntax (e.g., "translations/*").
// If set, only paths matching at least one pattern are collected.
// Empty slice means all paths are allowed (default behavior).
func WithFollowPatterns(patterns []string) Option {
	return func(f *Finder) {
		f.followPatterns = patterns
	}
}

// WithLogger sets a custom logger for the finder.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Finder) {
		f.logger = logger
	}
}

// New creates a new Finder with the given options.
func New(opts ...Option) *Finder {
	f := &Finder{
		maxDepth: 8,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Find walks the root directory and returns the paths of all JSON
// documents it accepts, sorted lexically.
//
// Symlinked directories are never followed; symlinks to regular files
// are collected like ordinary files.
func (f *Finder) Find(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		// Check context between entries
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == root {
				return fmt.Errorf("failed to walk %s: %w", root, err)
			}
			// Unreadable subtrees are skipped, not fatal
			f.logger.Debug("skipping unreadable entry", "path", path, "error", err)
			f.skipped++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if rel != "." && f.depthOf(rel) > f.maxDepth {
				f.logger.Debug("depth limit reached", "dir", path)
				f.skipped++
				return fs.SkipDir
			}
			f.dirsVisited++
			return nil
		}

		// WalkDir reports symlinks as non-directories, so a symlinked
		// directory is never descended into. Symlinks to regular files
		// still count as documents.
		if d.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil || !info.Mode().IsRegular() {
				f.logger.Debug("not following symlink", "path", path)
				f.skipped++
				return nil
			}
		}

		if !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		if !f.shouldInclude(filepath.ToSlash(rel)) {
			f.logger.Debug("excluded by pattern", "path", path)
			f.skipped++
			return nil
		}

		files = append(files, path)
		f.filesMatched++
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// depthOf returns how many directory levels below the root a relative
// path sits. "a" is depth 1, "a/b" is depth 2.
func (f *Finder) depthOf(rel string) int {
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}

// Reset clears the finder's statistics, allowing it to be reused.
func (f *Finder) Reset() {
	f.dirsVisited = 0
	f.filesMatched = 0
	f.skipped = 0
}

// Stats returns statistics from the most recent walk.
func (f *Finder) Stats() Stats {
	return Stats{
		DirsVisited:  f.dirsVisited,
		FilesMatched: f.filesMatched,
		Skipped:      f.skipped,
	}
}

// Stats contains discovery statistics.
type Stats struct {
	// DirsVisited is the number of directories entered.
	DirsVisited int

	// FilesMatched is the number of documents collected.
	FilesMatched int

	// Skipped is the number of entries excluded by depth limits,
	// patterns, unreadable subtrees, or unfollowed symlinks.
	Skipped int
}

// shouldInclude checks if a relative path passes the ignore/follow patterns.
//
// Logic:
//  1. If the path matches any ignorePattern, skip it (return false)
//  2. If followPatterns is set and the path matches none, skip it (return false)
//  3. Otherwise, collect it (return true)
func (f *Finder) shouldInclude(rel string) bool {
	// Check ignore patterns first - if matched, skip
	for _, pattern := range f.ignorePatterns {
		if matchPattern(pattern, rel) {
			return false
		}
	}

	// If follow patterns are set, the path must match at least one
	if len(f.followPatterns) > 0 {
		for _, pattern := range f.followPatterns {
			if matchPattern(pattern, rel) {
				return true
			}
		}
		// No follow pattern matched
		return false
	}

	// No follow patterns set, allow all (that weren't ignored)
	return true
}

// matchPattern checks if a path matches a glob pattern.
// Patterns can use:
//   - * to match any sequence of non-separator characters
//   - ? to match any single character
//
// Examples:
//   - "backup/*" matches "backup/old.json", "backup/2024.json"
//   - "*.bak" matches "notes.bak" anywhere in the tree
//   - "v?" matches "v1", "v2"
func matchPattern(pattern, path string) bool {
	// Handle common patterns more efficiently
	// For patterns like "backup/*", we want to match "backup/anything"
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if strings.HasPrefix(path, prefix+"/") || path == prefix {
			return true
		}
	}

	// Handle extension patterns like "*.bak"
	if strings.HasPrefix(pattern, "*.") {
		ext := strings.TrimPrefix(pattern, "*")
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	// Use path.Match semantics via filepath.Match on slash paths.
	// Note: filepath.Match doesn't support ** for recursive matching,
	// but it handles * and ? well for single-segment patterns
	matched, err := filepath.Match(pattern, path)
	if err != nil {
		return false
	}
	if matched {
		return true
	}

	// Also try matching just the filename for patterns like "*.bak"
	if strings.Contains(pattern, "*") && !strings.Contains(pattern, "/") {
		matched, err := filepath.Match(pattern, filepath.Base(path))
		if err == nil && matched {
			return true
		}
	}

	return false
}
