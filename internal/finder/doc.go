// Package finder discovers translation documents in a directory tree.
//
// # Architecture
//
// The finder package is designed around the Finder type, which walks a
// root directory with filepath.WalkDir and collects JSON documents. It
// respects depth limits and ignore/follow glob patterns, and it returns
// results in sorted order so batch scans are deterministic.
//
// # Components
//
//   - Finder: the walker that coordinates discovery
//   - Stats: counters from the most recent walk
//
// # Usage
//
//	f := finder.New(finder.WithMaxDepth(2))
//	files, err := f.Find(ctx, "translations")
//
// Symlinked directories are never followed, so loops in the tree cannot
// make the walk run forever.
package finder
