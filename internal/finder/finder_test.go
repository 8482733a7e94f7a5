package finder

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// setupTree builds a directory tree of translation documents for testing.
// Layout:
//
//	root/
//	  en_kjv.json
//	  readme.md
//	  backup/old.json
//	  sub/fr_apee.json
//	  sub/deep/de_schlachter.json
func setupTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	dirs := []string{
		filepath.Join(root, "backup"),
		filepath.Join(root, "sub", "deep"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0750); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
	}

	files := []string{
		filepath.Join(root, "en_kjv.json"),
		filepath.Join(root, "readme.md"),
		filepath.Join(root, "backup", "old.json"),
		filepath.Join(root, "sub", "fr_apee.json"),
		filepath.Join(root, "sub", "deep", "de_schlachter.json"),
	}
	for _, file := range files {
		if err := os.WriteFile(file, []byte(`[{"abbrev":"gn"}]`), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	return root
}

// relAll converts absolute result paths back to root-relative slash paths.
func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()

	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("failed to relativize %s: %v", p, err)
		}
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

// TestFinderFind tests document discovery.
func TestFinderFind(t *testing.T) {
	t.Parallel()

	t.Run("finds all json documents in sorted order", func(t *testing.T) {
		t.Parallel()

		root := setupTree(t)

		files, err := New().Find(context.Background(), root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := relAll(t, root, files)
		want := []string{
			"backup/old.json",
			"en_kjv.json",
			"sub/deep/de_schlachter.json",
			"sub/fr_apee.json",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, expected %v", got, want)
		}
	})

	t.Run("depth zero collects only root files", func(t *testing.T) {
		t.Parallel()

		root := setupTree(t)

		files, err := New(WithMaxDepth(0)).Find(context.Background(), root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := relAll(t, root, files)
		want := []string{"en_kjv.json"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, expected %v", got, want)
		}
	})

	t.Run("depth one stops above deep directories", func(t *testing.T) {
		t.Parallel()

		root := setupTree(t)

		files, err := New(WithMaxDepth(1)).Find(context.Background(), root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := relAll(t, root, files)
		want := []string{
			"backup/old.json",
			"en_kjv.json",
			"sub/fr_apee.json",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, expected %v", got, want)
		}
	})

	t.Run("ignore patterns exclude matching paths", func(t *testing.T) {
		t.Parallel()

		root := setupTree(t)

		files, err := New(WithIgnorePatterns([]string{"backup/*"})).Find(context.Background(), root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, rel := range relAll(t, root, files) {
			if rel == "backup/old.json" {
				t.Error("backup/old.json should have been ignored")
			}
		}
	})

	t.Run("follow patterns restrict discovery", func(t *testing.T) {
		t.Parallel()

		root := setupTree(t)

		files, err := New(WithFollowPatterns([]string{"sub/*"})).Find(context.Background(), root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := relAll(t, root, files)
		want := []string{
			"sub/deep/de_schlachter.json",
			"sub/fr_apee.json",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, expected %v", got, want)
		}
	})

	t.Run("does not follow symlinked directories", func(t *testing.T) {
		t.Parallel()

		root := setupTree(t)

		if err := os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "linked")); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		files, err := New().Find(context.Background(), root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, rel := range relAll(t, root, files) {
			if filepath.ToSlash(rel) == "linked/fr_apee.json" {
				t.Error("symlinked directory should not be followed")
			}
		}
	})

	t.Run("collects symlinks to regular files", func(t *testing.T) {
		t.Parallel()

		root := setupTree(t)

		if err := os.Symlink(filepath.Join(root, "en_kjv.json"), filepath.Join(root, "alias.json")); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		files, err := New(WithMaxDepth(0)).Find(context.Background(), root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := relAll(t, root, files)
		want := []string{"alias.json", "en_kjv.json"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, expected %v", got, want)
		}
	})

	t.Run("missing root returns an error", func(t *testing.T) {
		t.Parallel()

		_, err := New().Find(context.Background(), filepath.Join(t.TempDir(), "nope"))
		if err == nil {
			t.Fatal("expected error for missing root")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		root := setupTree(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New().Find(ctx, root)
		if err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

// TestFinderStats tests walk statistics.
func TestFinderStats(t *testing.T) {
	t.Parallel()

	t.Run("counts directories, matches, and skips", func(t *testing.T) {
		t.Parallel()

		root := setupTree(t)

		f := New(WithIgnorePatterns([]string{"backup/*"}))
		if _, err := f.Find(context.Background(), root); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stats := f.Stats()
		if stats.DirsVisited != 4 { // root, backup, sub, sub/deep
			t.Errorf("expected 4 dirs visited, got %d", stats.DirsVisited)
		}
		if stats.FilesMatched != 3 {
			t.Errorf("expected 3 files matched, got %d", stats.FilesMatched)
		}
		if stats.Skipped != 1 { // backup/old.json
			t.Errorf("expected 1 skipped, got %d", stats.Skipped)
		}
	})

	t.Run("Reset clears counters", func(t *testing.T) {
		t.Parallel()

		root := setupTree(t)

		f := New()
		if _, err := f.Find(context.Background(), root); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f.Reset()
		stats := f.Stats()
		if stats.DirsVisited != 0 || stats.FilesMatched != 0 || stats.Skipped != 0 {
			t.Errorf("expected zeroed stats, got %+v", stats)
		}
	})
}

// TestMatchPattern tests glob pattern matching.
func TestMatchPattern(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{name: "directory wildcard", pattern: "backup/*", path: "backup/old.json", want: true},
		{name: "directory wildcard nested", pattern: "backup/*", path: "backup/2024/old.json", want: true},
		{name: "directory wildcard miss", pattern: "backup/*", path: "sub/old.json", want: false},
		{name: "extension pattern", pattern: "*.bak", path: "sub/notes.bak", want: true},
		{name: "extension pattern miss", pattern: "*.bak", path: "sub/notes.json", want: false},
		{name: "exact name", pattern: "en_kjv.json", path: "en_kjv.json", want: true},
		{name: "single char wildcard", pattern: "v?.json", path: "v1.json", want: true},
		{name: "basename match", pattern: "old*", path: "backup/old.json", want: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := matchPattern(tc.pattern, tc.path); got != tc.want {
				t.Errorf("matchPattern(%q, %q) = %v, expected %v", tc.pattern, tc.path, got, tc.want)
			}
		})
	}
}
