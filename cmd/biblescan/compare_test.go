package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/biblescan/internal/database"
	"github.com/nao1215/biblescan/internal/model"
)

// seedScans stores two scans of the same document and returns their IDs.
// The second scan adds one multi-word book and changes the content hash.
func seedScans(t *testing.T, dbDir string) (int64, int64) {
	t.Helper()

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("expected database to open, got %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	first := model.NewScanReport("public/en_test.json")
	first.SetBooks([]model.BookRecord{{Abbrev: "gn"}, {Abbrev: "ex"}})
	first.ContentHash = "hash-one"
	first.SimpleReport = model.NewSimpleReport(first)
	oldID, err := db.SaveScan(ctx, first)
	if err != nil {
		t.Fatal(err)
	}

	second := model.NewScanReport("public/en_test.json")
	second.SetBooks([]model.BookRecord{{Abbrev: "gn"}, {Abbrev: "ex"}, {Abbrev: "1sa"}})
	second.MultiwordMatches = []model.MultiwordMatch{{Abbrev: "1sa", Name: "1 Samuel"}}
	second.ContentHash = "hash-two"
	second.SimpleReport = model.NewSimpleReport(second)
	newID, err := db.SaveScan(ctx, second)
	if err != nil {
		t.Fatal(err)
	}

	return oldID, newID
}

func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()

		cmd := NewCompareCmd()
		if cmd.Use != "compare <old-id> <new-id>" {
			t.Errorf("expected use 'compare <old-id> <new-id>', got %s", cmd.Use)
		}
	})

	t.Run("has latest flag", func(t *testing.T) {
		t.Parallel()

		cmd := NewCompareCmd()
		flag := cmd.Flags().Lookup("latest")
		if flag == nil {
			t.Fatal("expected latest flag to exist")
		}
		if flag.Shorthand != "l" {
			t.Errorf("expected shorthand 'l', got %s", flag.Shorthand)
		}
	})

	t.Run("has format flag", func(t *testing.T) {
		t.Parallel()

		cmd := NewCompareCmd()
		flag := cmd.Flags().Lookup("format")
		if flag == nil {
			t.Fatal("expected format flag to exist")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %s", flag.Shorthand)
		}
		if flag.DefValue != "text" {
			t.Errorf("expected default value 'text', got %s", flag.DefValue)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()

		cmd := NewCompareCmd()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag to exist")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %s", flag.Shorthand)
		}
	})

	t.Run("has db flag", func(t *testing.T) {
		t.Parallel()

		cmd := NewCompareCmd()
		if cmd.Flags().Lookup("db") == nil {
			t.Fatal("expected db flag to exist")
		}
	})
}

func TestParseScanID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"7", 7, false},
		{"123", 123, false},
		{"abc", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("input "+tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := parseScanID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				if !strings.Contains(err.Error(), "invalid scan ID") {
					t.Errorf("expected invalid scan ID error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error for %q, got %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delta int
		want  string
	}{
		{2, "+2"},
		{-2, "-2"},
		{0, "0"},
		{10, "+10"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if got := formatDelta(tt.delta); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWriteDiffText(t *testing.T) {
	t.Parallel()

	t.Run("renders changes", func(t *testing.T) {
		t.Parallel()

		diff := &database.ScanDiff{
			OldID:             3,
			NewID:             7,
			OldFile:           "public/en_test.json",
			NewFile:           "public/en_test.json",
			OldDate:           time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			NewDate:           time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
			OldBookCount:      2,
			NewBookCount:      3,
			OldMultiwordCount: 0,
			NewMultiwordCount: 1,
			AddedAbbrevs:      []string{"1sa"},
			RemovedAbbrevs:    []string{"rev"},
			ContentChanged:    true,
			FindingDeltas:     map[string]int{"high": 1, "critical": -1},
		}

		var buf bytes.Buffer
		if err := writeDiffText(&buf, diff); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"Scan Comparison: public/en_test.json",
			"Old scan: #3",
			"New scan: #7",
			"[+] 1sa",
			"[-] rev",
			"Document content changed between the scans.",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}

		// Finding deltas render in fixed severity order
		critical := strings.Index(output, "critical")
		high := strings.Index(output, "high")
		if critical < 0 || high < 0 || critical > high {
			t.Errorf("expected critical before high, got:\n%s", output)
		}

		if strings.Contains(output, "No changes detected.") {
			t.Error("expected changes to suppress the no-changes line")
		}
		if strings.Contains(output, "comparing different documents") {
			t.Error("expected no different-documents note for the same file")
		}
	})

	t.Run("notes different documents", func(t *testing.T) {
		t.Parallel()

		diff := &database.ScanDiff{
			OldID:   1,
			NewID:   2,
			OldFile: "public/en_kjv.json",
			NewFile: "public/pt_nvi.json",
		}

		var buf bytes.Buffer
		if err := writeDiffText(&buf, diff); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(buf.String(), "comparing different documents") {
			t.Errorf("expected different-documents note, got:\n%s", buf.String())
		}
	})

	t.Run("reports no changes", func(t *testing.T) {
		t.Parallel()

		diff := &database.ScanDiff{
			OldID:        1,
			NewID:        2,
			OldFile:      "public/en_test.json",
			NewFile:      "public/en_test.json",
			OldBookCount: 66,
			NewBookCount: 66,
		}

		var buf bytes.Buffer
		if err := writeDiffText(&buf, diff); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(buf.String(), "No changes detected.") {
			t.Errorf("expected no-changes line, got:\n%s", buf.String())
		}
	})
}

func TestWriteDiffJSON(t *testing.T) {
	t.Parallel()

	diff := &database.ScanDiff{
		OldID:        1,
		NewID:        2,
		OldFile:      "public/en_test.json",
		NewFile:      "public/en_test.json",
		AddedAbbrevs: []string{"1sa"},
	}

	var buf bytes.Buffer
	if err := writeDiffJSON(&buf, diff); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("expected valid JSON, got %v", err)
	}
	if decoded["old_id"] != float64(1) || decoded["new_id"] != float64(2) {
		t.Errorf("expected scan IDs in JSON, got %v", decoded)
	}
	added, ok := decoded["added_abbrevs"].([]any)
	if !ok || len(added) != 1 || added[0] != "1sa" {
		t.Errorf("expected added abbreviations in JSON, got %v", decoded["added_abbrevs"])
	}
}

func TestWriteDiffMarkdown(t *testing.T) {
	t.Parallel()

	diff := &database.ScanDiff{
		OldID:          1,
		NewID:          2,
		OldFile:        "public/en_test.json",
		NewFile:        "public/en_test.json",
		OldBookCount:   2,
		NewBookCount:   3,
		AddedAbbrevs:   []string{"1sa"},
		RemovedAbbrevs: []string{"rev"},
	}

	var buf bytes.Buffer
	if err := writeDiffMarkdown(&buf, diff); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"# Scan Comparison: public/en_test.json",
		"| Books | 2 | 3 | +1 |",
		"- `1sa`",
		"- ~~`rev`~~",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestRunCompareCmd(t *testing.T) {
	t.Parallel()

	t.Run("compares two scans by id", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "db")
		seedScans(t, dbDir)
		outPath := filepath.Join(tmpDir, "diff.txt")

		root := NewRootCmd()
		root.SetArgs([]string{"compare", "--db", dbDir, "-o", outPath, "1", "2"})
		if err := root.Execute(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatal(err)
		}
		output := string(content)
		for _, want := range []string{
			"Scan Comparison: public/en_test.json",
			"Added abbreviations (1):",
			"[+] 1sa",
			"Document content changed between the scans.",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
		if strings.Contains(output, "Removed abbreviations") {
			t.Errorf("expected no removed abbreviations, got:\n%s", output)
		}
	})

	t.Run("compares the latest two scans of a file", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "db")
		seedScans(t, dbDir)
		outPath := filepath.Join(tmpDir, "diff.txt")

		root := NewRootCmd()
		root.SetArgs([]string{"compare", "--db", dbDir, "--latest", "public/en_test.json", "-o", outPath})
		if err := root.Execute(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(content), "[+] 1sa") {
			t.Errorf("expected newest scan as the comparison target, got:\n%s", content)
		}
	})

	t.Run("outputs json", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "db")
		seedScans(t, dbDir)
		outPath := filepath.Join(tmpDir, "diff.json")

		root := NewRootCmd()
		root.SetArgs([]string{"compare", "--db", dbDir, "-f", "json", "-o", outPath, "1", "2"})
		if err := root.Execute(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatal(err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(content, &decoded); err != nil {
			t.Fatalf("expected valid JSON, got %v", err)
		}
		if decoded["old_id"] != float64(1) || decoded["new_id"] != float64(2) {
			t.Errorf("expected scan IDs 1 and 2, got %v", decoded)
		}
		if decoded["content_changed"] != true {
			t.Error("expected content_changed true")
		}
	})

	t.Run("outputs markdown", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "db")
		seedScans(t, dbDir)
		outPath := filepath.Join(tmpDir, "diff.md")

		root := NewRootCmd()
		root.SetArgs([]string{"compare", "--db", dbDir, "-f", "markdown", "-o", outPath, "1", "2"})
		if err := root.Execute(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(content), "# Scan Comparison") {
			t.Errorf("expected markdown heading, got:\n%s", content)
		}
	})

	t.Run("requires two scan ids", func(t *testing.T) {
		t.Parallel()

		root := NewRootCmd()
		root.SetArgs([]string{"compare", "--db", t.TempDir()})
		err := root.Execute()
		if err == nil {
			t.Fatal("expected error without scan IDs")
		}
		if !strings.Contains(err.Error(), "two scan IDs are required") {
			t.Errorf("expected usage error, got %v", err)
		}
	})

	t.Run("rejects combining --latest with ids", func(t *testing.T) {
		t.Parallel()

		root := NewRootCmd()
		root.SetArgs([]string{"compare", "--db", t.TempDir(), "--latest", "x.json", "1"})
		err := root.Execute()
		if err == nil {
			t.Fatal("expected error for conflicting arguments")
		}
		if !strings.Contains(err.Error(), "cannot be combined") {
			t.Errorf("expected conflict error, got %v", err)
		}
	})

	t.Run("rejects malformed scan id", func(t *testing.T) {
		t.Parallel()

		root := NewRootCmd()
		root.SetArgs([]string{"compare", "--db", t.TempDir(), "abc", "2"})
		err := root.Execute()
		if err == nil {
			t.Fatal("expected error for malformed scan ID")
		}
		if !strings.Contains(err.Error(), "invalid scan ID") {
			t.Errorf("expected parse error, got %v", err)
		}
	})

	t.Run("fails when the file has fewer than two scans", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "db")

		db, err := database.Open(dbDir, database.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		r := model.NewScanReport("public/en_test.json")
		r.SetBooks([]model.BookRecord{{Abbrev: "gn"}})
		if _, err := db.SaveScan(context.Background(), r); err != nil {
			t.Fatal(err)
		}
		db.Close()

		root := NewRootCmd()
		root.SetArgs([]string{"compare", "--db", dbDir, "--latest", "public/en_test.json"})
		err = root.Execute()
		if err == nil {
			t.Fatal("expected error with a single scan")
		}
		if !strings.Contains(err.Error(), "at least 2 scans") {
			t.Errorf("expected not-enough-scans error, got %v", err)
		}
	})

	t.Run("fails for an unknown scan id", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "db")
		seedScans(t, dbDir)

		root := NewRootCmd()
		root.SetArgs([]string{"compare", "--db", dbDir, "1", "999"})
		err := root.Execute()
		if err == nil {
			t.Fatal("expected error for unknown scan ID")
		}
		if !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected not-found error, got %v", err)
		}
	})
}
