package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestScanWorkflow drives the scan, history, and compare commands the
// way a user tracking a translation over time would: scan a document,
// scan it again after an edit, then inspect the stored history and the
// difference between the two scans.
func TestScanWorkflow(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	dbDir := filepath.Join(tmpDir, "db")
	file := filepath.Join(tmpDir, "en_test.json")

	// First revision carries two single-word books.
	if err := os.WriteFile(file, []byte(`[{"abbrev":"gn"},{"abbrev":"ex"}]`), 0600); err != nil {
		t.Fatal(err)
	}

	out1 := filepath.Join(tmpDir, "report1.txt")
	root := NewRootCmd()
	root.SetArgs([]string{"scan", "--db", dbDir, "-o", out1, file})
	if err := root.Execute(); err != nil {
		t.Fatalf("first scan failed: %v", err)
	}

	content, err := os.ReadFile(out1)
	if err != nil {
		t.Fatal(err)
	}
	want1 := `All book abbreviations found in JSON:
'gn': 'gn'
'ex': 'ex'

Actual abbreviations for multi-word books:
`
	if string(content) != want1 {
		t.Errorf("unexpected first report:\n got: %q\nwant: %q", content, want1)
	}

	// Second revision adds a multi-word book.
	if err := os.WriteFile(file, []byte(`[{"abbrev":"gn"},{"abbrev":"ex"},{"abbrev":"1sa"}]`), 0600); err != nil {
		t.Fatal(err)
	}

	out2 := filepath.Join(tmpDir, "report2.txt")
	root = NewRootCmd()
	root.SetArgs([]string{"scan", "--db", dbDir, "-o", out2, file})
	if err := root.Execute(); err != nil {
		t.Fatalf("second scan failed: %v", err)
	}

	content, err = os.ReadFile(out2)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "'1sa': '1 Samuel'") {
		t.Errorf("expected multi-word match in second report, got %q", content)
	}

	// Both scans are in the history.
	var buf bytes.Buffer
	root = NewRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"history", "--db", dbDir, file})
	if err := root.Execute(); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(buf.String(), "(2 scans") {
		t.Errorf("expected 2 scans in history, got %q", buf.String())
	}

	// The latest two scans differ by one added book.
	diffPath := filepath.Join(tmpDir, "diff.txt")
	root = NewRootCmd()
	root.SetArgs([]string{"compare", "--db", dbDir, "--latest", file, "-o", diffPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	diff, err := os.ReadFile(diffPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"[+] 1sa",
		"Document content changed between the scans.",
	} {
		if !strings.Contains(string(diff), want) {
			t.Errorf("expected diff to contain %q, got:\n%s", want, diff)
		}
	}

	// The same comparison is available as structured output.
	jsonPath := filepath.Join(tmpDir, "diff.json")
	root = NewRootCmd()
	root.SetArgs([]string{"compare", "--db", dbDir, "--latest", file, "-f", "json", "-o", jsonPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("json compare failed: %v", err)
	}

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		NewBookCount   int      `json:"new_book_count"`
		AddedAbbrevs   []string `json:"added_abbrevs"`
		ContentChanged bool     `json:"content_changed"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("expected valid JSON diff, got %v", err)
	}
	if decoded.NewBookCount != 3 {
		t.Errorf("expected new book count 3, got %d", decoded.NewBookCount)
	}
	if len(decoded.AddedAbbrevs) != 1 || decoded.AddedAbbrevs[0] != "1sa" {
		t.Errorf("expected added abbrevs [1sa], got %v", decoded.AddedAbbrevs)
	}
	if !decoded.ContentChanged {
		t.Error("expected content change to be detected")
	}
}
