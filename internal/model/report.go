package model

import (
	"time"
)

// ScanReport is the main scan result structure.
// It contains everything collected while scanning one translation document.
//
// Design decision: We use a single large struct rather than many small ones
// to simplify serialization and database storage. The SimpleReport sub-struct
// groups findings for easier access.
type ScanReport struct {
	// === Basic Information ===

	// File is the path of the scanned translation document.
	File string `json:"file"`

	// ContentHash is the SHA-256 hash of the raw file content.
	// Used for change detection between scans of the same file.
	ContentHash string `json:"content_hash,omitempty"`

	// DateScanned is the timestamp when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// === Extracted Data ===

	// Books contains the decoded book records in document order.
	Books []BookRecord `json:"-"` // Excluded from JSON due to size

	// Abbreviations is the ordered abbreviation sequence taken from the
	// document, duplicates preserved. This is the first report's content.
	Abbreviations []string `json:"abbreviations"`

	// BookCount is the number of records in the document.
	BookCount int `json:"book_count"`

	// HasChapters is true if any record carries chapter text.
	// Chapter-level audit checks only run when this is set.
	HasChapters bool `json:"has_chapters"`

	// === Cross-Reference Data ===

	// MultiwordMatches contains the multi-word table pairs whose
	// abbreviation occurs in the document, in the table's declared order.
	// This is the second report's content.
	MultiwordMatches []MultiwordMatch `json:"multiword_matches,omitempty"`

	// === Sub-Reports ===

	// SimpleReport contains the summarized findings for human-readable output.
	SimpleReport *SimpleReport `json:"simple_report,omitempty"`

	// === Scan State ===

	// PerformedSteps lists the pipeline steps that were actually executed.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error contains any error that occurred during scanning.
	// Only set if the scan failed or partially failed.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewScanReport creates a new report for the given document path.
func NewScanReport(file string) *ScanReport {
	return &ScanReport{
		File:        file,
		DateScanned: time.Now(),
	}
}

// SetBooks stores the decoded records and the values derived from them:
// the ordered abbreviation sequence, the record count, and whether any
// record carries chapter text.
func (r *ScanReport) SetBooks(books []BookRecord) {
	r.Books = books
	r.BookCount = len(books)
	r.Abbreviations = make([]string, 0, len(books))
	r.HasChapters = false
	for _, b := range books {
		r.Abbreviations = append(r.Abbreviations, b.Abbrev)
		if b.HasText() {
			r.HasChapters = true
		}
	}
}

// HasAbbrev reports whether the abbreviation occurs at least once in the
// extracted sequence. Cross-referencing is a membership test, so duplicate
// occurrences in the document make no difference here.
func (r *ScanReport) HasAbbrev(abbrev string) bool {
	for _, a := range r.Abbreviations {
		if a == abbrev {
			return true
		}
	}
	return false
}

// AddFinding adds a finding to the simple report.
// If the simple report doesn't exist, it initializes one.
//
// Design decision: We store findings in SimpleReport rather than
// a separate findings slice because:
// 1. SimpleReport already has finding aggregation logic
// 2. Avoids duplication of findings data
// 3. Keeps the main report focused on raw data
func (r *ScanReport) AddFinding(finding Finding) {
	if r.SimpleReport == nil {
		r.SimpleReport = &SimpleReport{
			File:        r.File,
			DateScanned: r.DateScanned,
			Findings:    make([]Finding, 0),
		}
	}

	// Keep counts in sync when SimpleReport is first created via AddFinding.
	if r.SimpleReport.BookCount == 0 {
		r.SimpleReport.BookCount = r.BookCount
		r.SimpleReport.AbbrevCount = len(r.Abbreviations)
		r.SimpleReport.MultiwordCount = len(r.MultiwordMatches)
	}

	// Avoid duplicates based on type and value
	for _, f := range r.SimpleReport.Findings {
		if f.Type == finding.Type && f.Value == finding.Value && f.Location == finding.Location {
			return
		}
	}

	r.SimpleReport.Findings = append(r.SimpleReport.Findings, finding)

	// Update severity counts
	switch finding.Severity {
	case SeverityCritical:
		r.SimpleReport.CriticalCount++
	case SeverityHigh:
		r.SimpleReport.HighCount++
	case SeverityMedium:
		r.SimpleReport.MediumCount++
	case SeverityLow:
		r.SimpleReport.LowCount++
	case SeverityInfo:
		r.SimpleReport.InfoCount++
	}
}
