package database

import (
	"context"
	"fmt"
	"time"

	"github.com/nao1215/biblescan/internal/model"
)

// ScanDiff describes how two stored scans differ.
// The old scan is the baseline; counts and deltas read as old to new.
type ScanDiff struct {
	// OldID and NewID are the database IDs of the compared scans.
	OldID int64 `json:"old_id"`
	NewID int64 `json:"new_id"`

	// OldFile and NewFile are the document paths. They usually match,
	// but comparing scans of two different translations is allowed.
	OldFile string `json:"old_file"`
	NewFile string `json:"new_file"`

	// OldDate and NewDate are the scan timestamps.
	OldDate time.Time `json:"old_date"`
	NewDate time.Time `json:"new_date"`

	// OldBookCount and NewBookCount are the record counts on each side.
	OldBookCount int `json:"old_book_count"`
	NewBookCount int `json:"new_book_count"`

	// OldMultiwordCount and NewMultiwordCount are the multi-word match
	// counts on each side.
	OldMultiwordCount int `json:"old_multiword_count"`
	NewMultiwordCount int `json:"new_multiword_count"`

	// AddedAbbrevs lists abbreviations present only in the new scan,
	// in the new document's order.
	AddedAbbrevs []string `json:"added_abbrevs,omitempty"`

	// RemovedAbbrevs lists abbreviations present only in the old scan,
	// in the old document's order.
	RemovedAbbrevs []string `json:"removed_abbrevs,omitempty"`

	// ContentChanged is true when the content hashes differ. Hashes are
	// only compared when both scans recorded one.
	ContentChanged bool `json:"content_changed"`

	// FindingDeltas maps severity names (critical, high, medium, low,
	// info) to the change in finding count. Severities with no change
	// are omitted.
	FindingDeltas map[string]int `json:"finding_deltas,omitempty"`
}

// BookCountDelta returns the change in record count from old to new.
func (d *ScanDiff) BookCountDelta() int {
	return d.NewBookCount - d.OldBookCount
}

// MultiwordDelta returns the change in multi-word match count from old to new.
func (d *ScanDiff) MultiwordDelta() int {
	return d.NewMultiwordCount - d.OldMultiwordCount
}

// HasChanges reports whether the two scans differ in any tracked way.
func (d *ScanDiff) HasChanges() bool {
	return len(d.AddedAbbrevs) > 0 ||
		len(d.RemovedAbbrevs) > 0 ||
		d.BookCountDelta() != 0 ||
		d.MultiwordDelta() != 0 ||
		d.ContentChanged ||
		len(d.FindingDeltas) > 0
}

// CompareScans loads two stored scans by ID and computes their diff.
// The first ID is the baseline.
func (sdb *ScanDB) CompareScans(ctx context.Context, oldID, newID int64) (*ScanDiff, error) {
	oldReport, err := sdb.GetScanReportByID(ctx, oldID)
	if err != nil {
		return nil, err
	}
	if oldReport == nil {
		return nil, fmt.Errorf("scan %d not found", oldID)
	}

	newReport, err := sdb.GetScanReportByID(ctx, newID)
	if err != nil {
		return nil, err
	}
	if newReport == nil {
		return nil, fmt.Errorf("scan %d not found", newID)
	}

	diff := DiffReports(oldReport, newReport)
	diff.OldID = oldID
	diff.NewID = newID
	return diff, nil
}

// DiffReports computes the difference between two scan reports.
// The first report is the baseline.
//
// Abbreviation changes are computed on distinct abbreviations: duplicate
// occurrences of the same abbreviation do not show up in the diff.
func DiffReports(oldReport, newReport *model.ScanReport) *ScanDiff {
	diff := &ScanDiff{
		OldFile:           oldReport.File,
		NewFile:           newReport.File,
		OldDate:           oldReport.DateScanned,
		NewDate:           newReport.DateScanned,
		OldBookCount:      oldReport.BookCount,
		NewBookCount:      newReport.BookCount,
		OldMultiwordCount: len(oldReport.MultiwordMatches),
		NewMultiwordCount: len(newReport.MultiwordMatches),
	}

	diff.AddedAbbrevs = distinctOnly(newReport.Abbreviations, oldReport.Abbreviations)
	diff.RemovedAbbrevs = distinctOnly(oldReport.Abbreviations, newReport.Abbreviations)

	if oldReport.ContentHash != "" && newReport.ContentHash != "" {
		diff.ContentChanged = oldReport.ContentHash != newReport.ContentHash
	}

	deltas := map[string]int{
		"critical": severityCount(newReport, model.SeverityCritical) - severityCount(oldReport, model.SeverityCritical),
		"high":     severityCount(newReport, model.SeverityHigh) - severityCount(oldReport, model.SeverityHigh),
		"medium":   severityCount(newReport, model.SeverityMedium) - severityCount(oldReport, model.SeverityMedium),
		"low":      severityCount(newReport, model.SeverityLow) - severityCount(oldReport, model.SeverityLow),
		"info":     severityCount(newReport, model.SeverityInfo) - severityCount(oldReport, model.SeverityInfo),
	}
	for severity, delta := range deltas {
		if delta == 0 {
			delete(deltas, severity)
		}
	}
	if len(deltas) > 0 {
		diff.FindingDeltas = deltas
	}

	return diff
}

// distinctOnly returns the distinct values of a that do not occur in b,
// preserving a's order of first appearance.
func distinctOnly(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}

	seen := make(map[string]bool, len(a))
	var only []string
	for _, v := range a {
		if seen[v] || inB[v] {
			continue
		}
		seen[v] = true
		only = append(only, v)
	}
	return only
}

// severityCount returns the number of findings at the given severity.
func severityCount(report *model.ScanReport, severity model.Severity) int {
	if report.SimpleReport == nil {
		return 0
	}
	switch severity {
	case model.SeverityCritical:
		return report.SimpleReport.CriticalCount
	case model.SeverityHigh:
		return report.SimpleReport.HighCount
	case model.SeverityMedium:
		return report.SimpleReport.MediumCount
	case model.SeverityLow:
		return report.SimpleReport.LowCount
	case model.SeverityInfo:
		return report.SimpleReport.InfoCount
	default:
		return 0
	}
}
