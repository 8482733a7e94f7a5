package model

import "time"

// SimpleReport is a summarized, human-readable report.
// It extracts the key findings from the full scan report for quick review.
//
// Design decision: We create a separate simplified report rather than
// just printing parts of ScanReport because:
// 1. It provides a consistent, curated view of the most important findings
// 2. It can be serialized to JSON for tools that want structured but simple output
// 3. It separates presentation concerns from data collection
type SimpleReport struct {
	// File is the scanned document path.
	File string `json:"file"`

	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// === Severity Summary ===

	// CriticalCount is the number of critical findings.
	CriticalCount int `json:"critical_count"`

	// HighCount is the number of high severity findings.
	HighCount int `json:"high_count"`

	// MediumCount is the number of medium severity findings.
	MediumCount int `json:"medium_count"`

	// LowCount is the number of low severity findings.
	LowCount int `json:"low_count"`

	// InfoCount is the number of informational findings.
	InfoCount int `json:"info_count"`

	// === Document Statistics ===

	// BookCount is the number of book records in the document.
	BookCount int `json:"book_count"`

	// AbbrevCount is the number of extracted abbreviations.
	// Equal to BookCount unless records were dropped, which never
	// happens on a successful scan.
	AbbrevCount int `json:"abbrev_count"`

	// MultiwordCount is the number of multi-word table pairs matched.
	MultiwordCount int `json:"multiword_count"`

	// === Findings ===

	// Findings contains all categorized findings.
	Findings []Finding `json:"findings,omitempty"`

	// Error contains any error message if the scan failed.
	Error string `json:"error,omitempty"`
}

// Finding represents a single finding in the simple report.
type Finding struct {
	// Type is the finding type identifier.
	// This maps to the findingInfoMapping in severity.go.
	Type string `json:"type"`

	// Severity is the impact level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Description provides more detail about the finding.
	Description string `json:"description,omitempty"`

	// Impact explains the consequences of this finding.
	// This helps users understand why this finding matters.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to address this finding.
	Recommendation string `json:"recommendation,omitempty"`

	// Value is the specific value found (abbreviation, book name, count).
	Value string `json:"value,omitempty"`

	// Location is where the finding was discovered, as a record
	// reference like "books[12]" or a book abbreviation.
	Location string `json:"location,omitempty"`
}

// NewFinding builds a Finding of the given type, filling severity, impact,
// and recommendation from the central mapping.
func NewFinding(findingType, title, description, value, location string) Finding {
	info := GetFindingInfo(findingType)
	return Finding{
		Type:           findingType,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Title:          title,
		Description:    description,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
		Value:          value,
		Location:       location,
	}
}

// NewSimpleReport creates a new SimpleReport from a ScanReport.
// This extracts document statistics and summarizes findings.
func NewSimpleReport(report *ScanReport) *SimpleReport {
	simple := &SimpleReport{
		File:           report.File,
		DateScanned:    report.DateScanned,
		BookCount:      report.BookCount,
		AbbrevCount:    len(report.Abbreviations),
		MultiwordCount: len(report.MultiwordMatches),
	}

	if report.Error != nil {
		simple.Error = report.Error.Error()
	}

	// Carry over findings accumulated during the scan.
	if report.SimpleReport != nil {
		simple.Findings = append(simple.Findings, report.SimpleReport.Findings...)
	}

	// Count findings by severity
	simple.countBySeverity()

	return simple
}

// countBySeverity counts findings by severity level.
func (s *SimpleReport) countBySeverity() {
	s.CriticalCount, s.HighCount, s.MediumCount, s.LowCount, s.InfoCount = 0, 0, 0, 0, 0
	for _, f := range s.Findings {
		switch f.Severity {
		case SeverityCritical:
			s.CriticalCount++
		case SeverityHigh:
			s.HighCount++
		case SeverityMedium:
			s.MediumCount++
		case SeverityLow:
			s.LowCount++
		case SeverityInfo:
			s.InfoCount++
		}
	}
}

// TotalFindings returns the total number of findings.
func (s *SimpleReport) TotalFindings() int {
	return len(s.Findings)
}

// HasFindings returns true if there are any findings.
func (s *SimpleReport) HasFindings() bool {
	return len(s.Findings) > 0
}

// GetFindingsBySeverity returns findings filtered by severity.
func (s *SimpleReport) GetFindingsBySeverity(severity Severity) []Finding {
	var result []Finding
	for _, f := range s.Findings {
		if f.Severity == severity {
			result = append(result, f)
		}
	}
	return result
}
