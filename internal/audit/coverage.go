package audit

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nao1215/biblescan/internal/bible"
	"github.com/nao1215/biblescan/internal/model"
)

// CoverageAnalyzer checks which canonical books the document covers.
// Partial exports and translations with a different canon show up here,
// as does the degenerate case of a document with no books at all.
type CoverageAnalyzer struct{}

// NewCoverageAnalyzer creates a new CoverageAnalyzer.
func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{}
}

// Name returns the analyzer name.
func (a *CoverageAnalyzer) Name() string {
	return "coverage"
}

// Category returns the analyzer category.
func (a *CoverageAnalyzer) Category() string {
	return CategoryCanon
}

// Analyze compares the document's books against the canon.
func (a *CoverageAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	findings := make([]model.Finding, 0)

	if err := ctx.Err(); err != nil {
		return findings, err
	}

	// An empty document makes every coverage check fire, which buries
	// the one finding that matters. Report it alone.
	if len(data.Books) == 0 {
		findings = append(findings, model.NewFinding(
			"empty_document",
			"Empty Document",
			"The document parses as a JSON array but holds no book records.",
			"",
			"",
		))
		return findings, nil
	}

	if len(data.Books) != len(bible.Books) {
		findings = append(findings, model.NewFinding(
			"book_count",
			"Unexpected Book Count",
			fmt.Sprintf("The document holds %d books; the Protestant canon has %d.", len(data.Books), len(bible.Books)),
			strconv.Itoa(len(data.Books)),
			"",
		))
	}

	present := make(map[string]bool, len(data.Books))
	for _, book := range data.Books {
		present[book.Abbrev] = true
	}

	for _, b := range bible.Books {
		if !present[b.Abbrev] {
			findings = append(findings, model.NewFinding(
				"missing_book",
				"Missing Canonical Book",
				fmt.Sprintf("No record carries the abbreviation for %s.", b.Name),
				b.Abbrev,
				b.Name,
			))
		}
	}

	for _, mb := range bible.MultiwordBooks {
		if !present[mb.Abbrev] {
			findings = append(findings, model.NewFinding(
				"multiword_absent",
				"Multi-Word Book Absent",
				fmt.Sprintf("The reference table lists %s but the document has no matching abbreviation.", mb.Name),
				mb.Abbrev,
				mb.Name,
			))
		}
	}

	return findings, nil
}
