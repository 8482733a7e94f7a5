package audit

import (
	"context"
	"fmt"

	"github.com/nao1215/biblescan/internal/bible"
	"github.com/nao1215/biblescan/internal/model"
)

// AbbrevAnalyzer checks record abbreviations for integrity problems.
// Abbreviations are the primary key of a translation document, so an
// empty or duplicated value breaks every consumer that indexes by it.
//
// Design decision: Empty, duplicate, and unknown abbreviations live in
// one analyzer rather than three because:
//  1. All three walk the same record sequence
//  2. The checks share the seen-abbreviation bookkeeping
//  3. An empty abbreviation should not also count as unknown
type AbbrevAnalyzer struct{}

// NewAbbrevAnalyzer creates a new AbbrevAnalyzer.
func NewAbbrevAnalyzer() *AbbrevAnalyzer {
	return &AbbrevAnalyzer{}
}

// Name returns the analyzer name.
func (a *AbbrevAnalyzer) Name() string {
	return "abbrev"
}

// Category returns the analyzer category.
func (a *AbbrevAnalyzer) Category() string {
	return CategoryIntegrity
}

// Analyze checks every record's abbreviation.
func (a *AbbrevAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	findings := make([]model.Finding, 0)
	seen := make(map[string]int) // abbrev -> first record index

	for i, book := range data.Books {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		location := fmt.Sprintf("books[%d]", i)

		if book.Abbrev == "" {
			findings = append(findings, model.NewFinding(
				"empty_abbrev",
				"Empty Abbreviation",
				"The record carries an empty abbreviation value.",
				"",
				location,
			))
			continue
		}

		if first, exists := seen[book.Abbrev]; exists {
			findings = append(findings, model.NewFinding(
				"duplicate_abbrev",
				"Duplicate Abbreviation",
				fmt.Sprintf("The abbreviation already appears at books[%d].", first),
				book.Abbrev,
				location,
			))
		} else {
			seen[book.Abbrev] = i

			if _, ok := bible.LookupAbbrev(book.Abbrev); !ok {
				findings = append(findings, model.NewFinding(
					"unknown_abbrev",
					"Unknown Abbreviation",
					"The abbreviation does not match any book in the 66-book canon.",
					book.Abbrev,
					location,
				))
			}
		}
	}

	return findings, nil
}
