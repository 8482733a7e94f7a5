package audit

import (
	"context"
	"fmt"

	"github.com/nao1215/biblescan/internal/bible"
	"github.com/nao1215/biblescan/internal/model"
)

// NameAnalyzer compares record names against the canonical English
// names. Non-English translations differ by definition, so every
// finding here is informational.
type NameAnalyzer struct{}

// NewNameAnalyzer creates a new NameAnalyzer.
func NewNameAnalyzer() *NameAnalyzer {
	return &NameAnalyzer{}
}

// Name returns the analyzer name.
func (a *NameAnalyzer) Name() string {
	return "names"
}

// Category returns the analyzer category.
func (a *NameAnalyzer) Category() string {
	return CategoryText
}

// Analyze flags record names that differ from the canonical names.
func (a *NameAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	findings := make([]model.Finding, 0)

	for i, book := range data.Books {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		if book.Name == "" {
			continue
		}

		canonical, ok := bible.LookupAbbrev(book.Abbrev)
		if !ok {
			continue
		}

		if book.Name != canonical.Name {
			findings = append(findings, model.NewFinding(
				"name_mismatch",
				"Book Name Differs From Canon",
				fmt.Sprintf("The record names the book %q; the canonical English name is %q.", book.Name, canonical.Name),
				fmt.Sprintf("%s: %s", book.Abbrev, book.Name),
				fmt.Sprintf("books[%d]", i),
			))
		}
	}

	return findings, nil
}
