package audit

import (
	"context"
	"fmt"

	"github.com/nao1215/biblescan/internal/bible"
	"github.com/nao1215/biblescan/internal/model"
)

// OrderAnalyzer checks that canonical books appear in canonical order.
// Consumers that paginate or binary-search by book position rely on
// documents keeping the traditional sequence.
type OrderAnalyzer struct{}

// NewOrderAnalyzer creates a new OrderAnalyzer.
func NewOrderAnalyzer() *OrderAnalyzer {
	return &OrderAnalyzer{}
}

// Name returns the analyzer name.
func (a *OrderAnalyzer) Name() string {
	return "order"
}

// Category returns the analyzer category.
func (a *OrderAnalyzer) Category() string {
	return CategoryCanon
}

// Analyze flags books that appear before a book they should follow.
func (a *OrderAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	findings := make([]model.Finding, 0)

	lastIdx := -1
	lastAbbrev := ""
	for i, book := range data.Books {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		// Unknown abbreviations have no canonical position and are
		// reported by the abbrev analyzer.
		idx := bible.BookIndex(book.Abbrev)
		if idx < 0 {
			continue
		}

		if idx < lastIdx {
			findings = append(findings, model.NewFinding(
				"noncanonical_order",
				"Book Out of Canonical Order",
				fmt.Sprintf("%q appears after %q but precedes it in the canon.", book.Abbrev, lastAbbrev),
				book.Abbrev,
				fmt.Sprintf("books[%d]", i),
			))
		}

		// The current book becomes the reference point either way, so
		// one displaced book yields one finding instead of flagging
		// everything that follows it.
		lastIdx = idx
		lastAbbrev = book.Abbrev
	}

	return findings, nil
}
