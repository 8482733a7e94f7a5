package audit

import (
	"context"
	"fmt"

	"github.com/nao1215/biblescan/internal/bible"
	"github.com/nao1215/biblescan/internal/model"
)

// ChapterAnalyzer checks chapter and verse structure against the
// versification. It only inspects records that actually carry chapter
// text; abbreviation-only documents produce no findings here.
//
// Design decision: Verse count differences rate lower than chapter
// count differences because:
//  1. Editions legitimately merge and split verses
//  2. A missing chapter breaks references, a short chapter truncates one
//  3. Flagging every verse variance would drown real damage
type ChapterAnalyzer struct{}

// NewChapterAnalyzer creates a new ChapterAnalyzer.
func NewChapterAnalyzer() *ChapterAnalyzer {
	return &ChapterAnalyzer{}
}

// Name returns the analyzer name.
func (a *ChapterAnalyzer) Name() string {
	return "chapters"
}

// Category returns the analyzer category.
func (a *ChapterAnalyzer) Category() string {
	return CategoryText
}

// Analyze compares each record's chapter structure with the versification.
func (a *ChapterAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	findings := make([]model.Finding, 0)

	for i, book := range data.Books {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		if !book.HasText() {
			continue
		}

		canonical, ok := bible.LookupAbbrev(book.Abbrev)
		if !ok {
			continue
		}

		location := fmt.Sprintf("books[%d]", i)

		if got, want := book.ChapterCount(), len(canonical.ChapterVerses); got != want {
			findings = append(findings, model.NewFinding(
				"chapter_count_mismatch",
				"Chapter Count Mismatch",
				fmt.Sprintf("%s carries %d chapters; the versification defines %d.", canonical.Name, got, want),
				fmt.Sprintf("%s: %d chapters, expected %d", book.Abbrev, got, want),
				location,
			))
		}

		for c := 1; c <= book.ChapterCount(); c++ {
			got := book.VerseCount(c)
			if got == 0 {
				findings = append(findings, model.NewFinding(
					"empty_chapter",
					"Empty Chapter",
					fmt.Sprintf("%s chapter %d contains no verses.", canonical.Name, c),
					fmt.Sprintf("%s %d", book.Abbrev, c),
					location,
				))
				continue
			}

			if want := bible.VerseCount(book.Abbrev, c); want > 0 && got != want {
				findings = append(findings, model.NewFinding(
					"verse_count_mismatch",
					"Verse Count Mismatch",
					fmt.Sprintf("%s chapter %d holds %d verses; the versification defines %d.", canonical.Name, c, got, want),
					fmt.Sprintf("%s %d: %d verses, expected %d", book.Abbrev, c, got, want),
					location,
				))
			}
		}
	}

	return findings, nil
}
