package audit

import (
	"context"

	"github.com/nao1215/biblescan/internal/model"
)

// Analyzer category constants.
const (
	// CategoryIntegrity is used by analyzers that find record-level damage.
	CategoryIntegrity = "integrity"
	// CategoryCanon is used by analyzers that check canon conformance.
	CategoryCanon = "canon"
	// CategoryText is used by analyzers that check chapter and verse structure.
	CategoryText = "text"
)

// Analyzer coordinates data-quality checks across multiple analyzers.
// It aggregates findings from different analysis types into one list.
//
// Design decision: We use a coordinator pattern rather than running
// analyzers independently because:
//  1. Unified severity assessment across all findings
//  2. Deduplication of similar findings
//  3. Consistent context and cancellation handling
type Analyzer struct {
	// analyzers is the list of registered analyzers to run.
	analyzers []CheckAnalyzer

	// options configures analyzer behavior.
	options Options
}

// Options configures the analyzer behavior.
type Options struct {
	// EnableChapterChecks enables chapter and verse structure checks.
	// These only apply to documents that carry chapter text and can be
	// slow for full-text documents.
	EnableChapterChecks bool

	// EnableNameChecks enables book name comparison against the
	// canonical English names. Non-English translations legitimately
	// differ, so this can be turned off to quiet the output.
	EnableNameChecks bool
}

// DefaultOptions returns sensible default analyzer options.
func DefaultOptions() Options {
	return Options{
		EnableChapterChecks: true,
		EnableNameChecks:    true,
	}
}

// CheckAnalyzer defines the interface for individual analyzers.
// Each analyzer focuses on a specific type of data-quality check.
//
// Design decision: We use an interface rather than concrete types because:
//  1. Allows for easy extension with new analyzers
//  2. Enables testing with mock analyzers
//  3. Supports different analyzer implementations for the same check type
type CheckAnalyzer interface {
	// Name returns the analyzer's name for logging and reporting.
	Name() string

	// Category returns the analyzer's category (e.g., "integrity", "canon").
	Category() string

	// Analyze runs the analysis on the provided data.
	// It returns findings discovered during analysis.
	Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error)
}

// AnalysisData contains all data available for analysis.
//
// Design decision: We pass data in a single struct rather than multiple
// parameters because:
//  1. Not all analyzers need all data
//  2. Adding new data doesn't change analyzer signatures
//  3. Easier to mock in tests
type AnalysisData struct {
	// Books contains the decoded records in document order.
	Books []model.BookRecord

	// Report is the current scan report, when one exists.
	// Analyzers work from Books and never require this to be set.
	Report *model.ScanReport
}

// NewAnalyzer creates a new Analyzer with all built-in analyzers registered.
func NewAnalyzer(opts ...func(*Options)) *Analyzer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	a := &Analyzer{
		options:   options,
		analyzers: make([]CheckAnalyzer, 0),
	}

	// Integrity analyzers
	a.Register(NewAbbrevAnalyzer())

	// Canon conformance analyzers
	a.Register(NewCoverageAnalyzer())
	a.Register(NewOrderAnalyzer())

	// Text structure analyzers
	if options.EnableChapterChecks {
		a.Register(NewChapterAnalyzer())
	}
	if options.EnableNameChecks {
		a.Register(NewNameAnalyzer())
	}

	return a
}

// Register adds an analyzer to the list.
func (a *Analyzer) Register(analyzer CheckAnalyzer) {
	a.analyzers = append(a.analyzers, analyzer)
}

// Analyze runs all registered analyzers and aggregates findings.
func (a *Analyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	var allFindings []model.Finding

	for _, analyzer := range a.analyzers {
		select {
		case <-ctx.Done():
			return allFindings, ctx.Err()
		default:
		}

		findings, err := analyzer.Analyze(ctx, data)
		if err != nil {
			// Skip failed analyzers and continue with the rest.
			// We want to collect as many findings as possible.
			continue
		}

		allFindings = append(allFindings, findings...)
	}

	// Deduplicate findings
	allFindings = deduplicateFindings(allFindings)

	return allFindings, nil
}

// deduplicateFindings removes duplicate findings based on title and value.
//
// Design decision: We deduplicate by title+value rather than just value because:
//  1. Same value might have different meanings in different contexts
//  2. Multiple analyzers might find the same thing
//  3. We want to keep the most severe instance of each finding
func deduplicateFindings(findings []model.Finding) []model.Finding {
	seen := make(map[string]int) // key -> index in result
	result := make([]model.Finding, 0)

	for _, f := range findings {
		key := f.Title + "|" + f.Value
		if idx, exists := seen[key]; exists {
			// Keep the more severe finding
			if f.Severity > result[idx].Severity {
				result[idx] = f
			}
		} else {
			seen[key] = len(result)
			result = append(result, f)
		}
	}

	return result
}
