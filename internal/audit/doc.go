// Package audit provides data-quality checks for translation documents.
//
// # Purpose
//
// This package analyzes decoded book records to identify structural and
// convention problems that make a document harder to consume: duplicate
// abbreviations, books missing from the canon, records out of canonical
// order, and chapter structures that disagree with the versification.
//
// Audit findings never change the listings themselves. A document with
// findings still renders exactly the same abbreviation listing and
// cross-reference output; findings surface after the listings in
// verbose text output and in the json and markdown report formats.
//
// # Design Philosophy
//
// The audit package follows a modular analyzer pattern where each type
// of check is implemented as a separate CheckAnalyzer. This design was
// chosen because:
//  1. Each check type has unique logic and data requirements
//  2. Enables selective auditing based on configuration
//  3. Makes it easy to add new checks without modifying existing code
//  4. Simplifies testing of individual analysis components
//
// # Analyzer Categories
//
// Analyzers are grouped into categories based on what they detect:
//
// ## Integrity
//   - Duplicate abbreviations that shadow records
//   - Empty abbreviation values
//
// ## Canon Conformance
//   - Abbreviations unknown to the 66-book canon
//   - Canonical books absent from the document
//   - Records outside canonical order
//   - Book counts other than 66
//
// ## Text Structure
//   - Chapter counts that disagree with the versification
//   - Chapters without verses
//   - Verse counts that disagree with the versification
//   - Book names that differ from the canonical English names
//
// # Usage
//
//	analyzer := audit.NewAnalyzer()
//	findings, err := analyzer.Analyze(ctx, &audit.AnalysisData{Books: books})
//
// # Severity Levels
//
// Findings are assigned severity levels based on consumer impact:
//   - Critical: Document unusable (no books at all)
//   - High: Structural damage (chapter counts off, empty chapters)
//   - Medium: Consumers misbehave (duplicates, missing books)
//   - Low: Convention drift (unknown abbreviations, ordering)
//   - Info: Worth knowing (book counts, translated names)
package audit
