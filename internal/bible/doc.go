// Package bible holds the canonical book data biblescan checks documents
// against: the 66-book Protestant canon with OSIS identifiers, document
// abbreviations, and KJV verse counts per chapter, plus the fixed table
// of multi-word book names used by the cross-reference report.
//
// The data is a literal constant of the program. It is not derived from
// input and does not change across runs.
package bible
