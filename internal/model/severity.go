package model

// Severity represents the impact level of a data-quality finding.
// This allows categorizing findings by how badly they affect consumers
// of a translation document.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates informational findings with no direct impact.
	// Examples: book counts other than 66, naming convention differences.
	// These are worth knowing about but need no action.
	SeverityInfo Severity = iota

	// SeverityLow indicates convention drift with limited impact.
	// Examples: abbreviations unknown to the canon, non-canonical book order.
	// Consumers that key on abbreviations still work; lookups may miss.
	SeverityLow

	// SeverityMedium indicates issues that can make consumers misbehave.
	// Examples: duplicate abbreviations, empty abbreviations, missing books.
	// Code that indexes books by abbreviation will silently drop or shadow data.
	SeverityMedium

	// SeverityHigh indicates structural damage to the document.
	// Examples: chapter counts that disagree with the versification,
	// chapters with no verses. Reference resolution breaks on these books.
	SeverityHigh

	// SeverityCritical indicates a document downstream tooling cannot use.
	// Examples: a document that parses but contains no books at all.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// FindingInfo contains metadata about a finding type including severity,
// impact description, and remediation recommendation.
type FindingInfo struct {
	Severity       Severity
	Impact         string
	Recommendation string
}

// findingInfoMapping maps finding types to their metadata.
// This centralized mapping ensures consistent assessment across the application.
//
// Design decision: We use a map rather than embedding severity in each finding type
// because:
// 1. It allows updating assessments without modifying type definitions
// 2. It provides a single source of truth for impact levels
// 3. It makes it easy to generate severity documentation
var findingInfoMapping = map[string]FindingInfo{
	// CRITICAL - Document unusable downstream
	"empty_document": {
		Severity:       SeverityCritical,
		Impact:         "The document parses but contains no book records, so every consumer sees an empty Bible.",
		Recommendation: "Check the export that produced the file; the source data or the conversion step dropped all books.",
	},

	// HIGH - Structural damage
	"chapter_count_mismatch": {
		Severity:       SeverityHigh,
		Impact:         "The book carries a different number of chapters than the versification defines, so chapter references resolve to the wrong text or to nothing.",
		Recommendation: "Re-export the book from the source and verify chapter splits against the versification.",
	},
	"empty_chapter": {
		Severity:       SeverityHigh,
		Impact:         "A chapter contains no verses, so verse references into it cannot resolve.",
		Recommendation: "Re-export the affected book; empty chapters usually indicate a truncated conversion.",
	},

	// MEDIUM - Consumers misbehave
	"duplicate_abbrev": {
		Severity:       SeverityMedium,
		Impact:         "Two or more books share an abbreviation, so indexing by abbreviation silently shadows all but one of them.",
		Recommendation: "Assign each book a unique abbreviation before publishing the document.",
	},
	"empty_abbrev": {
		Severity:       SeverityMedium,
		Impact:         "A book has an empty abbreviation and cannot be addressed by consumers that key on it.",
		Recommendation: "Fill in the abbreviation from the canonical table.",
	},
	"missing_book": {
		Severity:       SeverityMedium,
		Impact:         "A canonical book is absent from the document, so references into it cannot resolve.",
		Recommendation: "Confirm the omission is intentional for this translation; otherwise re-export with the full canon.",
	},

	// LOW - Convention drift
	"unknown_abbrev": {
		Severity:       SeverityLow,
		Impact:         "The abbreviation is not in the 66-book canon, so canonical lookups and cross-references skip this book.",
		Recommendation: "Map the abbreviation to a canonical one, or leave it if the book is deuterocanonical on purpose.",
	},
	"noncanonical_order": {
		Severity:       SeverityLow,
		Impact:         "Books appear outside canonical order, which breaks consumers that binary-search or paginate by position.",
		Recommendation: "Sort the records into canonical order before publishing.",
	},
	"verse_count_mismatch": {
		Severity:       SeverityLow,
		Impact:         "A chapter's verse count differs from the versification; editions legitimately vary, but large gaps suggest lost verses.",
		Recommendation: "Spot-check the chapter against a printed edition of the translation.",
	},

	// INFO - Worth knowing
	"book_count": {
		Severity:       SeverityInfo,
		Impact:         "The document does not contain exactly 66 books; translations with deuterocanon or partial exports differ legitimately.",
		Recommendation: "No action needed if the count matches the translation's published canon.",
	},
	"name_mismatch": {
		Severity:       SeverityInfo,
		Impact:         "The book's name differs from the canonical English name; translated names are expected for non-English documents.",
		Recommendation: "No action needed unless the document claims to be an English translation.",
	},
	"multiword_absent": {
		Severity:       SeverityInfo,
		Impact:         "A multi-word book from the reference table has no matching abbreviation in the document.",
		Recommendation: "Verify the book is genuinely absent rather than listed under a different abbreviation.",
	},
}

// GetSeverity returns the severity level for a finding type.
// Returns SeverityInfo if the finding type is not in the mapping.
func GetSeverity(findingType string) Severity {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info.Severity
	}
	return SeverityInfo
}

// GetFindingInfo returns the full finding information for a finding type.
// Returns a default FindingInfo with SeverityInfo if the type is not in the mapping.
func GetFindingInfo(findingType string) FindingInfo {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info
	}
	return FindingInfo{
		Severity:       SeverityInfo,
		Impact:         "Unknown finding type. Review manually.",
		Recommendation: "Investigate the finding and assess impact.",
	}
}
