package model

// BookRecord represents one book element of a translation document.
// This structure holds the fields the thiagobodruk/bible JSON format
// carries for each book.
//
// Design decision: We keep the full chapter text on the record because:
// 1. Audit checks need verse counts per chapter
// 2. The document is small enough to hold in memory (a few MB)
// 3. The record hash allows change detection across scans
type BookRecord struct {
	// Abbrev is the short token identifying the book ("gn", "1sa").
	// It is the only field every record must carry.
	Abbrev string `json:"abbrev"`

	// Name is the full book name if the document carries one.
	// Translated documents carry localized names here.
	Name string `json:"name,omitempty"`

	// Chapters holds the verse text, indexed as [chapter][verse].
	// Empty for documents that ship abbreviations only.
	Chapters [][]string `json:"chapters,omitempty"`
}

// ChapterCount returns the number of chapters the record carries.
func (b *BookRecord) ChapterCount() int {
	return len(b.Chapters)
}

// VerseCount returns the number of verses in the given 1-based chapter.
// Returns 0 if the chapter is out of range.
func (b *BookRecord) VerseCount(chapter int) int {
	if chapter < 1 || chapter > len(b.Chapters) {
		return 0
	}
	return len(b.Chapters[chapter-1])
}

// TotalVerses returns the number of verses across all chapters.
func (b *BookRecord) TotalVerses() int {
	total := 0
	for _, ch := range b.Chapters {
		total += len(ch)
	}
	return total
}

// HasText returns true if the record carries any chapter content.
func (b *BookRecord) HasText() bool {
	return len(b.Chapters) > 0
}

// MultiwordMatch is one cross-reference hit between the fixed multi-word
// book table and the abbreviations extracted from a document.
type MultiwordMatch struct {
	// Abbrev is the table's expected abbreviation ("1sa").
	Abbrev string `json:"abbrev"`

	// Name is the full multi-word book name ("1 Samuel").
	Name string `json:"name"`
}
