package bible

// Book describes one book of the Protestant canon.
type Book struct {
	// Name is the canonical English name ("1 Samuel").
	Name string

	// OSIS is the OSIS identifier used by interchange formats ("1Sam").
	OSIS string

	// Abbrev is the lowercase abbreviation translation documents use
	// ("1sa"). The numbered books follow the multi-word reference table;
	// the rest follow the same truncation convention.
	Abbrev string

	// Order is the 1-based canonical position, assigned at init from
	// the declaration order.
	Order int

	// ChapterVerses holds the KJV verse count for each chapter.
	// len(ChapterVerses) is the canonical chapter count.
	ChapterVerses []int
}

// otBookCount is the number of Old Testament books. Books at index
// otBookCount and beyond belong to the New Testament.
const otBookCount = 39

// Books is the 66-book Protestant canon in canonical order.
var Books = []Book{
	// Old Testament
	{Name: "Genesis", OSIS: "Gen", Abbrev: "gn", ChapterVerses: []int{31, 25, 24, 26, 32, 22, 24, 22, 29, 32, 32, 20, 18, 24, 21, 16, 27, 33, 38, 18, 34, 24, 20, 67, 34, 35, 46, 22, 35, 43, 55, 32, 20, 31, 29, 43, 36, 30, 23, 23, 57, 38, 34, 34, 28, 34, 31, 22, 33, 26}},
	{Name: "Exodus", OSIS: "Exod", Abbrev: "ex", ChapterVerses: []int{22, 25, 22, 31, 23, 30, 25, 32, 35, 29, 10, 51, 22, 31, 27, 36, 16, 27, 25, 26, 36, 31, 33, 18, 40, 37, 21, 43, 46, 38, 18, 35, 23, 35, 35, 38, 29, 31, 43, 38}},
	{Name: "Leviticus", OSIS: "Lev", Abbrev: "lv", ChapterVerses: []int{17, 16, 17, 35, 19, 30, 38, 36, 24, 20, 47, 8, 59, 57, 33, 34, 16, 30, 37, 27, 24, 33, 44, 23, 55, 46, 34}},
	{Name: "Numbers", OSIS: "Num", Abbrev: "nm", ChapterVerses: []int{54, 34, 51, 49, 31, 27, 89, 26, 23, 36, 35, 16, 33, 45, 41, 50, 13, 32, 22, 29, 35, 41, 30, 25, 18, 65, 23, 31, 40, 16, 54, 42, 56, 29, 34, 13}},
	{Name: "Deuteronomy", OSIS: "Deut", Abbrev: "dt", ChapterVerses: []int{46, 37, 29, 49, 33, 25, 26, 20, 29, 22, 32, 32, 18, 29, 23, 22, 20, 22, 21, 20, 23, 30, 25, 22, 19, 19, 26, 68, 29, 20, 30, 52, 29, 12}},
	{Name: "Joshua", OSIS: "Josh", Abbrev: "js", ChapterVerses: []int{18, 24, 17, 24, 15, 27, 26, 35, 27, 43, 23, 24, 33, 15, 63, 10, 18, 28, 51, 9, 45, 34, 16, 33}},
	{Name: "Judges", OSIS: "Judg", Abbrev: "jg", ChapterVerses: []int{36, 23, 31, 24, 31, 40, 25, 35, 57, 18, 40, 15, 25, 20, 20, 31, 13, 31, 30, 48, 25}},
	{Name: "Ruth", OSIS: "Ruth", Abbrev: "rt", ChapterVerses: []int{22, 23, 18, 22}},
	{Name: "1 Samuel", OSIS: "1Sam", Abbrev: "1sa", ChapterVerses: []int{28, 36, 21, 22, 12, 21, 17, 22, 27, 27, 15, 25, 23, 52, 35, 23, 58, 30, 24, 42, 15, 23, 29, 22, 44, 25, 12, 25, 11, 31, 13}},
	{Name: "2 Samuel", OSIS: "2Sam", Abbrev: "2sa", ChapterVerses: []int{27, 32, 39, 12, 25, 23, 29, 18, 13, 19, 27, 31, 39, 33, 37, 23, 29, 33, 43, 26, 22, 51, 39, 25}},
	{Name: "1 Kings", OSIS: "1Kgs", Abbrev: "1ki", ChapterVerses: []int{53, 46, 28, 34, 18, 38, 51, 66, 28, 29, 43, 33, 34, 31, 34, 34, 24, 46, 21, 43, 29, 53}},
	{Name: "2 Kings", OSIS: "2Kgs", Abbrev: "2ki", ChapterVerses: []int{18, 25, 27, 44, 27, 33, 20, 29, 37, 36, 21, 21, 25, 29, 38, 20, 41, 37, 37, 21, 26, 20, 37, 20, 30}},
	{Name: "1 Chronicles", OSIS: "1Chr", Abbrev: "1ch", ChapterVerses: []int{54, 55, 24, 43, 26, 81, 40, 40, 44, 14, 47, 40, 14, 17, 29, 43, 27, 17, 19, 8, 30, 19, 32, 31, 31, 32, 34, 21, 30}},
	{Name: "2 Chronicles", OSIS: "2Chr", Abbrev: "2ch", ChapterVerses: []int{17, 18, 17, 22, 14, 42, 22, 18, 31, 19, 23, 16, 22, 15, 19, 14, 19, 34, 11, 37, 20, 12, 21, 27, 28, 23, 9, 27, 36, 27, 21, 33, 25, 33, 27, 23}},
	{Name: "Ezra", OSIS: "Ezra", Abbrev: "ezr", ChapterVerses: []int{11, 70, 13, 24, 17, 22, 28, 36, 15, 44}},
	{Name: "Nehemiah", OSIS: "Neh", Abbrev: "ne", ChapterVerses: []int{11, 20, 32, 23, 19, 19, 73, 18, 38, 39, 36, 47, 31}},
	{Name: "Esther", OSIS: "Esth", Abbrev: "es", ChapterVerses: []int{22, 23, 15, 17, 14, 14, 10, 17, 32, 3}},
	{Name: "Job", OSIS: "Job", Abbrev: "job", ChapterVerses: []int{22, 13, 26, 21, 27, 30, 21, 22, 35, 22, 20, 25, 28, 22, 35, 22, 16, 21, 29, 29, 34, 30, 17, 25, 6, 14, 23, 28, 25, 31, 40, 22, 33, 37, 16, 33, 24, 41, 30, 24, 34, 17}},
	{Name: "Psalms", OSIS: "Ps", Abbrev: "ps", ChapterVerses: []int{6, 12, 8, 8, 12, 10, 17, 9, 20, 18, 7, 8, 6, 7, 5, 11, 15, 50, 14, 9, 13, 31, 6, 10, 22, 12, 14, 9, 11, 12, 24, 11, 22, 22, 28, 12, 40, 22, 13, 17, 13, 11, 5, 26, 17, 11, 9, 14, 20, 23, 19, 9, 6, 7, 23, 13, 11, 11, 17, 12, 8, 12, 11, 10, 13, 20, 7, 35, 36, 5, 24, 20, 28, 23, 10, 12, 20, 72, 13, 19, 16, 8, 18, 12, 13, 17, 7, 18, 52, 17, 16, 15, 5, 23, 11, 13, 12, 9, 9, 5, 8, 28, 22, 35, 45, 48, 43, 13, 31, 7, 10, 10, 9, 8, 18, 19, 2, 29, 176, 7, 8, 9, 4, 8, 5, 6, 5, 6, 8, 8, 3, 18, 3, 3, 21, 26, 9, 8, 24, 13, 10, 7, 12, 15, 21, 10, 20, 14, 9, 6}},
	{Name: "Proverbs", OSIS: "Prov", Abbrev: "pr", ChapterVerses: []int{33, 22, 35, 27, 23, 35, 27, 36, 18, 32, 31, 28, 25, 35, 33, 33, 28, 24, 29, 30, 31, 29, 35, 34, 28, 28, 27, 28, 27, 33, 31}},
	{Name: "Ecclesiastes", OSIS: "Eccl", Abbrev: "ec", ChapterVerses: []int{18, 26, 22, 16, 20, 12, 29, 17, 18, 20, 10, 14}},
	{Name: "Song of Solomon", OSIS: "Song", Abbrev: "so", ChapterVerses: []int{17, 17, 11, 16, 16, 13, 13, 14}},
	{Name: "Isaiah", OSIS: "Isa", Abbrev: "is", ChapterVerses: []int{31, 22, 26, 6, 30, 13, 25, 22, 21, 34, 16, 6, 22, 32, 9, 14, 14, 7, 25, 6, 17, 25, 18, 23, 12, 21, 13, 29, 24, 33, 9, 20, 24, 17, 10, 22, 38, 22, 8, 31, 29, 25, 28, 28, 25, 13, 15, 22, 26, 11, 23, 15, 12, 17, 13, 12, 21, 14, 21, 22, 11, 12, 19, 12, 25, 24}},
	{Name: "Jeremiah", OSIS: "Jer", Abbrev: "je", ChapterVerses: []int{19, 37, 25, 31, 31, 30, 34, 22, 26, 25, 23, 17, 27, 22, 21, 21, 27, 23, 15, 18, 14, 30, 40, 10, 38, 24, 22, 17, 32, 24, 40, 44, 26, 22, 19, 32, 21, 28, 18, 16, 18, 22, 13, 30, 5, 28, 7, 47, 39, 46, 64, 34}},
	{Name: "Lamentations", OSIS: "Lam", Abbrev: "lm", ChapterVerses: []int{22, 22, 66, 22, 22}},
	{Name: "Ezekiel", OSIS: "Ezek", Abbrev: "ez", ChapterVerses: []int{28, 10, 27, 17, 17, 14, 27, 18, 11, 22, 25, 28, 23, 23, 8, 63, 24, 32, 14, 49, 32, 31, 49, 27, 17, 21, 36, 26, 21, 26, 18, 32, 33, 31, 15, 38, 28, 23, 29, 49, 26, 20, 27, 31, 25, 24, 23, 35}},
	{Name: "Daniel", OSIS: "Dan", Abbrev: "dn", ChapterVerses: []int{21, 49, 30, 37, 31, 28, 28, 27, 27, 21, 45, 13}},
	{Name: "Hosea", OSIS: "Hos", Abbrev: "ho", ChapterVerses: []int{11, 23, 5, 19, 15, 11, 16, 14, 17, 15, 12, 14, 16, 9}},
	{Name: "Joel", OSIS: "Joel", Abbrev: "jl", ChapterVerses: []int{20, 32, 21}},
	{Name: "Amos", OSIS: "Amos", Abbrev: "am", ChapterVerses: []int{15, 16, 15, 13, 27, 14, 17, 14, 15}},
	{Name: "Obadiah", OSIS: "Obad", Abbrev: "ob", ChapterVerses: []int{21}},
	{Name: "Jonah", OSIS: "Jonah", Abbrev: "jn", ChapterVerses: []int{17, 10, 10, 11}},
	{Name: "Micah", OSIS: "Mic", Abbrev: "mi", ChapterVerses: []int{16, 13, 12, 13, 15, 16, 20}},
	{Name: "Nahum", OSIS: "Nah", Abbrev: "na", ChapterVerses: []int{15, 13, 19}},
	{Name: "Habakkuk", OSIS: "Hab", Abbrev: "hk", ChapterVerses: []int{17, 20, 19}},
	{Name: "Zephaniah", OSIS: "Zeph", Abbrev: "zp", ChapterVerses: []int{18, 15, 20}},
	{Name: "Haggai", OSIS: "Hag", Abbrev: "hg", ChapterVerses: []int{15, 23}},
	{Name: "Zechariah", OSIS: "Zech", Abbrev: "zc", ChapterVerses: []int{21, 13, 10, 14, 11, 15, 14, 23, 17, 12, 17, 14, 9, 21}},
	{Name: "Malachi", OSIS: "Mal", Abbrev: "ml", ChapterVerses: []int{14, 17, 18, 6}},
	// New Testament
	{Name: "Matthew", OSIS: "Matt", Abbrev: "mt", ChapterVerses: []int{25, 23, 17, 25, 48, 34, 29, 34, 38, 42, 30, 50, 58, 36, 39, 28, 27, 35, 30, 34, 46, 46, 39, 51, 46, 75, 66, 20}},
	{Name: "Mark", OSIS: "Mark", Abbrev: "mk", ChapterVerses: []int{45, 28, 35, 41, 43, 56, 37, 38, 50, 52, 33, 44, 37, 72, 47, 20}},
	{Name: "Luke", OSIS: "Luke", Abbrev: "lk", ChapterVerses: []int{80, 52, 38, 44, 39, 49, 50, 56, 62, 42, 54, 59, 35, 35, 32, 31, 37, 43, 48, 47, 38, 71, 56, 53}},
	{Name: "John", OSIS: "John", Abbrev: "jo", ChapterVerses: []int{51, 25, 36, 54, 47, 71, 53, 59, 41, 42, 57, 50, 38, 31, 27, 33, 26, 40, 42, 31, 25}},
	{Name: "Acts", OSIS: "Acts", Abbrev: "ac", ChapterVerses: []int{26, 47, 26, 37, 42, 15, 60, 40, 43, 48, 30, 25, 52, 28, 41, 40, 34, 28, 41, 38, 40, 30, 35, 27, 27, 32, 44, 31}},
	{Name: "Romans", OSIS: "Rom", Abbrev: "ro", ChapterVerses: []int{32, 29, 31, 25, 21, 23, 25, 39, 33, 21, 36, 21, 14, 23, 33, 27}},
	{Name: "1 Corinthians", OSIS: "1Cor", Abbrev: "1co", ChapterVerses: []int{31, 16, 23, 21, 13, 20, 40, 13, 27, 33, 34, 31, 13, 40, 58, 24}},
	{Name: "2 Corinthians", OSIS: "2Cor", Abbrev: "2co", ChapterVerses: []int{24, 17, 18, 18, 21, 18, 16, 24, 15, 18, 33, 21, 14}},
	{Name: "Galatians", OSIS: "Gal", Abbrev: "ga", ChapterVerses: []int{24, 21, 29, 31, 26, 18}},
	{Name: "Ephesians", OSIS: "Eph", Abbrev: "ep", ChapterVerses: []int{23, 22, 21, 32, 33, 24}},
	{Name: "Philippians", OSIS: "Phil", Abbrev: "ph", ChapterVerses: []int{30, 30, 21, 23}},
	{Name: "Colossians", OSIS: "Col", Abbrev: "cl", ChapterVerses: []int{29, 23, 25, 18}},
	{Name: "1 Thessalonians", OSIS: "1Thess", Abbrev: "1th", ChapterVerses: []int{10, 20, 13, 18, 28}},
	{Name: "2 Thessalonians", OSIS: "2Thess", Abbrev: "2th", ChapterVerses: []int{12, 17, 18}},
	{Name: "1 Timothy", OSIS: "1Tim", Abbrev: "1ti", ChapterVerses: []int{20, 15, 16, 16, 25, 21}},
	{Name: "2 Timothy", OSIS: "2Tim", Abbrev: "2ti", ChapterVerses: []int{18, 26, 17, 22}},
	{Name: "Titus", OSIS: "Titus", Abbrev: "tt", ChapterVerses: []int{16, 15, 15}},
	{Name: "Philemon", OSIS: "Phlm", Abbrev: "phm", ChapterVerses: []int{25}},
	{Name: "Hebrews", OSIS: "Heb", Abbrev: "hb", ChapterVerses: []int{14, 18, 19, 16, 14, 20, 28, 13, 28, 39, 40, 29, 25}},
	{Name: "James", OSIS: "Jas", Abbrev: "jm", ChapterVerses: []int{27, 26, 18, 17, 20}},
	{Name: "1 Peter", OSIS: "1Pet", Abbrev: "1pe", ChapterVerses: []int{25, 25, 22, 19, 14}},
	{Name: "2 Peter", OSIS: "2Pet", Abbrev: "2pe", ChapterVerses: []int{21, 22, 18}},
	{Name: "1 John", OSIS: "1John", Abbrev: "1jo", ChapterVerses: []int{10, 29, 24, 21, 21}},
	{Name: "2 John", OSIS: "2John", Abbrev: "2jo", ChapterVerses: []int{13}},
	{Name: "3 John", OSIS: "3John", Abbrev: "3jo", ChapterVerses: []int{14}},
	{Name: "Jude", OSIS: "Jude", Abbrev: "jd", ChapterVerses: []int{25}},
	{Name: "Revelation", OSIS: "Rev", Abbrev: "re", ChapterVerses: []int{20, 29, 22, 11, 14, 17, 17, 13, 21, 11, 19, 17, 18, 20, 8, 21, 18, 24, 21, 15, 27, 21}},
}

func init() {
	for i := range Books {
		Books[i].Order = i + 1
	}
}

// byAbbrev indexes Books by document abbreviation.
var byAbbrev = func() map[string]*Book {
	m := make(map[string]*Book, len(Books))
	for i := range Books {
		m[Books[i].Abbrev] = &Books[i]
	}
	return m
}()

// byOSIS indexes Books by OSIS identifier.
var byOSIS = func() map[string]*Book {
	m := make(map[string]*Book, len(Books))
	for i := range Books {
		m[Books[i].OSIS] = &Books[i]
	}
	return m
}()

// LookupAbbrev returns the canonical book for a document abbreviation.
func LookupAbbrev(abbrev string) (*Book, bool) {
	b, ok := byAbbrev[abbrev]
	return b, ok
}

// LookupOSIS returns the canonical book for an OSIS identifier.
func LookupOSIS(osis string) (*Book, bool) {
	b, ok := byOSIS[osis]
	return b, ok
}

// BookIndex returns the 0-based canonical position of the abbreviation,
// or -1 if the abbreviation is not in the canon.
func BookIndex(abbrev string) int {
	b, ok := byAbbrev[abbrev]
	if !ok {
		return -1
	}
	return b.Order - 1
}

// ChapterCount returns the canonical number of chapters for the
// abbreviation, or 0 if the abbreviation is not in the canon.
func ChapterCount(abbrev string) int {
	b, ok := byAbbrev[abbrev]
	if !ok {
		return 0
	}
	return len(b.ChapterVerses)
}

// VerseCount returns the canonical verse count for the given 1-based
// chapter, or 0 if the abbreviation or chapter is out of range.
func VerseCount(abbrev string, chapter int) int {
	b, ok := byAbbrev[abbrev]
	if !ok {
		return 0
	}
	if chapter < 1 || chapter > len(b.ChapterVerses) {
		return 0
	}
	return b.ChapterVerses[chapter-1]
}

// TotalVerses returns the canonical verse count across all chapters,
// or 0 if the abbreviation is not in the canon.
func TotalVerses(abbrev string) int {
	b, ok := byAbbrev[abbrev]
	if !ok {
		return 0
	}
	total := 0
	for _, count := range b.ChapterVerses {
		total += count
	}
	return total
}

// IsNewTestament reports whether the abbreviation belongs to a New
// Testament book. Unknown abbreviations are not in either testament.
func IsNewTestament(abbrev string) bool {
	idx := BookIndex(abbrev)
	return idx >= otBookCount
}
