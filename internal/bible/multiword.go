package bible

// MultiwordBook pairs a full multi-word book name with the
// abbreviation translation documents use for it.
type MultiwordBook struct {
	Name   string
	Abbrev string
}

// MultiwordBooks lists the books whose full name carries a leading
// numeral, in canonical order. The cross-reference report walks this
// slice in order, so the order here is the output order.
var MultiwordBooks = []MultiwordBook{
	{Name: "1 Samuel", Abbrev: "1sa"},
	{Name: "2 Samuel", Abbrev: "2sa"},
	{Name: "1 Kings", Abbrev: "1ki"},
	{Name: "2 Kings", Abbrev: "2ki"},
	{Name: "1 Chronicles", Abbrev: "1ch"},
	{Name: "2 Chronicles", Abbrev: "2ch"},
	{Name: "1 Corinthians", Abbrev: "1co"},
	{Name: "2 Corinthians", Abbrev: "2co"},
	{Name: "1 Thessalonians", Abbrev: "1th"},
	{Name: "2 Thessalonians", Abbrev: "2th"},
	{Name: "1 Timothy", Abbrev: "1ti"},
	{Name: "2 Timothy", Abbrev: "2ti"},
	{Name: "1 Peter", Abbrev: "1pe"},
	{Name: "2 Peter", Abbrev: "2pe"},
	{Name: "1 John", Abbrev: "1jo"},
	{Name: "2 John", Abbrev: "2jo"},
	{Name: "3 John", Abbrev: "3jo"},
}

// MultiwordName returns the full name for a multi-word abbreviation,
// or "" if the abbreviation is not in the table.
func MultiwordName(abbrev string) string {
	for _, mb := range MultiwordBooks {
		if mb.Abbrev == abbrev {
			return mb.Name
		}
	}
	return ""
}
