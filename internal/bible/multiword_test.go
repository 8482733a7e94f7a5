package bible

import "testing"

func TestMultiwordBooks(t *testing.T) {
	t.Parallel()

	t.Run("table lists the 17 numbered books in order", func(t *testing.T) {
		t.Parallel()

		expected := []MultiwordBook{
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

		if len(MultiwordBooks) != len(expected) {
			t.Fatalf("len(MultiwordBooks) = %d, expected %d", len(MultiwordBooks), len(expected))
		}

		for i, want := range expected {
			got := MultiwordBooks[i]
			if got.Name != want.Name || got.Abbrev != want.Abbrev {
				t.Errorf("MultiwordBooks[%d] = {%q, %q}, expected {%q, %q}",
					i, got.Name, got.Abbrev, want.Name, want.Abbrev)
			}
		}
	})

	t.Run("every table entry resolves to a canon book with the same name", func(t *testing.T) {
		t.Parallel()

		for _, mb := range MultiwordBooks {
			b, ok := LookupAbbrev(mb.Abbrev)
			if !ok {
				t.Errorf("abbreviation %q is not in the canon", mb.Abbrev)
				continue
			}
			if b.Name != mb.Name {
				t.Errorf("canon name for %q = %q, expected %q", mb.Abbrev, b.Name, mb.Name)
			}
		}
	})
}

func TestMultiwordName(t *testing.T) {
	t.Parallel()

	t.Run("returns the full name for table abbreviations", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			abbrev   string
			expected string
		}{
			{"1sa", "1 Samuel"},
			{"3jo", "3 John"},
			{"gn", ""},
			{"xyz", ""},
		}

		for _, tc := range testCases {
			if got := MultiwordName(tc.abbrev); got != tc.expected {
				t.Errorf("MultiwordName(%q) = %q, expected %q", tc.abbrev, got, tc.expected)
			}
		}
	})
}
