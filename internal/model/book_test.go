package model

import "testing"

// TestBookRecordChapterCount tests the ChapterCount method.
func TestBookRecordChapterCount(t *testing.T) {
	t.Parallel()

	t.Run("counts chapters", func(t *testing.T) {
		t.Parallel()

		book := &BookRecord{
			Abbrev:   "jo",
			Chapters: [][]string{{"v1", "v2"}, {"v1"}, {"v1", "v2", "v3"}},
		}

		if book.ChapterCount() != 3 {
			t.Errorf("got %d, expected 3", book.ChapterCount())
		}
	})

	t.Run("returns zero without chapters", func(t *testing.T) {
		t.Parallel()

		book := &BookRecord{Abbrev: "jo"}

		if book.ChapterCount() != 0 {
			t.Errorf("got %d, expected 0", book.ChapterCount())
		}
	})
}

// TestBookRecordVerseCount tests the VerseCount method.
func TestBookRecordVerseCount(t *testing.T) {
	t.Parallel()

	book := &BookRecord{
		Abbrev:   "ob",
		Chapters: [][]string{{"v1", "v2", "v3"}},
	}

	testCases := []struct {
		name     string
		chapter  int
		expected int
	}{
		{"first chapter", 1, 3},
		{"chapter zero is out of range", 0, 0},
		{"negative chapter is out of range", -1, 0},
		{"chapter past the end is out of range", 2, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := book.VerseCount(tc.chapter); got != tc.expected {
				t.Errorf("VerseCount(%d) = %d, expected %d", tc.chapter, got, tc.expected)
			}
		})
	}
}

// TestBookRecordTotalVerses tests the TotalVerses method.
func TestBookRecordTotalVerses(t *testing.T) {
	t.Parallel()

	book := &BookRecord{
		Abbrev:   "jo",
		Chapters: [][]string{{"v1", "v2"}, {"v1"}, {"v1", "v2", "v3"}},
	}

	if book.TotalVerses() != 6 {
		t.Errorf("got %d, expected 6", book.TotalVerses())
	}
}

// TestBookRecordHasText tests the HasText method.
func TestBookRecordHasText(t *testing.T) {
	t.Parallel()

	t.Run("returns true with chapters", func(t *testing.T) {
		t.Parallel()

		book := &BookRecord{Abbrev: "gn", Chapters: [][]string{{"v1"}}}
		if !book.HasText() {
			t.Error("expected true")
		}
	})

	t.Run("returns false without chapters", func(t *testing.T) {
		t.Parallel()

		book := &BookRecord{Abbrev: "gn"}
		if book.HasText() {
			t.Error("expected false")
		}
	})
}
