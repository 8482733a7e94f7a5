package scanner

import "errors"

// Scan errors.
// These errors are returned by Scanner.Scan() and identify why a
// document was rejected.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances at each return site. This allows callers
// to use errors.Is() for programmatic error handling while still
// providing human-readable messages. Details such as the file path and
// record index are attached by wrapping with fmt.Errorf and %w.
var (
	// ErrNotFound is returned when the document file does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrMalformed is returned when the document is not valid JSON,
	// is not a JSON array, holds a record that is not an object, or
	// holds an abbrev value that is not a string.
	ErrMalformed = errors.New("malformed document")

	// ErrMissingAbbrev is returned when a record has no "abbrev" key.
	// An empty string value is not missing; only the absent key is.
	ErrMissingAbbrev = errors.New("record missing abbrev key")

	// ErrTooLarge is returned when the document exceeds the size limit.
	// The limit guards against loading runaway files into memory.
	ErrTooLarge = errors.New("document too large")
)
