// Package scanner loads and validates Bible translation documents.
//
// # Architecture
//
// The Scanner type reads a JSON document from disk, validates it, and
// returns the decoded book records. Validation happens before anything
// else sees the document: a document either decodes completely or the
// scan fails with an error, so callers never render output from a
// half-validated file.
//
// Design decision: We validate in two phases rather than decoding
// straight into typed records because:
//  1. The abbrev key must be distinguishable from an empty value; a
//     typed decode cannot tell a missing key from a zero value
//  2. Records carry optional fields in shapes that vary between
//     translations, and those must not make a valid document fatal
//  3. Error messages can name the offending record index
//
// # Validation rules
//
// A document is valid when it is a JSON array whose every element is an
// object carrying an "abbrev" key with a string value. Everything else
// in a record is optional. The "name" and "chapters" fields are decoded
// when they match the expected shape and skipped when they do not.
//
// # Encoding
//
// Documents are UTF-8. A leading byte order mark is tolerated, and
// UTF-16 documents carrying a BOM are transcoded before decoding.
package scanner
