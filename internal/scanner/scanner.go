package scanner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/nao1215/biblescan/internal/model"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultMaxFileSize is the default document size limit.
const DefaultMaxFileSize int64 = 64 * 1024 * 1024 // 64MB

// Scanner loads translation documents from disk.
//
// Design decision: We use a struct with options rather than a package
// function because:
//  1. The size limit and logger should be consistent across scans
//  2. Batch scanning reuses one configured scanner for many files
//  3. Easier to test with a small size limit
type Scanner struct {
	// maxFileSize limits the document size to prevent memory exhaustion.
	maxFileSize int64

	// logger receives debug records during scanning.
	logger *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxFileSize sets the maximum document size in bytes.
// Values below one fall back to the default.
func WithMaxFileSize(size int64) Option {
	return func(s *Scanner) {
		if size > 0 {
			s.maxFileSize = size
		}
	}
}

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// New creates a Scanner with the given options.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		maxFileSize: DefaultMaxFileSize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Result holds a successfully scanned document.
type Result struct {
	// File is the path the document was read from.
	File string

	// Books holds the decoded records in document order.
	Books []model.BookRecord

	// ContentHash is the SHA-256 of the raw file bytes, hex encoded.
	ContentHash string

	// Size is the raw file size in bytes.
	Size int64
}

// Scan reads and validates the document at path.
// It returns every record in document order, or an error describing the
// first rule the document broke. Whole-document validation runs before
// Scan returns, so a non-nil Result is fully decoded.
func (s *Scanner) Scan(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat document %s: %w", path, err)
	}
	if info.Size() > s.maxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrTooLarge, path, info.Size(), s.maxFileSize)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	s.logger.DebugContext(ctx, "document read", "path", path, "size", len(raw))

	books, err := s.decode(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	hash := sha256.Sum256(raw)
	return &Result{
		File:        path,
		Books:       books,
		ContentHash: hex.EncodeToString(hash[:]),
		Size:        info.Size(),
	}, nil
}

// decode validates the document bytes and returns the typed records.
func (s *Scanner) decode(ctx context.Context, raw []byte) ([]model.BookRecord, error) {
	// A BOM switches the decoder to the matching unicode encoding.
	// Plain UTF-8 passes through untouched.
	data, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var rawBooks []json.RawMessage
	if err := json.Unmarshal(data, &rawBooks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	books := make([]model.BookRecord, 0, len(rawBooks))
	for i, rawBook := range rawBooks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		book, err := decodeRecord(rawBook)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		books = append(books, book)
	}

	return books, nil
}

// decodeRecord validates a single record and decodes its fields.
func decodeRecord(raw json.RawMessage) (model.BookRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.BookRecord{}, fmt.Errorf("%w: not an object", ErrMalformed)
	}

	rawAbbrev, ok := fields["abbrev"]
	if !ok {
		return model.BookRecord{}, ErrMissingAbbrev
	}

	var abbrev string
	if err := json.Unmarshal(rawAbbrev, &abbrev); err != nil {
		return model.BookRecord{}, fmt.Errorf("%w: abbrev is not a string", ErrMalformed)
	}

	book := model.BookRecord{Abbrev: abbrev}

	// Auxiliary fields are best effort: documents only guarantee the
	// abbrev key, so a mismatched shape skips the field rather than
	// failing the scan.
	if rawName, ok := fields["name"]; ok {
		var name string
		if err := json.Unmarshal(rawName, &name); err == nil {
			book.Name = name
		}
	}
	if rawChapters, ok := fields["chapters"]; ok {
		var chapters [][]string
		if err := json.Unmarshal(rawChapters, &chapters); err == nil {
			book.Chapters = chapters
		}
	}

	return book, nil
}
