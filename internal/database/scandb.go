package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/biblescan/internal/model"
)

// ScanDB provides SQLite-based storage for scan history.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for all translation
// documents rather than separate files per document. This keeps history
// queries and the compare command working across documents, and makes
// backup/restore a single-file operation.
type ScanDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ScanDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ScanDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ScanDB, error) {
	dbPath := filepath.Join(dbDir, "biblescan.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		// Check if database file exists
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &ScanDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *ScanDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sdb *ScanDB) createTables() error {
	schema := `
	-- Documents track one row per scanned file path
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file TEXT NOT NULL,
		content_hash TEXT,
		first_scanned DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_scanned DATETIME DEFAULT CURRENT_TIMESTAMP,
		scan_count INTEGER DEFAULT 0,
		UNIQUE(file)
	);

	CREATE INDEX IF NOT EXISTS idx_documents_file ON documents(file);
	CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents(content_hash);

	-- Scans store complete scan results as JSON
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file TEXT NOT NULL,
		content_hash TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		book_count INTEGER DEFAULT 0,
		multiword_count INTEGER DEFAULT 0,
		report_json TEXT NOT NULL,
		finding_summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_scans_file ON scans(file);
	CREATE INDEX IF NOT EXISTS idx_scans_timestamp ON scans(timestamp);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// Document represents the stored per-file bookkeeping row.
type Document struct {
	ID           int64
	File         string
	ContentHash  string
	FirstScanned time.Time
	LastScanned  time.Time
	ScanCount    int
}

// SaveScan saves a complete scan report as JSON and updates the per-file
// document row. It returns the ID of the stored scan.
func (sdb *ScanDB) SaveScan(ctx context.Context, report *model.ScanReport) (int64, error) {
	// Serialize report to JSON
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	// Create finding summary
	findingSummary := map[string]int{
		"critical": 0,
		"high":     0,
		"medium":   0,
		"low":      0,
		"info":     0,
	}
	if report.SimpleReport != nil {
		findingSummary["critical"] = report.SimpleReport.CriticalCount
		findingSummary["high"] = report.SimpleReport.HighCount
		findingSummary["medium"] = report.SimpleReport.MediumCount
		findingSummary["low"] = report.SimpleReport.LowCount
		findingSummary["info"] = report.SimpleReport.InfoCount
	}
	summaryJSON, _ := json.Marshal(findingSummary) //nolint:errcheck,errchkjson // findingSummary is a simple map; Marshal won't fail

	// Uses UPSERT to handle repeat scans of the same file.
	docQuery := `
	INSERT INTO documents (file, content_hash, scan_count)
	VALUES (?, ?, 1)
	ON CONFLICT(file) DO UPDATE SET
		content_hash = excluded.content_hash,
		last_scanned = CURRENT_TIMESTAMP,
		scan_count = scan_count + 1
	`

	if _, err := sdb.db.ExecContext(ctx, docQuery, report.File, report.ContentHash); err != nil {
		return 0, fmt.Errorf("failed to update document record: %w", err)
	}

	scanQuery := `
	INSERT INTO scans (file, content_hash, book_count, multiword_count, report_json, finding_summary)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := sdb.db.ExecContext(ctx, scanQuery,
		report.File,
		report.ContentHash,
		report.BookCount,
		len(report.MultiwordMatches),
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save scan: %w", err)
	}

	return result.LastInsertId()
}

// GetDocument retrieves the bookkeeping row for a file path.
// Returns nil without error when the file has never been scanned.
func (sdb *ScanDB) GetDocument(ctx context.Context, file string) (*Document, error) {
	query := `
	SELECT id, file, content_hash, first_scanned, last_scanned, scan_count
	FROM documents
	WHERE file = ?
	`

	var doc Document
	var contentHash sql.NullString
	var firstScanned, lastScanned string

	err := sdb.db.QueryRowContext(ctx, query, file).Scan(
		&doc.ID,
		&doc.File,
		&contentHash,
		&firstScanned,
		&lastScanned,
		&doc.ScanCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document record: %w", err)
	}

	doc.ContentHash = contentHash.String

	// Parse timestamps (SQLite may return different formats depending on version/configuration)
	doc.FirstScanned = parseTimestamp(firstScanned)
	doc.LastScanned = parseTimestamp(lastScanned)

	return &doc, nil
}

// ScanRecord contains summary information about a stored scan.
// This is used for displaying scan history without loading the full report.
type ScanRecord struct {
	// ID is the unique identifier of the scan in the database.
	ID int64

	// File is the scanned document path.
	File string

	// ContentHash is the SHA-256 hash of the document at scan time.
	ContentHash string

	// Timestamp is when the scan was performed.
	Timestamp time.Time

	// BookCount is the number of book records the document contained.
	BookCount int

	// MultiwordCount is the number of multi-word table matches.
	MultiwordCount int

	// FindingSummary contains counts of findings by severity level.
	FindingSummary map[string]int
}

// GetScanHistory retrieves scan records, most recent first.
// An empty file lists scans across all documents. A limit of zero or
// less returns everything.
//
// This is more efficient than loading full reports when only metadata
// is needed; use GetScanReportByID for the complete report.
func (sdb *ScanDB) GetScanHistory(ctx context.Context, file string, limit int) ([]ScanRecord, error) {
	query := `
	SELECT id, file, content_hash, timestamp, book_count, multiword_count, finding_summary
	FROM scans
	`
	args := make([]interface{}, 0)

	if file != "" {
		query += " WHERE file = ?"
		args = append(args, file)
	}

	query += " ORDER BY timestamp DESC, id DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan history: %w", err)
	}
	defer rows.Close()

	var results []ScanRecord
	for rows.Next() {
		var record ScanRecord
		var contentHash sql.NullString
		var timestamp string
		var summaryJSON sql.NullString

		err := rows.Scan(
			&record.ID,
			&record.File,
			&contentHash,
			&timestamp,
			&record.BookCount,
			&record.MultiwordCount,
			&summaryJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}

		record.ContentHash = contentHash.String
		record.Timestamp = parseTimestamp(timestamp)

		// Parse finding summary
		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &record.FindingSummary); err != nil {
				record.FindingSummary = make(map[string]int)
			}
		} else {
			record.FindingSummary = make(map[string]int)
		}

		results = append(results, record)
	}

	return results, rows.Err()
}

// GetScanReportByID retrieves a full scan report by its database ID.
// Returns nil without error when no scan has that ID.
func (sdb *ScanDB) GetScanReportByID(ctx context.Context, id int64) (*model.ScanReport, error) {
	query := `
	SELECT report_json FROM scans
	WHERE id = ?
	`

	var reportJSON string
	err := sdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	var report model.ScanReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListScannedFiles returns a list of all scanned document paths.
func (sdb *ScanDB) ListScannedFiles(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT file FROM scans
	ORDER BY file
	`

	rows, err := sdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var file string
		if err := rows.Scan(&file); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// LatestScanID returns the ID of the most recent scan of a file.
// Returns 0 without error when the file has never been scanned.
func (sdb *ScanDB) LatestScanID(ctx context.Context, file string) (int64, error) {
	ids, err := sdb.LatestScanIDs(ctx, file, 1)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

// LatestScanIDs returns up to n scan IDs for a file, most recent first.
// The compare command uses this to resolve the two most recent scans.
func (sdb *ScanDB) LatestScanIDs(ctx context.Context, file string, n int) ([]int64, error) {
	query := `
	SELECT id FROM scans
	WHERE file = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`

	rows, err := sdb.db.QueryContext(ctx, query, file, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest scans: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}
