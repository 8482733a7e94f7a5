package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/biblescan/internal/config"
	"github.com/nao1215/biblescan/internal/database"
	"github.com/spf13/cobra"
)

// noFindingsMessage is shown in place of finding counts when a scan
// recorded none.
const noFindingsMessage = "No findings"

// NewHistoryCmd creates the history command.
// This command lists scans stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [file]",
		Short: "List stored scans",
		Long: `History lists scans stored in the database, most recent first.

With a file argument only scans of that file are shown. Without one,
scans of every file are listed. Use --files to list just the scanned
file paths.

Examples:
  # List the most recent scans across all files
  biblescan history

  # List scans of one translation
  biblescan history public/en_kjv.json

  # List every file that has been scanned
  biblescan history --files`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of scans to list (0 lists everything)")
	cmd.Flags().Bool("files", false,
		"List scanned file paths instead of individual scans")
	cmd.Flags().String("db", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	listFiles, err := cmd.Flags().GetBool("files")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// Open database
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if listFiles {
		return listScannedFiles(ctx, db, out)
	}

	var file string
	if len(args) > 0 {
		file = args[0]
	}

	return listScanHistory(ctx, db, out, file, limit)
}

// listScannedFiles lists every file that has scan records in the database.
func listScannedFiles(ctx context.Context, db *database.ScanDB, out io.Writer) error {
	files, err := db.ListScannedFiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list scanned files: %w", err)
	}

	if len(files) == 0 {
		fmt.Fprintln(out, "No scanned files found in the database.")
		fmt.Fprintln(out, "\nUse 'biblescan scan <file>' to scan a translation.")
		return nil
	}

	fmt.Fprintf(out, "Scanned files (%d):\n\n", len(files))
	for _, f := range files {
		fmt.Fprintf(out, "  • %s\n", f)
	}
	fmt.Fprintln(out, "\nUse 'biblescan history <file>' to see scan history for a file.")

	return nil
}

// listScanHistory prints stored scans as a table, most recent first.
// An empty file lists scans across all documents.
func listScanHistory(ctx context.Context, db *database.ScanDB, out io.Writer, file string, limit int) error {
	records, err := db.GetScanHistory(ctx, file, limit)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}

	if len(records) == 0 {
		if file != "" {
			fmt.Fprintf(out, "No scan history found for %s\n", file)
		} else {
			fmt.Fprintln(out, "No scan history found in the database.")
		}
		fmt.Fprintln(out, "\nUse 'biblescan scan <file>' to scan a translation.")
		return nil
	}

	if file != "" {
		// The document row carries the full scan count even when the
		// listing below is cut off by --limit.
		doc, err := db.GetDocument(ctx, file)
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}
		if doc != nil {
			fmt.Fprintf(out, "Scan history for %s (%d scans, last scanned %s):\n\n",
				file, doc.ScanCount, doc.LastScanned.Format("2006-01-02 15:04:05"))
		} else {
			fmt.Fprintf(out, "Scan history for %s (%d scans):\n\n", file, len(records))
		}
	} else {
		fmt.Fprintf(out, "Scan history (%d scans):\n\n", len(records))
	}

	fmt.Fprintf(out, "  %-6s  %-20s  %-6s  %-6s  %s\n", "ID", "Date", "Books", "Multi", "Findings")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 60))

	for _, rec := range records {
		fmt.Fprintf(out, "  %-6d  %-20s  %-6d  %-6d  %s\n",
			rec.ID,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.BookCount,
			rec.MultiwordCount,
			formatFindingSummary(rec.FindingSummary),
		)
	}

	fmt.Fprintln(out, "\nUse 'biblescan compare <old-id> <new-id>' to compare two scans.")

	return nil
}

// formatFindingSummary formats the finding counts map into a short string.
func formatFindingSummary(summary map[string]int) string {
	if summary == nil {
		return "N/A"
	}

	var parts []string
	if v := summary["critical"]; v > 0 {
		parts = append(parts, fmt.Sprintf("C:%d", v))
	}
	if v := summary["high"]; v > 0 {
		parts = append(parts, fmt.Sprintf("H:%d", v))
	}
	if v := summary["medium"]; v > 0 {
		parts = append(parts, fmt.Sprintf("M:%d", v))
	}
	if v := summary["low"]; v > 0 {
		parts = append(parts, fmt.Sprintf("L:%d", v))
	}
	if v := summary["info"]; v > 0 {
		parts = append(parts, fmt.Sprintf("I:%d", v))
	}

	if len(parts) == 0 {
		return noFindingsMessage
	}
	return strings.Join(parts, " ")
}
