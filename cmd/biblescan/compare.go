package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/biblescan/internal/config"
	"github.com/nao1215/biblescan/internal/database"
	"github.com/spf13/cobra"
)

// severityOrder fixes the rendering order of finding deltas.
// FindingDeltas is a map, so iteration order alone is not stable.
var severityOrder = []string{"critical", "high", "medium", "low", "info"}

// NewCompareCmd creates the compare command.
// This command compares two scans stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <old-id> <new-id>",
		Short: "Compare two stored scans",
		Long: `Compare shows how two stored scans of a translation differ.

The comparison covers:
- Abbreviations added or removed between the scans
- Book and multi-word match count changes
- Audit finding count changes by severity
- Whether the document content changed

Scan IDs are listed by 'biblescan history'. The first ID is the baseline.

Examples:
  # Compare scan 3 (baseline) against scan 7
  biblescan compare 3 7

  # Compare the two most recent scans of a file
  biblescan compare --latest public/en_kjv.json

  # Output the comparison as JSON
  biblescan compare -f json 3 7`,
		Args: cobra.MaximumNArgs(2),
		RunE: runCompareCmd,
	}

	// Comparison target flags
	cmd.Flags().StringP("latest", "l", "",
		"Compare the two most recent scans of the given file")

	// Output flags
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Output format: text, json, or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write comparison to specified file path (creates directories if needed)")

	// Database flags
	cmd.Flags().String("db", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	latestFile, err := cmd.Flags().GetString("latest")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	outputFile, err := cmd.Flags().GetString("output")
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

	if err := validFormat(format); err != nil {
		return err
	}

	// Resolve scan IDs from the arguments before opening the database,
	// so usage errors don't touch the database at all.
	var oldID, newID int64
	fromArgs := latestFile == ""
	if fromArgs {
		if len(args) != 2 {
			return errors.New("two scan IDs are required (use 'biblescan history' to list them, or --latest <file>)")
		}
		oldID, err = parseScanID(args[0])
		if err != nil {
			return err
		}
		newID, err = parseScanID(args[1])
		if err != nil {
			return err
		}
	} else if len(args) != 0 {
		return errors.New("--latest cannot be combined with scan ID arguments")
	}

	// Open database
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if !fromArgs {
		ids, err := db.LatestScanIDs(ctx, latestFile, 2)
		if err != nil {
			return fmt.Errorf("failed to look up scans for %s: %w", latestFile, err)
		}
		if len(ids) < 2 {
			return fmt.Errorf("at least 2 scans of %s are required for comparison (found %d)", latestFile, len(ids))
		}
		// IDs come back most recent first
		newID, oldID = ids[0], ids[1]
	}

	diff, err := db.CompareScans(ctx, oldID, newID)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if outputFile != "" {
		f, err := createOutputFile(outputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case config.FormatJSON:
		return writeDiffJSON(out, diff)
	case config.FormatMarkdown:
		return writeDiffMarkdown(out, diff)
	default:
		return writeDiffText(out, diff)
	}
}

// parseScanID parses a scan ID argument.
func parseScanID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid scan ID %q: expected a positive integer", s)
	}
	return id, nil
}

// writeDiffJSON outputs the comparison result in JSON format.
func writeDiffJSON(out io.Writer, diff *database.ScanDiff) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(diff)
}

// writeDiffText outputs the comparison result in human-readable text format.
func writeDiffText(out io.Writer, diff *database.ScanDiff) error {
	fmt.Fprintf(out, "Scan Comparison: %s\n", diff.NewFile)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	if diff.OldFile != diff.NewFile {
		fmt.Fprintf(out, "\nNote: comparing different documents (%s vs %s)\n", diff.OldFile, diff.NewFile)
	}

	// Scan dates
	fmt.Fprintf(out, "\nOld scan: #%-6d %s\n", diff.OldID, diff.OldDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "New scan: #%-6d %s\n", diff.NewID, diff.NewDate.Format("2006-01-02 15:04:05"))

	// Summary table
	fmt.Fprintln(out, "\nSummary:")
	fmt.Fprintf(out, "  %-10s  %-10s  %-10s  %-10s\n", "Metric", "Old", "New", "Change")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 45))
	fmt.Fprintf(out, "  %-10s  %-10d  %-10d  %-10s\n", "Books",
		diff.OldBookCount, diff.NewBookCount, formatDelta(diff.BookCountDelta()))
	fmt.Fprintf(out, "  %-10s  %-10d  %-10d  %-10s\n", "Multi-word",
		diff.OldMultiwordCount, diff.NewMultiwordCount, formatDelta(diff.MultiwordDelta()))

	// Added abbreviations
	if len(diff.AddedAbbrevs) > 0 {
		fmt.Fprintf(out, "\nAdded abbreviations (%d):\n", len(diff.AddedAbbrevs))
		for _, a := range diff.AddedAbbrevs {
			fmt.Fprintf(out, "  [+] %s\n", a)
		}
	}

	// Removed abbreviations
	if len(diff.RemovedAbbrevs) > 0 {
		fmt.Fprintf(out, "\nRemoved abbreviations (%d):\n", len(diff.RemovedAbbrevs))
		for _, a := range diff.RemovedAbbrevs {
			fmt.Fprintf(out, "  [-] %s\n", a)
		}
	}

	// Finding deltas
	if len(diff.FindingDeltas) > 0 {
		fmt.Fprintln(out, "\nFinding changes:")
		for _, severity := range severityOrder {
			if delta, ok := diff.FindingDeltas[severity]; ok {
				fmt.Fprintf(out, "  %-8s  %s\n", severity, formatDelta(delta))
			}
		}
	}

	if diff.ContentChanged {
		fmt.Fprintln(out, "\nDocument content changed between the scans.")
	}

	if !diff.HasChanges() {
		fmt.Fprintln(out, "\nNo changes detected.")
	}

	return nil
}

// writeDiffMarkdown outputs the comparison result in Markdown format.
func writeDiffMarkdown(out io.Writer, diff *database.ScanDiff) error {
	fmt.Fprintf(out, "# Scan Comparison: %s\n\n", diff.NewFile)

	fmt.Fprintln(out, "## Summary")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| Metric | Old | New | Change |")
	fmt.Fprintln(out, "|--------|-----|-----|--------|")
	fmt.Fprintf(out, "| Scan ID | %d | %d | - |\n", diff.OldID, diff.NewID)
	fmt.Fprintf(out, "| Date | %s | %s | - |\n",
		diff.OldDate.Format("2006-01-02 15:04"),
		diff.NewDate.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "| Books | %d | %d | %s |\n",
		diff.OldBookCount, diff.NewBookCount, formatDelta(diff.BookCountDelta()))
	fmt.Fprintf(out, "| Multi-word | %d | %d | %s |\n",
		diff.OldMultiwordCount, diff.NewMultiwordCount, formatDelta(diff.MultiwordDelta()))

	if len(diff.AddedAbbrevs) > 0 {
		fmt.Fprintf(out, "\n## Added Abbreviations (%d)\n\n", len(diff.AddedAbbrevs))
		for _, a := range diff.AddedAbbrevs {
			fmt.Fprintf(out, "- `%s`\n", a)
		}
	}

	if len(diff.RemovedAbbrevs) > 0 {
		fmt.Fprintf(out, "\n## Removed Abbreviations (%d)\n\n", len(diff.RemovedAbbrevs))
		for _, a := range diff.RemovedAbbrevs {
			fmt.Fprintf(out, "- ~~`%s`~~\n", a)
		}
	}

	if len(diff.FindingDeltas) > 0 {
		fmt.Fprintf(out, "\n## Finding Changes\n\n")
		for _, severity := range severityOrder {
			if delta, ok := diff.FindingDeltas[severity]; ok {
				fmt.Fprintf(out, "- **%s**: %s\n", severity, formatDelta(delta))
			}
		}
	}

	if diff.ContentChanged {
		fmt.Fprintln(out, "\n> Document content changed between the scans.")
	}

	if !diff.HasChanges() {
		fmt.Fprintln(out, "\nNo changes detected.")
	}

	return nil
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
