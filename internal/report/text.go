package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/biblescan/internal/model"
)

// Report labels. Downstream tooling greps for these exact strings, so
// they never change casing or punctuation.
const (
	// abbreviationsLabel introduces the abbreviation listing.
	abbreviationsLabel = "All book abbreviations found in JSON:"

	// multiwordLabel introduces the multi-word cross-reference listing.
	multiwordLabel = "Actual abbreviations for multi-word books:"
)

// TextWriter outputs the plain text abbreviation reports.
//
// Write renders the two line-oriented listings: every abbreviation in
// document order, then the multi-word table pairs whose abbreviation
// the document contains. The byte layout is stable across runs for the
// same input: one label line per listing, one data line per entry, one
// blank line between the listings, nothing else.
//
// Design decision: We render to a strings.Builder and write once
// because:
// 1. A single Write keeps the output atomic on shared descriptors
// 2. The byte count returned reflects the whole report
// 3. Partial output on error is avoided
type TextWriter struct {
	baseWriter

	// withFindings appends the audit findings after the listings.
	// The listings themselves are unaffected.
	withFindings bool

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the findings output.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithFindings appends audit findings after the abbreviation listings.
func WithFindings(enabled bool) TextWriterOption {
	return func(w *TextWriter) {
		w.withFindings = enabled
	}
}

// WithShowEmpty configures the writer to show empty findings sections.
func WithShowEmpty(show bool) TextWriterOption {
	return func(w *TextWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose findings output with additional details.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter:   newBaseWriter(output),
		withFindings: false,
		showEmpty:    false,
		verbose:      false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the abbreviation listings for the report.
// Both labels print even when their listing is empty.
func (w *TextWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	w.writeAbbreviations(&sb, report)
	w.writeMultiwordBooks(&sb, report)

	if w.withFindings {
		simple := report.SimpleReport
		if simple == nil {
			simple = model.NewSimpleReport(report)
		}
		if simple.HasFindings() || w.showEmpty {
			sb.WriteString("\n")
			w.writeFindings(&sb, simple)
		}
	}

	return w.output.Write([]byte(sb.String()))
}

// writeAbbreviations writes the first listing: every abbreviation in
// document order, duplicates and all.
func (w *TextWriter) writeAbbreviations(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString(abbreviationsLabel)
	sb.WriteString("\n")
	for _, abbrev := range report.Abbreviations {
		fmt.Fprintf(sb, "'%s': '%s'\n", abbrev, abbrev)
	}
}

// writeMultiwordBooks writes the second listing: the matched multi-word
// table pairs in the table's declared order.
func (w *TextWriter) writeMultiwordBooks(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\n")
	sb.WriteString(multiwordLabel)
	sb.WriteString("\n")
	for _, m := range report.MultiwordMatches {
		fmt.Fprintf(sb, "'%s': '%s'\n", m.Abbrev, m.Name)
	}
}

// WriteSimple outputs the audit summary in human-readable format.
func (w *TextWriter) WriteSimple(report *model.SimpleReport) (int, error) {
	var sb strings.Builder

	// Header
	w.writeHeader(&sb, report)

	// Summary
	w.writeSummary(&sb, report)

	// Findings by severity
	w.writeFindings(&sb, report)

	// Footer
	w.writeFooter(&sb)

	// Write to output
	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *TextWriter) writeHeader(sb *strings.Builder, report *model.SimpleReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         BIBLESCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Document:         %s\n", report.File))
	sb.WriteString(fmt.Sprintf("Scan Date:        %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Books:            %d\n", report.BookCount))
	sb.WriteString(fmt.Sprintf("Multi-Word Hits:  %d\n", report.MultiwordCount))

	if report.Error != "" {
		sb.WriteString(fmt.Sprintf("Status:           ERROR - %s\n", report.Error))
	} else {
		sb.WriteString("Status:           Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the severity summary section.
func (w *TextWriter) writeSummary(sb *strings.Builder, report *model.SimpleReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SEVERITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  CRITICAL: %d\n", report.CriticalCount))
	sb.WriteString(fmt.Sprintf("  HIGH:     %d\n", report.HighCount))
	sb.WriteString(fmt.Sprintf("  MEDIUM:   %d\n", report.MediumCount))
	sb.WriteString(fmt.Sprintf("  LOW:      %d\n", report.LowCount))
	sb.WriteString(fmt.Sprintf("  INFO:     %d\n", report.InfoCount))
	sb.WriteString("\n")

	total := report.TotalFindings()
	sb.WriteString(fmt.Sprintf("  TOTAL:    %d findings\n", total))
	sb.WriteString("\n")
}

// writeFindings writes all findings grouped by severity.
func (w *TextWriter) writeFindings(sb *strings.Builder, report *model.SimpleReport) {
	if !report.HasFindings() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("AUDIT FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	// Write findings in order of severity (critical first)
	severities := []model.Severity{
		model.SeverityCritical,
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityLow,
		model.SeverityInfo,
	}

	for _, severity := range severities {
		findings := report.GetFindingsBySeverity(severity)
		if len(findings) == 0 && !w.showEmpty {
			continue
		}

		w.writeFindingsForSeverity(sb, severity, findings)
	}
}

// writeFindingsForSeverity writes findings of a specific severity level.
func (w *TextWriter) writeFindingsForSeverity(sb *strings.Builder, severity model.Severity, findings []model.Finding) {
	// Severity header with visual indicator
	indicator := w.getSeverityIndicator(severity)
	sb.WriteString(fmt.Sprintf("[%s] %s\n", indicator, severity.String()))

	if len(findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, finding := range findings {
		sb.WriteString(fmt.Sprintf("  * %s\n", finding.Title))
		if finding.Value != "" {
			sb.WriteString(fmt.Sprintf("    Value: %s\n", finding.Value))
		}
		if finding.Location != "" {
			sb.WriteString(fmt.Sprintf("    Location: %s\n", finding.Location))
		}
		if w.verbose && finding.Description != "" {
			sb.WriteString(fmt.Sprintf("    Description: %s\n", finding.Description))
		}
		if w.verbose && finding.Recommendation != "" {
			sb.WriteString(fmt.Sprintf("    Recommendation: %s\n", finding.Recommendation))
		}
	}
	sb.WriteString("\n")
}

// getSeverityIndicator returns a visual indicator for the severity level.
func (w *TextWriter) getSeverityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "!!!"
	case model.SeverityHigh:
		return "!!"
	case model.SeverityMedium:
		return "!"
	case model.SeverityLow:
		return "-"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *TextWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by biblescan\n")
	sb.WriteString("https://github.com/nao1215/biblescan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
