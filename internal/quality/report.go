package quality

import (
	"fmt"
	"strings"
	"time"
)

// Fixed report fragments
const (
	reportTitle = "## CRM Data Quality & Readiness Report"

	noIssuesBlock = `### No Issues Detected

All deterministic checks passed. The data appears to be well-formatted.
`

	narrationHeader = "### AI Analysis: Why These Issues Matter"

	readOnlyNotice = `---

**READ-ONLY ANALYSIS** - No data was modified or stored.
`

	// maxListedColumns caps the column name list in the report header
	maxListedColumns = 10
)

// Assembler renders an AnalysisResult into the final markdown report.
// It is a pure function of its inputs apart from the footer timestamp,
// whose clock is injectable for tests.
type Assembler struct {
	now func() time.Time
}

// NewAssembler creates a report assembler using the system clock
func NewAssembler() *Assembler {
	return &Assembler{now: time.Now}
}

// NewAssemblerWithClock creates a report assembler with a fixed clock
func NewAssemblerWithClock(now func() time.Time) *Assembler {
	return &Assembler{now: now}
}

// Build renders the full report. narration is appended verbatim when
// non-empty; narrationErr produces an inline unavailable note instead.
// Both are ignored when the result has no issues.
func (a *Assembler) Build(result *AnalysisResult, narration string, narrationErr error) string {
	var b strings.Builder

	b.WriteString(reportTitle)
	b.WriteString("\n\n**File Summary:**\n")
	fmt.Fprintf(&b, "- Rows: %d\n", result.Meta.Rows)
	fmt.Fprintf(&b, "- Columns: %d\n", result.Meta.Columns)
	fmt.Fprintf(&b, "- Column Names: %s\n\n", formatColumnNames(result.Meta.ColumnNames))

	if len(result.Issues) == 0 {
		b.WriteString(noIssuesBlock)
		a.writeFooter(&b)
		return b.String()
	}

	a.writeSummary(&b, result)
	a.writeSeveritySections(&b, result)

	if narration != "" {
		b.WriteString("---\n\n")
		b.WriteString(narrationHeader)
		b.WriteString("\n\n")
		b.WriteString(narration)
		b.WriteString("\n\n")
	} else if narrationErr != nil {
		fmt.Fprintf(&b, "_AI explanation unavailable: %s_\n\n", narrationErr.Error())
	}

	a.writeFooter(&b)
	return b.String()
}

// writeSummary emits the per-severity issue counts
func (a *Assembler) writeSummary(b *strings.Builder, result *AnalysisResult) {
	critical, warning, info := result.CountBySeverity()

	b.WriteString("### Data Quality Summary\n\n")
	fmt.Fprintf(b, "- **Total Records Analyzed:** %d\n", result.Meta.Rows)
	fmt.Fprintf(b, "- **Issues Found:** %d\n", len(result.Issues))
	fmt.Fprintf(b, "  - Critical: %d\n", critical)
	fmt.Fprintf(b, "  - Warning: %d\n", warning)
	fmt.Fprintf(b, "  - Info: %d\n\n", info)
	b.WriteString("---\n\n")
}

// writeSeveritySections emits one section per severity tier present
func (a *Assembler) writeSeveritySections(b *strings.Builder, result *AnalysisResult) {
	sections := []struct {
		severity Severity
		title    string
	}{
		{SeverityCritical, "Critical Issues"},
		{SeverityWarning, "Warnings"},
		{SeverityInfo, "Informational"},
	}

	for _, section := range sections {
		var tier []Issue
		for _, issue := range result.Issues {
			if issue.Severity == section.severity {
				tier = append(tier, issue)
			}
		}
		if len(tier) == 0 {
			continue
		}

		fmt.Fprintf(b, "### %s\n\n", section.title)
		for _, issue := range tier {
			fmt.Fprintf(b, "**%s** - %s\n", issue.Kind.Humanize(), issue.Column)
			fmt.Fprintf(b, "- %s\n\n", issue.Description)
		}
	}
}

// writeFooter appends the read-only notice and the timestamped disclaimer
func (a *Assembler) writeFooter(b *strings.Builder) {
	b.WriteString(readOnlyNotice)
	b.WriteString("\n---\n")
	fmt.Fprintf(b, "_Generated at %s | Session-only data - not stored_\n",
		a.now().Format("2006-01-02 15:04:05"))
}

// formatColumnNames lists the first ten column names, marking truncation
func formatColumnNames(names []string) string {
	if len(names) <= maxListedColumns {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:maxListedColumns], ", ") + "..."
}

// NarrationInput builds the deterministic, enumerated plain-text issue
// summary handed to the external narrator. The narrator is opaque: its
// output is never parsed, only appended to the report.
func NarrationInput(issues []Issue) string {
	var b strings.Builder
	b.WriteString("Data quality issues found:\n")
	for i, issue := range issues {
		fmt.Fprintf(&b, "%d. %s in '%s': %s\n", i+1, issue.Kind.Humanize(), issue.Column, issue.Description)
	}
	return b.String()
}
