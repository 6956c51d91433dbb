package quality

import (
	"math"
	"strings"
)

// Kind identifies the category of a data quality issue
type Kind string

const (
	KindMissingFields       Kind = "missing_fields"
	KindDuplicates          Kind = "duplicates"
	KindPotentialDuplicates Kind = "potential_duplicates"
	KindFormatInconsistency Kind = "format_inconsistency"
	KindAnomaly             Kind = "anomaly"
)

// Humanize returns the display form of the kind, e.g.
// "missing_fields" becomes "Missing Fields".
func (k Kind) Humanize() string {
	words := strings.Split(string(k), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Severity is the ranking tier of an issue. It is used only for sorting
// and report grouping, never for control flow.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank returns the sort order of the severity. Unrecognized severities
// sort after all known tiers.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// AllColumns is the column sentinel for issues spanning the whole row
const AllColumns = "All Columns"

// Issue is one discrete, explainable data quality finding. Issues are
// self-contained snapshots: they carry no reference back to the table
// and are never mutated after creation.
type Issue struct {
	Kind          Kind     `json:"type"`
	Severity      Severity `json:"severity"`
	Column        string   `json:"column"`
	AffectedCount int      `json:"affected_count"`
	TotalCount    int      `json:"total_count"`
	Percentage    float64  `json:"percentage"`
	Description   string   `json:"description"`
}

// newIssue builds an issue with the percentage derived from the counts
func newIssue(kind Kind, severity Severity, column string, affected, total int, description string) Issue {
	return Issue{
		Kind:          kind,
		Severity:      severity,
		Column:        column,
		AffectedCount: affected,
		TotalCount:    total,
		Percentage:    percentage(affected, total),
		Description:   description,
	}
}

// percentage computes affected/total*100 rounded half-to-even to one
// decimal, returning 0 when total is 0. Half-even keeps exact binary
// halves (1/16 = 6.25% → 6.2) identical across tools that use banker's
// rounding.
func percentage(affected, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.RoundToEven(float64(affected)/float64(total)*1000) / 10
}

// Metadata describes the analyzed table
type Metadata struct {
	Rows        int      `json:"rows"`
	Columns     int      `json:"columns"`
	ColumnNames []string `json:"column_names"`
}

// AnalysisResult is the per-run envelope: the ranked issues plus the
// run-level metadata. It is owned by the caller and never mutated after
// construction.
type AnalysisResult struct {
	ID     string   `json:"id"`
	Issues []Issue  `json:"issues"`
	Meta   Metadata `json:"metadata"`
}

// CountBySeverity returns the number of issues in each known tier
func (r *AnalysisResult) CountBySeverity() (critical, warning, info int) {
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityCritical:
			critical++
		case SeverityWarning:
			warning++
		case SeverityInfo:
			info++
		}
	}
	return critical, warning, info
}
