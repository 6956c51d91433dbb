package quality

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"crmkit/internal/dataset"
)

// Policy constants for the checks. The key-column heuristic is a policy,
// not a discovered invariant: it looks for name substrings and inspects
// at most three candidates.
const (
	// missingCriticalRatio is the missing-value share above which an
	// issue escalates from warning to critical
	missingCriticalRatio = 0.1

	// maxKeyColumns caps how many candidate key columns the duplicate
	// check inspects
	maxKeyColumns = 3

	// shortTextRatio is the share of very short values above which a
	// text column is flagged as anomalous
	shortTextRatio = 0.1

	// shortTextLength is the character count below which a value counts
	// as unusually short
	shortTextLength = 2

	// phoneMinDigits and phoneMaxDigits bound a plausible phone number
	// after separator stripping
	phoneMinDigits = 7
	phoneMaxDigits = 15
)

var (
	keyColumnHints    = []string{"email", "phone", "id", "name"}
	amountColumnHints = []string{"amount", "price", "revenue", "count", "quantity"}
	phoneColumnHints  = []string{"phone", "mobile", "tel"}
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneSeparators   = regexp.MustCompile(`[\s\-\(\)\+\.]`)
)

// checkMissingFields counts absent cells per column and emits one issue
// for every column with at least one missing value.
func checkMissingFields(t *dataset.Table) []Issue {
	var issues []Issue
	rows := t.RowCount()

	for _, col := range t.Columns() {
		missing := 0
		for row := 0; row < rows; row++ {
			if col.Cell(row).Null {
				missing++
			}
		}
		if missing == 0 {
			continue
		}

		severity := SeverityWarning
		if float64(missing)/float64(rows) > missingCriticalRatio {
			severity = SeverityCritical
		}

		pct := percentage(missing, rows)
		issues = append(issues, newIssue(
			KindMissingFields, severity, col.Name, missing, rows,
			fmt.Sprintf("Column '%s' has %d missing values (%.1f%%)", col.Name, missing, pct),
		))
	}

	return issues
}

// checkDuplicates finds exact duplicate rows, then near-duplicate values
// in likely key columns after trim/lowercase normalization. Key-column
// issues are suppressed when their count matches the exact-row count, so
// rows already flagged as exact duplicates are not re-reported.
func checkDuplicates(t *dataset.Table) []Issue {
	var issues []Issue
	rows := t.RowCount()

	// Full-row duplicates: every occurrence beyond the first counts
	seen := make(map[string]struct{}, rows)
	fullDuplicates := 0
	for row := 0; row < rows; row++ {
		key := t.RowKey(row)
		if _, ok := seen[key]; ok {
			fullDuplicates++
		} else {
			seen[key] = struct{}{}
		}
	}

	if fullDuplicates > 0 {
		issues = append(issues, newIssue(
			KindDuplicates, SeverityCritical, AllColumns, fullDuplicates, rows,
			fmt.Sprintf("Found %d exact duplicate rows", fullDuplicates),
		))
	}

	// Candidate key columns by name substring, in column order
	var keyColumns []dataset.Column
	for _, col := range t.Columns() {
		lower := strings.ToLower(col.Name)
		for _, hint := range keyColumnHints {
			if strings.Contains(lower, hint) {
				keyColumns = append(keyColumns, col)
				break
			}
		}
	}
	if len(keyColumns) > maxKeyColumns {
		keyColumns = keyColumns[:maxKeyColumns]
	}

	for _, col := range keyColumns {
		if col.Type != dataset.TypeText {
			continue
		}

		normalized := make(map[string]struct{}, rows)
		dupCount := 0
		for row := 0; row < rows; row++ {
			cell := col.Cell(row)
			value := ""
			if !cell.Null {
				value = strings.ToLower(strings.TrimSpace(cell.Raw))
			}
			if _, ok := normalized[value]; ok {
				dupCount++
			} else {
				normalized[value] = struct{}{}
			}
		}

		if dupCount > 0 && dupCount != fullDuplicates {
			issues = append(issues, newIssue(
				KindPotentialDuplicates, SeverityWarning, col.Name, dupCount, rows,
				fmt.Sprintf("Column '%s' has %d duplicate values (potential duplicate records)", col.Name, dupCount),
			))
		}
	}

	return issues
}

// checkFormatConsistency validates email- and phone-named columns
// against their expected shapes. Only the first sampleSize non-null
// values per column are inspected; this bounds cost on large tables and
// means TotalCount reflects the sample, not the full column.
func checkFormatConsistency(t *dataset.Table, sampleSize int) []Issue {
	var issues []Issue
	rows := t.RowCount()

	for _, col := range t.Columns() {
		lower := strings.ToLower(col.Name)

		var sample []string
		for row := 0; row < rows && len(sample) < sampleSize; row++ {
			cell := col.Cell(row)
			if !cell.Null {
				sample = append(sample, cell.Raw)
			}
		}
		if len(sample) == 0 {
			continue
		}

		switch {
		case strings.Contains(lower, "email"):
			invalid := 0
			for _, value := range sample {
				if !DetectEmailFormat(value) {
					invalid++
				}
			}
			if invalid > 0 {
				issues = append(issues, newIssue(
					KindFormatInconsistency, SeverityWarning, col.Name, invalid, len(sample),
					fmt.Sprintf("Column '%s' has %d values with invalid email format", col.Name, invalid),
				))
			}

		case containsAny(lower, phoneColumnHints):
			invalid := 0
			for _, value := range sample {
				if !DetectPhoneFormat(value) {
					invalid++
				}
			}
			if invalid > 0 {
				issues = append(issues, newIssue(
					KindFormatInconsistency, SeverityInfo, col.Name, invalid, len(sample),
					fmt.Sprintf("Column '%s' has %d values with inconsistent phone format", col.Name, invalid),
				))
			}
		}
	}

	return issues
}

// checkAnomalies flags text columns with a high share of very short
// values, and negative numbers in numeric columns whose names suggest
// strictly positive quantities. A single column can never trigger both:
// the sub-checks key off the declared column type, which is exclusive.
func checkAnomalies(t *dataset.Table) []Issue {
	var issues []Issue
	rows := t.RowCount()

	for _, col := range t.Columns() {
		lower := strings.ToLower(col.Name)

		if col.Type == dataset.TypeText {
			nonNull := 0
			veryShort := 0
			for row := 0; row < rows; row++ {
				cell := col.Cell(row)
				if cell.Null {
					continue
				}
				nonNull++
				if utf8.RuneCountInString(cell.Raw) < shortTextLength {
					veryShort++
				}
			}
			if nonNull > 0 && float64(veryShort) > float64(nonNull)*shortTextRatio {
				issues = append(issues, newIssue(
					KindAnomaly, SeverityInfo, col.Name, veryShort, nonNull,
					fmt.Sprintf("Column '%s' has %d unusually short values (< %d chars)", col.Name, veryShort, shortTextLength),
				))
			}
		}

		if col.Type == dataset.TypeNumeric && containsAny(lower, amountColumnHints) {
			negative := 0
			for row := 0; row < rows; row++ {
				if v, ok := col.Float(row); ok && v < 0 {
					negative++
				}
			}
			if negative > 0 {
				issues = append(issues, newIssue(
					KindAnomaly, SeverityWarning, col.Name, negative, rows,
					fmt.Sprintf("Column '%s' has %d negative values (unexpected for this field type)", col.Name, negative),
				))
			}
		}
	}

	return issues
}

// DetectEmailFormat reports whether a value looks like a valid email
// address: local part, @, domain, and a TLD of at least two letters.
func DetectEmailFormat(value string) bool {
	return emailPattern.MatchString(strings.TrimSpace(value))
}

// DetectPhoneFormat reports whether a value looks like a phone number
// once common separators are stripped: 7 to 15 digits and nothing else.
func DetectPhoneFormat(value string) bool {
	cleaned := phoneSeparators.ReplaceAllString(value, "")
	if len(cleaned) < phoneMinDigits || len(cleaned) > phoneMaxDigits {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// containsAny reports whether s contains any of the substrings
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
