// Package validation provides input guard clauses: free-text bounds
// checking for the assist prompts and structural validation of tables
// before analysis.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"crmkit/internal/dataset"
)

// Text input bounds for the assist modules
const (
	DefaultMinTextLength = 50
	DefaultMaxTextLength = 15000

	// minReadableRatio is the minimum share of alphanumeric or space
	// characters for input to count as readable text
	minReadableRatio = 0.6
)

// TextInputError is a user-facing rejection of free-text input
type TextInputError struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (e *TextInputError) Error() string {
	return e.Reason
}

// ValidateTextInput checks free-text input against length bounds and a
// coarse gibberish heuristic. fieldName appears in user-facing messages.
func ValidateTextInput(text string, minLength, maxLength int, fieldName string) error {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return &TextInputError{
			Field:  fieldName,
			Reason: fmt.Sprintf("%s cannot be empty. Please provide some content to analyze.", fieldName),
		}
	}

	if len(cleaned) < minLength {
		return &TextInputError{
			Field: fieldName,
			Reason: fmt.Sprintf("%s is too short (%d characters). Please provide at least %d characters for meaningful analysis.",
				fieldName, len(cleaned), minLength),
		}
	}

	if len(cleaned) > maxLength {
		return &TextInputError{
			Field: fieldName,
			Reason: fmt.Sprintf("%s is too long (%d characters). Maximum allowed is %d characters.",
				fieldName, len(cleaned), maxLength),
		}
	}

	readable := 0
	total := 0
	for _, r := range cleaned {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			readable++
		}
	}
	if float64(readable)/float64(total) < minReadableRatio {
		return &TextInputError{
			Field:  fieldName,
			Reason: fmt.Sprintf("%s appears to contain too much non-text content. Please provide readable text.", fieldName),
		}
	}

	return nil
}

// StructuralError is raised before any quality check runs. No partial
// analysis is produced when a table fails structural validation.
type StructuralError struct {
	Reason string
}

// Error implements the error interface
func (e *StructuralError) Error() string {
	return e.Reason
}

// ValidateTable checks the coarse structural bounds of a table before
// analysis: at least one data row, a minimum column count, and a maximum
// row count to keep analysis bounded.
func ValidateTable(t *dataset.Table, minColumns, maxRows int) error {
	if t == nil || (t.RowCount() == 0 && t.ColumnCount() == 0) {
		return &StructuralError{Reason: "The uploaded file is empty. Please upload a CSV with data."}
	}

	if t.ColumnCount() < minColumns {
		return &StructuralError{
			Reason: fmt.Sprintf("The CSV must have at least %d columns for meaningful analysis.", minColumns),
		}
	}

	if t.RowCount() < 1 {
		return &StructuralError{Reason: "The CSV must have at least 1 data row."}
	}

	if t.RowCount() > maxRows {
		return &StructuralError{
			Reason: fmt.Sprintf("The CSV has too many rows (>%d). Please upload a smaller sample.", maxRows),
		}
	}

	return nil
}
