package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmkit/internal/dataset"
)

func TestValidateTextInput(t *testing.T) {
	longText := strings.Repeat("This is a perfectly reasonable lead note. ", 5)

	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{name: "valid input", text: longText, wantErr: ""},
		{name: "empty", text: "", wantErr: "cannot be empty"},
		{name: "whitespace only", text: "   \n\t  ", wantErr: "cannot be empty"},
		{name: "too short", text: "short note", wantErr: "too short"},
		{name: "too long", text: strings.Repeat("a", 15001), wantErr: "too long"},
		{name: "gibberish", text: strings.Repeat("#$%^&*@!", 10), wantErr: "non-text content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTextInput(tt.text, DefaultMinTextLength, DefaultMaxTextLength, "Lead information")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var inputErr *TextInputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, "Lead information", inputErr.Field)
		})
	}
}

func buildTable(t *testing.T, rows int, cols int) *dataset.Table {
	t.Helper()
	columns := make([]dataset.Column, cols)
	for i := range columns {
		values := make([]string, rows)
		for j := range values {
			values[j] = "x"
		}
		columns[i] = dataset.NewColumn("col", values)
	}
	table, err := dataset.New(columns)
	require.NoError(t, err)
	return table
}

func TestValidateTable(t *testing.T) {
	tests := []struct {
		name    string
		table   *dataset.Table
		wantErr string
	}{
		{name: "valid table", table: buildTable(t, 5, 3), wantErr: ""},
		{name: "nil table", table: nil, wantErr: "empty"},
		{name: "empty table", table: buildTable(t, 0, 0), wantErr: "empty"},
		{name: "too few columns", table: buildTable(t, 5, 1), wantErr: "at least 2 columns"},
		{name: "no data rows", table: buildTable(t, 0, 3), wantErr: "at least 1 data row"},
		{name: "too many rows", table: buildTable(t, 11, 3), wantErr: "too many rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTable(tt.table, 2, 10)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var structural *StructuralError
			assert.ErrorAs(t, err, &structural)
		})
	}
}
