package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FromCSV parses CSV content into a Table. The first record is the
// header; every following record is a data row. A UTF-8 BOM is stripped
// if present since CRM exports frequently carry one.
func FromCSV(r io.Reader) (*Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	// Remove BOM if present
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.TrimLeadingSpace = false
	// Hand-edited exports often have ragged rows; fromRecords pads them
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return fromRecords(records)
}

// FromXLSX parses the first sheet of an XLSX workbook into a Table
func FromXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return fromRecords(rows)
}

// fromRecords builds a Table from header + data records. Short records
// (common in hand-edited files and XLSX trailing cells) are padded with
// empty cells so the equal-length invariant holds.
func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return New(nil)
	}

	header := records[0]
	data := records[1:]

	columns := make([]Column, len(header))
	for i, name := range header {
		values := make([]string, len(data))
		for row, record := range data {
			if i < len(record) {
				values[row] = record[i]
			}
		}
		columns[i] = NewColumn(strings.TrimSpace(name), values)
	}

	return New(columns)
}
