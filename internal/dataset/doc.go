// Package dataset provides the immutable, column-oriented Table that the
// quality checks operate on, plus the CSV/XLSX ingestion that builds it.
//
// A Table is constructed once per analysis run. Each column carries an
// explicit cell type (text, numeric, or unknown) resolved at ingestion by
// scanning the column's non-empty cells; checks never re-infer types.
// Cells may be null independent of the column type.
package dataset
