// Package quality implements the deterministic data-quality rule engine.
//
// Four independent, stateless checks (missing fields, duplicates, format
// consistency, anomalies) each consume an immutable dataset.Table and
// produce Issue records. The Engine aggregates their output, ranks it by
// severity, and the Assembler renders the ranked result into a markdown
// report, optionally appending externally generated narration.
//
// Every number in an Issue is an objective, re-derivable statistic; no
// check mutates the table or infers business meaning.
package quality
