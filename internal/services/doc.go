// Package services contains the application services sitting between
// the HTTP transport and the core packages: QualityService runs the
// ingest-analyze-narrate-report flow, AssistService runs the prompt
// modules.
package services
