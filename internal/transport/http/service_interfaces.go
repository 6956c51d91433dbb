package http

import (
	"context"
	"io"

	"crmkit/internal/services"
)

// QualityServiceInterface is the contract the quality handler depends on
type QualityServiceInterface interface {
	// AnalyzeUpload ingests an uploaded file and runs the full analysis
	AnalyzeUpload(ctx context.Context, filename string, r io.Reader) (*services.QualityReport, error)
}

// AssistServiceInterface is the contract the assist handler depends on
type AssistServiceInterface interface {
	// Lead analyzes messy lead text into a structured summary draft
	Lead(ctx context.Context, input string) (string, error)

	// Requirements translates requirement notes into a documentation draft
	Requirements(ctx context.Context, input string) (string, error)
}
