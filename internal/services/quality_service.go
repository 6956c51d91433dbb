package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"crmkit/internal/config"
	"crmkit/internal/dataset"
	"crmkit/internal/infrastructure"
	"crmkit/internal/llm"
	"crmkit/internal/quality"
)

// QualityReport is the result of one analysis run: the rendered
// markdown report plus the structured result for programmatic consumers.
type QualityReport struct {
	Report string                  `json:"report"`
	Result *quality.AnalysisResult `json:"result"`
}

// QualityService runs the full data quality flow: ingest an uploaded
// file into a table, analyze it, narrate the findings when an LLM is
// available, and assemble the report.
type QualityService struct {
	engine    *quality.Engine
	assembler *quality.Assembler
	narrator  llm.Client
	metrics   *infrastructure.Metrics
	llmCfg    config.LLMConfig
	logger    *slog.Logger
}

// NewQualityService creates a quality service. The narrator may be
// llm.Disabled(); analysis works without it.
func NewQualityService(cfg *config.Config, narrator llm.Client, metrics *infrastructure.Metrics, logger *slog.Logger) *QualityService {
	if logger == nil {
		logger = slog.Default()
	}

	engine := quality.NewEngine(logger)
	engine.SetLimits(cfg.Analysis.MaxRows, cfg.Analysis.MinColumns)
	engine.SetSampleSize(cfg.Analysis.SampleSize)
	engine.SetParallel(cfg.Analysis.Parallel)

	return &QualityService{
		engine:    engine,
		assembler: quality.NewAssembler(),
		narrator:  narrator,
		metrics:   metrics,
		llmCfg:    cfg.LLM,
		logger:    logger.With(slog.String("component", "quality_service")),
	}
}

// AnalyzeUpload ingests an uploaded CSV or XLSX file and runs the
// analysis. The filename's extension selects the parser.
func (s *QualityService) AnalyzeUpload(ctx context.Context, filename string, r io.Reader) (*QualityReport, error) {
	table, err := s.ingest(filename, r)
	if err != nil {
		return nil, err
	}
	return s.Analyze(ctx, table)
}

// Analyze runs the engine over an already-built table and assembles the
// report. Narration failures never fail the run; the report carries an
// inline note instead.
func (s *QualityService) Analyze(ctx context.Context, table *dataset.Table) (*QualityReport, error) {
	start := time.Now()

	result, err := s.engine.Analyze(ctx, table)
	if err != nil {
		if s.metrics != nil {
			s.metrics.AnalysesTotal.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}

	var narration string
	var narrationErr error
	if len(result.Issues) > 0 {
		narration, narrationErr = s.narrate(ctx, result.Issues)
	}

	report := s.assembler.Build(result, narration, narrationErr)

	if s.metrics != nil {
		s.metrics.AnalysesTotal.WithLabelValues("ok").Inc()
		s.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
		for _, issue := range result.Issues {
			s.metrics.IssuesFound.WithLabelValues(string(issue.Severity)).Inc()
		}
	}

	return &QualityReport{Report: report, Result: result}, nil
}

// narrate asks the external narrator to explain the issues. An
// unavailable or failing narrator degrades to an error the assembler
// renders inline.
func (s *QualityService) narrate(ctx context.Context, issues []quality.Issue) (string, error) {
	if !s.narrator.Available() {
		return "", llm.ErrUnavailable
	}

	text, err := s.narrator.Generate(ctx, llm.Request{
		System:      quality.NarrationSystemPrompt,
		Prompt:      quality.NarrationPrompt(issues),
		Temperature: s.llmCfg.Temperature,
		MaxTokens:   s.llmCfg.MaxTokens,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "narration failed, producing report without it",
			slog.String("error", err.Error()),
		)
		if s.metrics != nil {
			s.metrics.NarrationFailures.Inc()
		}
		return "", err
	}

	return text, nil
}

// ErrUnsupportedFileType is returned for uploads that are neither CSV nor XLSX
var ErrUnsupportedFileType = errors.New("only CSV and XLSX files are supported")

// ingest picks the parser from the filename extension
func (s *QualityService) ingest(filename string, r io.Reader) (*dataset.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return dataset.FromCSV(r)
	case ".xlsx":
		return dataset.FromXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported file type %q: %w", filepath.Ext(filename), ErrUnsupportedFileType)
	}
}
