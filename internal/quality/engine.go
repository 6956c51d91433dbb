package quality

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"crmkit/internal/dataset"
	"crmkit/internal/validation"
)

// Default engine policy constants
const (
	DefaultSampleSize = 100
	DefaultMaxRows    = 10000
	DefaultMinColumns = 2
)

// checkFunc is a stateless analyzer producing zero or more issues from a table
type checkFunc func(t *dataset.Table) []Issue

// namedCheck pairs a check with its name for logging
type namedCheck struct {
	name string
	run  checkFunc
}

// Engine runs the deterministic quality checks over a table, aggregates
// their issues, and ranks them by severity. Checks are pure functions of
// the immutable table and may run in any order, or in parallel.
type Engine struct {
	logger     *slog.Logger
	sampleSize int
	maxRows    int
	minColumns int
	parallel   bool
	checks     []namedCheck
}

// NewEngine creates an engine with default policy constants
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		logger:     logger.With(slog.String("component", "quality_engine")),
		sampleSize: DefaultSampleSize,
		maxRows:    DefaultMaxRows,
		minColumns: DefaultMinColumns,
	}

	// Emission order: missing, duplicates, format, anomaly. This order
	// has no semantic meaning; the severity sort below is what callers
	// may rely on.
	e.checks = []namedCheck{
		{name: "missing_fields", run: checkMissingFields},
		{name: "duplicates", run: checkDuplicates},
		{name: "format_consistency", run: func(t *dataset.Table) []Issue {
			return checkFormatConsistency(t, e.sampleSize)
		}},
		{name: "anomalies", run: checkAnomalies},
	}

	return e
}

// SetLimits overrides the structural bounds applied before checks run
func (e *Engine) SetLimits(maxRows, minColumns int) {
	if maxRows > 0 {
		e.maxRows = maxRows
	}
	if minColumns > 0 {
		e.minColumns = minColumns
	}
}

// SetSampleSize overrides the format-check sampling cap
func (e *Engine) SetSampleSize(n int) {
	if n > 0 {
		e.sampleSize = n
	}
}

// SetParallel toggles concurrent check execution. Serial and parallel
// runs produce identical ranked output.
func (e *Engine) SetParallel(parallel bool) {
	e.parallel = parallel
}

// Analyze validates the table's structure, runs every check, and returns
// the ranked result. A structural failure aborts before any check runs;
// a single check failing contributes zero issues but never aborts the run.
func (e *Engine) Analyze(ctx context.Context, t *dataset.Table) (*AnalysisResult, error) {
	start := time.Now()

	if err := validation.ValidateTable(t, e.minColumns, e.maxRows); err != nil {
		return nil, fmt.Errorf("structural validation: %w", err)
	}

	e.logger.InfoContext(ctx, "starting quality analysis",
		slog.Int("rows", t.RowCount()),
		slog.Int("columns", t.ColumnCount()),
		slog.Bool("parallel", e.parallel),
	)

	results := make([][]Issue, len(e.checks))
	if e.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, check := range e.checks {
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = e.runCheck(gctx, check, t)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("analysis cancelled: %w", err)
		}
	} else {
		for i, check := range e.checks {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("analysis cancelled: %w", err)
			}
			results[i] = e.runCheck(ctx, check, t)
		}
	}

	var issues []Issue
	for _, r := range results {
		issues = append(issues, r...)
	}

	// Stable sort keeps each check's own emission order inside a tier
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.Rank() < issues[j].Severity.Rank()
	})

	result := &AnalysisResult{
		ID:     uuid.New().String(),
		Issues: issues,
		Meta: Metadata{
			Rows:        t.RowCount(),
			Columns:     t.ColumnCount(),
			ColumnNames: t.ColumnNames(),
		},
	}

	critical, warning, info := result.CountBySeverity()
	e.logger.InfoContext(ctx, "quality analysis complete",
		slog.String("analysis_id", result.ID),
		slog.Int("issues", len(issues)),
		slog.Int("critical", critical),
		slog.Int("warning", warning),
		slog.Int("info", info),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// runCheck executes a single check with panic isolation: a failing check
// is logged and contributes zero issues instead of aborting the run.
func (e *Engine) runCheck(ctx context.Context, check namedCheck, t *dataset.Table) (issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.ErrorContext(ctx, "quality check failed, skipping",
				slog.String("check", check.name),
				slog.Any("panic", r),
			)
			issues = nil
		}
	}()

	issues = check.run(t)

	e.logger.DebugContext(ctx, "quality check complete",
		slog.String("check", check.name),
		slog.Int("issues", len(issues)),
	)

	return issues
}
