// Command crmcheck analyzes a CRM export file from the command line and
// prints the markdown quality report to stdout. Narration requires
// CRMKIT_LLM_API_KEY; without it the report carries an inline note.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"crmkit/internal/config"
	"crmkit/internal/infrastructure"
	"crmkit/internal/llm"
	"crmkit/internal/services"
)

func main() {
	inFile := flag.String("in", "", "path to the CSV or XLSX file to analyze")
	narrate := flag.Bool("narrate", false, "include AI narration (requires CRMKIT_LLM_API_KEY)")
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "usage: crmcheck -in <file.csv|file.xlsx> [-narrate]")
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// CLI output goes to stdout; keep logs out of the report
	cfg.Logging.Output = "file"

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	narrator := llm.Disabled()
	if *narrate && cfg.LLM.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.LLM, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: LLM client unavailable: %v\n", err)
		} else {
			narrator = client
		}
	}

	svc := services.NewQualityService(cfg, narrator, nil, logger)

	f, err := os.Open(*inFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	report, err := svc.AnalyzeUpload(ctx, *inFile, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(report.Report)
}
