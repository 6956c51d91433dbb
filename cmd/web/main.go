// Command web runs the crmkit HTTP server: quality analysis uploads,
// the assist endpoints, health, and metrics.
package main

import (
	"context"
	"log/slog"
	"os"

	"crmkit/internal/app"
)

func main() {
	ctx := context.Background()

	application, err := app.NewApplication(ctx)
	if err != nil {
		slog.Error("failed to create application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.ErrorContext(ctx, "application exited with error",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}
