package service

import (
	"context"
	"log/slog"
)

// AutoLookup performs the single startup lookup for defaultCity. It is skipped
// with a warning when the API key has not been injected.
func AutoLookup(ctx context.Context, svc *LookupService, defaultCity string, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	if !svc.Configured() {
		logger.Warn("API key has not been replaced yet")
		logger.Warn("This is normal in local development")
		logger.Warn("The key will be injected during deployment")
		return
	}

	summary, err := svc.Lookup(ctx, defaultCity)
	if err != nil {
		logger.Error("startup lookup failed", "city", defaultCity, "error", err)
		return
	}
	logger.Info("startup lookup",
		"city", summary.City,
		"country", summary.Country,
		"temperature_c", summary.Temperature,
		"description", summary.Description,
	)
}
