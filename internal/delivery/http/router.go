package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, lookups Lookuper, defaultCity string, reg *prometheus.Registry) {
	handler := NewHandler(lookups, defaultCity)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// Page and HTML fragments
	app.Get("/", handler.Index)
	app.Get("/weather", handler.GetWeatherFragment)

	if reg != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/weather", handler.GetWeather)
		api.Get("/lookups", handler.GetLookups)
	}
}
