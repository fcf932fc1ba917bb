package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/smartcity/weather-lookup/internal/domain"
	"github.com/smartcity/weather-lookup/internal/render"
	"github.com/smartcity/weather-lookup/pkg/utils"
)

// Lookuper is what the handlers need from the lookup service
type Lookuper interface {
	Lookup(ctx context.Context, cityName string) (domain.WeatherSummary, error)
	History(ctx context.Context, from, to time.Time) ([]domain.LookupRecord, error)
	Health(ctx context.Context) error
	Configured() bool
}

// Handler contains all HTTP handlers
type Handler struct {
	lookups     Lookuper
	defaultCity string
}

// NewHandler creates a new handler
func NewHandler(lookups Lookuper, defaultCity string) *Handler {
	return &Handler{
		lookups:     lookups,
		defaultCity: defaultCity,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	database := "ok"
	if err := h.lookups.Health(c.Context()); err != nil {
		database = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status":     "ok",
		"service":    "weather-lookup",
		"version":    "1.0.0",
		"database":   database,
		"configured": h.lookups.Configured(),
	})
}

// Index serves the lookup page
func (h *Handler) Index(c *fiber.Ctx) error {
	page, err := render.Index(h.defaultCity, h.lookups.Configured())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render page")
	}
	c.Type("html", "utf-8")
	return c.SendString(page)
}

// GetWeatherFragment returns the lookup result as an HTML fragment. Failures
// are answered with 200 so htmx swaps the error message into the page; the
// error kind is reported in the X-Lookup-Error header.
func (h *Handler) GetWeatherFragment(c *fiber.Ctx) error {
	summary, lookupErr := h.lookups.Lookup(c.Context(), cityParam(c))

	var (
		out string
		err error
	)
	if lookupErr != nil {
		c.Set("X-Lookup-Error", string(domain.KindOf(lookupErr)))
		out, err = render.Error(lookupErr)
	} else {
		out, err = render.Summary(summary)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render weather data")
	}

	c.Type("html", "utf-8")
	return c.SendString(out)
}

// GetWeather returns the lookup result as JSON
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	summary, err := h.lookups.Lookup(c.Context(), cityParam(c))
	if err != nil {
		body := &domain.ErrorBody{Message: err.Error()}
		var qe *domain.QueryError
		if errors.As(err, &qe) {
			body = qe.Body()
		}
		return c.Status(StatusFor(err)).JSON(domain.WeatherResponse{
			Success: false,
			Error:   body,
		})
	}

	return c.JSON(domain.WeatherResponse{
		Data:    &summary,
		Success: true,
	})
}

// GetLookups returns the lookup log within a time range
func (h *Handler) GetLookups(c *fiber.Ctx) error {
	ctx := c.Context()

	hours := utils.Clamp(c.QueryInt("hours", 24), 1, 720) // max 30 days

	to := time.Now()
	from := to.Add(-time.Duration(hours) * time.Hour)

	data, err := h.lookups.History(ctx, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch lookup history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// StatusFor maps a lookup error to the HTTP status of the JSON API
func StatusFor(err error) int {
	var qe *domain.QueryError
	if !errors.As(err, &qe) {
		return fiber.StatusInternalServerError
	}

	switch qe.Kind {
	case domain.KindEmptyInput:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindNotConfigured:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadGateway
	}
}

// cityParam copies the query value out of fiber's reusable request buffer;
// the lookup log keeps it after the handler returns.
func cityParam(c *fiber.Ctx) string {
	return strings.Clone(c.Query("city"))
}
