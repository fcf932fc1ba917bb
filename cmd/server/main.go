package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	delivery "github.com/smartcity/weather-lookup/internal/delivery/http"
	"github.com/smartcity/weather-lookup/internal/metrics"
	"github.com/smartcity/weather-lookup/internal/repository/postgres"
	"github.com/smartcity/weather-lookup/internal/service"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	// Configuration
	cfg := loadConfig()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.logLevel()}))
	slog.SetDefault(log)
	if envErr != nil {
		log.Info("no .env file found, using system environment")
	}

	// Lookup log: PostgreSQL when reachable, in-memory otherwise
	var repo service.LookupRepository = postgres.NewMockRepository()
	if pool := connectDatabase(cfg, log); pool != nil {
		defer pool.Close()
		repo = postgres.NewPostgresRepository(pool)
	}

	// Dependency Injection: Services
	m := metrics.New()
	weatherSvc := service.NewWeatherService(cfg.OpenWeatherAPIKey,
		service.WithEndpoint(cfg.OpenWeatherEndpoint),
		service.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)
	lookupSvc := service.NewLookupService(weatherSvc, repo, m, log)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Weather Lookup v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 5*time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,HX-Request,HX-Target,HX-Current-URL",
	}))

	// Routes
	delivery.SetupRoutes(app, lookupSvc, cfg.DefaultCity, m.Registry)

	// Startup lookup for the default city, awaited on shutdown
	lookupSvc.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
		defer cancel()
		service.AutoLookup(ctx, lookupSvc, cfg.DefaultCity, log)
	})

	// Graceful shutdown
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	lookupSvc.WaitBackground()
	log.Info("server exited gracefully")
}

// connectDatabase returns a migrated pool, or nil when no database is usable
func connectDatabase(cfg *Config, log *slog.Logger) *pgxpool.Pool {
	if cfg.DatabaseURL == "" {
		log.Info("DATABASE_URL not set, keeping lookup log in memory")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err == nil {
		err = postgres.Migrate(ctx, pool)
	}
	if err != nil {
		log.Warn("could not use database, keeping lookup log in memory", "error", err)
		if pool != nil {
			pool.Close()
		}
		return nil
	}

	log.Info("connected to PostgreSQL")
	return pool
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
