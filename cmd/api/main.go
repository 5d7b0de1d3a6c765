package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"doclint/internal/config"
	"doclint/internal/database"
	"doclint/internal/database/migration"
	handlers "doclint/internal/http/handler"
	"doclint/internal/http/middleware"
	"doclint/internal/lint"
	"doclint/internal/otel"
	"doclint/internal/repository/postgres"
	"doclint/internal/service"
	"doclint/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Tracing first so the DB driver wrapper picks up the provider
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Metrics registry shared by the HTTP middleware and the lint service
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register http metrics: %v", err)
	}
	lintMetrics, err := service.NewLintMetrics(reg)
	if err != nil {
		log.Fatalf("failed to register lint metrics: %v", err)
	}

	// Lint engine configured from env
	engineOpts := []lint.Option{lint.WithoutRules(cfg.Lint.DisabledRules...)}
	if cfg.Lint.ReportExternalLinks {
		engineOpts = append(engineOpts, lint.WithExternalLinks())
	}
	engine := lint.NewEngine(engineOpts...)

	// Initialize repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	runRepo := postgres.NewLintRunPostgres(db)
	docSvc := service.NewDocumentService(objStore, docRepo, cfg.Lint.MaxDocumentBytes)
	lintSvc := service.NewLintService(engine, objStore, docRepo, runRepo, lintMetrics)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit(cfg.Lint.MaxDocumentBytes),
	})

	// Register global middleware
	app.Use(middleware.Tracing())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMW.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, docSvc, lintSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// bodyLimit leaves some slack over the document limit for multipart framing.
func bodyLimit(maxDoc int64) int {
	if maxDoc <= 0 {
		return 16 << 20
	}
	return int(maxDoc) + (1 << 20)
}
