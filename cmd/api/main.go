package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Data-Science-Wallah/pdf-to-doc/internal/config"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/convert"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/database"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/database/migration"
	handlers "github.com/Data-Science-Wallah/pdf-to-doc/internal/http/handler"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/http/middleware"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/otel"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/repository/postgres"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/service"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()
	loc := time.Local

	// Initialize tracing; a shutdown func is always returned, even when
	// tracing is disabled or the exporter cannot be built.
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Object storage holds archived DOCX output. The stateless /convert
	// endpoint works without it, so it is only required when archiving is on.
	var objStore storage.Storage
	if cfg.Converter.ArchiveEnabled {
		objStore, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
	}

	// Conversion pipeline: staging, layout-aware conversion, post-processing,
	// preview extraction. All wired behind the service.
	stager := convert.NewStager(cfg.Converter.TempDir)
	converter := convert.NewLayoutConverter()
	convRepo := postgres.NewConversionPostgres(db)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	convSvc, err := service.NewConversionService(stager, converter, objStore, convRepo, cfg.Converter, reg)
	if err != nil {
		log.Fatalf("failed to initialize conversion service: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.Converter.MaxUploadBytes) + 1<<20, // headroom for multipart framing
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, convSvc, cfg.Converter.ArchiveEnabled)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
