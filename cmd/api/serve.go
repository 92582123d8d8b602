package main

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dataroom/docs"
	"dataroom/internal/config"
	"dataroom/internal/database"
	"dataroom/internal/database/migration"
	handlers "dataroom/internal/http/handler"
	"dataroom/internal/http/middleware"
	"dataroom/internal/lifecycle"
	"dataroom/internal/matching"
	"dataroom/internal/otel"
	"dataroom/internal/repository"
	"dataroom/internal/repository/memory"
	"dataroom/internal/repository/postgres"
	"dataroom/internal/service"
	"dataroom/internal/storage"
)

const shutdownTimeout = 10 * time.Second

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "create the Postgres schema on startup")
	rootCmd.AddCommand(serveCmd)
	rootCmd.RunE = serveCmd.RunE
}

func serve(ctx context.Context) error {
	cfg, log := bootstrap()
	defer log.Sync()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	var db *sql.DB
	if cfg.StoreDriver == config.StoreDriverPostgres {
		db, err = database.NewPostgres(cfg.Database, log)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		if autoMigrate {
			if err := migration.EnsureMigrated(ctx, db, log); err != nil {
				return err
			}
		}
	}

	objStore, err := storage.NewMinIO(cfg.MinIO, log)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	configureSwagger(cfg)
	app, err := newApp(serverDeps{
		cfg:      cfg,
		log:      log,
		db:       db,
		store:    objStore,
		registry: prometheus.DefaultRegisterer,
		gatherer: prometheus.DefaultGatherer,
	})
	if err != nil {
		return err
	}

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("server_listening", zap.String("addr", addr), zap.String("store", cfg.StoreDriver))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("server_shutting_down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("server_shutdown_failed", zap.Error(err))
		return err
	}
	return nil
}

type serverDeps struct {
	cfg      *config.AppConfig
	log      *zap.Logger
	db       *sql.DB
	store    storage.Storage
	registry prometheus.Registerer
	gatherer prometheus.Gatherer
}

type repositories struct {
	documents repository.DocumentRepository
	questions repository.QuestionRepository
	citations repository.CitationRepository
}

// newRepositories picks Postgres when a database handle is available and the
// in-memory stores otherwise.
func newRepositories(db *sql.DB) repositories {
	if db == nil {
		return repositories{
			documents: memory.NewDocumentStore(),
			questions: memory.NewQuestionStore(),
			citations: memory.NewCitationStore(),
		}
	}
	return repositories{
		documents: postgres.NewDocumentPostgres(db),
		questions: postgres.NewQuestionPostgres(db),
		citations: postgres.NewCitationPostgres(db),
	}
}

func newApp(d serverDeps) (*fiber.App, error) {
	httpMetrics, err := middleware.NewPrometheusMiddleware(d.registry)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}
	svcMetrics, err := service.NewMetrics(d.registry)
	if err != nil {
		return nil, fmt.Errorf("register service metrics: %w", err)
	}

	repos := newRepositories(d.db)
	ranker := matching.NewRanker(nil, matching.WithParallelism(d.cfg.Matching.ParallelThreshold, d.cfg.Matching.Workers))
	opts := []service.Option{
		service.WithLogger(d.log),
		service.WithMetrics(svcMetrics),
		service.WithPolicy(lifecycle.Policy{RestrictNeedsDocuments: d.cfg.Lifecycle.RestrictNeedsDocuments}),
		service.WithStrictReferences(d.cfg.Lifecycle.StrictReferences),
		service.WithPresignExpiry(d.cfg.MinIO.PresignExpiry),
	}
	docSvc := service.NewDocumentService(d.store, repos.documents, repos.questions, ranker, opts...)
	qSvc := service.NewQuestionService(repos.questions, repos.documents, repos.citations, ranker, opts...)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(d.log))
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))
	app.Use(httpMetrics.Handler())

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, d.db, docSvc, qSvc)

	// docs.SwaggerInfo is only read here; configureSwagger writes it before serving
	app.Get("/swagger/*", swagger.HandlerDefault)

	return app, nil
}

// configureSwagger points the generated docs at the public host.
// An empty host leaves the UI on whatever host served it.
func configureSwagger(cfg *config.AppConfig) {
	docs.SwaggerInfo.Host = cfg.AppHost
}
