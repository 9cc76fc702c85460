package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/little-league/external/sheets"
	"github.com/riskibarqy/little-league/internal/config"
	"github.com/riskibarqy/little-league/internal/domain/scoreoverride"
	cacherepo "github.com/riskibarqy/little-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/little-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/little-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/little-league/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/little-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/little-league/internal/platform/cache"
	"github.com/riskibarqy/little-league/internal/platform/logging"
	"github.com/riskibarqy/little-league/internal/platform/resilience"
	"github.com/riskibarqy/little-league/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Container holds every long-lived dependency of the league service.
type Container struct {
	Config    config.Config
	Logger    *logging.Logger
	Sheets    *sheets.Client
	Reconcile *usecase.ReconcileService
	Schedule  *usecase.ScheduleService
	Standings *usecase.StandingService
	Scores    *usecase.ScoreService
	Ticker    *usecase.TickerService

	db *sqlx.DB
}

// New wires repositories, the sheet client, and services from cfg.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	divisions, err := cfg.BuildDivisions()
	if err != nil {
		return nil, fmt.Errorf("build divisions: %w", err)
	}
	divisionRepo := memory.NewDivisionRepository(divisions)

	overrideRepo, db, err := openOverrideStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		overrideRepo = cacherepo.NewScoreOverrideRepository(overrideRepo, cache.NewStore[[]scoreoverride.Override](cfg.CacheTTL))
	}

	sheetClient := sheets.NewClient(sheets.ClientConfig{
		Timeout:        cfg.SourceTimeout,
		MaxRetries:     cfg.SourceMaxRetries,
		RetryBaseDelay: cfg.SourceRetryBaseDelay,
		RateLimit:      cfg.SourceRateLimit,
		RateBurst:      cfg.SourceRateBurst,
		CacheEnabled:   cfg.SourceCacheEnabled,
		CacheTTL:       cfg.SourceCacheTTL,
		UserAgent:      cfg.SourceUserAgent,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SourceCircuitEnabled,
			FailureThreshold: cfg.SourceCircuitFailureCount,
			OpenTimeout:      cfg.SourceCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SourceCircuitHalfOpenMax,
		},
	})

	reconcile := usecase.NewReconcileService(divisionRepo, overrideRepo, sheetClient, usecase.ReconcileConfig{
		MaxWorkers: cfg.SyncMaxWorkers,
	}, logger)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Sheets:    sheetClient,
		Reconcile: reconcile,
		Schedule:  usecase.NewScheduleService(divisionRepo, reconcile),
		Standings: usecase.NewStandingService(divisionRepo, reconcile, cfg.SyncMaxWorkers),
		Scores:    usecase.NewScoreService(divisionRepo, overrideRepo, reconcile, logger),
		Ticker:    usecase.NewTickerService(reconcile, usecase.TickerConfig{Location: cfg.Location}),
		db:        db,
	}, nil
}

// Warmup runs the first reconciliation when SyncOnStart is set. Failures are
// logged and the service starts with whatever it could load.
func (c *Container) Warmup(ctx context.Context) {
	if !c.Config.SyncOnStart {
		return
	}

	if _, err := c.Reconcile.ApplyOverrides(ctx); err != nil {
		c.Logger.WarnContext(ctx, "load score overrides failed", "error", err)
	}
	result, err := c.Reconcile.Refresh(ctx)
	if err != nil {
		c.Logger.ErrorContext(ctx, "initial sync failed", "error", err)
		return
	}
	for _, failure := range result.Failures() {
		c.Logger.WarnContext(ctx, "division kept previous schedule",
			"division", failure.Division,
			"message", failure.Message,
		)
	}
}

// NewHTTPServer builds the public API server.
func (c *Container) NewHTTPServer() (*http.Server, error) {
	handler := httpapi.NewHandler(httpapi.Services{
		Schedule:  c.Schedule,
		Standings: c.Standings,
		Scores:    c.Scores,
		Ticker:    c.Ticker,
		Reconcile: c.Reconcile,
		Sources:   c.Sheets,
	}, c.Logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		SwaggerEnabled:     c.Config.SwaggerEnabled,
		CORSAllowedOrigins: c.Config.CORSAllowedOrigins,
		AdminToken:         c.Config.AdminToken,
	}, c.Logger)

	server := &http.Server{
		Addr:         c.Config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  c.Config.ReadTimeout,
		WriteTimeout: c.Config.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func (c *Container) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func openOverrideStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (scoreoverride.Repository, *sqlx.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.OverrideStore)) {
	case config.OverrideStoreMemory:
		logger.Info("score overrides stored in memory")
		return memory.NewScoreOverrideRepository(), nil, nil
	case config.OverrideStoreSQLite:
		db, err := sqlite.Open(ctx, cfg.OverrideSQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("score overrides stored in sqlite", "path", cfg.OverrideSQLitePath)
		return sqlite.NewScoreOverrideRepository(db), db, nil
	case config.OverrideStorePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("score overrides stored in postgres", "db_name", dbNameFromURL(cfg.DBURL))
		return postgres.NewScoreOverrideRepository(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported override store %q", cfg.OverrideStore)
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters)
	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
