package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/leaguevault/sleeper-sync/external/sleeper"
	"github.com/leaguevault/sleeper-sync/internal/config"
	"github.com/leaguevault/sleeper-sync/internal/infrastructure/repository/postgres"
	"github.com/leaguevault/sleeper-sync/internal/interfaces/httpapi"
	"github.com/leaguevault/sleeper-sync/internal/platform/logging"
	"github.com/leaguevault/sleeper-sync/internal/platform/resilience"
	"github.com/leaguevault/sleeper-sync/internal/usecase"
)

// App holds the wired service graph. The HTTP server and the sync
// coordinator share one process; the coordinator runs as a background
// goroutine started by the caller via Coordinator.Run.
type App struct {
	HTTPServer  *http.Server
	Coordinator *usecase.CoordinatorService
	DB          *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	dbURL, err := resolveDBURL(cfg.DBURL, cfg.DBURLFromEnv)
	if err != nil {
		return nil, fmt.Errorf("resolve db url: %w", err)
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres db=%s: %w", dbNameFromURL(dbURL), err)
	}

	leagueRepo := postgres.NewLeagueRepository(db)
	userRepo := postgres.NewUserRepository(db)
	syncRepo := postgres.NewSyncRepository(db)
	valuationRepo := postgres.NewValuationRepository(db)

	gateway := sleeper.NewClient(sleeper.ClientConfig{
		BaseURL:    cfg.SleeperBaseURL,
		Timeout:    cfg.SleeperTimeout,
		MaxRetries: cfg.SleeperMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SleeperCircuitEnabled,
			FailureThreshold: cfg.SleeperCircuitFailureCount,
			OpenTimeout:      cfg.SleeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SleeperCircuitHalfOpenMaxReq,
		},
	})

	frontier := usecase.NewFrontier()
	stateSvc := usecase.NewStateService(gateway, cfg.StateRefreshInterval, logger)
	discoverySvc := usecase.NewDiscoveryService(gateway, userRepo, leagueRepo, frontier, usecase.DiscoveryConfig{
		UserBatchSize: cfg.UserBatchSize,
		FanOut:        cfg.DiscoveryBatchSize,
		FrontierCap:   cfg.FrontierCap,
	}, logger)
	syncSvc := usecase.NewLeagueSyncService(gateway, leagueRepo, syncRepo, usecase.LeagueSyncConfig{
		GroupSize: cfg.LeagueBatchSize,
		PassCap:   cfg.FrontierCap,
	}, logger)
	coordinator := usecase.NewCoordinatorService(discoverySvc, syncSvc, stateSvc, frontier, usecase.CoordinatorConfig{
		Interval: cfg.SyncInterval,
	}, logger)

	valuationSvc := usecase.NewValuationService(valuationRepo, logger)

	handler := httpapi.NewHandler(valuationSvc, coordinator, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.SyncTriggerToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		HTTPServer:  server,
		Coordinator: coordinator,
		DB:          db,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
