package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ratewatch/internal/adapters"
	"ratewatch/internal/adapters/cache"
	chartadapter "ratewatch/internal/adapters/chart"
	"ratewatch/internal/adapters/jsonfile"
	"ratewatch/internal/adapters/nbapi"
	"ratewatch/internal/adapters/postgres"
	"ratewatch/internal/adapters/telegram"
	"ratewatch/internal/api"
	"ratewatch/internal/config"
	"ratewatch/internal/ingest"
	"ratewatch/internal/ingest/handler"
	"ratewatch/internal/platform/db"
	httpserver "ratewatch/internal/platform/http"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	if len(appCfg.Rates.Currencies) == 0 {
		return errors.New("at least one currency code is required")
	}
	if len(appCfg.Rates.Endpoints) == 0 {
		return errors.New("at least one rate endpoint is required")
	}
	if appCfg.Telegram.Enabled && (appCfg.Telegram.Token == "" || appCfg.Telegram.ChatID == "") {
		return errors.New("telegram bot token and chat id are required when telegram is enabled")
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// History store backend
	store, cleanup, err := buildStore(startupCtx, appCfg)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize history store")
		return err
	}
	defer cleanup()
	logrus.Infof("✅ History store (%s) ready", appCfg.Storage.Backend)

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External collaborators
	rateSource := nbapi.NewClient(baseHTTPClient, appCfg.Rates.Endpoints)

	var notifier adapters.Notifier = telegram.Disabled{}
	if appCfg.Telegram.Enabled {
		notifier = telegram.NewNotifier(baseHTTPClient, appCfg.Telegram.Token, appCfg.Telegram.ChatID)
	}

	renderer := chartadapter.NewRenderer()
	chartCache, err := cache.NewChartCache(64)
	if err != nil {
		logrus.WithError(err).Error("Failed to create chart cache")
		return err
	}
	defer chartCache.Close()

	// Ingestion cycle and scheduler
	cycle := ingest.NewCycle(
		ingest.Config{Codes: appCfg.Rates.Currencies, WindowDays: appCfg.Rates.ChartWindowDays},
		rateSource, store, notifier, renderer,
	)
	scheduler := ingest.NewScheduler(cycle, appCfg.Scheduler.Cron)
	// Ensure scheduler stops before the store backend closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	rateHandler := handler.NewHandler(store, cycle, renderer, chartCache, appCfg.Rates.Currencies, appCfg.Rates.ChartWindowDays)
	router := api.NewRouter(rateHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// buildStore picks the configured history backend. The file store is the
// default; the Postgres backend migrates its schema on startup.
func buildStore(ctx context.Context, appCfg *config.AppConfig) (adapters.HistoryStore, func(), error) {
	switch appCfg.Storage.Backend {
	case "", "file":
		return jsonfile.NewStore(appCfg.Storage.FilePath), func() {}, nil
	case "postgres":
		dsn := appCfg.DbServer.GetConnectionStr()
		if err := db.Migrate(ctx, dsn); err != nil {
			return nil, nil, err
		}
		pool, err := db.CreatePoolAndPing(ctx, appCfg.DbServer)
		if err != nil {
			return nil, nil, err
		}
		logrus.Info("✅ Postgres connection successful")
		return postgres.NewHistoryRepository(pool), pool.Close, nil
	default:
		return nil, nil, errors.New("unknown storage backend: " + appCfg.Storage.Backend)
	}
}
