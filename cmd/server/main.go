package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/fertiplan/internal/config"
	"github.com/mamadbah2/fertiplan/internal/reference"
	"github.com/mamadbah2/fertiplan/internal/repository/mongodb"
	"github.com/mamadbah2/fertiplan/internal/repository/sheets"
	"github.com/mamadbah2/fertiplan/internal/scheduler"
	"github.com/mamadbah2/fertiplan/internal/server/handlers"
	"github.com/mamadbah2/fertiplan/internal/server/router"
	commandsvc "github.com/mamadbah2/fertiplan/internal/service/commands"
	recommendationsvc "github.com/mamadbah2/fertiplan/internal/service/recommendation"
	reportingsvc "github.com/mamadbah2/fertiplan/internal/service/reporting"
	weathersvc "github.com/mamadbah2/fertiplan/internal/service/weather"
	whatsappsvc "github.com/mamadbah2/fertiplan/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/fertiplan/pkg/clients/whatsapp"
	"github.com/mamadbah2/fertiplan/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(logger.Options{Level: cfg.Log.Level, Development: cfg.Log.Development}))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	catalog, err := reference.Load(cfg.Reference.TablesPath)
	if err != nil {
		baseLogger.Fatal("failed to load reference tables", zap.Error(err))
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancelStartup()

	var store mongodb.Repository
	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(startupCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI not set, recommendation archive disabled")
	}

	var ledger sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(startupCtx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		ledger = sheetsRepo
	} else {
		baseLogger.Warn("GOOGLE_SHEET_LEDGER_ID not set, recommendation ledger disabled")
	}

	recommendationSvc := recommendationsvc.NewService(catalog, store, ledger, baseLogger.Named("svc.recommendation"))
	analyzer := weathersvc.NewAnalyzer(catalog.Weather())

	routes := router.Handlers{
		Recommendations: handlers.NewRecommendationHandler(recommendationSvc, analyzer, baseLogger.Named("handlers.recommendation")),
		Catalog:         handlers.NewCatalogHandler(catalog),
	}

	var messagingSvc whatsappsvc.MessagingService
	if cfg.WhatsApp.Enabled() {
		sessions := whatsappsvc.NewSessionManager()
		dispatcher := commandsvc.NewService(recommendationSvc, sessions, baseLogger.Named("svc.commands"))
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc = whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, dispatcher, baseLogger.Named("svc.whatsapp"))
		routes.Webhook = handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))
	} else {
		baseLogger.Warn("WhatsApp credentials missing, chat channel disabled")
	}

	engine := router.New(routes, baseLogger.Named("router"))

	if cfg.DigestEnabled() {
		reportingSvc := reportingsvc.NewService(ledger, baseLogger.Named("svc.reporting"))
		sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, messagingSvc, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.Strings("crops", catalog.CropIDs()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
