package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/RanaNomiRana/backend-afa/internal/adb"
	"github.com/RanaNomiRana/backend-afa/internal/analysis"
	"github.com/RanaNomiRana/backend-afa/internal/classifier"
	"github.com/RanaNomiRana/backend-afa/internal/config"
	"github.com/RanaNomiRana/backend-afa/internal/metrics"
	"github.com/RanaNomiRana/backend-afa/internal/normalize"
	"github.com/RanaNomiRana/backend-afa/internal/notifier"
	"github.com/RanaNomiRana/backend-afa/internal/repository"
	"github.com/RanaNomiRana/backend-afa/internal/server"
	"github.com/RanaNomiRana/backend-afa/internal/service"
)

func main() {
	defaultPath := "configs/config.yml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		defaultPath = p
	}
	cfgPath := flag.String("config", defaultPath, "Path to the YAML configuration file.")
	flag.Parse()

	bootLogger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		bootLogger.Debug(".env file not found, using system environment variables")
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		bootLogger.Fatal("Failed to load config", zap.String("path", *cfgPath), zap.Error(err))
	}

	logger, err := newLogger(cfg)
	if err != nil {
		bootLogger.Fatal("Failed to build logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	windowStart, _ := cfg.WindowStart()
	location, _ := cfg.Location()

	// Control database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.MigrateControl(cfg.Database.URL, logger); err != nil {
		logger.Fatal("Couldn't run control database migration", zap.Error(err))
	}

	stores := repository.NewNamespaceRegistry(db, cfg.Database.URL, cfg.Database.NamespacePrefix, logger)
	defer stores.Close()

	metrics.Register()

	spam, err := analysis.NewSpamMatcher(cfg.Analysis.SpamPatterns)
	if err != nil {
		logger.Fatal("Invalid spam patterns", zap.Error(err))
	}

	telegram, err := notifier.NewTelegram(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram notifier, continuing without it", zap.Error(err))
		telegram = nil
	}
	var alerts service.SuspiciousNotifier
	if telegram != nil {
		alerts = telegram
	}

	device := adb.NewDevice(adb.NewExecRunner(cfg.ADB.Path, cfg.ADB.Serial, logger))
	analysisOpts := service.AnalysisOptions{
		WindowStart: windowStart,
		Location:    location,
		Concurrency: cfg.Analysis.CorrelationConcurrency,
	}

	authService := service.NewAuthService(
		repository.NewInvestigatorRepository(db, logger),
		cfg.Auth.JWTSecret,
		cfg.TokenTTL(),
		logger,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := authService.Bootstrap(ctx, cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword); err != nil {
		logger.Fatal("Failed to create bootstrap investigator", zap.Error(err))
	}

	services := server.Services{
		Ingest:      service.NewIngestService(device, normalize.New(location), classifier.New(nil), alerts, logger),
		Analysis:    service.NewAnalysisService(spam, analysisOpts, logger),
		Reports:     service.NewReportService(analysisOpts, cfg.Analysis.ReportCorrelationLimit, logger),
		Connections: service.NewConnectionService(repository.NewConnectionRepository(db, logger), logger),
		Auth:        authService,
	}

	srv := server.NewServer(":"+cfg.Server.Port, services, stores, server.Options{AuthEnabled: cfg.Auth.Enabled}, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("Server failed", zap.Error(err))
		return
	}

	logger.Info("Application stopped.")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Log.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
