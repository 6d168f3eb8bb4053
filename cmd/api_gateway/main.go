package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backoffice-ledger/internal/api_gateway"
	"github.com/backoffice-ledger/internal/api_gateway/service"
	"github.com/backoffice-ledger/internal/config"
	"github.com/backoffice-ledger/internal/data/mongo"
	"github.com/backoffice-ledger/internal/data/postgres"
	"github.com/backoffice-ledger/internal/domain/reportrun"
	"github.com/backoffice-ledger/internal/logger"
	"github.com/backoffice-ledger/internal/platform/persistence"
	"github.com/backoffice-ledger/internal/platform/security"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("api_gateway")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}
	if err := mongo.EnsureIndexes(appCtx, mongoDB.Database()); err != nil {
		log.Error("Failed to create MongoDB indexes", "error", err)
		os.Exit(1)
	}

	// The export audit trail lives in PostgreSQL and is optional.
	var (
		postgresDB *persistence.PostgresDB
		runRepo    reportrun.Repository
	)
	checks := map[string]api_gateway.HealthCheck{"mongodb": mongoDB.Ping}
	if cfg.Postgres.Enabled() {
		postgresDB, err = persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
		if err != nil {
			log.Error("Failed to initialize PostgreSQL", "error", err)
			os.Exit(1)
		}
		runRepo = postgres.NewReportRunRepository(log, postgresDB)
		checks["postgres"] = postgresDB.Ping
	} else {
		log.Info("PostgreSQL not configured, export history disabled")
	}

	db := mongoDB.Database()
	accountRepo := mongo.NewAccountRepository(log, db)
	journalRepo := mongo.NewJournalRepository(log, db)
	productRepo := mongo.NewProductRepository(log, db)
	categoryRepo := mongo.NewCategoryRepository(log, db)
	commentRepo := mongo.NewCommentRepository(log, db)
	orderRepo := mongo.NewTransactionRepository(log, db)
	userRepo := mongo.NewUserRepository(log, db)
	outboxRepo := mongo.NewOutboxRepository(log, db)

	hasher := security.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Application.Name)

	server := api_gateway.NewServer(log, cfg, tokens, api_gateway.Services{
		Accounts:     service.NewAccountService(log, accountRepo, journalRepo),
		Journals:     service.NewJournalService(log, journalRepo, accountRepo, outboxRepo),
		Reports:      service.NewReportService(log, accountRepo, journalRepo, runRepo),
		Catalog:      service.NewCatalogService(log, productRepo, categoryRepo, commentRepo, orderRepo),
		Transactions: service.NewOrderService(log, orderRepo, productRepo, userRepo, outboxRepo),
		Users:        service.NewUserService(log, userRepo, orderRepo, hasher, tokens),
		Dashboard:    service.NewDashboardService(orderRepo),
		Checks:       checks,
	})
	log.Info("REST server initialized")

	errChan := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	var shutdownErr error
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
		shutdownErr = err
	}

	if postgresDB != nil {
		postgresDB.Close()
	}

	if err := mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
		shutdownErr = err
	}

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if shutdownErr != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
