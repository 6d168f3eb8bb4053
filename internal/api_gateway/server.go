package api_gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/backoffice-ledger/internal/api_gateway/handler"
	"github.com/backoffice-ledger/internal/api_gateway/middleware"
	"github.com/backoffice-ledger/internal/api_gateway/service"
	"github.com/backoffice-ledger/internal/config"
)

// Services bundles the business services exposed over HTTP
type Services struct {
	Accounts     service.AccountService
	Journals     service.JournalService
	Reports      service.ReportService
	Catalog      service.CatalogService
	Transactions service.OrderService
	Users        service.UserService
	Dashboard    service.DashboardService

	// Checks are probed by GET /health, keyed by dependency name
	Checks map[string]HealthCheck
}

// Server handles HTTP requests and manages the application's lifecycle
type Server struct {
	logger     *slog.Logger // For structured logging
	httpServer *http.Server // Underlying HTTP server
	httpRouter *gin.Engine  // Gin router instance
}

// NewServer creates and configures a new HTTP server with the given services
func NewServer(log *slog.Logger, cfg *config.Config, tokens middleware.TokenParser, svc Services) *Server {
	production := cfg.Application.Env == "production"
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()

	setupRouter(log, httpRouter, tokens, handlers{
		accounts:     handler.NewAccountHandler(log, svc.Accounts),
		journals:     handler.NewJournalHandler(log, svc.Journals, svc.Reports),
		reports:      handler.NewReportHandler(log, svc.Reports),
		catalog:      handler.NewCatalogHandler(log, svc.Catalog, svc.Users),
		transactions: handler.NewTransactionHandler(log, svc.Transactions),
		users:        handler.NewUserHandler(log, svc.Users, production),
		dashboard:    handler.NewDashboardHandler(log, svc.Dashboard),
		checks:       svc.Checks,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:     log,
		httpServer: httpServer,
		httpRouter: httpRouter,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpRouter
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server, waiting at most the write
// timeout for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.httpServer.WriteTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}
	return nil
}
