package api_gateway

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/backoffice-ledger/internal/api_gateway/middleware"
	"github.com/backoffice-ledger/internal/api_gateway/service"
	"github.com/backoffice-ledger/internal/config"
	"github.com/backoffice-ledger/internal/domain/account"
	"github.com/backoffice-ledger/internal/domain/catalog"
	"github.com/backoffice-ledger/internal/domain/order"
	"github.com/backoffice-ledger/internal/platform/security"
)

type fakeTokens map[string]*security.Claims

func (f fakeTokens) Parse(raw string) (*security.Claims, error) {
	if c, ok := f[raw]; ok {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

var _ middleware.TokenParser = fakeTokens(nil)

type stubAccounts struct{ service.AccountService }

func (stubAccounts) ListAccounts(context.Context) ([]*account.Account, error) {
	return []*account.Account{}, nil
}

func (stubAccounts) DeleteAccount(context.Context, string) error { return nil }

type stubCatalog struct{ service.CatalogService }

func (stubCatalog) ListProducts(context.Context) ([]*service.ProductView, error) {
	return []*service.ProductView{}, nil
}

func (stubCatalog) ListCategories(context.Context) ([]*catalog.Category, error) {
	return []*catalog.Category{}, nil
}

type stubDashboard struct{ service.DashboardService }

func (stubDashboard) StatusSummary(context.Context) (order.StatusSummary, error) {
	return order.StatusSummary{}, nil
}

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Server: config.ServerConfig{Port: 8080, WriteTimeout: time.Second}}
	tokens := fakeTokens{
		"admin-token": {UserID: "u-admin", Role: "admin"},
		"user-token":  {UserID: "u-1", Role: "user"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(logger, cfg, tokens, Services{
		Accounts:  stubAccounts{},
		Catalog:   stubCatalog{},
		Dashboard: stubDashboard{},
	})
}

func TestRouter_Access(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"health is public", http.MethodGet, "/health", "", http.StatusOK},
		{"product list is public", http.MethodGet, "/api/v1/products/list", "", http.StatusOK},
		{"category list is public", http.MethodGet, "/api/v1/categories/list", "", http.StatusOK},
		{"accounts need a token", http.MethodGet, "/api/v1/accounts/list", "", http.StatusUnauthorized},
		{"accounts with user token", http.MethodGet, "/api/v1/accounts/list", "user-token", http.StatusOK},
		{"forged token", http.MethodGet, "/api/v1/accounts/list", "forged", http.StatusUnauthorized},
		{"delete account needs admin", http.MethodDelete, "/api/v1/accounts/a-1", "user-token", http.StatusForbidden},
		{"delete account as admin", http.MethodDelete, "/api/v1/accounts/a-1", "admin-token", http.StatusOK},
		{"dashboard needs a token", http.MethodGet, "/api/v1/dashboard/summary", "", http.StatusUnauthorized},
		{"dashboard with token", http.MethodGet, "/api/v1/dashboard/summary", "user-token", http.StatusOK},
		{"journal wipe needs admin", http.MethodDelete, "/api/v1/journals/delete-all-journals", "user-token", http.StatusForbidden},
		{"order update needs admin", http.MethodPut, "/api/v1/transactions/update/t-1", "user-token", http.StatusForbidden},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
			if tt.path != "/api/v1/nope" {
				assert.NotEmpty(t, rr.Header().Get(middleware.CorrelationIDHeader))
			}
		})
	}
}

func TestRouter_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Server: config.ServerConfig{Port: 8080, WriteTimeout: time.Second}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		checks     map[string]HealthCheck
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "no checks configured",
			wantStatus: http.StatusOK,
			wantBody:   []string{`"status":"ok"`},
		},
		{
			name: "all stores reachable",
			checks: map[string]HealthCheck{
				"mongodb":  func(context.Context) error { return nil },
				"postgres": func(context.Context) error { return nil },
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"mongodb":"ok"`, `"postgres":"ok"`},
		},
		{
			name: "one store down",
			checks: map[string]HealthCheck{
				"mongodb":  func(context.Context) error { return nil },
				"postgres": func(context.Context) error { return errors.New("dial tcp: connection refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   []string{`"status":"degraded"`, `"postgres":"unavailable"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(logger, cfg, fakeTokens{}, Services{Checks: tt.checks})

			rr := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, rr.Body.String(), want)
			}
			assert.NotContains(t, rr.Body.String(), "connection refused")
		})
	}
}

func TestServer_StopWithoutStart(t *testing.T) {
	srv := newTestServer()
	assert.NoError(t, srv.Stop(context.Background()))
}
