package api_gateway

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/backoffice-ledger/internal/api_gateway/handler"
	"github.com/backoffice-ledger/internal/api_gateway/middleware"
	"github.com/backoffice-ledger/internal/domain/user"
)

// handlers groups the HTTP handlers mounted by setupRouter
type handlers struct {
	accounts     *handler.AccountHandler
	journals     *handler.JournalHandler
	reports      *handler.ReportHandler
	catalog      *handler.CatalogHandler
	transactions *handler.TransactionHandler
	users        *handler.UserHandler
	dashboard    *handler.DashboardHandler
	checks       map[string]HealthCheck
}

// setupRouter configures API routes and middleware for the application
func setupRouter(logger *slog.Logger, r *gin.Engine, tokens middleware.TokenParser, h handlers) {
	handler.RegisterValidators()

	// correlation id first so recovery and access logs can carry it
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	authed := middleware.Authenticate(tokens)
	admin := []gin.HandlerFunc{authed, middleware.RequireRole(string(user.RoleAdmin))}

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", middleware.OptionalAuthenticate(tokens), h.users.Register)
			users.POST("/login", h.users.Login)
			users.GET("/list", authed, h.users.List)
			users.GET("/:id", authed, h.users.GetByID)
			users.DELETE("/delete/:id", append(admin, h.users.Delete)...)
		}

		accounts := v1.Group("/accounts")
		{
			accounts.POST("", append(admin, h.accounts.Create)...)
			accounts.GET("/list", authed, h.accounts.List)
			accounts.GET("/accounts-with-journals", authed, h.accounts.WithJournals)
			accounts.GET("/:id", authed, h.accounts.GetByID)
			accounts.PUT("/:id", append(admin, h.accounts.Update)...)
			accounts.DELETE("/:id", append(admin, h.accounts.Delete)...)
		}

		journals := v1.Group("/journals")
		{
			journals.POST("", append(admin, h.journals.Create)...)
			journals.GET("/list", authed, h.journals.List)
			journals.GET("/export", authed, h.journals.Export)
			journals.DELETE("/delete-all-journals", append(admin, h.journals.DeleteAll)...)
			journals.GET("/:id", authed, h.journals.GetByID)
			journals.PUT("/:id", append(admin, h.journals.Update)...)
			journals.DELETE("/:id", append(admin, h.journals.Delete)...)
		}

		balance := v1.Group("/balance", authed)
		{
			balance.GET("/calculate-totals", h.reports.CalculateTotals)
			balance.GET("/total-balance", h.reports.TrialBalance)
			balance.GET("/pendapatan-beban", h.reports.IncomeStatement)
			balance.GET("/general-ledger", h.reports.GeneralLedger)
			balance.GET("/export-total-balance", h.reports.ExportTrialBalance)
			balance.GET("/export-pendapatan-beban", h.reports.ExportIncomeStatement)
			balance.GET("/export-general-ledger", h.reports.ExportGeneralLedger)
			balance.GET("/export-history", h.reports.ExportHistory)
		}

		products := v1.Group("/products")
		{
			products.POST("", append(admin, h.catalog.CreateProduct)...)
			products.GET("/list", h.catalog.ListProducts)
			products.GET("/:id", h.catalog.GetProduct)
			products.PUT("/:id", append(admin, h.catalog.UpdateProduct)...)
			products.DELETE("/:id", append(admin, h.catalog.DeleteProduct)...)
		}

		categories := v1.Group("/categories")
		{
			categories.POST("", append(admin, h.catalog.CreateCategory)...)
			categories.GET("/list", h.catalog.ListCategories)
			categories.DELETE("/:id", append(admin, h.catalog.DeleteCategory)...)
		}

		v1.POST("/comments", authed, h.catalog.AddComment)

		transactions := v1.Group("/transactions")
		{
			transactions.POST("/create", authed, h.transactions.Create)
			transactions.GET("/list", authed, h.transactions.List)
			transactions.GET("/user/:userId", authed, h.transactions.ListByUser)
			transactions.GET("/:id", authed, h.transactions.GetByID)
			transactions.PUT("/update/:id", append(admin, h.transactions.Update)...)
			transactions.DELETE("/delete/:id", append(admin, h.transactions.Delete)...)
		}

		dashboard := v1.Group("/dashboard", authed)
		{
			dashboard.GET("/summary", h.dashboard.Summary)
			dashboard.GET("/total-transactions-per-month", h.dashboard.MonthlyTotals)
		}
	}

	r.GET("/health", healthHandler(logger, h.checks))
}
