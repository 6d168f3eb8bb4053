package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/backoffice-ledger/internal/api_gateway/service"
)

// DashboardHandler serves the order dashboard figures
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *slog.Logger
}

func NewDashboardHandler(logger *slog.Logger, dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Summary counts orders per status.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.StatusSummary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, summary)
}

// MonthlyTotals returns completed order counts per month of the current year.
func (h *DashboardHandler) MonthlyTotals(c *gin.Context) {
	totals, err := h.dashboardService.MonthlyTotals(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, totals)
}
