package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/backoffice-ledger/internal/api_gateway/service"
	"github.com/backoffice-ledger/internal/domain/shared"
)

// ReportHandler serves ledger reports and their spreadsheet exports
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// CalculateTotals returns debit and credit totals per account over the
// whole ledger.
func (h *ReportHandler) CalculateTotals(c *gin.Context) {
	totals, err := h.reportService.CalculateTotals(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, totals)
}

func (h *ReportHandler) TrialBalance(c *gin.Context) {
	q, ok := h.bindReportQuery(c)
	if !ok {
		return
	}
	r, err := q.rng()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	tb, err := h.reportService.TrialBalance(c.Request.Context(), r, q.Dated)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, tb)
}

// IncomeStatement returns revenue and expense accounts with the net result.
func (h *ReportHandler) IncomeStatement(c *gin.Context) {
	q, ok := h.bindReportQuery(c)
	if !ok {
		return
	}
	r, err := q.rng()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	is, err := h.reportService.IncomeStatement(c.Request.Context(), r)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, is)
}

func (h *ReportHandler) GeneralLedger(c *gin.Context) {
	q, ok := h.bindReportQuery(c)
	if !ok {
		return
	}
	r, err := q.rng()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	ledgers, err := h.reportService.GeneralLedger(c.Request.Context(), r, q.Account)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, ledgers)
}

func (h *ReportHandler) ExportTrialBalance(c *gin.Context) {
	h.export(c, func(q ReportQuery, r shared.DateRange, by string) (*service.ExportFile, error) {
		return h.reportService.ExportTrialBalance(c.Request.Context(), r, q.Dated, by)
	})
}

func (h *ReportHandler) ExportIncomeStatement(c *gin.Context) {
	h.export(c, func(_ ReportQuery, r shared.DateRange, by string) (*service.ExportFile, error) {
		return h.reportService.ExportIncomeStatement(c.Request.Context(), r, by)
	})
}

func (h *ReportHandler) ExportGeneralLedger(c *gin.Context) {
	h.export(c, func(q ReportQuery, r shared.DateRange, by string) (*service.ExportFile, error) {
		return h.reportService.ExportGeneralLedger(c.Request.Context(), r, q.Account, by)
	})
}

// ExportHistory lists the most recent spreadsheet exports. A missing limit is
// left to the service default.
func (h *ReportHandler) ExportHistory(c *gin.Context) {
	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	runs, err := h.reportService.ExportHistory(c.Request.Context(), q.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, runs)
}

func (h *ReportHandler) bindReportQuery(c *gin.Context) (ReportQuery, bool) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return q, false
	}
	return q, true
}

func (h *ReportHandler) export(c *gin.Context, build func(ReportQuery, shared.DateRange, string) (*service.ExportFile, error)) {
	q, ok := h.bindReportQuery(c)
	if !ok {
		return
	}
	r, err := q.rng()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	file, err := build(q, r, requester(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Info("Report exported",
		"file", file.Filename,
		"rows", file.Rows,
		"correlation_id", correlationID(c),
	)
	RespondAttachment(c, file)
}
