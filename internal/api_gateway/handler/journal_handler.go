package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/backoffice-ledger/internal/api_gateway/middleware"
	"github.com/backoffice-ledger/internal/api_gateway/service"
)

// JournalHandler handles HTTP requests for journals and their details
type JournalHandler struct {
	journalService service.JournalService
	reportService  service.ReportService
	logger         *slog.Logger
}

// NewJournalHandler creates a new journal handler. The report service backs
// the general journal export.
func NewJournalHandler(logger *slog.Logger, journalService service.JournalService, reportService service.ReportService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		reportService:  reportService,
		logger:         logger,
	}
}

func (h *JournalHandler) Create(c *gin.Context) {
	var req JournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid journal request", "error", err)
		bindError(c, err)
		return
	}

	view, err := h.journalService.CreateJournal(c.Request.Context(), req.draft())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondCreated(c, view)
}

// List returns journals inside the optional date range, newest first.
func (h *JournalHandler) List(c *gin.Context) {
	var q DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	r, err := q.rng()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	views, err := h.journalService.ListJournals(c.Request.Context(), r)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, views)
}

func (h *JournalHandler) GetByID(c *gin.Context) {
	view, err := h.journalService.GetJournal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, view)
}

// Update replaces a journal with its details.
func (h *JournalHandler) Update(c *gin.Context) {
	var req JournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid journal request", "error", err)
		bindError(c, err)
		return
	}

	view, err := h.journalService.UpdateJournal(c.Request.Context(), c.Param("id"), req.draft())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, view)
}

func (h *JournalHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.journalService.DeleteJournal(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondDeleted(c, id)
}

// DeleteAll wipes every journal and reports how many were removed.
func (h *JournalHandler) DeleteAll(c *gin.Context) {
	n, err := h.journalService.DeleteAllJournals(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Warn("All journals deleted",
		"deleted", n,
		"correlation_id", middleware.GetCorrelationID(c),
	)
	RespondOK(c, gin.H{"deleted": n})
}

// Export streams the general journal as a spreadsheet.
func (h *JournalHandler) Export(c *gin.Context) {
	var q DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	r, err := q.rng()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	file, err := h.reportService.ExportGeneralJournal(c.Request.Context(), r, requester(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondAttachment(c, file)
}

// requester names the caller in export audit records.
func requester(c *gin.Context) string {
	if claims, ok := middleware.GetClaims(c); ok {
		return claims.UserID
	}
	return ""
}
