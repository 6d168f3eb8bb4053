package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/backoffice-ledger/internal/api_gateway/middleware"
	"github.com/backoffice-ledger/internal/api_gateway/service"
)

// TransactionHandler handles HTTP requests for shop orders
type TransactionHandler struct {
	orderService service.OrderService
	logger       *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, orderService service.OrderService) *TransactionHandler {
	return &TransactionHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// Create places an order, reserving stock and pricing it with PPN.
func (h *TransactionHandler) Create(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid transaction request", "error", err)
		bindError(c, err)
		return
	}

	view, err := h.orderService.CreateTransaction(c.Request.Context(), req.input(claims.UserID))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondCreated(c, view)
}

func (h *TransactionHandler) List(c *gin.Context) {
	views, err := h.orderService.ListTransactions(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, views)
}

func (h *TransactionHandler) GetByID(c *gin.Context) {
	view, err := h.orderService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, view)
}

// ListByUser returns the orders placed for one user.
func (h *TransactionHandler) ListByUser(c *gin.Context) {
	views, err := h.orderService.ListUserTransactions(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, views)
}

// Update merges the given fields into the order. Stock is not adjusted.
func (h *TransactionHandler) Update(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid transaction update", "error", err)
		bindError(c, err)
		return
	}

	view, err := h.orderService.UpdateTransaction(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, view)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.orderService.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondDeleted(c, id)
}
