package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/backoffice-ledger/internal/api_gateway/service"
	"github.com/backoffice-ledger/internal/domain/account"
)

// AccountHandler handles HTTP requests for the chart of accounts
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Create handles creation of a new account, rejecting a taken account_code
func (h *AccountHandler) Create(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid account request", "error", err)
		bindError(c, err)
		return
	}

	acc, err := h.accountService.CreateAccount(c.Request.Context(), req.Name, req.AccountCode, account.Type(req.AccountType))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondCreated(c, acc)
}

// List returns the chart of accounts
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, accounts)
}

// GetByID retrieves an account by its ID, returning 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	acc, err := h.accountService.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, acc)
}

func (h *AccountHandler) Update(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid account request", "error", err)
		bindError(c, err)
		return
	}

	acc, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("id"), req.Name, req.AccountCode, account.Type(req.AccountType))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, acc)
}

// Delete removes an account. Accounts still referenced by journals answer 409.
func (h *AccountHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.accountService.DeleteAccount(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondDeleted(c, id)
}

// WithJournals lists every account with its postings inside the optional
// date range.
func (h *AccountHandler) WithJournals(c *gin.Context) {
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

	activity, err := h.accountService.AccountsWithJournals(c.Request.Context(), r)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, activity)
}
