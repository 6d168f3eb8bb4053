package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/backoffice-ledger/internal/api_gateway/middleware"
	"github.com/backoffice-ledger/internal/api_gateway/service"
)

// CatalogHandler handles products, categories and product comments
type CatalogHandler struct {
	catalogService service.CatalogService
	userService    service.UserService
	logger         *slog.Logger
}

// NewCatalogHandler creates a new catalog handler. The user service resolves
// comment authors.
func NewCatalogHandler(logger *slog.Logger, catalogService service.CatalogService, userService service.UserService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		userService:    userService,
		logger:         logger,
	}
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid product request", "error", err)
		bindError(c, err)
		return
	}

	p, err := h.catalogService.CreateProduct(c.Request.Context(), req.draft())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondCreated(c, p)
}

// ListProducts returns products with their category and comments populated.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, p)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid product request", "error", err)
		bindError(c, err)
		return
	}

	p, err := h.catalogService.UpdateProduct(c.Request.Context(), c.Param("id"), req.draft())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, p)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondDeleted(c, id)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cat, err := h.catalogService.CreateCategory(c.Request.Context(), req.Name, req.Image)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondCreated(c, cat)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, categories)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondDeleted(c, id)
}

// AddComment posts a comment on a product under the caller's username.
func (h *CatalogHandler) AddComment(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	author, err := h.userService.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	comment, err := h.catalogService.AddComment(c.Request.Context(), req.ProductID, author.Username, req.Message)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondCreated(c, comment)
}
