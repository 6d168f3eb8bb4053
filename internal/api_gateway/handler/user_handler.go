package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/backoffice-ledger/internal/api_gateway/middleware"
	"github.com/backoffice-ledger/internal/api_gateway/service"
)

// UserHandler handles registration, login and user management
type UserHandler struct {
	userService  service.UserService
	logger       *slog.Logger
	secureCookie bool
}

// NewUserHandler creates a new user handler. secureCookie marks the session
// cookie as HTTPS only.
func NewUserHandler(logger *slog.Logger, userService service.UserService, secureCookie bool) *UserHandler {
	return &UserHandler{
		userService:  userService,
		logger:       logger,
		secureCookie: secureCookie,
	}
}

// Register creates a user. Only an admin may register another admin.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var callerRole string
	if claims, ok := middleware.GetClaims(c); ok {
		callerRole = claims.Role
	}

	u, err := h.userService.Register(c.Request.Context(), req.input(callerRole))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Info("User registered", "user_id", u.ID, "role", u.Role)
	RespondCreated(c, u)
}

// Login verifies credentials and returns a signed token, also set as an
// HTTP-only cookie.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	maxAge := int(time.Until(res.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, res.Token, maxAge, "/", "", h.secureCookie, true)

	RespondOK(c, &LoginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.UTC().Format(time.RFC3339),
		User:      res.User,
	})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, users)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondOK(c, u)
}

// Delete removes a user. Users who still own orders answer 409.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	RespondDeleted(c, id)
}
