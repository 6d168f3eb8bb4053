package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/backoffice-ledger/internal/api_gateway/middleware"
	"github.com/backoffice-ledger/internal/api_gateway/service"
	"github.com/backoffice-ledger/internal/domain/user"
)

func registerBody(role string) map[string]string {
	return map[string]string{
		"username": "budi",
		"email":    "budi@example.com",
		"password": "rahasia123",
		"address":  "Jl. Merdeka 1",
		"role":     role,
	}
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("Anonymous caller", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(newTestLogger(), svc, false)

		in := service.RegisterInput{
			Username: "budi",
			Email:    "budi@example.com",
			Password: "rahasia123",
			Address:  "Jl. Merdeka 1",
		}
		svc.On("Register", mock.Anything, in).Return(&user.User{ID: "u-1", Username: "budi", PasswordHash: "secret-hash", Role: user.RoleUser}, nil)

		r := newTestRouter(nil)
		r.POST("/users/register", h.Register)

		rr := doJSON(t, r, http.MethodPost, "/users/register", registerBody(""))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.NotContains(t, rr.Body.String(), "secret-hash")
		svc.AssertExpectations(t)
	})

	t.Run("Admin caller role forwarded", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(newTestLogger(), svc, false)
		svc.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegisterInput) bool {
			return in.Role == user.RoleAdmin && in.CallerRole == user.RoleAdmin
		})).Return(&user.User{ID: "u-2", Role: user.RoleAdmin}, nil)

		r := newTestRouter(adminClaims())
		r.POST("/users/register", h.Register)

		assert.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/users/register", registerBody("admin")).Code)
		svc.AssertExpectations(t)
	})

	t.Run("Admin role refused", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(newTestLogger(), svc, false)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, user.ErrRoleNotAllowed)

		r := newTestRouter(userClaims())
		r.POST("/users/register", h.Register)

		rr := doJSON(t, r, http.MethodPost, "/users/register", registerBody("admin"))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(newTestLogger(), svc, false)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, user.ErrDuplicateUser{Field: "email", Value: "budi@example.com"})

		r := newTestRouter(nil)
		r.POST("/users/register", h.Register)

		assert.Equal(t, http.StatusConflict, doJSON(t, r, http.MethodPost, "/users/register", registerBody("")).Code)
	})

	t.Run("Invalid input", func(t *testing.T) {
		h := NewUserHandler(newTestLogger(), new(MockUserService), false)
		r := newTestRouter(nil)
		r.POST("/users/register", h.Register)

		body := registerBody("owner")
		body["email"] = "not-an-email"
		body["password"] = "short"
		rr := doJSON(t, r, http.MethodPost, "/users/register", body)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		fields := make(map[string]string)
		for _, d := range decode(t, rr).Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "must be a valid email address", fields["email"])
		assert.Equal(t, "must be at least 8", fields["password"])
		assert.Equal(t, "must be one of: admin user", fields["role"])
	})
}

func TestUserHandler_Login(t *testing.T) {
	t.Run("Success sets cookie", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(newTestLogger(), svc, true)
		expires := time.Now().Add(time.Hour)
		svc.On("Login", mock.Anything, "budi@example.com", "rahasia123").Return(&service.LoginResult{
			Token:     "signed.jwt.token",
			ExpiresAt: expires,
			User:      &user.User{ID: "u-1", Username: "budi"},
		}, nil)

		r := newTestRouter(nil)
		r.POST("/users/login", h.Login)

		rr := doJSON(t, r, http.MethodPost, "/users/login", map[string]string{
			"email":    "budi@example.com",
			"password": "rahasia123",
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var got LoginResponse
		decodeData(t, rr, &got)
		assert.Equal(t, "signed.jwt.token", got.Token)
		assert.Equal(t, "budi", got.User.Username)

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.TokenCookie, cookies[0].Name)
		assert.Equal(t, "signed.jwt.token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(newTestLogger(), svc, false)
		svc.On("Login", mock.Anything, "budi@example.com", "salah12345").Return(nil, user.ErrInvalidCredentials)

		r := newTestRouter(nil)
		r.POST("/users/login", h.Login)

		rr := doJSON(t, r, http.MethodPost, "/users/login", map[string]string{
			"email":    "budi@example.com",
			"password": "salah12345",
		})
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, rr.Result().Cookies())
	})
}

func TestUserHandler_Manage(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(newTestLogger(), svc, false)
	svc.On("ListUsers", mock.Anything).Return([]*user.User{{ID: "u-1"}, {ID: "u-2"}}, nil)
	svc.On("GetUser", mock.Anything, "u-9").Return(nil, user.ErrUserNotFound{Key: "u-9"})
	svc.On("DeleteUser", mock.Anything, "u-1").Return(user.ErrUserInUse{UserID: "u-1"})

	r := newTestRouter(adminClaims())
	r.GET("/users/list", h.List)
	r.GET("/users/:id", h.GetByID)
	r.DELETE("/users/delete/:id", h.Delete)

	rr := doJSON(t, r, http.MethodGet, "/users/list", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var got []user.User
	decodeData(t, rr, &got)
	assert.Len(t, got, 2)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/users/u-9", nil).Code)
	assert.Equal(t, http.StatusConflict, doJSON(t, r, http.MethodDelete, "/users/delete/u-1", nil).Code)
}
