package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice-ledger/internal/platform/security"
)

func newAuthRouter(tokens TokenParser, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CorrelationID())
	router.GET("/protected", append(handlers, func(c *gin.Context) {
		claims, _ := GetClaims(c)
		userID := ""
		if claims != nil {
			userID = claims.UserID
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})...)
	return router
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestAuthenticate(t *testing.T) {
	tokens := security.NewTokenManager("0123456789abcdef0123", time.Hour, "backoffice")
	adminToken, _, err := tokens.Issue("u-admin", "admin")
	require.NoError(t, err)

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
		wantUser   string
	}{
		{
			name:       "bearer header",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+adminToken) },
			wantStatus: http.StatusOK,
			wantUser:   "u-admin",
		},
		{
			name:       "lowercase scheme",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "bearer "+adminToken) },
			wantStatus: http.StatusOK,
			wantUser:   "u-admin",
		},
		{
			name:       "cookie",
			setup:      func(r *http.Request) { r.AddCookie(&http.Cookie{Name: TokenCookie, Value: adminToken}) },
			wantStatus: http.StatusOK,
			wantUser:   "u-admin",
		},
		{
			name:       "missing token",
			setup:      func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Basic "+adminToken) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-jwt") },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(tokens, Authenticate(tokens))
			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			tt.setup(req)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			body := decodeEnvelope(t, rr)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantUser, body["user_id"])
				return
			}
			assert.Equal(t, float64(http.StatusUnauthorized), body["code"])
			assert.Equal(t, "error", body["status"])
			assert.NotEmpty(t, body["correlation_id"])
			errorField := body["error"].(map[string]interface{})
			assert.Equal(t, "UNAUTHORIZED", errorField["code"])
		})
	}
}

func TestOptionalAuthenticate(t *testing.T) {
	tokens := security.NewTokenManager("0123456789abcdef0123", time.Hour, "backoffice")
	userToken, _, err := tokens.Issue("u-1", "user")
	require.NoError(t, err)

	t.Run("Anonymous", func(t *testing.T) {
		router := newAuthRouter(tokens, OptionalAuthenticate(tokens))
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "", decodeEnvelope(t, rr)["user_id"])
	})

	t.Run("InvalidTokenIsIgnored", func(t *testing.T) {
		router := newAuthRouter(tokens, OptionalAuthenticate(tokens))
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer expired.or.bogus")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		router := newAuthRouter(tokens, OptionalAuthenticate(tokens))
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+userToken)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, "u-1", decodeEnvelope(t, rr)["user_id"])
	})
}

func TestRequireRole(t *testing.T) {
	tokens := security.NewTokenManager("0123456789abcdef0123", time.Hour, "backoffice")
	adminToken, _, _ := tokens.Issue("u-admin", "admin")
	userToken, _, _ := tokens.Issue("u-1", "user")

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantCode   string
	}{
		{"admin allowed", adminToken, http.StatusOK, ""},
		{"user forbidden", userToken, http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(tokens, Authenticate(tokens), RequireRole("admin"))
			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				errorField := decodeEnvelope(t, rr)["error"].(map[string]interface{})
				assert.Equal(t, tt.wantCode, errorField["code"])
			}
		})
	}

	t.Run("WithoutAuthenticate", func(t *testing.T) {
		router := newAuthRouter(tokens, RequireRole("admin"))
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetClaims(c)
	assert.False(t, ok)

	c.Set(ClaimsKey, "not claims")
	_, ok = GetClaims(c)
	assert.False(t, ok)

	c.Set(ClaimsKey, &security.Claims{UserID: "u-1", Role: "user"})
	claims, ok := GetClaims(c)
	require.True(t, ok)
	assert.Equal(t, "u-1", claims.UserID)
}
