package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/backoffice-ledger/internal/platform/security"
)

const (
	// ClaimsKey is the context key holding the caller's *security.Claims
	ClaimsKey = "auth_claims"

	// TokenCookie is read when no Authorization header is sent
	TokenCookie = "token"
)

// TokenParser verifies a raw session token
type TokenParser interface {
	Parse(raw string) (*security.Claims, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// claims for later handlers.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication token is required")
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuthenticate stores the claims when a valid token is present and
// lets anonymous requests through.
func OptionalAuthenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if claims, err := tokens.Parse(raw); err == nil {
				c.Set(ClaimsKey, claims)
			}
		}
		c.Next()
	}
}

// RequireRole lets the request through only when the authenticated caller
// holds one of roles. It must run after Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication token is required")
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		abortWithError(c, http.StatusForbidden, "FORBIDDEN", "Role "+claims.Role+" is not allowed to access this resource")
	}
}

// GetClaims returns the authenticated caller, if any.
func GetClaims(c *gin.Context) (*security.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*security.Claims)
	return claims, ok && claims != nil
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}
