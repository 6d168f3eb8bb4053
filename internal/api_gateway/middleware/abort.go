package middleware

import (
	"github.com/gin-gonic/gin"
)

// abortWithError stops the chain with the same error envelope the handlers
// use.
func abortWithError(c *gin.Context, status int, code, message string) {
	response := gin.H{
		"code":   status,
		"status": "error",
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
	if correlationID := GetCorrelationID(c); correlationID != "" {
		response["correlation_id"] = correlationID
	}
	c.AbortWithStatusJSON(status, response)
}
