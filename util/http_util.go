// util/http_util.go
package util

import (
	aegis_errors "github.com/campusforge/aegis/errors"
	logger "github.com/campusforge/aegis/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// RespondWithDenial surfaces a policy denial. Distinct from
// RespondWithError: a denial is an expected outcome, not an application
// error, so it is not logged at error level.
func RespondWithDenial(c *gin.Context, reason string) {
	logger.Info("Request denied by policy",
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(403, gin.H{"denied": true, "reason": reason})
}

func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", aegis_errors.ErrUnauthorized
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", aegis_errors.ErrUnauthorized
	}
	return id, nil
}
