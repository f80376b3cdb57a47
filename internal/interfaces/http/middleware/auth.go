package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bookstore-vn/bookstore/internal/shared/constants"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
	"github.com/bookstore-vn/bookstore/internal/shared/utils"
)

const maxUserIDLength = 128

// AuthMiddleware trusts the shopper identity forwarded by the upstream
// authentication layer in the X-User-ID header.
type AuthMiddleware struct {
	logger logger.Interface
}

func NewAuthMiddleware(logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{logger: logger}
}

func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(constants.HeaderXUserID))
		if userID == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing user identity")
			c.Abort()
			return
		}
		if len(userID) > maxUserIDLength {
			m.logger.Warnw("rejected oversized user id", "length", len(userID), "path", c.Request.URL.Path)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid user identity")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID returns the identity set by RequireUser.
func GetUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok && userID != ""
}
