package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionIDHeader     = "X-Session-ID"
	SessionCookieName   = "sessionId"
	SessionIDContextKey = "session_id"
)

// SessionMiddleware identifies the storefront session a request belongs to.
// The header wins over the cookie; a fresh session gets a cookie that lives
// for ttl.
func SessionMiddleware(ttl time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionIDHeader)
		if sessionID == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				sessionID = cookie
			}
		}

		if sessionID == "" {
			sessionID = uuid.New().String()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				Expires:  time.Now().Add(ttl),
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			logger.Debug("Started storefront session", zap.String("session_id", sessionID))
		}

		c.Set(SessionIDContextKey, sessionID)
		c.Header(SessionIDHeader, sessionID)

		c.Next()
	}
}

// GetSessionID retrieves the session ID from the gin context
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDContextKey)
}
