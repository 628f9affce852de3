package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/TeknoZest/damenschstorefront/internal/auth"
	"github.com/TeknoZest/damenschstorefront/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware guards the admin routes with a Bearer JWT.
func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header", zap.String("path", c.Request.URL.Path))
			abortUnauthorized(c, "missing authorization header", "Header: Authorization")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			logger.Warn("Invalid authorization header format", zap.String("path", c.Request.URL.Path))
			abortUnauthorized(c, "invalid authorization header format", "Expected: Bearer <token>")
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			logger.Warn("Rejected token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if stderrors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "token expired", "Token has expired, please login again")
				return
			}
			abortUnauthorized(c, "invalid token", err.Error())
			return
		}

		c.Set("username", claims.Username)
		c.Set("user_id", claims.Subject)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message, details string) {
	stdErr := errors.NewUnauthorized(message, details)
	c.AbortWithStatusJSON(stdErr.HTTPStatus(), stdErr)
}
