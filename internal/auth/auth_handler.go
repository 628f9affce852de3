package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/TeknoZest/damenschstorefront/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler issues admin tokens for the operational endpoints
// (cache purge). Storefront shoppers never authenticate here.
type AuthHandler struct {
	jwtManager    *JWTManager
	adminUsername string
	adminPassword string
	logger        *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwtManager *JWTManager, adminUsername, adminPassword string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		jwtManager:    jwtManager,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

// LoginRequest represents the admin login request
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"change-me"`
}

// LoginResponse represents the login response with the issued token
type LoginResponse struct {
	Token     string    `json:"token"`
	Type      string    `json:"type" example:"Bearer"`
	ExpiresIn int       `json:"expires_in" example:"600"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /api/v1/auth/login
// @Summary      Admin login
// @Description  Returns a short-lived JWT for the admin endpoints.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Admin credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  errors.StandardError
// @Failure      401      {object}  errors.StandardError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidationError("invalid request", "username or password"))
		return
	}

	if !h.validCredentials(req.Username, req.Password) {
		h.logger.Warn("Invalid admin credentials", zap.String("username", req.Username))
		c.Error(errors.NewUnauthorized("invalid credentials", "username or password incorrect"))
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateToken(req.Username)
	if err != nil {
		c.Error(errors.NewInternalError("failed to generate token", err))
		return
	}

	h.logger.Info("Admin logged in", zap.String("username", req.Username), zap.Time("expires_at", expiresAt))

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		Type:      "Bearer",
		ExpiresIn: int(h.jwtManager.TTL().Seconds()),
		ExpiresAt: expiresAt,
	})
}

func (h *AuthHandler) validCredentials(username, password string) bool {
	if h.adminPassword == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.adminPassword)) == 1
	return userOK && passOK
}
