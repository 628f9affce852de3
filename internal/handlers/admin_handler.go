package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/cache"
	"github.com/TeknoZest/damenschstorefront/pkg/errors"
)

// AdminHandler serves operator endpoints
type AdminHandler struct {
	cache  cache.Cache
	logger *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(c cache.Cache, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{cache: c, logger: logger}
}

// PurgeCache handles DELETE /api/v1/admin/cache
// @Summary      Purge cached catalog data
// @Description  Deletes cache keys matching pattern ('*' wildcard). Defaults to every listing page.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        pattern  query     string  false  "Key pattern"  example(listing:women/tops:*)
// @Success      200  {object}  CachePurgeResponse
// @Failure      401  {object}  errors.StandardError
// @Failure      500  {object}  errors.StandardError
// @Router       /admin/cache [delete]
func (h *AdminHandler) PurgeCache(c *gin.Context) {
	pattern := c.DefaultQuery("pattern", cache.AllListingsPattern)

	if err := h.cache.DeleteByPattern(c.Request.Context(), pattern); err != nil {
		c.Error(errors.NewCacheError("purge", err))
		return
	}

	h.logger.Info("Cache purged",
		zap.String("pattern", pattern),
		zap.String("admin", c.GetString("username")),
	)
	c.JSON(http.StatusOK, CachePurgeResponse{Pattern: pattern, Status: "purged"})
}

// Health godoc
// @Summary      Health check endpoint
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Service: "storefront-listing"})
}
