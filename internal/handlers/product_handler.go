package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/catalog"
	"github.com/TeknoZest/damenschstorefront/internal/events"
	"github.com/TeknoZest/damenschstorefront/internal/listing"
	"github.com/TeknoZest/damenschstorefront/internal/models"
	"github.com/TeknoZest/damenschstorefront/internal/variants"
	"github.com/TeknoZest/damenschstorefront/pkg/errors"
	"github.com/TeknoZest/damenschstorefront/pkg/middleware"
)

// ProductReader is implemented by catalog.Reader.
type ProductReader interface {
	Product(ctx context.Context, session listing.Session, slug string) (*catalog.Product, error)
}

// ProductHandler serves product detail and variant selection
type ProductHandler struct {
	reader    ProductReader
	session   listing.Session
	publisher events.EventPublisher
	logger    *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(reader ProductReader, session listing.Session, publisher events.EventPublisher, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		reader:    reader,
		session:   session,
		publisher: publisher,
		logger:    logger,
	}
}

// GetProduct handles GET /api/v1/products/:slug
// @Summary      Get a product with its variant selectors
// @Description  Returns the product family and one selector per displayable attribute (size as a dropdown, colour as an inline list), each value carrying its stock and the path of the variant it leads to.
// @Tags         products
// @Produce      json
// @Param        slug  path      string  true  "Product slug"  example(tee-red)
// @Success      200   {object}  ProductResponse
// @Failure      404   {object}  errors.StandardError
// @Failure      502   {object}  errors.StandardError
// @Router       /products/{slug} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, ok := h.load(c)
	if !ok {
		return
	}

	currentSlug := variants.ProductSlug(c.Param("slug"))
	c.JSON(http.StatusOK, ProductResponse{
		Product:           product.Product,
		Selectors:         variants.BuildSelectors(product.Product, currentSlug),
		CurrentAttributes: variants.ResolveCurrentAttributesFromSlug(product.Product.VariantProducts, currentSlug),
		FromSnapshot:      product.FromSnapshot,
	})
}

// ResolveVariant handles GET /api/v1/products/:slug/variants/resolve
// @Summary      Resolve an attribute choice to a variant
// @Description  Picks the first variant carrying the chosen attribute value. The client navigates to the returned path; nothing is returned when no variant matches.
// @Tags         products
// @Produce      json
// @Param        slug        path      string  true  "Product slug"
// @Param        fieldCode   query     string  true  "Attribute field code"  example(global.colour)
// @Param        fieldValue  query     string  true  "Attribute value"  example(red)
// @Success      200  {object}  VariantResolveResponse
// @Failure      400  {object}  errors.StandardError
// @Failure      404  {object}  errors.StandardError
// @Router       /products/{slug}/variants/resolve [get]
func (h *ProductHandler) ResolveVariant(c *gin.Context) {
	chosen, ok := attributeFromQuery(c)
	if !ok {
		return
	}

	product, ok := h.load(c)
	if !ok {
		return
	}

	variant, found := variants.ResolveVariant(product.Product, chosen)
	if !found {
		c.Error(errors.NewVariantNotFound(chosen.FieldCode, chosen.FieldValue))
		return
	}

	if err := h.publisher.Publish(c.Request.Context(), events.VariantSelectedEvent{
		SessionID:   middleware.GetSessionID(c),
		ProductSlug: c.Param("slug"),
		FieldCode:   chosen.FieldCode,
		FieldValue:  chosen.FieldValue,
		VariantSlug: variant.Slug,
		StockCode:   variant.StockCode,
		OccurredAt:  time.Now().UTC(),
	}); err != nil {
		h.logger.Warn("Failed to publish storefront event", zap.String("event_type", events.TypeVariantSelected), zap.Error(err))
	}

	c.JSON(http.StatusOK, VariantResolveResponse{
		Slug:      variant.Slug,
		Path:      variants.VariantPath(variant.Slug),
		StockCode: variant.StockCode,
	})
}

// GetStock handles GET /api/v1/products/:slug/variants/stock
// @Summary      Stock for an attribute value
// @Description  Stock and pre-order flags of the variant carrying the attribute value. fieldCode is matched case-insensitively. An all-zero snapshot means no variant carries the value.
// @Tags         products
// @Produce      json
// @Param        slug        path      string  true  "Product slug"
// @Param        fieldCode   query     string  true  "Attribute field code"  example(clothing.size)
// @Param        fieldValue  query     string  true  "Attribute value"  example(M)
// @Success      200  {object}  variants.StockSnapshot
// @Failure      400  {object}  errors.StandardError
// @Failure      404  {object}  errors.StandardError
// @Router       /products/{slug}/variants/stock [get]
func (h *ProductHandler) GetStock(c *gin.Context) {
	chosen, ok := attributeFromQuery(c)
	if !ok {
		return
	}

	product, ok := h.load(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, variants.GetStockForAttribute(product.Product.VariantProducts, chosen.FieldCode, chosen.FieldValue))
}

func (h *ProductHandler) load(c *gin.Context) (*catalog.Product, bool) {
	slug := c.Param("slug")
	product, err := h.reader.Product(c.Request.Context(), h.session, slug)
	if err != nil {
		if stderrors.Is(err, catalog.ErrProductNotFound) {
			c.Error(errors.NewProductNotFound(slug))
			return nil, false
		}
		h.logger.Error("Product fetch failed", zap.String("slug", slug), zap.Error(err))
		c.Error(errors.NewUpstreamError("product", err))
		return nil, false
	}
	return product, true
}

func attributeFromQuery(c *gin.Context) (models.AttributePair, bool) {
	pair := models.AttributePair{
		FieldCode:  c.Query("fieldCode"),
		FieldValue: c.Query("fieldValue"),
	}
	if pair.FieldCode == "" {
		c.Error(errors.NewValidationError("fieldCode is required", "fieldCode"))
		return pair, false
	}
	if pair.FieldValue == "" {
		c.Error(errors.NewValidationError("fieldValue is required", "fieldValue"))
		return pair, false
	}
	return pair, true
}
