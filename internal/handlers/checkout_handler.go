package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BauthyBa/bautigatica/internal/checkout"
	"github.com/BauthyBa/bautigatica/internal/models"
	"github.com/BauthyBa/bautigatica/internal/repository"
)

// CartItemRequest is one storefront cart line.
type CartItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest is the storefront cart at checkout time.
type CheckoutRequest struct {
	Items []CartItemRequest `json:"items" binding:"required,min=1,dive"`
}

type CheckoutHandler struct {
	products       *repository.ProductsRepository
	whatsappNumber string
	logger         *logrus.Entry
}

func NewCheckoutHandler(products *repository.ProductsRepository, whatsappNumber string, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		products:       products,
		whatsappNumber: whatsappNumber,
		logger:         logger.WithField("component", "checkout-handler"),
	}
}

// Checkout composes the WhatsApp order message and link for a cart
// @Summary Checkout via WhatsApp
// @Description Build the pre-filled WhatsApp order message for a cart
// @Tags Checkout
// @Accept json
// @Produce json
// @Param cart body CheckoutRequest true "Cart"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/whatsapp [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	products, err := h.products.ListProducts()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load catalog")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to load catalog",
			},
		})
		return
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID.String()] = p
	}

	lines := make([]checkout.Line, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "UNKNOWN_PRODUCT",
					Message: "Cart references a product that is not in the catalog",
					Field:   "items",
				},
			})
			return
		}
		lines = append(lines, checkout.Line{Product: product, Quantity: item.Quantity})
	}

	order := checkout.Compose(lines, h.whatsappNumber)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: order})
}
