package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BauthyBa/bautigatica/internal/events"
	"github.com/BauthyBa/bautigatica/internal/models"
	"github.com/BauthyBa/bautigatica/internal/parser"
	"github.com/BauthyBa/bautigatica/internal/repository"
)

type PurchasesHandler struct {
	purchases    *repository.PurchasesRepository
	products     *repository.ProductsRepository
	publisher    *events.Publisher
	logger       *logrus.Entry
	historyLimit int
}

func NewPurchasesHandler(purchases *repository.PurchasesRepository, products *repository.ProductsRepository, publisher *events.Publisher, logger *logrus.Logger, historyLimit int) *PurchasesHandler {
	return &PurchasesHandler{
		purchases:    purchases,
		products:     products,
		publisher:    publisher,
		logger:       logger.WithField("component", "purchases-handler"),
		historyLimit: historyLimit,
	}
}

// loadCatalog fetches the product list and projects it for the parser.
func (h *PurchasesHandler) loadCatalog() ([]models.Product, []parser.CatalogItem, error) {
	products, err := h.products.ListProducts()
	if err != nil {
		return nil, nil, err
	}

	catalog := make([]parser.CatalogItem, 0, len(products))
	for _, p := range products {
		catalog = append(catalog, parser.CatalogItem{ID: p.ID.String(), Name: p.Name})
	}
	return products, catalog, nil
}

// enrich resolves parsed line items against the catalog: product names for
// display, prices for the running total.
func enrich(items []parser.LineItem, products []models.Product) ([]models.PurchaseItem, float64) {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID.String()] = p
	}

	var (
		out   = make([]models.PurchaseItem, 0, len(items))
		total float64
	)
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}

		category := item.Category
		if category == "" && product.Category != nil {
			category = parser.ProductCategory(*product.Category)
		}
		if category == "" {
			category = parser.InferCategory(product.Name)
		}

		out = append(out, models.PurchaseItem{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Category:    string(category),
		})
		total += item.Quantity * product.Price
	}
	return out, total
}

// ParsePurchase previews how a pasted WhatsApp message resolves against the
// catalog, without recording anything.
// @Summary Parse purchase message
// @Description Parse a pasted order message against the catalog
// @Tags Purchases
// @Accept json
// @Produce json
// @Param request body models.ParsePurchaseRequest true "Raw message"
// @Success 200 {object} models.ParsePurchaseResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /purchases/parse [post]
func (h *PurchasesHandler) ParsePurchase(c *gin.Context) {
	var req models.ParsePurchaseRequest
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

	products, catalog, err := h.loadCatalog()
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

	parsed := parser.ParseMessage(req.Message, catalog)
	summary := parser.Summarize(parsed, catalog, req.Message)
	items, totalAmount := enrich(parsed, products)

	c.JSON(http.StatusOK, models.ParsePurchaseResponse{
		Success: true,
		Items:   items,
		Summary: models.PurchaseSummary{
			Porciones: summary.Portions,
			Tortas:    summary.Wholes,
		},
		TotalItems:  summary.TotalItems,
		TotalAmount: totalAmount,
	})
}

// CreatePurchase records a purchase after the admin confirmed (and possibly
// corrected) the parsed items.
// @Summary Record purchase
// @Tags Purchases
// @Accept json
// @Produce json
// @Param purchase body models.CreatePurchaseRequest true "Purchase"
// @Success 201 {object} models.PurchaseResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /purchases [post]
func (h *PurchasesHandler) CreatePurchase(c *gin.Context) {
	var req models.CreatePurchaseRequest
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

	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: "Purchase must contain at least one item",
				Field:   "items",
			},
		})
		return
	}

	products, catalog, err := h.loadCatalog()
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

	lineItems := make([]parser.LineItem, 0, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "VALIDATION_ERROR",
					Message: fmt.Sprintf("Item %d quantity must be greater than zero", i),
					Field:   "items",
				},
			})
			return
		}
		lineItems = append(lineItems, parser.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Category:  parser.ProductCategory(item.Category),
		})
	}

	items, totalAmount := enrich(lineItems, products)
	if len(items) != len(lineItems) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UNKNOWN_PRODUCT",
				Message: "One or more items reference a product that is not in the catalog",
				Field:   "items",
			},
		})
		return
	}

	summary := parser.Summarize(lineItems, catalog, req.RawMessage)

	purchase := &models.Purchase{
		RawMessage: req.RawMessage,
		Items:      items,
		TotalItems: summary.TotalItems,
		Summary: models.PurchaseSummary{
			Porciones: summary.Portions,
			Tortas:    summary.Wholes,
		},
		TotalAmount: totalAmount,
	}

	if err := h.purchases.CreatePurchase(purchase); err != nil {
		h.logger.WithError(err).Error("Failed to record purchase")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to record purchase",
			},
		})
		return
	}

	h.publisher.PublishPurchaseRecorded(purchase)
	h.logger.WithFields(logrus.Fields{
		"purchase_id": purchase.ID,
		"total_items": purchase.TotalItems,
	}).Info("Purchase recorded")

	c.JSON(http.StatusCreated, models.PurchaseResponse{Success: true, Data: purchase})
}

// GetPurchases returns recent purchases, newest first
// @Summary List purchases
// @Tags Purchases
// @Produce json
// @Success 200 {object} models.PurchasesListResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /purchases [get]
func (h *PurchasesHandler) GetPurchases(c *gin.Context) {
	purchases, total, err := h.purchases.ListPurchases(h.historyLimit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list purchases")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to fetch purchases",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.PurchasesListResponse{
		Success: true,
		Data:    purchases,
		Total:   total,
	})
}

// DeletePurchase removes a recorded purchase
// @Summary Delete purchase
// @Tags Purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /purchases/{id} [delete]
func (h *PurchasesHandler) DeletePurchase(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Purchase ID must be a valid UUID",
				Field:   "id",
			},
		})
		return
	}

	if _, err := h.purchases.GetPurchaseByID(purchaseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "NOT_FOUND",
					Message: "Purchase not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to fetch purchase",
			},
		})
		return
	}

	if err := h.purchases.DeletePurchase(purchaseID); err != nil {
		h.logger.WithError(err).WithField("purchase_id", purchaseID).Error("Failed to delete purchase")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to delete purchase",
			},
		})
		return
	}

	h.publisher.PublishPurchaseDeleted(purchaseID.String())

	msg := "Purchase deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}

// GetReport returns aggregate sales figures
// @Summary Purchases report
// @Tags Purchases
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /purchases/report [get]
func (h *PurchasesHandler) GetReport(c *gin.Context) {
	report, err := h.purchases.GetReport()
	if err != nil {
		h.logger.WithError(err).Error("Failed to build purchases report")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to build report",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: report})
}
