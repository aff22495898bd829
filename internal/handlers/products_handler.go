package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BauthyBa/bautigatica/internal/clients"
	"github.com/BauthyBa/bautigatica/internal/events"
	"github.com/BauthyBa/bautigatica/internal/models"
	"github.com/BauthyBa/bautigatica/internal/parser"
	"github.com/BauthyBa/bautigatica/internal/repository"
)

type ProductsHandler struct {
	repo      *repository.ProductsRepository
	storage   *clients.StorageClient
	publisher *events.Publisher
	logger    *logrus.Entry
}

func NewProductsHandler(repo *repository.ProductsRepository, storage *clients.StorageClient, publisher *events.Publisher, logger *logrus.Logger) *ProductsHandler {
	return &ProductsHandler{
		repo:      repo,
		storage:   storage,
		publisher: publisher,
		logger:    logger.WithField("component", "products-handler"),
	}
}

// GetProducts returns the full catalog, newest first
// @Summary List products
// @Description Get the bakery catalog, newest first
// @Tags Products
// @Produce json
// @Success 200 {object} models.ProductsListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /products [get]
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	products, err := h.repo.ListProducts()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list products")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to fetch products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.ProductsListResponse{
		Success: true,
		Data:    products,
		Total:   int64(len(products)),
	})
}

// GetProduct returns a single product by ID
// @Summary Get product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ProductResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Product ID must be a valid UUID",
				Field:   "id",
			},
		})
		return
	}

	product, err := h.repo.GetProductByID(productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "NOT_FOUND",
					Message: "Product not found",
				},
			})
			return
		}
		h.logger.WithError(err).WithField("product_id", productID).Error("Failed to fetch product")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to fetch product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// CreateProduct creates a new catalog product. When no category is given it
// is inferred from the product name.
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product"
// @Success 201 {object} models.ProductResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /products [post]
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
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

	category := req.Category
	if category == nil {
		if inferred := parser.InferCategory(req.Name); inferred != "" {
			mc := models.ProductCategory(inferred)
			category = &mc
		}
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		PriceCard:   req.PriceCard,
		PaymentLink: req.PaymentLink,
		ImageURL:    req.ImageURL,
		Category:    category,
	}

	if err := h.repo.CreateProduct(product); err != nil {
		h.logger.WithError(err).Error("Failed to create product")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to create product",
			},
		})
		return
	}

	h.publisher.PublishProductCreated(product)
	h.logger.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product created")

	c.JSON(http.StatusCreated, models.ProductResponse{Success: true, Data: product})
}

// UpdateProduct partially updates a product
// @Summary Update product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.ProductResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Product ID must be a valid UUID",
				Field:   "id",
			},
		})
		return
	}

	var req models.UpdateProductRequest
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

	if _, err := h.repo.GetProductByID(productID); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "NOT_FOUND",
					Message: "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to fetch product",
			},
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
		// Renaming may move the product between portion and whole pricing.
		if req.Category == nil {
			if inferred := parser.InferCategory(*req.Name); inferred != "" {
				updates["category"] = string(inferred)
			}
		}
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "VALIDATION_ERROR",
					Message: "Price must be greater than zero",
					Field:   "price",
				},
			})
			return
		}
		updates["price"] = *req.Price
	}
	if req.PriceCard != nil {
		updates["price_card"] = *req.PriceCard
	}
	if req.PaymentLink != nil {
		updates["payment_link"] = *req.PaymentLink
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Category != nil {
		updates["category"] = string(*req.Category)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: "No fields to update",
			},
		})
		return
	}

	if err := h.repo.UpdateProduct(productID, updates); err != nil {
		h.logger.WithError(err).WithField("product_id", productID).Error("Failed to update product")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to update product",
			},
		})
		return
	}

	product, err := h.repo.GetProductByID(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to fetch updated product",
			},
		})
		return
	}

	h.publisher.PublishProductUpdated(product)
	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// DeleteProduct soft-deletes a product and removes its stored image
// @Summary Delete product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Product ID must be a valid UUID",
				Field:   "id",
			},
		})
		return
	}

	product, err := h.repo.GetProductByID(productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "NOT_FOUND",
					Message: "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to fetch product",
			},
		})
		return
	}

	if err := h.repo.DeleteProduct(productID); err != nil {
		h.logger.WithError(err).WithField("product_id", productID).Error("Failed to delete product")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to delete product",
			},
		})
		return
	}

	// Best effort: orphaned images cost storage, not correctness.
	if h.storage != nil && product.ImageURL != nil {
		if path := h.storage.ExtractPath(*product.ImageURL); path != "" {
			if err := h.storage.Delete(c.Request.Context(), path); err != nil {
				h.logger.WithError(err).WithField("path", path).Warn("Failed to delete product image")
			}
		}
	}

	h.publisher.PublishProductDeleted(productID.String())

	msg := "Product deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}
