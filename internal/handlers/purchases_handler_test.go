package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/BauthyBa/bautigatica/internal/models"
	"github.com/BauthyBa/bautigatica/internal/parser"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))
	return logger
}

func TestEnrichResolvesNamesAndPrices(t *testing.T) {
	chocoID := uuid.New()
	brownieID := uuid.New()
	whole := models.ProductCategoryWhole

	products := []models.Product{
		{ID: chocoID, Name: "Torta de chocolate", Price: 1200, Category: &whole},
		{ID: brownieID, Name: "Brownie", Price: 950},
	}
	items := []parser.LineItem{
		{ProductID: chocoID.String(), Quantity: 2},
		{ProductID: brownieID.String(), Quantity: 3},
	}

	enriched, total := enrich(items, products)

	assert.Len(t, enriched, 2)
	assert.Equal(t, 2*1200.0+3*950.0, total)
	assert.Equal(t, "Torta de chocolate", enriched[0].ProductName)
	// Category comes from the stored product when the item has none.
	assert.Equal(t, "WHOLE", enriched[0].Category)
	// Products without a stored category fall back to name inference.
	assert.Equal(t, "PORTION", enriched[1].Category)
}

func TestEnrichDropsUnknownProducts(t *testing.T) {
	products := []models.Product{
		{ID: uuid.New(), Name: "Flan", Price: 700},
	}
	items := []parser.LineItem{
		{ProductID: uuid.New().String(), Quantity: 1},
	}

	enriched, total := enrich(items, products)

	assert.Empty(t, enriched)
	assert.Zero(t, total)
}

func TestEnrichKeepsExplicitCategory(t *testing.T) {
	id := uuid.New()
	whole := models.ProductCategoryWhole
	products := []models.Product{
		{ID: id, Name: "Torta oreo", Price: 1500, Category: &whole},
	}
	items := []parser.LineItem{
		{ProductID: id.String(), Quantity: 1, Category: parser.CategoryPortion},
	}

	enriched, _ := enrich(items, products)

	assert.Equal(t, "PORTION", enriched[0].Category)
}

func TestParsePurchaseRejectsInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPurchasesHandler(nil, nil, nil, testLogger(), 50)

	router := gin.New()
	router.POST("/purchases/parse", h.ParsePurchase)

	req := httptest.NewRequest("POST", "/purchases/parse", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestCreatePurchaseRejectsNonPositiveQuantity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPurchasesHandler(nil, nil, nil, testLogger(), 50)

	router := gin.New()
	router.POST("/purchases", h.CreatePurchase)

	body := `{"rawMessage":"hola","items":[{"productId":"abc","quantity":0}]}`
	req := httptest.NewRequest("POST", "/purchases", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePurchaseRejectsMalformedID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPurchasesHandler(nil, nil, nil, testLogger(), 50)

	router := gin.New()
	router.DELETE("/purchases/:id", h.DeletePurchase)

	req := httptest.NewRequest("DELETE", "/purchases/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")
}
