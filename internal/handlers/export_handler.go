package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/BauthyBa/bautigatica/internal/models"
	"github.com/BauthyBa/bautigatica/internal/repository"
)

type ExportHandler struct {
	purchases *repository.PurchasesRepository
	logger    *logrus.Entry
}

func NewExportHandler(purchases *repository.PurchasesRepository, logger *logrus.Logger) *ExportHandler {
	return &ExportHandler{
		purchases: purchases,
		logger:    logger.WithField("component", "export-handler"),
	}
}

// ExportPurchases streams the purchase history as an XLSX workbook
// @Summary Export purchases
// @Description Download the purchase history as an Excel file
// @Tags Purchases
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /purchases/export [get]
func (h *ExportHandler) ExportPurchases(c *gin.Context) {
	purchases, _, err := h.purchases.ListPurchases(0)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch purchases for export")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DATABASE_ERROR",
				Message: "Failed to fetch purchases",
			},
		})
		return
	}

	f := excelize.NewFile()
	sheetName := "Compras"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"Fecha", "Productos", "Items", "Porciones", "Tortas", "Total ($)", "Mensaje"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for row, purchase := range purchases {
		itemsDesc := ""
		for i, item := range purchase.Items {
			if i > 0 {
				itemsDesc += ", "
			}
			itemsDesc += fmt.Sprintf("%s x%g", item.ProductName, item.Quantity)
		}

		values := []interface{}{
			purchase.CreatedAt.Format("2006-01-02 15:04"),
			itemsDesc,
			purchase.TotalItems,
			purchase.Summary.Porciones,
			purchase.Summary.Tortas,
			purchase.TotalAmount,
			purchase.RawMessage,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	filename := fmt.Sprintf("compras_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		h.logger.WithError(err).Error("Failed to write export workbook")
	}
}
