package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BauthyBa/bautigatica/internal/clients"
	"github.com/BauthyBa/bautigatica/internal/models"
)

// maxImageSize caps product image uploads at 5 MiB.
const maxImageSize = 5 << 20

type ImagesHandler struct {
	storage *clients.StorageClient
	logger  *logrus.Entry
}

func NewImagesHandler(storage *clients.StorageClient, logger *logrus.Logger) *ImagesHandler {
	return &ImagesHandler{
		storage: storage,
		logger:  logger.WithField("component", "images-handler"),
	}
}

// UploadImage stores a product image and returns its public URL
// @Summary Upload product image
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /images [post]
func (h *ImagesHandler) UploadImage(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "STORAGE_DISABLED",
				Message: "Image hosting is not configured",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: "Multipart field 'file' is required",
				Field:   "file",
			},
		})
		return
	}

	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_TOO_LARGE",
				Message: "Image must be 5MB or smaller",
				Field:   "file",
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPLOAD_ERROR",
				Message: "Failed to read uploaded file",
			},
		})
		return
	}
	defer file.Close()

	path := clients.ObjectPath(fileHeader.Filename)
	publicURL, err := h.storage.Upload(c.Request.Context(), path, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.logger.WithError(err).WithField("path", path).Error("Failed to upload image")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "STORAGE_ERROR",
				Message: "Failed to store image",
			},
		})
		return
	}

	h.logger.WithField("path", path).Info("Image uploaded")
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"url": publicURL, "path": path},
	})
}

// DeleteImage removes a stored image by its object path
// @Summary Delete product image
// @Tags Images
// @Produce json
// @Param path path string true "Object path"
// @Success 200 {object} models.SuccessResponse
// @Failure 502 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /images/{path} [delete]
func (h *ImagesHandler) DeleteImage(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "STORAGE_DISABLED",
				Message: "Image hosting is not configured",
			},
		})
		return
	}

	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: "Object path is required",
				Field:   "path",
			},
		})
		return
	}

	if err := h.storage.Delete(c.Request.Context(), path); err != nil {
		h.logger.WithError(err).WithField("path", path).Error("Failed to delete image")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "STORAGE_ERROR",
				Message: "Failed to delete image",
			},
		})
		return
	}

	msg := "Image deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}
