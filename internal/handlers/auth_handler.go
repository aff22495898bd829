package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BauthyBa/bautigatica/internal/config"
	"github.com/BauthyBa/bautigatica/internal/middleware"
	"github.com/BauthyBa/bautigatica/internal/models"
)

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token issued on successful login.
type LoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

type AuthHandler struct {
	cfg    *config.Config
	logger *logrus.Entry
}

func NewAuthHandler(cfg *config.Config, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		logger: logger.WithField("component", "auth-handler"),
	}
}

// Login authenticates the shop admin and issues a session token
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
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

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		h.logger.WithField("username", req.Username).Warn("Failed login attempt")
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_CREDENTIALS",
				Message: "Invalid username or password",
			},
		})
		return
	}

	token, err := middleware.IssueToken(req.Username, h.cfg.JWTSecret)
	if err != nil {
		h.logger.WithError(err).Error("Failed to sign session token")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "TOKEN_ERROR",
				Message: "Failed to create session",
			},
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success:  true,
		Token:    token,
		Username: req.Username,
	})
}

// Me returns the authenticated admin identity
// @Summary Current session
// @Tags Auth
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"username": c.GetString("username")},
	})
}
