package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BauthyBa/bautigatica/internal/config"
	"github.com/BauthyBa/bautigatica/internal/middleware"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		AdminUsername: "bautista",
		AdminPassword: "bautista",
	}
	h := NewAuthHandler(cfg, testLogger())

	router := gin.New()
	router.POST("/auth/login", h.Login)
	router.GET("/auth/me", middleware.AdminAuth(cfg.JWTSecret), h.Me)
	return router
}

func TestLoginIssuesUsableToken(t *testing.T) {
	router := authTestRouter()

	body := `{"username":"bautista","password":"bautista"}`
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "bautista", resp.Username)
	require.NotEmpty(t, resp.Token)

	// The issued token must be accepted by the auth middleware.
	meReq := httptest.NewRequest("GET", "/auth/me", nil)
	meReq.Header.Set("Authorization", "Bearer "+resp.Token)
	meW := httptest.NewRecorder()
	router.ServeHTTP(meW, meReq)

	assert.Equal(t, http.StatusOK, meW.Code)
	assert.Contains(t, meW.Body.String(), "bautista")
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router := authTestRouter()

	body := `{"username":"bautista","password":"wrong"}`
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}

func TestLoginRejectsMissingFields(t *testing.T) {
	router := authTestRouter()

	req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString(`{"username":"bautista"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", HealthCheck)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
