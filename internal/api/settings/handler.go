package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docuchat/internal/api/middleware"
	"docuchat/internal/api/response"
	"docuchat/internal/domain"
	"docuchat/internal/service"
)

// Handler handles provider settings and usage API requests
type Handler struct {
	settingsService *service.SettingsService
	usageService    *service.UsageService
}

// NewHandler creates a new settings handler
func NewHandler(settingsService *service.SettingsService, usageService *service.UsageService) *Handler {
	return &Handler{
		settingsService: settingsService,
		usageService:    usageService,
	}
}

// RegisterRoutes registers settings routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/settings/llm", h.GetSettings)
	r.PUT("/settings/llm", h.UpdateSettings)
	r.GET("/usage", h.GetUsage)
}

// GetSettings returns the caller's provider configuration with credentials masked
func (h *Handler) GetSettings(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, domain.CodeAuthRequired, "authentication required")
		return
	}

	resp, err := h.settingsService.Get(c.Request.Context(), userID)
	if err != nil {
		response.FailFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateSettings overwrites the caller's provider configuration
func (h *Handler) UpdateSettings(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, domain.CodeAuthRequired, "authentication required")
		return
	}

	var req domain.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, domain.CodeValidation, err.Error())
		return
	}

	resp, err := h.settingsService.Update(c.Request.Context(), userID, &req)
	if err != nil {
		response.FailFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetUsage returns the caller's recent usage entries
func (h *Handler) GetUsage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, domain.CodeAuthRequired, "authentication required")
		return
	}

	entries, err := h.usageService.Recent(c.Request.Context(), userID)
	if err != nil {
		response.FailFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entries)
}
