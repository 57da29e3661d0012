package api

import (
	"github.com/gin-gonic/gin"

	"docuchat/internal/api/chat"
	"docuchat/internal/api/middleware"
	"docuchat/internal/api/settings"
	"docuchat/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	JWTSecret    string
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	chatService *service.ChatService,
	settingsService *service.SettingsService,
	usageService *service.UsageService,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.CORS(cfg.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authed := r.Group("/api")
	authed.Use(middleware.Auth(cfg.JWTSecret))

	chatHandler := chat.NewHandler(chatService)
	chatHandler.RegisterRoutes(authed)

	settingsHandler := settings.NewHandler(settingsService, usageService)
	settingsHandler.RegisterRoutes(authed)

	return r
}
