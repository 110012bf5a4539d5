package api

import (
	"github.com/gin-gonic/gin"

	"contasis-asistente/internal/api/catalog"
	"contasis-asistente/internal/api/chat"
	"contasis-asistente/internal/api/middleware"
	"contasis-asistente/internal/service"
	"contasis-asistente/internal/store"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey       string
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	chatService *service.ChatService,
	sessions *store.SessionStore,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Static landing page
	SetupStaticRoutes(r)

	// API (optionally protected by a shared key for internal deployments)
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.Auth(cfg.APIKey))

	catalogHandler := catalog.NewHandler()
	catalogHandler.RegisterRoutes(apiGroup.Group("/catalog"))

	chatHandler := chat.NewHandler(chatService, sessions)
	chatHandler.RegisterRoutes(apiGroup.Group("/sessions"))

	return r
}
