package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopfront/internal/assistant"
	"shopfront/internal/auth"
	"shopfront/internal/config"
	"shopfront/internal/database"
	"shopfront/internal/extraction"
	"shopfront/internal/monitoring"
)

// Server wires the AI pipelines, store, and auth into the HTTP API.
type Server struct {
	Router    *gin.Engine
	store     *database.Store
	extractor *extraction.Extractor
	assistant *assistant.Assistant
	metrics   *monitoring.Metrics
	jwtSecret string
	tokenTTL  time.Duration
}

// NewServer creates the API server and registers all routes.
func NewServer(store *database.Store, extractor *extraction.Extractor, chat *assistant.Assistant, metrics *monitoring.Metrics, authCfg config.AuthConfig) *Server {
	s := &Server{
		Router:    gin.Default(),
		store:     store,
		extractor: extractor,
		assistant: chat,
		metrics:   metrics,
		jwtSecret: authCfg.JWTSecret,
		tokenTTL:  time.Duration(authCfg.TokenTTLDays) * 24 * time.Hour,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Shopfront API is running"})
	})

	v1 := s.Router.Group("/api/v1")
	{
		// Tenant onboarding and public storefront
		v1.POST("/shops", s.CreateShop)
		v1.GET("/shops/:slug", s.GetShop)
		v1.GET("/shops/:slug/menu", s.GetPublicMenu)
		v1.POST("/shops/:slug/chat", s.StorefrontChat)
		v1.GET("/shops/:slug/chat", s.StorefrontChatWS)

		// Shop owner dashboard
		owner := v1.Group("/", auth.Middleware(s.jwtSecret))
		{
			owner.POST("/menu/extract", s.ExtractMenu)
			owner.GET("/menu", s.GetMenu)
			owner.DELETE("/menu", s.ClearMenu)
			owner.POST("/chat", s.OwnerChat)
			owner.GET("/chat/availability", s.ChatAvailability)
			owner.GET("/chat/sample", s.SampleConversation)
			owner.GET("/orders", s.ListOrders)
		}
	}
}
