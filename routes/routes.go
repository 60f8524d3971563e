package routes

import (
	"net/http"
	"time"

	"schedulo/config"
	"schedulo/handlers"
	"schedulo/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational booking endpoints.
func RegisterChatRoutes(r *gin.Engine, chat *handlers.ChatHandler) {
	api := r.Group("/api")
	{
		api.POST("/chat", chat.HandleChat)
		api.GET("/conversation/:session_id", chat.GetConversation)
		api.DELETE("/conversation/:session_id", chat.ClearConversation)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "healthy",
			"service":      "AI Calendar Booking Agent",
			"dependencies": utils.GetHealthStatus(),
			"environment":  config.GetEnv(),
			"timestamp":    time.Now().Format(time.RFC3339),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, chat *handlers.ChatHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "AI Calendar Booking Agent API",
			"status":  "running",
		})
	})

	RegisterChatRoutes(r, chat)
	RegisterHealthRoute(r)
}
