package routes

import (
	"github.com/gin-gonic/gin"

	"agrishop-chatbot-backend/controllers"
	"agrishop-chatbot-backend/database"
	"agrishop-chatbot-backend/logging"
	"agrishop-chatbot-backend/repository"
	"agrishop-chatbot-backend/services"
)

func SetupRoutes(router *gin.Engine, log *logging.Logger) {
	db := database.GetMongoDB()

	// Stores
	knowledgeStore := repository.NewKnowledgeRepository(db)
	productStore := repository.NewProductRepository(db)
	sessionStore := repository.NewSessionRepository(db)

	// Services
	aiService := services.GetAIService()
	composer := services.NewResponseComposer(aiService, log.Sub("composer"))
	knowledgeService := services.NewKnowledgeService(knowledgeStore)
	productService := services.NewProductService(productStore)
	chatService := services.NewChatService(sessionStore, knowledgeService, productService, composer, log.Sub("chat"))

	// Controllers
	chatbotController := controllers.NewChatbotController(chatService)
	wsController := controllers.NewWebSocketController(chatService, log.Sub("ws"))

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/chat", chatbotController.HandleChat)
		public.GET("/chat/history", chatbotController.GetChatHistory)
		public.GET("/intents", chatbotController.GetSupportedIntents)

		// WebSocket for real-time chat
		public.GET("/ws", wsController.HandleWebSocket)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})
}
