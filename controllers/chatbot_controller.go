package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agrishop-chatbot-backend/models"
	"agrishop-chatbot-backend/services"
)

type ChatbotController struct {
	chatService *services.ChatService
}

func NewChatbotController(chatService *services.ChatService) *ChatbotController {
	return &ChatbotController{
		chatService: chatService,
	}
}

// HandleChat processes one chat turn. Missing input is answered with a
// conversational redirect, not an error status: this endpoint always
// responds 200 with a well-formed turn result.
func (cc *ChatbotController) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, models.TurnResult{Answer: services.PromptForInputReply})
		return
	}

	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusOK, models.TurnResult{Answer: services.PromptForInputReply})
		return
	}

	result := cc.chatService.HandleTurn(c.Request.Context(), req.UserID, req.SessionID, req.Message)
	c.JSON(http.StatusOK, result)
}

// GetChatHistory returns the user's sessions, most recently updated first.
func (cc *ChatbotController) GetChatHistory(c *gin.Context) {
	userID := c.Query("user_id")

	sessions, err := cc.chatService.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve chat history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// GetSupportedIntents returns the list of supported intents
func (cc *ChatbotController) GetSupportedIntents(c *gin.Context) {
	intents := []map[string]interface{}{
		{
			"intent":      "diagnosis",
			"description": "Chẩn đoán bệnh cây trồng từ mô tả triệu chứng và gợi ý thuốc",
			"examples": []string{
				"Lúa tôi bị đạo ôn",
				"Lá có vết bệnh hình thoi viền nâu",
				"Cà chua bị xoăn ngọn vàng lá",
			},
		},
		{
			"intent":      "weather",
			"description": "Câu hỏi về thời tiết, mùa vụ",
			"examples": []string{
				"Thời tiết hôm nay thế nào?",
				"Mai có mưa không?",
			},
		},
		{
			"intent":      "greeting",
			"description": "Chào hỏi",
			"examples": []string{
				"Chào bác",
				"Xin chào",
			},
		},
		{
			"intent":      "small_talk",
			"description": "Trò chuyện xã giao",
			"examples": []string{
				"Bạn khỏe không?",
				"Bạn là ai?",
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"intents": intents,
	})
}
