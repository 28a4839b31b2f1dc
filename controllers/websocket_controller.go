package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"agrishop-chatbot-backend/logging"
	"agrishop-chatbot-backend/models"
	"agrishop-chatbot-backend/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Configure properly for production
	},
}

// WebSocketController runs the same turn pipeline over a socket: one JSON
// request in, one turn result out, per message.
type WebSocketController struct {
	chatService *services.ChatService
	log         *logging.Logger
}

func NewWebSocketController(chatService *services.ChatService, log *logging.Logger) *WebSocketController {
	return &WebSocketController{
		chatService: chatService,
		log:         log,
	}
}

func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wc.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var req models.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			wc.log.Debug().Err(err).Msg("websocket closed")
			break
		}

		if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Message) == "" {
			if err := conn.WriteJSON(models.TurnResult{Answer: services.PromptForInputReply}); err != nil {
				break
			}
			continue
		}

		result := wc.chatService.HandleTurn(c.Request.Context(), req.UserID, req.SessionID, req.Message)
		if err := conn.WriteJSON(result); err != nil {
			break
		}
	}
}
