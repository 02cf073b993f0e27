package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/elderbridge-backend/internal/requestdata"
	"github.com/yungbote/elderbridge-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) Chat(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("message is required"))
		return
	}
	reply, err := ch.chatService.Chat(c.Request.Context(), rd.UserID, req.Message)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reply)
}
