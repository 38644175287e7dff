package handler

import (
	"errors"
	"net/http"

	"github.com/jayprakash-mahato/dchat/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler interface {
	CreateConversation(c *gin.Context)
	ListConversations(c *gin.Context)
	SaveMessage(c *gin.Context)
	ListMessages(c *gin.Context)
	ListUsers(c *gin.Context)
}

type chatHandler struct {
	chat service.ChatService
}

func NewChatHandler(chat service.ChatService) ChatHandler {
	return &chatHandler{chat: chat}
}

func (h *chatHandler) CreateConversation(c *gin.Context) {
	var input struct {
		SenderID   string `json:"senderId" binding:"required"`
		ReceiverID string `json:"receiverId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "senderId and receiverId are required"})
		return
	}

	id, err := h.chat.CreateConversation(c.Request.Context(), input.SenderID, input.ReceiverID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation members"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversationId": id})
}

func (h *chatHandler) ListConversations(c *gin.Context) {
	userID := c.Param("userId")

	conversations, err := h.chat.ListConversations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversations"})
		return
	}

	c.JSON(http.StatusOK, conversations)
}

func (h *chatHandler) SaveMessage(c *gin.Context) {
	var input struct {
		ConversationID string `json:"conversationId"`
		SenderID       string `json:"senderId"`
		Message        string `json:"message"`
		ReceiverID     string `json:"receiverId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.chat.SaveMessage(c.Request.Context(), input.ConversationID, input.SenderID, input.Message, input.ReceiverID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill all required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully"})
}

func (h *chatHandler) ListMessages(c *gin.Context) {
	conversationID := c.Param("conversationId")
	senderID := c.Query("senderId")
	receiverID := c.Query("receiverId")

	messages, err := h.chat.ListMessages(c.Request.Context(), conversationID, senderID, receiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *chatHandler) ListUsers(c *gin.Context) {
	userID := c.Param("userId")

	users, err := h.chat.ListUsers(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, users)
}
