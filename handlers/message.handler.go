package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"housing-service/domain"
	"housing-service/services"
)

type MessageHandler struct {
	messageService services.MessageService
	Tracer         trace.Tracer
}

func NewMessageHandler(messageService services.MessageService, tracer trace.Tracer) MessageHandler {
	return MessageHandler{messageService, tracer}
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "MessageHandler.SendMessage")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	var message domain.Message
	if err := c.ShouldBindJSON(&message); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	message.SenderID = user.ID
	message.SenderName = user.Name
	message.SenderRole = user.UserRole

	sent, err := h.messageService.SendMessage(spanCtx, &message)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "message sent")
	c.JSON(http.StatusCreated, sent)
}

func (h *MessageHandler) GetConversation(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "MessageHandler.GetConversation")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	otherID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	messages, err := h.messageService.GetConversation(spanCtx, user.ID, otherID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) ListConversations(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "MessageHandler.ListConversations")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	conversations, err := h.messageService.ListConversations(spanCtx, user.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

func (h *MessageHandler) MarkConversationRead(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "MessageHandler.MarkConversationRead")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	otherID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.messageService.MarkConversationRead(spanCtx, user.ID, otherID, user.ID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "conversation marked read"})
}

func (h *MessageHandler) CountUnread(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "MessageHandler.CountUnread")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	count, err := h.messageService.CountUnread(spanCtx, user.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}
