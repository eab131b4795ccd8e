package routes

import (
	"github.com/gin-gonic/gin"

	"housing-service/handlers"
)

type MessageRouteHandler struct {
	messageHandler handlers.MessageHandler
	requireUser    gin.HandlerFunc
}

func NewMessageRouteHandler(messageHandler handlers.MessageHandler, requireUser gin.HandlerFunc) MessageRouteHandler {
	return MessageRouteHandler{messageHandler, requireUser}
}

func (rc *MessageRouteHandler) MessageRoute(rg *gin.RouterGroup) {
	router := rg.Group("/messages")
	router.Use(handlers.ExtractTraceInfoMiddleware(), rc.requireUser)

	router.POST("/send", rc.messageHandler.SendMessage)
	router.GET("/conversation/:userId", rc.messageHandler.GetConversation)
	router.GET("/conversations", rc.messageHandler.ListConversations)
	router.POST("/read/:userId", rc.messageHandler.MarkConversationRead)
	router.GET("/unread", rc.messageHandler.CountUnread)
}
