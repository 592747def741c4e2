package router

import (
	"github.com/labstack/echo/v4"

	"webond/internal/adapter/api/handler"
	"webond/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	protected := e.Group("/v1/chats")
	protected.Use(authMiddleware.Authenticate)

	protected.GET("", chatHandler.ListMyChats)
	protected.GET("/unread-count", chatHandler.UnreadCount)
	protected.GET("/:id", chatHandler.GetChat)
	protected.GET("/:id/messages", chatHandler.GetMessages)
	protected.POST("/:id/messages", chatHandler.SendMessage)

	taskChats := e.Group("/v1/tasks/:id/chat")
	taskChats.Use(authMiddleware.Authenticate)
	taskChats.GET("", chatHandler.GetTaskChat)
}
