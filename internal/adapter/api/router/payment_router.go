package router

import (
	"github.com/labstack/echo/v4"

	"webond/internal/adapter/api/handler"
	"webond/internal/adapter/api/middleware"
)

func SetupPaymentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	paymentHandler := handler.GetPaymentHandler()

	protected := e.Group("/v1/payments")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("/tasks/:taskId/escrow", paymentHandler.CreateEscrow)
	protected.POST("/tasks/:taskId/release", paymentHandler.ReleaseEscrow)
	protected.GET("/tasks/:taskId/escrow", paymentHandler.GetTaskEscrow)
	protected.GET("/transactions", paymentHandler.ListMyTransactions)
}
