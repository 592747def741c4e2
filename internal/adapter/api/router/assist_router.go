package router

import (
	"github.com/labstack/echo/v4"

	"webond/internal/adapter/api/handler"
	"webond/internal/adapter/api/middleware"
)

func SetupAssistRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	assistHandler := handler.GetAssistHandler()

	protected := e.Group("/v1/assist")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("/match", assistHandler.MatchSolvers)
	protected.POST("/fraud-check", assistHandler.AnalyzeFraud)
	protected.POST("/draft", assistHandler.DraftTask)
	protected.POST("/dispute", assistHandler.ResolveDispute)
}
