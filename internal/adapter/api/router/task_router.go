package router

import (
	"github.com/labstack/echo/v4"

	"webond/internal/adapter/api/handler"
	"webond/internal/adapter/api/middleware"
)

func SetupTaskRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	taskHandler := handler.GetTaskHandler()
	ratingHandler := handler.GetRatingHandler()

	// Public browse endpoints
	e.GET("/v1/tasks", taskHandler.List)
	e.GET("/v1/tasks/:id", taskHandler.Get)

	protected := e.Group("/v1/tasks")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("", taskHandler.Create)
	protected.GET("/mine", taskHandler.ListMine)
	protected.GET("/recommendations", taskHandler.Recommendations)
	protected.PATCH("/:id", taskHandler.Update)
	protected.POST("/:id/publish", taskHandler.Publish)
	protected.POST("/:id/accept", taskHandler.Accept)
	protected.POST("/:id/complete", taskHandler.Complete)
	protected.POST("/:id/cancel", taskHandler.Cancel)
	protected.POST("/:id/dispute", taskHandler.Dispute)

	protected.POST("/:id/ratings", ratingHandler.Create)
}
