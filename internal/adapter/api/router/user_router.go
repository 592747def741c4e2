package router

import (
	"github.com/labstack/echo/v4"

	"webond/internal/adapter/api/handler"
	"webond/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	// Public profile endpoints
	e.GET("/v1/users/:id", userHandler.GetUser)
	e.GET("/v1/users/:id/ratings", userHandler.GetUserRatings)

	protected := e.Group("/v1/users")
	protected.Use(authMiddleware.Authenticate)

	protected.GET("/me", userHandler.GetProfile)
	protected.PATCH("/me", userHandler.UpdateProfile)
}
