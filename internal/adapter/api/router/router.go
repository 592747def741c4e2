package router

import (
	"github.com/labstack/echo/v4"

	"webond/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupTaskRouter(e, authMiddleware)
	SetupPaymentRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupAssistRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
