package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/services"
	"repair-system/pkg/middleware"
)

func runAuthRouter(api, secure *echo.Group, authService services.AuthServiceInterface, authMW *middleware.AuthMiddleware, logger *zap.Logger) {
	ctrl := controllers.NewAuthController(authService, logger)

	api.POST("/auth/login", ctrl.Login)
	api.POST("/auth/register", ctrl.Register)

	secure.POST("/auth/logout", ctrl.Logout)
	secure.POST("/auth/change_password", ctrl.ChangePassword)
	secure.GET("/auth/me", ctrl.Me)

	admin := secure.Group("/users", authMW.AdminOnly)
	admin.GET("", ctrl.ListUsers)
	admin.PUT("/:id/approve", ctrl.ApproveUser)
	admin.DELETE("/:id", ctrl.DeleteUser)
}
