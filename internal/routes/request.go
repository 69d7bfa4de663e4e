package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/services"
)

func runRequestRouter(secure *echo.Group, requestService services.RequestServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewRequestController(requestService, logger)
	dashCtrl := controllers.NewDashboardController(requestService, logger)

	secure.GET("/requests", ctrl.GetRequests)
	// Must stay above /requests/:id so "pending_check" is not taken for an id.
	secure.GET("/requests/pending_check", ctrl.CheckPending)
	secure.GET("/requests/:id", ctrl.FindRequest)
	secure.POST("/requests", ctrl.CreateRequest)
	secure.PUT("/requests/:id", ctrl.UpdateRequest)
	secure.PUT("/requests/:id/complete", ctrl.CompleteRequest)

	secure.GET("/dashboard", dashCtrl.GetDashboard)
}
