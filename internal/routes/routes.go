package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/repositories"
	"repair-system/internal/services"
	"repair-system/internal/store"
	"repair-system/pkg/config"
	"repair-system/pkg/middleware"
	"repair-system/pkg/service"
)

// InitRouter wires every repository, service and controller and mounts the
// API surface under /api. Reads are open to any authenticated user; the
// admin middleware guards user administration.
func InitRouter(e *echo.Echo, st *store.Store, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	sessionRepo := repositories.NewRedisSessionRepository(redisClient)

	authService := services.NewAuthService(st, sessionRepo, jwtSvc, cfg.Auth.DefaultAdminID, cfg.Auth.DefaultAdminPassword, logger)
	equipmentService := services.NewEquipmentService(st, logger)
	workshopService := services.NewWorkshopService(st, logger)
	requestService := services.NewRequestService(st, logger)
	exportService := services.NewExportService(st, requestService, logger)
	translateService := services.NewTranslateService(cfg.Translator.URL, logger)

	secure := api.Group("", authMW.Auth)

	runAuthRouter(api, secure, authService, authMW, logger)
	runEquipmentRouter(secure, equipmentService, logger)
	runWorkshopRouter(secure, workshopService, logger)
	runRequestRouter(secure, requestService, logger)
	runExportRouter(secure, exportService, logger)
	runTranslateRouter(secure, translateService, logger)

	logger.Info("routes mounted")
}
