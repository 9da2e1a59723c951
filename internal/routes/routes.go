package routes

import (
	"gearguard/internal/controllers"
	"gearguard/internal/listeners"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/filestorage"
	"gearguard/pkg/middleware"
	"gearguard/pkg/tokens"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InitRouter wires repositories, services, listeners and controllers, and
// registers every API route under /api.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	bus *eventbus.Bus,
	jwtService tokens.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) error {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtService, logger)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Server.UploadDir)
	if err != nil {
		return err
	}

	// Repositories.
	userRepo := repositories.NewUserRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	requestRepo := repositories.NewRequestRepository(dbConn)
	teamRepo := repositories.NewTeamRepository(dbConn)
	partRepo := repositories.NewSparePartRepository(dbConn)
	budgetRepo := repositories.NewBudgetRepository(dbConn)
	slaRepo := repositories.NewSLARepository(dbConn)
	notificationRepo := repositories.NewNotificationRepository(dbConn)
	auditRepo := repositories.NewAuditLogRepository(dbConn)
	attachmentRepo := repositories.NewAttachmentRepository(dbConn)
	statsRepo := repositories.NewStatsRepository(dbConn)
	cacheRepo := repositories.NewCacheRepository(redisClient)

	// Listeners run the side effects after the primary write commits.
	listeners.NewCascadeListener(equipmentRepo, logger).Register(bus)
	listeners.NewNotificationListener(notificationRepo, userRepo, logger).Register(bus)
	listeners.NewAuditListener(auditRepo, logger).Register(bus)

	// Services.
	authService := services.NewAuthService(userRepo, jwtService, logger)
	userService := services.NewUserService(userRepo)
	equipmentService := services.NewEquipmentService(equipmentRepo, bus, logger)
	requestService := services.NewRequestService(requestRepo, equipmentRepo, slaRepo, bus, logger)
	teamService := services.NewTeamService(teamRepo, userRepo, bus, logger)
	partService := services.NewSparePartService(partRepo, bus, logger)
	budgetService := services.NewBudgetService(budgetRepo, bus, logger)
	slaService := services.NewSLAService(slaRepo, bus, logger)
	notificationService := services.NewNotificationService(notificationRepo, logger)
	auditService := services.NewAuditService(auditRepo)
	attachmentService := services.NewAttachmentService(attachmentRepo, fileStorage, logger)
	statsService := services.NewStatsService(statsRepo, budgetRepo, cacheRepo, cfg.Stats.DashboardCacheTTL, logger)
	reportService := services.NewReportService(statsRepo, logger)

	// Controllers.
	authCtrl := controllers.NewAuthController(authService, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, requestService, logger)
	requestCtrl := controllers.NewRequestController(requestService, logger)
	teamCtrl := controllers.NewTeamController(teamService, logger)
	partCtrl := controllers.NewSparePartController(partService, logger)
	budgetCtrl := controllers.NewBudgetController(budgetService, logger)
	slaCtrl := controllers.NewSLAController(slaService, logger)
	notificationCtrl := controllers.NewNotificationController(notificationService, logger)
	auditCtrl := controllers.NewAuditController(auditService, logger)
	attachmentCtrl := controllers.NewAttachmentController(attachmentService, cfg.Server.UploadDir, logger)
	statsCtrl := controllers.NewStatsController(statsService, reportService, logger)

	registerAuthRoutes(api, authCtrl, authMW)
	registerUserRoutes(api, userCtrl, authMW)
	registerEquipmentRoutes(api, equipmentCtrl, authMW)
	registerRequestRoutes(api, requestCtrl, authMW)
	registerTeamRoutes(api, teamCtrl, authMW)
	registerSparePartRoutes(api, partCtrl, authMW)
	registerBudgetRoutes(api, budgetCtrl, authMW)
	registerSLARoutes(api, slaCtrl, authMW)
	registerNotificationRoutes(api, notificationCtrl, authMW)
	registerAuditRoutes(api, auditCtrl, authMW)
	registerAttachmentRoutes(api, attachmentCtrl, authMW)
	registerStatsRoutes(api, statsCtrl, authMW)

	return nil
}
