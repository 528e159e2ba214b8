package routes

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/listeners"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/filestorage"
	"gearguard/pkg/mailer"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
)

// Кеш привилегий ролей живет недолго, чтобы смена роли применялась быстро.
const permissionsCacheTTL = 15 * time.Minute

// Deps - части графа зависимостей, которые нужны за пределами HTTP-слоя
// (планировщику фоновых задач).
type Deps struct {
	RequestRepo     repositories.RequestRepositoryInterface
	WarrantyService *services.WarrantyService
	Notifications   services.NotificationServiceInterface
}

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	mail mailer.Mailer,
	cfg *config.Config,
	logger *zap.Logger,
) *Deps {
	logger.Info("InitRouter: создание маршрутов")

	api := e.Group("/api")
	e.Static("/uploads", "uploads")

	fileStorage, err := filestorage.NewLocalFileStorage("uploads")
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Репозитории
	userRepo := repositories.NewUserRepository(dbConn, logger)
	roleRepo := repositories.NewRoleRepository(dbConn)
	permissionRepo := repositories.NewPermissionRepository(dbConn)
	departmentRepo := repositories.NewDepartmentRepository(dbConn)
	categoryRepo := repositories.NewCategoryRepository(dbConn)
	teamRepo := repositories.NewTeamRepository(dbConn, txManager)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	requestRepo := repositories.NewRequestRepository(dbConn, logger)
	reportRepo := repositories.NewReportRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)

	// Сервисы
	authPermissionService := services.NewAuthPermissionService(permissionRepo, cacheRepo, logger, permissionsCacheTTL)
	notifications := services.NewMailNotificationService(mail, logger)
	authService := services.NewAuthService(userRepo, jwtSvc, authPermissionService, logger)
	userService := services.NewUserService(userRepo, roleRepo, authPermissionService, logger)
	categoryService := services.NewCategoryService(categoryRepo, logger)
	teamService := services.NewTeamService(teamRepo, userRepo, logger)
	equipmentService := services.NewEquipmentService(
		equipmentRepo, categoryRepo, teamRepo, userRepo, departmentRepo, fileStorage, cfg.Maintenance, logger)
	requestService := services.NewRequestService(
		requestRepo, equipmentRepo, teamRepo, categoryRepo, userRepo, txManager, bus, cfg.Maintenance, logger)
	warrantyService := services.NewWarrantyService(
		equipmentRepo, userRepo, cacheRepo, notifications, cfg.Maintenance, logger)
	reportService := services.NewReportService(reportRepo, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, cfg.Maintenance, logger)

	// Слушатели доменной шины
	listeners.NewNotificationListener(notifications, logger).Register(bus)

	authMW := middleware.NewAuthMiddleware(jwtSvc, authPermissionService, logger)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authService, logger)
	runUserRouter(secureGroup, userService, authMW, logger)
	runRoleRouter(secureGroup, roleRepo, permissionRepo, authPermissionService, authMW, logger)
	runCategoryRouter(secureGroup, categoryService, authMW, logger)
	runDepartmentRouter(secureGroup, departmentRepo, authMW, logger)
	runTeamRouter(secureGroup, teamService, authMW, logger)
	runEquipmentRouter(secureGroup, equipmentService, authMW, logger)
	runRequestRouter(secureGroup, requestService, authMW, logger)
	runWarrantyRouter(secureGroup, warrantyService, authMW, logger)
	runReportRouter(secureGroup, reportService, authMW, logger)
	runDashboardRouter(secureGroup, dashboardService, authMW, logger)

	logger.Info("InitRouter: маршруты созданы")

	return &Deps{
		RequestRepo:     requestRepo,
		WarrantyService: warrantyService,
		Notifications:   notifications,
	}
}
