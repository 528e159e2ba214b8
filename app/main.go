package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gearguard/internal/routes"
	"gearguard/internal/scheduler"
	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
	applogger "gearguard/pkg/logger"
	"gearguard/pkg/mailer"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("Паника в обработчике запроса",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	v := validator.New()
	if err := utils.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("Не удалось подключиться к Redis",
			zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)
	bus := eventbus.New(logger)

	var mail mailer.Mailer
	if cfg.Mail.APIKey != "" {
		var err error
		mail, err = mailer.NewSendGridMailer(cfg.Mail, logger)
		if err != nil {
			logger.Fatal("Не удалось инициализировать SendGrid", zap.Error(err))
		}
	} else {
		logger.Warn("SENDGRID_API_KEY не задан, письма будут только логироваться")
		mail = mailer.NewMockMailer(logger)
	}

	deps := routes.InitRouter(e, dbConn, redisClient, jwtSvc, bus, mail, cfg, logger)

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	scheduler.New(deps.RequestRepo, deps.WarrantyService, deps.Notifications, cfg.Scheduler, logger).
		Start(schedulerCtx)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Получен сигнал остановки, завершаем работу")
		stopScheduler()
		if err := e.Shutdown(context.Background()); err != nil {
			logger.Error("Ошибка остановки сервера", zap.Error(err))
		}
	}()

	uploadsPath, err := filepath.Abs("./uploads")
	if err != nil {
		logger.Fatal("Не удалось получить абсолютный путь к uploads", zap.Error(err))
	}
	logger.Info("Сервер запускается",
		zap.String("port", cfg.Server.Port), zap.String("uploads", uploadsPath))

	if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
