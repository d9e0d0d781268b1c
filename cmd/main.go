package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"coinfolio/api/handler"
	apiMiddleware "coinfolio/api/middleware"
	"coinfolio/api/routes"
	"coinfolio/config"
	"coinfolio/internal/entity"
	"coinfolio/internal/repository"
	"coinfolio/internal/service"
	"coinfolio/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	db, err := config.ConnectionDb(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	// The role catalog must exist before the first registration is accepted.
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := roleRepo.Seed(seedCtx, []entity.Role{
		{Value: entity.RoleUser, Description: "Regular user"},
		{Value: entity.RoleAdmin, Description: "Administrator"},
	}); err != nil {
		logger.WithError(err).Fatal("role catalog seeding failed")
	}

	jwtManager := utils.JWTManager{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		TokenTTL: cfg.TokenTTL,
	}

	var notifier service.Notifier
	if n := service.NewResendNotifier(cfg.ResendAPIKey, cfg.EmailFrom); n != nil {
		notifier = n
	}

	hasher := service.BcryptPasswordHasher{Cost: cfg.BcryptCost}
	clock := service.RealClock{}

	roleService := service.NewRoleService(userRepo, roleRepo)
	userService := service.NewUserService(userRepo, notifier, clock, logger)
	authService := service.NewAuthService(
		userRepo,
		roleService,
		hasher,
		service.JWTAccessIssuer{Manager: &jwtManager},
		notifier,
		clock,
		logger,
	)

	validate := validator.New()
	authHandler := handler.NewAuthHandler(authService, validate)
	userHandler := handler.NewUserHandler(
		userService,
		roleService,
		service.TOTPProvider{Issuer: cfg.JWTIssuer},
		validate,
	)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(apiMiddleware.RequestID())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status":     v.Status,
				"method":     v.Method,
				"uri":        v.URI,
				"ip":         v.RemoteIP,
				"request_id": apiMiddleware.RequestIDFromContext(c),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &jwtManager}
	router := routes.NewRouter(app, authHandler, userHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
