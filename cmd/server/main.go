package main

import (
	"context"
	"net/http"
	"os"

	_ "pizzeria/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"pizzeria/internal/auth"
	"pizzeria/internal/cache"
	"pizzeria/internal/config"
	"pizzeria/internal/db"
	"pizzeria/internal/factory"
	"pizzeria/internal/handler"
	"pizzeria/internal/model"
	"pizzeria/internal/repository"
	"pizzeria/internal/router"
	"pizzeria/internal/service"
)

// @title Pizzeria API
// @version 1.0
// @description Food-ordering backend with session auth, franchise hierarchy, and factory order fulfillment.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logger.Info("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.OrderItem{},
			&model.Order{},
			&model.MenuItem{},
			&model.Store{},
			&model.Franchise{},
			&model.AuthToken{},
			&model.UserRole{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logger.Warn("drop table failed (may not exist)", zap.Error(err))
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.UserRole{},
		&model.AuthToken{},
		&model.Franchise{},
		&model.Store{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)
	franchiseRepo := repository.NewFranchiseRepository(gormDB)
	menuRepo := repository.NewMenuRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenService := auth.NewTokenService(jwtService, tokenRepo, userRepo)

	// Initialize the fulfillment client
	factoryClient := factory.NewClient(factory.ClientConfig{
		BaseURL: cfg.FactoryURL,
		APIKey:  cfg.FactoryAPIKey,
		Timeout: cfg.FactoryTimeout,
		Logger:  logger,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, cfg.AdminEmail, cfg.AdminPassword, logger)
	userService := service.NewUserService(userRepo, tokenService)
	franchiseService := service.NewFranchiseService(franchiseRepo, userRepo)
	orderService := service.NewOrderService(menuRepo, orderRepo, franchiseRepo, factoryClient, cacheClient)

	// The default admin appears asynchronously; the very first admin login
	// after a cold start may need a caller-side retry.
	go authService.Bootstrap(context.Background())

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	franchiseHandler := handler.NewFranchiseHandler(franchiseService)
	orderHandler := handler.NewOrderHandler(orderService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenService,
		authHandler,
		userHandler,
		franchiseHandler,
		orderHandler,
	)

	addr := ":" + cfg.ServerPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}
