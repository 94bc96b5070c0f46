package main

import (
	"log"
	"net/http"

	_ "storeratings/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storeratings/internal/auth"
	"storeratings/internal/cache"
	"storeratings/internal/config"
	"storeratings/internal/db"
	"storeratings/internal/handler"
	"storeratings/internal/model"
	"storeratings/internal/repository"
	"storeratings/internal/router"
	"storeratings/internal/service"
)

// @title Store Ratings API
// @version 1.0
// @description Store rating platform with role-based access for admins, users and store owners.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Store{},
		&model.Rating{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	storeRepo := repository.NewStoreRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	revoker := auth.NewRevoker(cacheClient)
	gate := auth.NewGate(userRepo, storeRepo, revoker)

	// Initialize services
	authService := service.NewAuthService(userRepo, storeRepo, jwtService, revoker)
	ratingService := service.NewRatingService(ratingRepo, storeRepo)
	storeService := service.NewStoreService(storeRepo, ratingRepo)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	userHandler := handler.NewUserHandler(storeService, ratingService)
	storeHandler := handler.NewStoreHandler(storeService)

	// Register routes
	router.Register(
		e,
		cfg,
		gate,
		authHandler,
		adminHandler,
		userHandler,
		storeHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
