package main

import (
	"log"
	"net/http"

	_ "storeapi/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"storeapi/internal/auth"
	"storeapi/internal/cache"
	"storeapi/internal/config"
	"storeapi/internal/db"
	"storeapi/internal/handler"
	"storeapi/internal/model"
	"storeapi/internal/repository"
	"storeapi/internal/router"
	"storeapi/internal/service"
)

// @title Product Catalog API
// @version 1.0
// @description REST API for product management with JWT authentication.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, jwtService)
	productService := service.NewProductService(productRepo, cacheClient, cfg.ProductListOrder)

	authHandler := handler.NewAuthHandler(authService, cfg.DuplicateEmailStatus)
	productHandler := handler.NewProductHandler(productService)

	e := echo.New()
	router.Register(e, cfg, jwtService, userRepo, authHandler, productHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
