package main

import (
	"log"

	"materials-and-more/config"
	_ "materials-and-more/docs"
	"materials-and-more/libs"
	"materials-and-more/middleware"
	"materials-and-more/routes"

	"github.com/gin-gonic/gin"
)

// @title Materials & More API
// @version 1.0
// @description Catalog and content management backend for the Materials & More storefront.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.LoadConfig()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	cache := config.ConnectRedis()
	if cache != nil {
		defer cache.Close()
	}

	storage, err := libs.NewStorageService(cfg.StorageFolder)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	captcha := libs.NewRecaptchaVerifier(cfg.RecaptchaSecret, cfg.RecaptchaVerifyURL)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg))
	routes.SetupRoutes(router, db, storage, captcha, cache, cfg)

	port := ":" + cfg.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", cfg.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", cfg.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
