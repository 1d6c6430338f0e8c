package routes

import (
	"materials-and-more/config"
	"materials-and-more/controllers"
	"materials-and-more/libs"
	"materials-and-more/middleware"
	"materials-and-more/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine, db models.Database, storage libs.ObjectStorage,
	captcha libs.CaptchaVerifier, cache *redis.Client, cfg *config.Config) {

	authCtrl := controllers.NewAuthController(db, captcha, cfg)
	categoryCtrl := controllers.NewCategoryController(db)
	productCtrl := controllers.NewProductController(db, storage, cache)
	partnerCtrl := controllers.NewPartnerController(db, storage)
	bannerCtrl := controllers.NewBannerController(db, storage)
	uploadCtrl := controllers.NewUploadController(storage)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/admin/login", authCtrl.Login)
	router.POST("/auth/login", authCtrl.Login)

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	{
		admin.GET("", authCtrl.AdminWelcome)
	}

	router.GET("/categories", categoryCtrl.GetCategories)
	router.GET("/categories/:id", categoryCtrl.GetCategoryByID)
	router.POST("/categories", categoryCtrl.CreateCategory)
	router.PUT("/categories/:id", categoryCtrl.UpdateCategory)
	router.DELETE("/categories/:id", categoryCtrl.DeleteCategory)

	router.GET("/products", productCtrl.GetProducts)
	router.GET("/products/related", productCtrl.GetRelatedProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.POST("/products", productCtrl.CreateProduct)
	router.PUT("/products/:id", productCtrl.UpdateProduct)
	router.DELETE("/products/:id", productCtrl.DeleteProduct)
	router.POST("/products/delete-image", productCtrl.DeleteImage)

	router.GET("/partners", partnerCtrl.GetPartners)
	router.POST("/partners", partnerCtrl.CreatePartner)
	router.PUT("/partners/:id", partnerCtrl.UpdatePartner)
	router.DELETE("/partners/:id", partnerCtrl.DeletePartner)

	router.GET("/banners", bannerCtrl.GetBanners)
	router.POST("/banners", bannerCtrl.CreateBanner)
	router.DELETE("/banners/:id", bannerCtrl.DeleteBanner)

	router.POST("/upload", uploadCtrl.UploadFile)
}
