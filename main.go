package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kitchencart/kitchencart-api/config"
	"github.com/kitchencart/kitchencart-api/controllers"
	"github.com/kitchencart/kitchencart-api/middleware"
	"github.com/kitchencart/kitchencart-api/models"
	"github.com/kitchencart/kitchencart-api/seed"
	"github.com/kitchencart/kitchencart-api/services"
	"github.com/kitchencart/kitchencart-api/store"
	"github.com/kitchencart/kitchencart-api/utils"
)

func main() {
	log.Println("Starting KitchenCart Connect API server...")

	cfg := config.GetConfig()

	// Connect to the reference database and load the demo dataset
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := config.GetDB()
	if err := seed.Run(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	log.Println("Database migration and seeding completed successfully")

	// Initialize services
	services.InitAuthService(db, services.DefaultLoginDelay)
	services.InitCatalogService(db)
	services.InitTrackingService(services.DefaultTrackingInterval)
	if cfg.UseS3() {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
		log.Println("Merchant images: S3 storage")
	} else {
		services.InitLocalImageService(utils.UploadDir)
		log.Println("Merchant images: local storage")
	}

	// Initialize the in-memory application store from the seeded reference
	// data. Orders, carts and delivery load live only here and reset on
	// restart.
	merchants, err := services.GetCatalogService().Merchants()
	if err != nil {
		log.Fatalf("Failed to load merchants: %v", err)
	}
	var boys []models.DeliveryBoy
	if err := db.Find(&boys).Error; err != nil {
		log.Fatalf("Failed to load delivery boys: %v", err)
	}
	store.Init(merchants, boys)

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with CORS and all API routes.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.CORSOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		// Public
		v1.POST("/auth/login", controllers.Login)
		v1.GET("/catalog", controllers.GetCatalog)
		v1.GET("/merchants", controllers.ListMerchants)
		v1.GET("/merchants/:id", controllers.GetMerchant)
		v1.GET("/uploads/:filename", controllers.GetUploadedImage)

		// Authenticated
		authed := v1.Group("", middleware.RequireSession())
		{
			authed.POST("/auth/logout", controllers.Logout)
			authed.GET("/auth/me", controllers.Me)

			// Customer
			customer := authed.Group("", middleware.RequireRole(models.RoleCustomer))
			{
				customer.GET("/cart", controllers.GetCart)
				customer.POST("/cart/items", controllers.AddCartItem)
				customer.PATCH("/cart/items/:productId", controllers.UpdateCartItem)
				customer.DELETE("/cart/items/:productId", controllers.RemoveCartItem)
				customer.DELETE("/cart", controllers.ClearCart)
				customer.POST("/orders", controllers.CreateOrder)
				customer.POST("/orders/:id/select-quote", controllers.SelectQuote)
			}

			authed.GET("/orders", controllers.ListOrders)
			authed.GET("/orders/:id", controllers.GetOrder)
			authed.GET("/orders/:id/quotes", controllers.GetOrderQuotes)
			authed.GET("/orders/:id/tracking", controllers.GetTracking)

			// Merchant
			merchant := authed.Group("", middleware.RequireRole(models.RoleMerchant))
			{
				merchant.GET("/merchant/orders", controllers.ListMerchantOrders)
				merchant.POST("/orders/:id/verify", controllers.VerifyProduct)
				merchant.POST("/orders/:id/auto-populate", controllers.AutoPopulateQuote)
				merchant.POST("/orders/:id/quote", controllers.SubmitQuote)
			}

			// Delivery
			delivery := authed.Group("", middleware.RequireRole(models.RoleDeliveryBoy))
			{
				delivery.GET("/delivery/orders", controllers.ListActiveDeliveries)
				delivery.GET("/delivery/history", controllers.ListDeliveryHistory)
				delivery.POST("/orders/:id/status", controllers.UpdateDeliveryStatus)
			}

			// Admin
			admin := authed.Group("", middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/orders/:id/assign", controllers.AssignDelivery)
				admin.PATCH("/orders/:id", controllers.UpdateOrder)
				admin.GET("/admin/commissions", controllers.GetCommissionStats)
				admin.GET("/admin/delivery-boys", controllers.ListDeliveryBoys)
				admin.POST("/merchants/:id/image", controllers.UploadMerchantImage)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "KitchenCart Connect API is running",
	})
}
