package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/controllers"
	"github.com/franckshoes/franck-shoes-api/middleware"
	"github.com/franckshoes/franck-shoes-api/models"
	"github.com/franckshoes/franck-shoes-api/services"
)

func main() {
	log.Println("Starting Franck Shoes API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Shoe{},
		&models.ShoeImage{},
		&models.User{},
		&models.UserProfile{},
		&models.PasswordResetToken{},
		&models.Order{},
		&models.OrderItem{},
		&models.ContactMessage{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	if err := config.ConnectRedis(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	services.InitSessionStore(config.GetRedis())

	services.InitShippingTable(cfg)

	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		services.InitImageService(s3Service)
	} else {
		log.Println("S3 bucket not configured, image uploads disabled")
	}

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires the middleware stack and the route table.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000", "https://franck-shoes.com"}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	router.Use(middleware.CartSession())

	requireAuth := middleware.EnsureValidToken(cfg)
	requireVendor := middleware.RequireVendor()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		// Storefront
		v1.GET("/", controllers.Home)
		v1.GET("/boutique", controllers.ListShoes)
		v1.GET("/recherche", controllers.ListShoes)
		v1.GET("/produit/:id", controllers.GetShoe)
		v1.GET("/temoignages", controllers.ListTestimonials)
		v1.POST("/contact", controllers.SubmitContact)

		// Session cart
		v1.GET("/panier", controllers.CartDetail)
		v1.POST("/panier/ajouter/:id", controllers.AddToCart)
		v1.POST("/panier/modifier/:id", controllers.UpdateCart)
		v1.POST("/panier/supprimer/:id", controllers.RemoveFromCart)
		v1.POST("/panier/ville", controllers.SetCartCity)

		// Accounts
		v1.POST("/compte/inscription", controllers.Register)
		v1.POST("/compte/connexion", controllers.Login)
		v1.POST("/compte/deconnexion", controllers.Logout)
		v1.POST("/compte/mot-de-passe/demande", controllers.RequestPasswordReset)
		v1.GET("/compte/mot-de-passe/envoye", controllers.PasswordResetSent)
		v1.POST("/compte/mot-de-passe/confirmation", controllers.ConfirmPasswordReset)
		v1.GET("/compte/mot-de-passe/complete", controllers.PasswordResetComplete)

		authed := v1.Group("")
		authed.Use(requireAuth)
		{
			// Checkout
			authed.GET("/commander", controllers.CheckoutPreview)
			authed.POST("/commander", controllers.PlaceOrder)

			// Customer account
			authed.GET("/compte/profil", controllers.GetProfile)
			authed.PUT("/compte/profil", controllers.UpdateProfile)
			authed.POST("/compte/profil/photo", controllers.UploadProfilePicture)
			authed.GET("/compte/commandes/:id", controllers.OrderDetail)
		}

		admin := v1.Group("/gestion")
		admin.Use(requireAuth, requireVendor)
		{
			admin.GET("/tableau-de-bord", controllers.VendorDashboard)
			admin.GET("/commandes", controllers.ListOrders)
			admin.GET("/commandes/:id", controllers.VendorOrderDetail)
			admin.POST("/commandes/statut", controllers.TransitionOrders)

			admin.POST("/chaussures", controllers.CreateShoe)
			admin.PUT("/chaussures/:id", controllers.UpdateShoe)
			admin.DELETE("/chaussures/:id", controllers.DeleteShoe)
			admin.POST("/chaussures/:id/images", controllers.UploadShoeImage)

			admin.POST("/categories", controllers.CreateCategory)
			admin.DELETE("/categories/:id", controllers.DeleteCategory)

			admin.GET("/messages", controllers.ListMessages)
			admin.POST("/messages/:id/approuver", controllers.ApproveMessage)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Franck Shoes API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
