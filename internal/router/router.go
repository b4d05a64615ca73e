// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creativechain/creativechain-backend/internal/config"
	"github.com/creativechain/creativechain-backend/internal/handlers"
	"github.com/creativechain/creativechain-backend/internal/middleware"
	"github.com/creativechain/creativechain-backend/internal/services"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage service: %w", err)
	}
	walletService := services.NewWalletService(db)
	mintingService := services.NewMintingService(db, cfg)

	authService := services.NewAuthService(db, cfg, walletService)
	workService := services.NewWorkService(db, storageService)
	royaltyService := services.NewRoyaltyService(db)
	licenseService := services.NewLicenseService(db, royaltyService)
	paymentService := services.NewPaymentService(db, cfg, mintingService)
	analyticsService := services.NewAnalyticsService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	workHandler := handlers.NewWorkHandler(workService, storageService)
	licenseHandler := handlers.NewLicenseHandler(licenseService, royaltyService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	mintingHandler := handlers.NewMintingHandler(mintingService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Creative work routes
		works := v1.Group("/works")
		{
			works.GET("", middleware.OptionalAuth(), workHandler.SearchWorks)
			works.GET("/:id", middleware.OptionalAuth(), workHandler.GetWork)
			works.GET("/:id/offerings", licenseHandler.GetWorkOfferings)
			works.GET("/:id/royalty-splits", licenseHandler.GetSplits)

			// Authenticated routes
			protected := works.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", workHandler.CreateWork)
				protected.PUT("/:id", workHandler.UpdateWork)
				protected.DELETE("/:id", workHandler.DeleteWork)
				protected.POST("/upload", middleware.UploadRateLimit(), workHandler.UploadFile)
			}
		}

		// License offering routes
		offerings := v1.Group("/license-offerings")
		offerings.Use(middleware.AuthRequired())
		{
			offerings.POST("", licenseHandler.UpsertOffering)
			offerings.DELETE("/:id", licenseHandler.DeactivateOffering)
		}

		// Royalty split routes
		royalties := v1.Group("/royalty-splits")
		royalties.Use(middleware.AuthRequired())
		{
			royalties.POST("/configure", licenseHandler.ConfigureSplits)
		}

		// Purchase routes
		purchases := v1.Group("/purchases")
		{
			// Stripe signs its own requests, no bearer token here
			purchases.POST("/webhook", paymentHandler.HandleWebhook)
			purchases.GET("/config", paymentHandler.GetPaymentConfig)

			protected := purchases.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("/session", paymentHandler.CreateCheckoutSession)
				protected.GET("/history", paymentHandler.GetPurchaseHistory)
				protected.POST("/refund", middleware.AdminRequired(), paymentHandler.RefundOrder)
			}
		}

		// Analytics routes
		analytics := v1.Group("/analytics")
		analytics.Use(middleware.AuthRequired())
		{
			analytics.GET("/creator-earnings", analyticsHandler.GetCreatorEarnings)
			analytics.GET("/revenue-chart", analyticsHandler.GetRevenueChart)
			analytics.GET("/sales-activity", analyticsHandler.GetSalesActivity)
			analytics.GET("/works-performance", analyticsHandler.GetWorksPerformance)
			analytics.GET("/export", analyticsHandler.ExportEarnings)
		}

		// Minting routes (public)
		minting := v1.Group("/minting")
		{
			minting.GET("/network", mintingHandler.GetNetworkInfo)
			minting.GET("/supply", mintingHandler.GetTotalSupply)
			minting.GET("/supply/:offeringId", mintingHandler.GetLicenseTotalSupply)
			minting.GET("/verify/:orderId", mintingHandler.VerifyMint)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r, nil
}
