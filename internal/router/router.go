// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/cappeLindo/webcars-api/internal/config"
	"github.com/cappeLindo/webcars-api/internal/handlers"
	"github.com/cappeLindo/webcars-api/internal/metrics"
	"github.com/cappeLindo/webcars-api/internal/middleware"
	"github.com/cappeLindo/webcars-api/internal/services"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	registry := metrics.NewRegistry()

	referenceService := services.NewReferenceService(db, cfg)
	alertFilterService := services.NewAlertFilterService(db, cfg)
	notificationService := services.NewNotificationService(db, cfg)
	carService := services.NewCarService(db, cfg, referenceService, storageService, alertFilterService, notificationService, registry)
	favoriteService := services.NewFavoriteService(db, cfg)
	clientService := services.NewClientService(db, cfg)
	dealershipService := services.NewDealershipService(db, cfg)
	authService := services.NewAuthService(db, cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	carHandler := handlers.NewCarHandler(carService)
	referenceHandler := handlers.NewReferenceHandler(referenceService)
	filterHandler := handlers.NewFilterHandler(alertFilterService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	clientHandler := handlers.NewClientHandler(clientService)
	dealershipHandler := handlers.NewDealershipHandler(dealershipService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.Metrics(registry))
	r.Use(middleware.GeneralRateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry.Gatherer(), promhttp.HandlerOpts{})))

	// Local image storage is served directly when S3 is not configured.
	if cfg.Storage.LocalPath != "" {
		r.Static("/uploads", cfg.Storage.LocalPath)
	}

	v1 := r.Group("/v1")
	{
		// Authentication
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Public catalog
		v1.GET("/cars", carHandler.GetCars)
		v1.GET("/cars/:id", carHandler.GetCar)
		v1.GET("/cars/:id/images", carHandler.GetCarImages)

		// Listing management (dealership only)
		dealerCars := v1.Group("/cars")
		dealerCars.Use(middleware.AuthRequired(), middleware.DealershipRequired())
		{
			dealerCars.POST("", middleware.UploadRateLimit(), carHandler.CreateCar)
			dealerCars.PUT("/:id", middleware.UploadRateLimit(), carHandler.ReplaceCar)
			dealerCars.PATCH("/:id", middleware.UploadRateLimit(), carHandler.PatchCar)
			dealerCars.DELETE("/:id", carHandler.DeleteCar)
			dealerCars.DELETE("/images/:imageId", carHandler.DeleteCarImage)
		}

		// Matching filters for a car, scoped to the calling client
		v1.GET("/cars/:id/matching-filters",
			middleware.AuthRequired(), middleware.ClientRequired(),
			filterHandler.GetMatchingFilters)

		// Reference data: public reads, authenticated writes
		registerReferenceRoutes(v1, referenceHandler, "/brands", services.ReferenceBrand)
		registerReferenceRoutes(v1, referenceHandler, "/categories", services.ReferenceCategory)
		registerReferenceRoutes(v1, referenceHandler, "/colors", services.ReferenceColor)
		registerReferenceRoutes(v1, referenceHandler, "/wheel-sizes", services.ReferenceWheelSize)
		registerReferenceRoutes(v1, referenceHandler, "/fuel-types", services.ReferenceFuelType)
		registerReferenceRoutes(v1, referenceHandler, "/transmissions", services.ReferenceTransmission)

		// Car models carry a brand reference
		v1.GET("/car-models", referenceHandler.ListCarModels)
		v1.GET("/car-models/:id", referenceHandler.GetCarModel)
		carModels := v1.Group("/car-models")
		carModels.Use(middleware.AuthRequired())
		{
			carModels.POST("", referenceHandler.CreateCarModel)
			carModels.PUT("/:id", referenceHandler.UpdateCarModel)
			carModels.DELETE("/:id", referenceHandler.DeleteCarModel)
		}

		// Accounts
		v1.POST("/clients", middleware.AuthRateLimit(), clientHandler.Register)
		clients := v1.Group("/clients")
		clients.Use(middleware.AuthRequired(), middleware.ClientRequired())
		{
			clients.GET("/me", clientHandler.GetProfile)
			clients.PATCH("/me", clientHandler.UpdateProfile)
			clients.PUT("/me/password", clientHandler.ChangePassword)
			clients.DELETE("/me", clientHandler.DeleteProfile)
		}

		v1.POST("/dealerships", middleware.AuthRateLimit(), dealershipHandler.Register)
		v1.GET("/dealerships", dealershipHandler.GetDealerships)
		v1.GET("/dealerships/:id", dealershipHandler.GetDealership)
		dealerships := v1.Group("/dealerships")
		dealerships.Use(middleware.AuthRequired(), middleware.DealershipRequired())
		{
			dealerships.PATCH("/me", dealershipHandler.UpdateProfile)
			dealerships.PUT("/me/password", dealershipHandler.ChangePassword)
			dealerships.DELETE("/me", dealershipHandler.DeleteProfile)
		}

		// Client-scoped resources
		clientScoped := v1.Group("")
		clientScoped.Use(middleware.AuthRequired(), middleware.ClientRequired())
		{
			clientScoped.GET("/favorites", favoriteHandler.GetFavorites)
			clientScoped.GET("/favorites/:carId", favoriteHandler.CheckFavorite)
			clientScoped.POST("/favorites/:carId", favoriteHandler.AddFavorite)
			clientScoped.DELETE("/favorites/:carId", favoriteHandler.RemoveFavorite)

			clientScoped.GET("/alert-filters", filterHandler.GetFilters)
			clientScoped.GET("/alert-filters/:id", filterHandler.GetFilter)
			clientScoped.POST("/alert-filters", filterHandler.CreateFilter)
			clientScoped.PUT("/alert-filters/:id", filterHandler.UpdateFilter)
			clientScoped.DELETE("/alert-filters/:id", filterHandler.DeleteFilter)

			clientScoped.GET("/notifications", notificationHandler.GetNotifications)
			clientScoped.GET("/notifications/unread-count", notificationHandler.GetUnreadCount)
			clientScoped.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		}
	}

	return r, nil
}

func registerReferenceRoutes(v1 *gin.RouterGroup, h *handlers.ReferenceHandler, path string, kind services.ReferenceKind) {
	v1.GET(path, h.List(kind))
	v1.GET(path+"/:id", h.Get(kind))

	protected := v1.Group(path)
	protected.Use(middleware.AuthRequired())
	{
		protected.POST("", h.Create(kind))
		protected.PUT("/:id", h.Update(kind))
		protected.DELETE("/:id", h.Delete(kind))
	}
}
