package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storely/store-rating-service/internal/auth"
	"github.com/storely/store-rating-service/internal/models"
	"github.com/storely/store-rating-service/internal/repositories"
	"github.com/storely/store-rating-service/internal/services"
	"github.com/storely/store-rating-service/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	storeHandler   *StoreHandler
	ratingHandler  *RatingHandler
	ownerHandler   *OwnerHandler
	userHandler    *UserHandler
	adminHandler   *AdminHandler
	authMiddleware *AuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	userRepo repositories.UserRepository,
	logger utils.Logger,
	production bool,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger, production),
		storeHandler:   NewStoreHandler(serviceManager.Store(), logger, production),
		ratingHandler:  NewRatingHandler(serviceManager.Rating(), logger, production),
		ownerHandler:   NewOwnerHandler(serviceManager.Owner(), logger, production),
		userHandler:    NewUserHandler(serviceManager.User(), logger, production),
		adminHandler:   NewAdminHandler(serviceManager.Admin(), logger, production),
		authMiddleware: NewAuthMiddleware(tokens, userRepo),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", hm.authHandler.Register)
			authRoutes.POST("/login", hm.authHandler.Login)
			authRoutes.PUT("/password", hm.authMiddleware.RequireAuth(), hm.authHandler.UpdatePassword)
		}

		stores := api.Group("/stores")
		{
			// Public reads; optional auth so the caller's own rating can be
			// attached when a token is present.
			stores.GET("", hm.authMiddleware.OptionalAuth(), hm.storeHandler.ListStores)
			stores.GET("/:id", hm.authMiddleware.OptionalAuth(), hm.storeHandler.GetStore)

			stores.POST("", hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireRoles(models.RoleAdmin), hm.storeHandler.CreateStore)
			stores.PUT("/:id", hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireRoles(models.RoleAdmin), hm.storeHandler.UpdateStore)
			stores.DELETE("/:id", hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireRoles(models.RoleAdmin), hm.storeHandler.DeleteStore)
		}

		ratings := api.Group("/ratings")
		ratings.Use(hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireRoles(models.RoleUser, models.RoleOwner))
		{
			ratings.POST("", hm.ratingHandler.SubmitRating)
			ratings.GET("/my-ratings", hm.ratingHandler.MyRatings)
			ratings.DELETE("/:id", hm.ratingHandler.DeleteRating)
		}

		owner := api.Group("/owner")
		owner.Use(hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireRoles(models.RoleOwner))
		{
			owner.GET("/dashboard", hm.ownerHandler.Dashboard)
			owner.GET("/stores/:storeId/ratings", hm.ownerHandler.StoreRatings)
		}

		users := api.Group("/users")
		users.Use(hm.authMiddleware.RequireAuth())
		{
			users.GET("/profile", hm.userHandler.Profile)

			users.GET("", hm.authMiddleware.RequireRoles(models.RoleAdmin), hm.userHandler.ListUsers)
			users.GET("/:id", hm.authMiddleware.RequireRoles(models.RoleAdmin), hm.userHandler.GetUser)
			users.POST("", hm.authMiddleware.RequireRoles(models.RoleAdmin), hm.userHandler.CreateUser)
		}

		admin := api.Group("/admin")
		admin.Use(hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/dashboard", hm.adminHandler.DashboardStats)
			admin.GET("/export/stores", hm.adminHandler.ExportStores)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "store-rating-service",
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, failure("Route not found"))
	})
}
