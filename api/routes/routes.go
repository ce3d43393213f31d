package routes

import (
	"github.com/clubhub/giveaway-backend/internal/config"
	"github.com/clubhub/giveaway-backend/internal/handlers"
	"github.com/clubhub/giveaway-backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies holds the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler     *handlers.AuthHandler
	GiveawayHandler *handlers.GiveawayHandler
	RaffleHandler   *handlers.RaffleHandler
	PointsHandler   *handlers.PointsHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedHosts
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		public.GET("/giveaways", deps.GiveawayHandler.List)
		public.GET("/giveaways/:id", deps.GiveawayHandler.Get)
		public.GET("/giveaways/:id/winners", deps.GiveawayHandler.GetWinners)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWT.Secret))
	{
		protected.GET("/auth/me", deps.AuthHandler.Me)

		giveaways := protected.Group("/giveaways")
		{
			giveaways.POST("", deps.GiveawayHandler.Create)
			giveaways.PUT("/:id", deps.GiveawayHandler.Update)
			giveaways.DELETE("/:id", deps.GiveawayHandler.Delete)
			giveaways.POST("/:id/cancel", deps.GiveawayHandler.Cancel)
			giveaways.POST("/:id/draw", deps.GiveawayHandler.Draw)
			giveaways.POST("/:id/redraw", deps.GiveawayHandler.Redraw)
			giveaways.POST("/:id/entries", deps.GiveawayHandler.Enter)
			giveaways.DELETE("/:id/entries", deps.GiveawayHandler.CancelEntry)
			giveaways.GET("/:id/eligibility", deps.PointsHandler.CheckEligibility)
			giveaways.GET("/:id/notifications", deps.GiveawayHandler.GetNotifications)
		}

		raffles := protected.Group("/raffles")
		{
			raffles.POST("", deps.RaffleHandler.Create)
			raffles.POST("/:id/slots", deps.RaffleHandler.Apply)
			raffles.POST("/:id/allocate", deps.RaffleHandler.Allocate)
		}
	}

	return router
}
