// Package router assembles the gin engine: middleware chain and route tree.
package router

import (
	"net/http"
	"time"

	"cheff-guio/internal/handler"
	"cheff-guio/internal/i18n"
	"cheff-guio/internal/middleware"
	"cheff-guio/internal/types"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	serverHandler *handler.Server,
	configManager types.ConfigManager,
) *gin.Engine {
	if configManager.IsDebugMode() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Register global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger(configManager.GetLogConfig()))
	router.Use(middleware.CORS(configManager.GetCORSConfig()))
	router.Use(middleware.RateLimiter(configManager.GetPerformanceConfig()))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestBodySizeLimit(0))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	startTime := time.Now()
	router.Use(func(c *gin.Context) {
		c.Set("serverStartTime", startTime)
		c.Next()
	})

	registerSystemRoutes(router, serverHandler)
	registerAPIRoutes(router, serverHandler, configManager)

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	return router
}

// registerSystemRoutes registers system-level routes
func registerSystemRoutes(router *gin.Engine, serverHandler *handler.Server) {
	router.GET("/health", serverHandler.Health)
}

// registerAPIRoutes registers API routes
func registerAPIRoutes(
	router *gin.Engine,
	serverHandler *handler.Server,
	configManager types.ConfigManager,
) {
	api := router.Group("/api")
	api.Use(i18n.Middleware())
	api.Use(middleware.Auth(configManager.GetAuthConfig()))

	onboarding := api.Group("/onboarding/sessions")
	{
		onboarding.POST("", serverHandler.StartOnboardingSession)
		onboarding.GET("/:session_id", serverHandler.GetOnboardingSession)
		onboarding.PUT("/:session_id/draft", serverHandler.UpdateOnboardingDraft)
		onboarding.POST("/:session_id/next", serverHandler.NextOnboardingStep)
		onboarding.POST("/:session_id/previous", serverHandler.PreviousOnboardingStep)
		onboarding.POST("/:session_id/goto", serverHandler.GoToOnboardingStep)
		onboarding.POST("/:session_id/save", serverHandler.SaveOnboardingProgress)
		onboarding.POST("/:session_id/reset", serverHandler.ResetOnboarding)
	}

	restaurants := api.Group("/restaurants/:restaurant_id")
	{
		restaurants.GET("", serverHandler.GetRestaurant)
		restaurants.POST("/waiting-list", serverHandler.EnqueueWaitingEntry)
		restaurants.GET("/waiting-list/estimate", serverHandler.GetWaitTimeEstimate)
		restaurants.GET("/waiting-list/stats", serverHandler.GetWaitingListStats)
		restaurants.GET("/waiting-list/history", serverHandler.ListWaitingHistory)
	}

	waitingList := api.Group("/waiting-list")
	{
		waitingList.GET("/:entry_id", serverHandler.GetWaitingEntry)
		waitingList.PUT("/:entry_id/status", serverHandler.ChangeWaitingStatus)
	}
}
