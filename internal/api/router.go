package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/inkwell-api/internal/config"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/service"
	"github.com/inkwell-api/pkg/logger"
	"github.com/rs/zerolog"
)

// contentSegments are the path segments under which articles are served.
// The prompt vault front-end uses "prompti".
var contentSegments = []string{"articles", "prompti"}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	metrics := newMetrics()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metrics.middleware())
	router.Use(cors.New(corsConfig(cfg.CORS)))

	// Handlers
	authHandler := NewAuthHandler(services, log)
	userHandler := NewUserHandler(services, log)
	categoryHandler := NewCategoryHandler(services, log)
	tagHandler := NewTagHandler(services, log)
	articleHandler := NewArticleHandler(services, log)
	publicHandler := NewPublicHandler(services, log)
	reactionHandler := NewReactionHandler(services, log)
	settingsHandler := NewSettingsHandler(services, log)
	exportHandler := NewExportHandler(services, log)

	requireAuth := authMiddleware(services.Auth, log)
	adminOnly := requireRole(models.RoleAdmin)
	authorOrAdmin := requireRole(models.RoleAuthor, models.RoleAdmin)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metrics.handler())

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", requireAuth, authHandler.Me)
		}

		users := api.Group("/users", requireAuth, adminOnly)
		{
			users.GET("", userHandler.List)
			users.POST("", userHandler.Create)
			users.DELETE("/:id", userHandler.Delete)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:slug", categoryHandler.GetBySlug)
			categories.POST("", requireAuth, adminOnly, categoryHandler.Create)
			categories.PUT("/:id", requireAuth, adminOnly, categoryHandler.Update)
			categories.DELETE("/:id", requireAuth, adminOnly, categoryHandler.Delete)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.List)
			tags.POST("", requireAuth, adminOnly, tagHandler.Create)
			tags.PUT("/:id", requireAuth, adminOnly, tagHandler.Update)
			tags.DELETE("/:id", requireAuth, adminOnly, tagHandler.Delete)
		}

		public := api.Group("/public")
		for _, segment := range contentSegments {
			content := api.Group("/"+segment, requireAuth, authorOrAdmin)
			{
				content.GET("", articleHandler.ListMine)
				content.POST("", articleHandler.Create)
				content.GET("/:id", articleHandler.Get)
				content.PUT("/:id", articleHandler.Update)
				content.DELETE("/:id", articleHandler.Delete)
				content.POST("/:id/publish", articleHandler.Publish)
				content.POST("/:id/unpublish", articleHandler.Unpublish)
			}

			public.GET("/"+segment, publicHandler.List)
			public.GET("/"+segment+"/:slug", publicHandler.GetBySlug)
			public.GET("/"+segment+"/:slug/related", publicHandler.Related)
		}
		{
			public.GET("/search", publicHandler.Search)
			public.GET("/authors", publicHandler.Authors)

			public.GET("/likes/:id", reactionHandler.LikeInfo)
			public.POST("/likes/:id", reactionHandler.ToggleLike)
			public.GET("/ratings/:id", reactionHandler.ListRatings)
			public.POST("/ratings/:id", reactionHandler.Rate)
			public.GET("/ratings/:id/summary", reactionHandler.RatingSummary)
		}

		settings := api.Group("/settings")
		{
			settings.GET("", settingsHandler.Get)
			settings.PUT("", requireAuth, adminOnly, settingsHandler.Update)
		}

		admin := api.Group("/admin", requireAuth, adminOnly)
		{
			admin.GET("/stats", settingsHandler.Stats)
			admin.GET("/export", exportHandler.StreamExport)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   logger.ServiceName,
	})
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", fingerprintHeader},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowsAllOrigins() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Origins
		corsCfg.AllowCredentials = true
	}
	return corsCfg
}
