package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/papacapim/server/auth"
	"github.com/papacapim/server/config"
	"github.com/papacapim/server/controllers"
	"github.com/papacapim/server/feed"
	"github.com/papacapim/server/middleware"
	"github.com/papacapim/server/store"
	"github.com/papacapim/server/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, st *store.Store) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// access log goes to its own rolling file; fall back to the app logger
	accessLog := utils.Logger
	if cfg.GinPath != "" {
		gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
		if err != nil {
			utils.Logger.Warn("gin access log disabled", zap.Error(err))
		} else {
			accessLog = gl
		}
	}
	r.Use(middleware.RequestID())
	r.Use(utils.Ginzap(accessLog, time.RFC3339, true))
	r.Use(utils.RecoveryWithZap(accessLog, false))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.SessionHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	r.Use(middleware.ErrorHandler())

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	resolver := auth.NewResolver(st)
	composer := feed.NewComposer(st, resolver)

	sessionController := controllers.NewSessionController(st)
	userController := controllers.NewUserController(st, cfg.RegisterMaxPerIPPerDay)
	followerController := controllers.NewFollowerController(st)
	postController := controllers.NewPostController(st, composer)
	likeController := controllers.NewLikeController(st)

	requireSession := middleware.SessionRequired(resolver)
	throttle := middleware.RateLimit(cfg.RateLimitPerMinute)

	r.POST("/sessions", throttle, sessionController.Create)
	r.DELETE("/sessions/:id", sessionController.Delete)

	users := r.Group("/users")
	users.POST("", throttle, userController.Create)
	users.GET("", userController.List)
	users.GET("/:login", userController.Show)
	// :login also accepts the numeric user id
	users.PATCH("/:login", requireSession, userController.Update)
	users.DELETE("/:login", requireSession, userController.Delete)

	users.POST("/:login/followers", requireSession, followerController.Create)
	users.GET("/:login/followers", followerController.List)
	users.DELETE("/:login/followers/:id", requireSession, followerController.Delete)
	users.GET("/:login/posts", postController.ListByUser)

	posts := r.Group("/posts")
	posts.POST("", requireSession, postController.Create)
	posts.GET("", postController.List)
	posts.DELETE("/:id", requireSession, postController.Delete)
	posts.POST("/:id/replies", requireSession, postController.CreateReply)
	posts.GET("/:id/replies", postController.ListReplies)
	posts.POST("/:id/likes", requireSession, likeController.Create)
	posts.GET("/:id/likes", likeController.List)
	posts.DELETE("/:id/likes/:likeId", requireSession, likeController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
