package app

import (
	"time"

	"Capsule/internal/auth"
	"Capsule/internal/cache"
	"Capsule/internal/config"
	"Capsule/internal/handlers"
	"Capsule/internal/mailer"
	"Capsule/internal/repo"
	"Capsule/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client, mail mailer.Mailer) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	sessionStore := auth.NewStore(rdb, 24*time.Hour)
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)
	registerAuthRoutes(api, authHandler)

	capsuleRepo := repo.NewPGCapsuleRepo(db)
	capsuleCache := cache.NewCapsuleCache(rdb, cfg.Redis.DefaultTTL.Duration())
	capsuleSvc := service.NewCapsuleService(capsuleRepo, userRepo, capsuleCache, mail, cfg.App.BaseURL)
	capsuleHandler := handlers.NewCapsuleHandler(capsuleSvc)

	// Public feed and capsule views: anonymous allowed, session (if any)
	// annotates liked flags and unlocks private-to-owner reads.
	public := api.Group("", auth.OptionalSession(sessionStore))
	public.GET("/capsules", capsuleHandler.ListPublic)
	public.GET("/capsules/:id", capsuleHandler.GetByID)
	public.GET("/capsules/:id/like", capsuleHandler.LikeStatus)

	protected := api.Group("", auth.RequireSession(sessionStore))
	protected.POST("/capsules", capsuleHandler.Create)
	protected.GET("/capsules/mine", capsuleHandler.ListMine)
	protected.PATCH("/capsules/:id", capsuleHandler.Update)
	protected.DELETE("/capsules/:id", capsuleHandler.Delete)
	protected.POST("/capsules/:id/like", capsuleHandler.ToggleLike)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "TimeCapsule API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",

			"health": "/health",
			"api":    "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
}
