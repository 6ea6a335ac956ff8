package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/ayes009/photoshare-webapp/internal/adapter/handler"
	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/middleware"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/observability"
	"github.com/ayes009/photoshare-webapp/internal/pkg/httputil"
)

// BlobRoute is where the memory backend serves stored photos.
const BlobRoute = "/blobs/photos"

type Router struct {
	engine             *gin.Engine
	authHandler        *handler.AuthHandler
	photoHandler       *handler.PhotoHandler
	engagementHandler  *handler.EngagementHandler
	identityMiddleware *middleware.IdentityMiddleware
	rateLimiter        *middleware.RateLimiter
	metrics            *observability.Metrics
	blobHandler        http.Handler
	staticDir          string
	logger             *zap.Logger
}

type RouterConfig struct {
	AuthHandler        *handler.AuthHandler
	PhotoHandler       *handler.PhotoHandler
	EngagementHandler  *handler.EngagementHandler
	IdentityMiddleware *middleware.IdentityMiddleware
	// Optional: rate limiting on /api.
	RateLimiter *middleware.RateLimiter
	// Optional: request metrics and the /metrics endpoint.
	Metrics *observability.Metrics
	// Optional: serves photo blobs under BlobRoute.
	BlobHandler http.Handler
	// Optional: frontend files served for unmatched GETs.
	StaticDir   string
	Logger      *zap.Logger
	Environment string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:             engine,
		authHandler:        cfg.AuthHandler,
		photoHandler:       cfg.PhotoHandler,
		engagementHandler:  cfg.EngagementHandler,
		identityMiddleware: cfg.IdentityMiddleware,
		rateLimiter:        cfg.RateLimiter,
		metrics:            cfg.Metrics,
		blobHandler:        cfg.BlobHandler,
		staticDir:          cfg.StaticDir,
		logger:             cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	if r.metrics != nil {
		r.engine.Use(middleware.Metrics(r.metrics))
	}
	r.engine.Use(middleware.CORS())
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(entity.TimestampLayout),
		})
	})

	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}

	// Swagger documentation
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if r.blobHandler != nil {
		r.engine.GET(BlobRoute+"/*key", gin.WrapH(r.blobHandler))
		r.engine.HEAD(BlobRoute+"/*key", gin.WrapH(r.blobHandler))
	}

	api := r.engine.Group("/api")
	if r.rateLimiter != nil {
		api.Use(r.rateLimiter.Limit())
	}
	api.Use(r.identityMiddleware.Attribute())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", r.authHandler.Login)
		}

		photos := api.Group("/photos")
		{
			photos.GET("", r.photoHandler.List)
			photos.POST("", r.photoHandler.Upload)
			photos.DELETE("/:id", r.photoHandler.Delete)
			photos.POST("/:id/like", r.engagementHandler.Like)
			photos.POST("/:id/rate", r.engagementHandler.Rate)
			photos.POST("/:id/comments", r.engagementHandler.Comment)
		}
	}

	r.engine.NoRoute(r.noRoute)
}

// noRoute serves the frontend for unmatched GETs when a static directory is
// configured, falling back to index.html for client-side routes.
func (r *Router) noRoute(c *gin.Context) {
	path := c.Request.URL.Path
	if r.staticDir == "" || c.Request.Method != http.MethodGet || strings.HasPrefix(path, "/api/") {
		httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "route not found")
		return
	}

	file := filepath.Join(r.staticDir, filepath.Clean(filepath.FromSlash("/"+path)))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		c.File(file)
		return
	}

	index := filepath.Join(r.staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "route not found")
		return
	}
	c.File(index)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
