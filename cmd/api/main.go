package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ayes009/photoshare-webapp/internal/adapter/handler"
	"github.com/ayes009/photoshare-webapp/internal/adapter/repository/objectstore"
	store "github.com/ayes009/photoshare-webapp/internal/adapter/storage"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/auth"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/cache"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/config"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/middleware"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/observability"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/server"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/storage"
	"github.com/ayes009/photoshare-webapp/internal/pkg/idgen"
	authUC "github.com/ayes009/photoshare-webapp/internal/usecase/auth"
	"github.com/ayes009/photoshare-webapp/internal/usecase/catalog"
	"github.com/ayes009/photoshare-webapp/internal/usecase/engagement"
	"github.com/ayes009/photoshare-webapp/internal/usecase/upload"
)

//	@title			PhotoShare API
//	@version		1.0
//	@description	Photo sharing backend: uploads, likes, ratings and comments over an object store.
//	@BasePath		/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	// Blob containers
	photoStore, metadataStore, blobHandler := newBlobStores(cfg)
	if metrics != nil {
		photoStore = storage.NewInstrumentedStorage(photoStore, "photos", metrics.StoreOperations)
		metadataStore = storage.NewInstrumentedStorage(metadataStore, "metadata", metrics.StoreOperations)
	}
	logger.Info("storage ready", zap.String("backend", cfg.Storage.Backend))

	// Repositories
	photoRepo := objectstore.NewPhotoRepo(metadataStore, logger)

	// Infrastructure services
	tokens := auth.NewTokenCodec()

	// Use cases
	authSvc := authUC.NewService(tokens)
	catalogSvc := catalog.NewService(photoRepo, logger)
	uploadSvc := upload.NewService(photoRepo, photoStore, idgen.New(), logger)
	engagementSvc := engagement.NewService(photoRepo, cfg.Engagement.MaxAttempts, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	photoHandler := handler.NewPhotoHandler(catalogSvc, uploadSvc, cfg.Server.UploadMaxBodyBytes)
	engagementHandler := handler.NewEngagementHandler(engagementSvc)

	// Middleware
	identityMiddleware := middleware.NewIdentityMiddleware(tokens)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit, logger)
	}

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:        authHandler,
		PhotoHandler:       photoHandler,
		EngagementHandler:  engagementHandler,
		IdentityMiddleware: identityMiddleware,
		RateLimiter:        rateLimiter,
		Metrics:            metrics,
		BlobHandler:        blobHandler,
		StaticDir:          cfg.Server.StaticDir,
		Logger:             logger,
		Environment:        cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Handler:         router.Engine(),
		Logger:          logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}

// newBlobStores returns the photos and metadata containers for the configured
// backend. The memory backend also returns the handler that serves photo
// blobs at their public URL.
func newBlobStores(cfg *config.Config) (photos, metadata store.BlobStore, blobHandler http.Handler) {
	if cfg.Storage.Backend == config.StorageBackendMemory {
		photoStore := storage.NewMemoryStorage(cfg.Storage.MemoryPublicURL)
		return photoStore, storage.NewMemoryStorage(""), photoStore
	}

	client := storage.NewS3Client(cfg.S3)
	photos = storage.NewS3Storage(client, cfg.S3.PhotosBucket, cfg.S3.PublicURL, cfg.S3.PresignTTL)
	metadata = storage.NewS3Storage(client, cfg.S3.MetadataBucket, "", cfg.S3.PresignTTL)
	return photos, metadata, nil
}
