package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/careerlens/careerlens/config"
	"github.com/careerlens/careerlens/internal/api/handlers"
	"github.com/careerlens/careerlens/internal/api/middleware"
	"github.com/careerlens/careerlens/internal/api/routes"
	"github.com/careerlens/careerlens/internal/cache"
	"github.com/careerlens/careerlens/internal/logger"
	"github.com/careerlens/careerlens/internal/providers/llm"
	"github.com/careerlens/careerlens/internal/providers/oauth"
	"github.com/careerlens/careerlens/internal/repositories"
	"github.com/careerlens/careerlens/internal/repositories/cached"
	mongorepo "github.com/careerlens/careerlens/internal/repositories/mongo"
	"github.com/careerlens/careerlens/internal/services"
	"github.com/careerlens/careerlens/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log = logger.NewWith(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitMongo(ctx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("mongo init: %w", err)
	}
	defer func() { _ = config.CloseMongo(context.Background()) }()
	if err := config.EnsureMongoIndexes(ctx, db); err != nil {
		return fmt.Errorf("mongo indexes: %w", err)
	}
	log.WithField("database", cfg.Mongo.Database).Info("MongoDB connected")

	var users repositories.UserRepository = mongorepo.NewUserRepo(db)
	rdb, err := config.InitRedis(ctx, cfg.Redis)
	switch {
	case err != nil:
		log.WithError(err).Warn("redis unavailable, profile cache disabled")
	case rdb != nil:
		defer rdb.Close()
		users = cached.NewUsers(users, cache.NewRedisCache(rdb, "careerlens:"), cfg.Redis.ProfileTTL, log)
		log.Info("Redis connected, profile cache enabled")
	}

	provider, err := newProvider(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("llm provider: %w", err)
	}
	defer provider.Close()

	verifier, err := newVerifier(cfg.OAuth)
	if err != nil {
		return fmt.Errorf("oauth verifier: %w", err)
	}
	if verifier == nil {
		log.Warn("GOOGLE_CLIENT_ID not set, Google sign-in disabled")
	}

	uploader, uploadDir, closeUploader, err := newUploader(ctx, cfg)
	if err != nil {
		return fmt.Errorf("image store: %w", err)
	}
	defer closeUploader()

	if err := os.MkdirAll(cfg.Storage.TmpUploadDir, 0o755); err != nil {
		return fmt.Errorf("create tmp upload dir: %w", err)
	}

	analysisSvc := services.NewAnalysisService(provider, cfg.LLM.Model, cfg.LLM.Timeout, log)
	authSvc := services.NewAuthService(users, verifier, log)
	profileSvc := services.NewProfileService(users, uploader, log)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	var origins []string
	if cfg.App.IsProduction() {
		origins = cfg.App.AllowedOrigins()
	}
	routes.RegisterRoutes(r, routes.Deps{
		Analyze:        handlers.NewAnalyzeHandler(analysisSvc, cfg.Storage.TmpUploadDir),
		Auth:           handlers.NewAuthHandler(authSvc),
		Profile:        handlers.NewProfileHandler(profileSvc),
		UploadDir:      uploadDir,
		AllowedOrigins: origins,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"port":     cfg.App.Port,
			"env":      cfg.App.Env,
			"provider": cfg.LLM.Provider,
			"store":    cfg.Storage.ImageStore,
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newProvider(ctx context.Context, cfg config.LLMConfig) (llm.Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "vertex":
		return llm.NewVertexGemini(ctx, cfg.VertexProject, cfg.VertexLocation, cfg.Model)
	default:
		return llm.NewGeminiAPI(ctx, cfg.APIKey, cfg.Model)
	}
}

// newVerifier returns nil when no OAuth client is configured.
func newVerifier(cfg config.OAuthConfig) (oauth.Verifier, error) {
	switch {
	case cfg.PublicKeyFile != "":
		return oauth.LoadRSAVerifier(cfg.PublicKeyFile, cfg.GoogleClientID, cfg.Issuer)
	case cfg.GoogleClientID != "":
		return oauth.NewGoogleVerifier(cfg.GoogleClientID), nil
	default:
		return nil, nil
	}
}

// newUploader also returns the directory to serve under /uploads, which is
// empty for remote stores.
func newUploader(ctx context.Context, cfg *config.Config) (storage.Uploader, string, func(), error) {
	noop := func() {}
	switch strings.ToLower(cfg.Storage.ImageStore) {
	case "gcs":
		u, err := storage.NewGCSUploader(ctx, cfg.Storage.GCSBucket)
		if err != nil {
			return nil, "", noop, err
		}
		return u, "", func() { _ = u.Close() }, nil
	case "minio":
		u, err := storage.NewMinIOUploader(storage.MinIOConfig{
			Endpoint:        cfg.MinIO.Endpoint,
			AccessKeyID:     cfg.MinIO.AccessKeyID,
			SecretAccessKey: cfg.MinIO.SecretAccessKey,
			UseSSL:          cfg.MinIO.UseSSL,
			Bucket:          cfg.MinIO.Bucket,
			PublicURL:       cfg.MinIO.PublicURL,
		})
		if err != nil {
			return nil, "", noop, err
		}
		if err := u.EnsureBucket(ctx); err != nil {
			return nil, "", noop, err
		}
		return u, "", noop, nil
	default:
		u, err := storage.NewLocalUploader(cfg.Storage.UploadDir, "/uploads")
		if err != nil {
			return nil, "", noop, err
		}
		return u, u.Dir(), noop, nil
	}
}
