package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/akash62835/ResumeRAG/internal/chunker"
	"github.com/akash62835/ResumeRAG/internal/config"
	"github.com/akash62835/ResumeRAG/internal/db"
	dbRedis "github.com/akash62835/ResumeRAG/internal/db/redis"
	dbSqlite "github.com/akash62835/ResumeRAG/internal/db/sqlite"
	"github.com/akash62835/ResumeRAG/internal/domain"
	"github.com/akash62835/ResumeRAG/internal/embedding"
	"github.com/akash62835/ResumeRAG/internal/extract"
	logpkg "github.com/akash62835/ResumeRAG/internal/logger"
	"github.com/akash62835/ResumeRAG/internal/metrics"
	"github.com/akash62835/ResumeRAG/internal/redact"
	jobrepo "github.com/akash62835/ResumeRAG/internal/repository/job"
	resumerepo "github.com/akash62835/ResumeRAG/internal/repository/resume"
	chiTransport "github.com/akash62835/ResumeRAG/internal/transport/chi"
	openaiTransport "github.com/akash62835/ResumeRAG/internal/transport/openai"
	healthuc "github.com/akash62835/ResumeRAG/internal/usecase/health"
	ingestuc "github.com/akash62835/ResumeRAG/internal/usecase/ingest"
	jobsuc "github.com/akash62835/ResumeRAG/internal/usecase/jobs"
	matchuc "github.com/akash62835/ResumeRAG/internal/usecase/match"
	resumesuc "github.com/akash62835/ResumeRAG/internal/usecase/resumes"
	searchuc "github.com/akash62835/ResumeRAG/internal/usecase/search"
	"github.com/akash62835/ResumeRAG/internal/version"
	"github.com/akash62835/ResumeRAG/internal/worker"
)

func main() {
	// .env is optional; explicit environment always wins
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting resume matching API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Create document store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "sqlite":
		store, err = dbSqlite.NewStore(cfg.Database.Path)
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create document store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Document store not ready", zap.Error(err))
	}
	logger.Info("Connected to document store")

	// Register domain metrics explicitly (no init())
	metrics.Register()

	// Embedder chain: remote provider wrapped by the resilient decorator,
	// which degrades to the deterministic local fallback.
	var provider domain.Embedder
	if cfg.Embedding.APIKey != "" {
		provider = openaiTransport.NewEmbedder(&openaiTransport.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   "openai",
			Logger:     logger,
		})
		logger.Info("Embedding provider configured",
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
		)
	} else {
		logger.Warn("No embedding API key: running on the deterministic local fallback")
	}
	embedder := embedding.NewResilient(
		provider,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxChars,
		time.Duration(cfg.Embedding.TimeoutSec)*time.Second,
		logger,
	)

	// Extraction chain: LLM primary (when configured), regex fallback.
	var primaryExtractor extract.Extractor
	if cfg.Embedding.APIKey != "" {
		primaryExtractor = openaiTransport.NewExtractor(&openaiTransport.ExtractorConfig{
			APIKey:  cfg.Embedding.APIKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Extraction.Model,
			Logger:  logger,
		})
	}
	extractor := extract.NewChain(primaryExtractor, extract.NewRegex(), logger)

	// Shared worker pool for scoring scans and chunk embedding
	pool, err := worker.NewPool(cfg.Ingest.PoolSize)
	if err != nil {
		logger.Fatal("Failed to create worker pool", zap.Error(err))
	}
	defer pool.Release()

	resumeRepo := resumerepo.New(store, cfg.Storage.KeyPrefix)
	jobRepo := jobrepo.New(store, cfg.Storage.KeyPrefix)

	searchSvc := searchuc.New(resumeRepo, embedder, pool)
	matchSvc := matchuc.New(jobRepo, resumeRepo, pool)
	ingestSvc := ingestuc.New(
		resumeRepo, embedder, extractor,
		chunker.New(chunker.DefaultWindowSize, chunker.DefaultOverlap),
		pool, cfg.Ingest.MaxChunks, cfg.Ingest.DocEmbedChars, logger,
	)
	resumesSvc := resumesuc.New(resumeRepo)
	jobsSvc := jobsuc.New(jobRepo, embedder)

	var providerChecker healthuc.ProviderChecker
	if hc, ok := provider.(healthuc.ProviderChecker); ok {
		providerChecker = hc
	}
	healthSvc := healthuc.New(store, providerChecker)

	server := chiTransport.NewServer(
		searchSvc, matchSvc, ingestSvc, resumesSvc, jobsSvc, healthSvc,
		chiTransport.Defaults{SearchK: cfg.Search.DefaultK, MatchTopN: cfg.Search.DefaultTopN},
		logger,
	)

	apiKeys := make([]chiTransport.APIKey, len(cfg.Auth.APIKeys))
	for i, k := range cfg.Auth.APIKeys {
		apiKeys[i] = chiTransport.APIKey{Key: k.Key, Name: k.Name, Role: redact.Role(k.Role)}
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
