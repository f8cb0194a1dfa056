package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"veda-core/internal/catalog"
	"veda-core/internal/config"
	"veda-core/internal/db"
	apihttp "veda-core/internal/http"
	"veda-core/internal/repository"
	"veda-core/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.Engine.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
	}

	cat, err := catalog.Open(cfg.Engine.CatalogDir)
	if err != nil {
		logger.Fatal("load catalog", zap.String("dir", cfg.Engine.CatalogDir), zap.Error(err))
	}
	engine, err := service.NewConstitutionEngineFromCatalog(cat)
	if err != nil {
		logger.Fatal("build weight table", zap.Error(err))
	}

	var (
		assessLimiter service.AssessmentRateLimiter
		redisClient   *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			assessLimiter = service.NewRedisAssessmentRateLimiter(
				redisClient,
				time.Duration(cfg.AssessRateWindowMinutes)*time.Minute,
				cfg.AssessRateMax,
			)
		}
		cancel()
	}

	verifier := service.NewTokenVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	if !verifier.Enabled() {
		logger.Warn("jwt secret not configured, subject routes are public")
	}

	profileRepo := repository.NewPgProfileRepository(pool)
	assessmentRepo := repository.NewPgAssessmentRepository(pool)
	foodLogRepo := repository.NewPgFoodLogRepository(pool)

	detector := service.NewImbalanceDetector(cfg.Engine.ImbalanceThreshold)
	profileSvc := service.NewProfileService(logger, engine, detector, profileRepo, assessmentRepo, assessLimiter)
	analyticsSvc := service.NewAnalyticsService(logger, cat, foodLogRepo, profileRepo)
	selector := service.NewContentSelectorFromCatalog(cat)

	constitutionHandler := apihttp.NewConstitutionHandler(logger, engine, profileSvc, cat)
	contentHandler := apihttp.NewContentHandler(logger, selector, cat)
	analyticsHandler := apihttp.NewAnalyticsHandler(logger, analyticsSvc)
	router := apihttp.NewRouter(logger, verifier, constitutionHandler, contentHandler, analyticsHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.Int("imbalance_threshold", detector.Threshold),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

// newLogger construye el logger de produccion con el nivel configurado.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
