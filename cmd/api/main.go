package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cyberguardng/cyberguard/internal/bankverify"
	"github.com/cyberguardng/cyberguard/internal/curation"
	"github.com/cyberguardng/cyberguard/internal/premium"
	"github.com/cyberguardng/cyberguard/internal/reports"
	"github.com/cyberguardng/cyberguard/internal/sms"
	"github.com/cyberguardng/cyberguard/internal/updater"
	"github.com/cyberguardng/cyberguard/internal/ussd"
	"github.com/cyberguardng/cyberguard/pkg/common"
	"github.com/cyberguardng/cyberguard/pkg/config"
	"github.com/cyberguardng/cyberguard/pkg/filestore"
	"github.com/cyberguardng/cyberguard/pkg/health"
	"github.com/cyberguardng/cyberguard/pkg/logger"
	"github.com/cyberguardng/cyberguard/pkg/middleware"
	"github.com/cyberguardng/cyberguard/pkg/redis"
	"github.com/cyberguardng/cyberguard/pkg/validation"
)

const version = "2.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load("cyberguard-api")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Sentry error reporting (only when a DSN is configured)
	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Server.Environment,
			Release:     "cyberguard@" + version,
		}); err != nil {
			logger.Warn("Sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Flat-file data store
	store, err := filestore.New(cfg.Data.Dir)
	if err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err))
	}

	// Score cache: Redis when enabled, flat file otherwise
	fileCache := ussd.NewFileCache(store)
	var cache ussd.ScoreCache = fileCache
	cacheSize := fileCache.Size

	healthChecks := map[string]func() error{
		"data_dir": health.DataDirChecker(store.Dir()),
	}

	if cfg.Redis.Enabled {
		redisClient, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		redisCache := ussd.NewRedisCache(redisClient)
		cache = redisCache
		cacheSize = func() int { return redisCache.Size(context.Background()) }
		healthChecks["redis"] = health.RedisChecker(redisClient)
		logger.Info("Using Redis score cache", zap.String("addr", cfg.Redis.RedisAddr()))
	}

	// Services and handlers
	lists := ussd.NewLists(store)
	verifier := ussd.NewHTTPSourceVerifier(cfg.Updater.SourceURLs, cfg.Updater.UserAgent)
	bankService := bankverify.NewService(store)

	ussdService := ussd.NewService(lists, cache, verifier, bankService)
	ussdHandler := ussd.NewHandler(ussdService)

	smsHandler := sms.NewHandler()

	reportRepo := reports.NewRepository(store)
	reportService := reports.NewService(reportRepo, lists)
	reportHandler := reports.NewHandler(reportService)

	curationRepo := curation.NewRepository(store)
	curationService := curation.NewService(curationRepo, lists, reportService)
	curationHandler := curation.NewHandler(curationService)

	updaterService := updater.NewService(store, curationRepo, lists, &cfg.Updater)
	updaterHandler := updater.NewHandler(updaterService)

	premiumService := premium.NewService(store, &cfg.Premium)
	premiumHandler := premium.NewHandler(premiumService)
	quota := premium.QuotaMiddleware(premiumService, cfg.Premium.Enabled)

	// Router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.RegisterGinRules()
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	if cfg.Server.CORSOrigins == "*" {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Correlation-ID"}

	router.Use(
		cors.New(corsConfig),
		middleware.CorrelationID(),
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.Metrics(cfg.Server.ServiceName),
		middleware.SecurityHeaders(),
		requestTimeout(time.Duration(cfg.Server.RequestTimeout)*time.Second),
	)
	if cfg.Sentry.Enabled {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	// Health checks and metrics (no auth required)
	router.GET("/livez", common.HealthCheck(cfg.Server.ServiceName, version))
	router.GET("/healthz", common.HealthCheckWithDeps(cfg.Server.ServiceName, version, healthChecks,
		func() map[string]interface{} {
			return map[string]interface{}{
				"cache_size":    cacheSize(),
				"reports_count": reportService.Count(),
			}
		}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public scoring API
	api := router.Group("/api/v1")
	{
		api.GET("/check-ussd", quota, ussdHandler.CheckUSSD)
		api.GET("/check-ussd-enhanced", quota, ussdHandler.CheckUSSDEnhanced)
		api.GET("/check-sms-scam", quota, smsHandler.CheckSMS)

		community := api.Group("/community")
		{
			community.POST("/report", reportHandler.Submit)
			community.GET("/reports", reportHandler.List)
			community.POST("/update-report", middleware.AuthMiddleware(cfg.JWT.Secret), reportHandler.Moderate)
		}
	}

	// Admin surface (JWT, admin role)
	admin := router.Group("/admin", middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RequireRole("admin"))
	{
		admin.POST("/sync-ussd", updaterHandler.SyncUSSD)
		admin.POST("/update-safe-codes", updaterHandler.UpdateSafeCodes)
		admin.GET("/update-stats", updaterHandler.Stats)
		admin.POST("/add-source", updaterHandler.AddSource)
		admin.GET("/list-sources", updaterHandler.ListSources)

		cur := admin.Group("/curation")
		{
			cur.GET("/stats", curationHandler.Stats)
			cur.GET("/codes", curationHandler.List)
			cur.GET("/pending", curationHandler.Pending)
			cur.POST("/add", curationHandler.Add)
			cur.POST("/bulk-add", curationHandler.BulkAdd)
			cur.POST("/approve-report", curationHandler.ApproveReport)
			cur.POST("/reject-report", curationHandler.RejectReport)
			cur.DELETE("/delete", curationHandler.Delete)
			cur.GET("/export", curationHandler.Export)
		}
	}

	// Mobile app surface
	mobile := router.Group("/mobile")
	{
		mobile.GET("/check", quota, ussdHandler.MobileCheck)
		mobile.POST("/report", reportHandler.SubmitMobile)
		mobile.GET("/stats", reportHandler.MobileStats)
	}

	// Premium subscriptions
	prem := router.Group("/premium")
	{
		prem.GET("/status", premiumHandler.Status)
		prem.POST("/upgrade", premiumHandler.Upgrade)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	logger.Info("CyberGuard API starting",
		zap.String("port", cfg.Server.Port),
		zap.String("environment", cfg.Server.Environment),
	)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// requestTimeout aborts requests that exceed the configured per-request budget
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(d),
		timeout.WithHandler(func(c *gin.Context) { c.Next() }),
		timeout.WithResponse(func(c *gin.Context) {
			common.ErrorResponse(c, http.StatusGatewayTimeout, "request timed out")
		}),
	)
}
