package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/ecowatch/notice-api/internal/config"
	healthHandler "github.com/ecowatch/notice-api/internal/handler/health"
	noticeHandler "github.com/ecowatch/notice-api/internal/handler/notice"
	prometheusHandler "github.com/ecowatch/notice-api/internal/handler/prometheus"
	reportHandler "github.com/ecowatch/notice-api/internal/handler/report"
	statsHandler "github.com/ecowatch/notice-api/internal/handler/stats"
	"github.com/ecowatch/notice-api/internal/loader"
	"github.com/ecowatch/notice-api/internal/middleware"
	"github.com/ecowatch/notice-api/internal/router"
	noticeService "github.com/ecowatch/notice-api/internal/service/notice"
	"github.com/ecowatch/notice-api/internal/store"
	"github.com/ecowatch/notice-api/pkg/logger"
	"github.com/ecowatch/notice-api/pkg/metrics"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	// Load the scraped feed and the saved user-state overlay.
	ld := loader.New()
	feed, err := ld.LoadFeed(cfg.Data.FeedPath)
	if err != nil {
		log.Fatal(err, "failed to load notice feed", "path", cfg.Data.FeedPath)
	}
	prefs, err := ld.LoadPreferences(cfg.Data.PreferencesPath)
	if err != nil {
		log.Fatal(err, "failed to load preferences", "path", cfg.Data.PreferencesPath)
	}
	loader.ApplyPreferences(feed.Notifications, prefs)

	st, err := store.New(feed.Notifications, feed.LastUpdate)
	if err != nil {
		log.Fatal(err, "failed to build notice store")
	}
	log.Info("notice feed loaded", "notices", st.Len(), "last_update", st.LastUpdate())

	m := metrics.NewMetrics("ecowatch", "notice")
	svc := noticeService.NewService(
		st,
		time.Now,
		m,
		time.Duration(cfg.Stats.CacheTTLSeconds)*time.Second,
		cfg.Deadlines.WindowDays,
	)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.API.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.API.CORSAllowOrigins
	}
	cacheConfig := middleware.DefaultCacheConfig()
	cacheConfig.MaxAge = cfg.API.CacheMaxAge

	r := router.NewRouter(
		noticeHandler.NewHandler(svc),
		statsHandler.NewHandler(svc),
		reportHandler.NewHandler(svc, time.Now),
		healthHandler.NewHandler(svc),
		prometheusHandler.New(),
		router.RouterConfig{
			RateLimit:      rate.Limit(cfg.API.RateLimit),
			RateBurst:      cfg.API.RateBurst,
			TimeoutSeconds: cfg.Server.TimeoutSeconds,
			CORSConfig:     corsConfig,
			CacheConfig:    cacheConfig,
			MetricsPrefix:  "notice_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()
	log.Info("server started", "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
