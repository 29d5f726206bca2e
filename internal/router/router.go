package router

import (
	"context"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/windoze95/aiplayground-api/internal/config"
	"github.com/windoze95/aiplayground-api/internal/content"
	"github.com/windoze95/aiplayground-api/internal/handlers"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/metrics"
	"github.com/windoze95/aiplayground-api/internal/middleware"
	"github.com/windoze95/aiplayground-api/internal/service"
)

const (
	limiterCleanupInterval = time.Minute
	limiterExpiration      = 5 * time.Minute
)

// SetupRouter sets up the Gin router. Metrics are registered with reg and
// served from it on /metrics.
// Background work started by the router stops when ctx is done.
func SetupRouter(ctx context.Context, cfg *config.Config, reg *prometheus.Registry) *gin.Engine {
	m := metrics.NewMetrics(reg)
	return NewEngine(ctx, cfg, NewProviders(cfg, m), m, reg)
}

// NewEngine builds the router around already constructed providers.
func NewEngine(ctx context.Context, cfg *config.Config, p Providers, m *metrics.Metrics, gatherer prometheus.Gatherer) *gin.Engine {
	// Create default Gin router
	r := gin.Default()

	// The browser client may be served from anywhere, like cors() with no options
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("X-Request-ID")
	corsConfig.AddExposeHeaders("X-Request-ID", "Retry-After")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.SecurityHeaders())

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	r.Use(middleware.RequestMetrics(m))

	// Frontend
	publicDir := cfg.EnvVars.PublicDir
	r.StaticFile("/", filepath.Join(publicDir, "index.html"))
	r.Static("/js", filepath.Join(publicDir, "js"))
	r.Static("/css", filepath.Join(publicDir, "css"))

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	fetcher := content.NewHTTPFetcher(cfg.EnvVars.FetchTimeout)

	codegenHandler := handlers.NewCodegenHandler(service.NewCodegenService(p.Assistants, p.Codestral, p.Claude))

	var oneShotPrompt string
	if cfg.Prompts != nil {
		oneShotPrompt = cfg.Prompts.OneShot.System
	}
	oneShotHandler := handlers.NewOneShotHandler(service.NewOneShotService(p.Chat, fetcher, oneShotPrompt))
	speechHandler := handlers.NewSpeechHandler(service.NewSpeechService(p.Speech))
	captionHandler := handlers.NewCaptionHandler(service.NewCaptionService(p.Caption, fetcher))

	api := r.Group("/api")
	api.Use(middleware.RateLimitByIP(ctx, cfg.EnvVars.RateLimitRPS, limiterCleanupInterval, limiterExpiration))
	{
		// One-shot prompt routes
		api.POST("/generate", oneShotHandler.Generate)
		api.POST("/upload", oneShotHandler.Upload)

		v1 := api.Group("/v1")

		// Code generation for the browser client
		v1.POST("/codegen", codegenHandler.Generate)

		// Speech routes
		v1.POST("/speech/tts", speechHandler.TextToSpeech)
		v1.POST("/speech/stt", speechHandler.SpeechToText)

		// Vision routes
		v1.POST("/vision/caption", captionHandler.Caption)
	}

	r.NoRoute(handlers.NotFound)

	return r
}
