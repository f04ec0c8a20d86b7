package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/use-agent/pagelens/api/handler"
	"github.com/use-agent/pagelens/api/middleware"
	"github.com/use-agent/pagelens/config"
	"github.com/use-agent/pagelens/llm"
	"github.com/use-agent/pagelens/metrics"
	"github.com/use-agent/pagelens/scraper"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

const corsMaxAge = 12 * time.Hour

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  CORS (if origins configured) → Recovery → Logger → RequestID
//	API:     Auth (if enabled)
//
// Health and metrics stay outside auth so monitoring probes always work.
func NewRouter(sc *scraper.Scraper, lc *llm.Client, m *metrics.Metrics, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	if len(cfg.Server.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Server.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept", "Authorization",
				middleware.HeaderAPIKey, middleware.HeaderRequestID,
			},
			ExposeHeaders: []string{middleware.HeaderRequestID},
			MaxAge:        corsMaxAge,
		}))
	}
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())

	r.GET("/health", handler.Health(startTime, Version))
	r.GET("/metrics", gin.WrapH(m.Handler()))

	protected := r.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}

	protected.POST("/scrape", handler.Scrape(sc))

	amazon := protected.Group("/amazon")
	amazon.POST("/check", handler.Product(sc))
	amazon.POST("/reviews", handler.Reviews(sc))

	youtube := protected.Group("/youtube")
	youtube.POST("/transcript", handler.Transcript(sc))
	youtube.POST("/summarize", handler.Summarize(sc, lc, m))
	youtube.POST("/summarize-text", handler.SummarizeText(lc, m))

	return r
}
