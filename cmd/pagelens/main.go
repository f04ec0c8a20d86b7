package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/use-agent/pagelens/api"
	"github.com/use-agent/pagelens/config"
	"github.com/use-agent/pagelens/llm"
	"github.com/use-agent/pagelens/metrics"
	"github.com/use-agent/pagelens/scraper"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("pagelens starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"browserConfigured", cfg.Browser.Configured(),
		"llmConfigured", cfg.LLM.Configured(),
	)
	if !cfg.Browser.Configured() {
		slog.Warn("PAGELENS_BROWSER_URL is not set; browser-backed endpoints will fail")
	}

	// ── 3. Initialise scraper ───────────────────────────────────────
	// Sessions are opened per request against the remote browser, so
	// there is nothing to launch or drain here.
	m := metrics.New()
	var connector scraper.Connector
	if cfg.Browser.Configured() {
		connector = scraper.NewRodConnector(cfg.Browser)
	}
	sessions := scraper.NewManager(connector, m)
	static := scraper.NewStaticFetcher(cfg.Browser, cfg.Scraper.StaticTimeout)
	sc := scraper.New(sessions, static, cfg.Scraper, m)

	// ── 4. Initialise summarizer ────────────────────────────────────
	lc := llm.NewClient(cfg.LLM, nil)

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(sc, lc, m, cfg, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Scrapes can run for over a minute; give them time to release their sessions.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("pagelens stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(handler))
}
