package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Browser BrowserConfig
	Scraper ScraperConfig
	LLM     LLMConfig
	Auth    AuthConfig
	Log     LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 3000
	Mode string // "debug", "release", "test"; default: "release"

	// CORSOrigins lists browser origins allowed to call the API.
	// Empty disables CORS handling.
	CORSOrigins []string
}

// BrowserConfig describes the remote browser endpoint. The browser runs
// elsewhere; every request opens its own connection to URL.
type BrowserConfig struct {
	// URL is the CDP websocket endpoint, credentials included.
	URL string

	// UserAgent is sent on every navigation.
	UserAgent string

	// AcceptLanguage is sent as an extra request header.
	AcceptLanguage string // default: "en-US,en;q=0.9"

	// ConnectTimeout bounds connecting and opening a page.
	ConnectTimeout time.Duration // default: 20s

	// BlockedResourceTypes lists resource types the page never loads.
	// default: ["Font", "Media"]
	BlockedResourceTypes []string
}

// Configured reports whether a browser endpoint was supplied.
func (b BrowserConfig) Configured() bool {
	return b.URL != ""
}

// ProfileTiming bounds navigation for one extraction profile.
type ProfileTiming struct {
	// NavigationTimeout is the hard limit on loading the target URL.
	NavigationTimeout time.Duration

	// SettleDelay is the fixed pause after the load event.
	SettleDelay time.Duration
}

// ScraperConfig controls per-profile navigation and interaction timing.
type ScraperConfig struct {
	Website    ProfileTiming // default: 30s / 1.5s
	Listing    ProfileTiming // default: 60s / 2s
	Reviews    ProfileTiming // default: 60s / 3s
	Transcript ProfileTiming // default: 90s / 5s

	// ReadinessWait bounds each readiness marker wait on a listing page.
	ReadinessWait time.Duration // default: 10s

	// ReadinessFallback is the delay signal raced against the markers.
	ReadinessFallback time.Duration // default: 5s

	// ReviewsElementWait bounds marker waits on the dedicated reviews page.
	ReviewsElementWait time.Duration // default: 5s

	ScrollSettle time.Duration // default: 2s
	ExpandSettle time.Duration // default: 1.5s
	RevealSettle time.Duration // default: 3s

	// ReviewLimit caps the number of review containers read per page.
	ReviewLimit int // default: 5

	// StaticTimeout bounds a plain HTTP fetch (fetchMode "http").
	StaticTimeout time.Duration // default: 30s
}

// LLMConfig configures the OpenAI-compatible summarization provider.
type LLMConfig struct {
	APIKey      string
	BaseURL     string  // default: "https://api.openai.com/v1"
	Model       string  // default: "gpt-4o-mini"
	Temperature float64 // default: 0.7
	MaxTokens   int     // default: 1000

	// Timeout bounds a whole streamed completion.
	Timeout time.Duration // default: 120s
}

// Configured reports whether an API key is present.
func (l LLMConfig) Configured() bool {
	return l.APIKey != ""
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	APIKeys []string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: envOr("PAGELENS_HOST", "0.0.0.0"),
			Port: envIntOr("PORT", envIntOr("PAGELENS_PORT", 3000)),
			Mode: envOr("PAGELENS_MODE", "release"),

			CORSOrigins: envSliceOr("PAGELENS_CORS_ORIGINS", nil),
		},
		Browser: BrowserConfig{
			URL:            os.Getenv("PAGELENS_BROWSER_URL"),
			UserAgent:      envOr("PAGELENS_USER_AGENT", DefaultUserAgent),
			AcceptLanguage: envOr("PAGELENS_ACCEPT_LANGUAGE", "en-US,en;q=0.9"),
			ConnectTimeout: envDurationOr("PAGELENS_CONNECT_TIMEOUT", 20*time.Second),
			BlockedResourceTypes: envSliceOr("PAGELENS_BLOCKED_RESOURCES", []string{
				"Font", "Media",
			}),
		},
		Scraper: ScraperConfig{
			Website: ProfileTiming{
				NavigationTimeout: envDurationOr("PAGELENS_WEBSITE_NAV_TIMEOUT", 30*time.Second),
				SettleDelay:       envDurationOr("PAGELENS_WEBSITE_SETTLE", 1500*time.Millisecond),
			},
			Listing: ProfileTiming{
				NavigationTimeout: envDurationOr("PAGELENS_LISTING_NAV_TIMEOUT", 60*time.Second),
				SettleDelay:       envDurationOr("PAGELENS_LISTING_SETTLE", 2*time.Second),
			},
			Reviews: ProfileTiming{
				NavigationTimeout: envDurationOr("PAGELENS_REVIEWS_NAV_TIMEOUT", 60*time.Second),
				SettleDelay:       envDurationOr("PAGELENS_REVIEWS_SETTLE", 3*time.Second),
			},
			Transcript: ProfileTiming{
				NavigationTimeout: envDurationOr("PAGELENS_TRANSCRIPT_NAV_TIMEOUT", 90*time.Second),
				SettleDelay:       envDurationOr("PAGELENS_TRANSCRIPT_SETTLE", 5*time.Second),
			},
			ReadinessWait:      envDurationOr("PAGELENS_READINESS_WAIT", 10*time.Second),
			ReadinessFallback:  envDurationOr("PAGELENS_READINESS_FALLBACK", 5*time.Second),
			ReviewsElementWait: envDurationOr("PAGELENS_REVIEWS_ELEMENT_WAIT", 5*time.Second),
			ScrollSettle:       envDurationOr("PAGELENS_SCROLL_SETTLE", 2*time.Second),
			ExpandSettle:       envDurationOr("PAGELENS_EXPAND_SETTLE", 1500*time.Millisecond),
			RevealSettle:       envDurationOr("PAGELENS_REVEAL_SETTLE", 3*time.Second),
			ReviewLimit:        envIntOr("PAGELENS_REVIEW_LIMIT", 5),
			StaticTimeout:      envDurationOr("PAGELENS_STATIC_TIMEOUT", 30*time.Second),
		},
		LLM: LLMConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			BaseURL:     envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       envOr("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: envFloatOr("OPENAI_TEMPERATURE", 0.7),
			MaxTokens:   envIntOr("OPENAI_MAX_TOKENS", 1000),
			Timeout:     envDurationOr("OPENAI_TIMEOUT", 120*time.Second),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PAGELENS_AUTH_ENABLED", false),
			APIKeys: envSliceOr("PAGELENS_API_KEYS", nil),
		},
		Log: LogConfig{
			Level:  envOr("PAGELENS_LOG_LEVEL", "info"),
			Format: envOr("PAGELENS_LOG_FORMAT", "json"),
		},
	}
}

// DefaultUserAgent is a current desktop Chrome user agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
