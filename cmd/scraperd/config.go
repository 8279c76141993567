package main

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	scraperhttp "github.com/fwojciec/scraper/http"
)

// Config holds the process settings, read from flags and environment.
type Config struct {
	ProjectName        string `name:"project-name" env:"PROJECT_NAME" default:"Content Scraper API" help:"Service name reported by GET /"`
	ProjectDescription string `name:"project-description" env:"PROJECT_DESCRIPTION" default:"API for extracting content from web articles" help:"Service description reported by GET /"`
	Version            string `name:"version-string" env:"VERSION" default:"0.1.0" help:"Service version reported by GET /"`

	Host  string `env:"HOST" default:"0.0.0.0" help:"Interface to listen on"`
	Port  int    `env:"PORT" default:"8000" help:"Port to listen on"`
	Debug bool   `env:"DEBUG_MODE" help:"Enable debug logging"`

	Language  string `env:"SCRAPER_LANGUAGE,NEWSPAPER_LANGUAGE" default:"en" help:"Article language (ISO 639-1)"`
	UserAgent string `env:"SCRAPER_USER_AGENT,NEWSPAPER_USER_AGENT" default:"${user_agent}" help:"User-Agent sent when fetching pages"`

	Fetcher       string `env:"SCRAPER_FETCHER" enum:"http,colly,rod" default:"http" help:"Page fetcher (${enum})"`
	Extractor     string `env:"SCRAPER_EXTRACTOR" enum:"trafilatura,readability" default:"trafilatura" help:"Content extractor (${enum})"`
	ContentFormat string `env:"SCRAPER_CONTENT_FORMAT" enum:"text,markdown" default:"text" help:"Format of the content field (${enum})"`
	Summarizer    string `env:"SCRAPER_SUMMARIZER" enum:"none,local,gemini" default:"none" help:"Keyword and summary generator (${enum})"`

	GeminiAPIKey    string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key, required for --summarizer=gemini"`
	GeminiModel     string `name:"gemini-model" env:"GEMINI_MODEL" default:"gemini-2.5-flash" help:"Gemini model"`
	GeminiMaxTokens int    `name:"gemini-max-tokens" env:"GEMINI_MAX_TOKENS" default:"0" help:"Truncate article text sent to Gemini to this many tokens (0 disables)"`

	FetchTimeout time.Duration `env:"SCRAPER_FETCH_TIMEOUT" default:"10s" help:"Timeout for fetching a page"`
	MaxBodySize  int64         `env:"SCRAPER_MAX_BODY_SIZE" default:"10485760" help:"Largest page accepted, in bytes"`
	RateLimit    float64       `env:"SCRAPER_RATE_LIMIT" default:"0" help:"Requests per second to a single host (0 disables)"`

	CORSOrigins     []string      `name:"cors-origins" env:"CORS_ORIGINS" default:"*" help:"Allowed CORS origins"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s" help:"Time allowed for in-flight requests on shutdown"`
}

// Validate checks settings kong cannot check on its own.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Summarizer == "gemini" && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.MaxBodySize <= 0 {
		return fmt.Errorf("max body size must be positive")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	if c.GeminiMaxTokens < 0 {
		return fmt.Errorf("gemini max tokens must not be negative")
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LogLevel returns the minimum level logged.
func (c *Config) LogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// ServiceInfo returns the metadata reported by GET /.
func (c *Config) ServiceInfo() scraperhttp.ServiceInfo {
	return scraperhttp.ServiceInfo{
		Name:        c.ProjectName,
		Description: c.ProjectDescription,
		Version:     c.Version,
	}
}
