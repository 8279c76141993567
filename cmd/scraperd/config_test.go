package main_test

import (
	"log/slog"
	"testing"
	"time"

	main "github.com/fwojciec/scraper/cmd/scraperd"
	"github.com/stretchr/testify/assert"
)

func validConfig() main.Config {
	return main.Config{
		ProjectName:        "Content Scraper API",
		ProjectDescription: "API for extracting content from web articles",
		Version:            "0.1.0",
		Host:               "0.0.0.0",
		Port:               8000,
		Summarizer:         "none",
		FetchTimeout:       10 * time.Second,
		MaxBodySize:        1 << 20,
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(c *main.Config)
		wantErr string
	}{
		{"valid", func(*main.Config) {}, ""},
		{"negative port", func(c *main.Config) { c.Port = -1 }, "invalid port"},
		{"port too large", func(c *main.Config) { c.Port = 65536 }, "invalid port"},
		{"gemini without key", func(c *main.Config) { c.Summarizer = "gemini" }, "GEMINI_API_KEY"},
		{"gemini with key", func(c *main.Config) { c.Summarizer = "gemini"; c.GeminiAPIKey = "key" }, ""},
		{"zero fetch timeout", func(c *main.Config) { c.FetchTimeout = 0 }, "fetch timeout"},
		{"zero body size", func(c *main.Config) { c.MaxBodySize = 0 }, "max body size"},
		{"negative rate limit", func(c *main.Config) { c.RateLimit = -1 }, "rate limit"},
		{"negative gemini max tokens", func(c *main.Config) { c.GeminiMaxTokens = -1 }, "gemini max tokens"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validConfig()
			tt.modify(&c)
			err := c.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_Addr(t *testing.T) {
	t.Parallel()

	c := validConfig()
	assert.Equal(t, "0.0.0.0:8000", c.Addr())

	c.Host = "::1"
	assert.Equal(t, "[::1]:8000", c.Addr())
}

func TestConfig_LogLevel(t *testing.T) {
	t.Parallel()

	c := validConfig()
	assert.Equal(t, slog.LevelInfo, c.LogLevel())

	c.Debug = true
	assert.Equal(t, slog.LevelDebug, c.LogLevel())
}

func TestConfig_ServiceInfo(t *testing.T) {
	t.Parallel()

	c := validConfig()
	info := c.ServiceInfo()

	assert.Equal(t, "Content Scraper API", info.Name)
	assert.Equal(t, "API for extracting content from web articles", info.Description)
	assert.Equal(t, "0.1.0", info.Version)
}
