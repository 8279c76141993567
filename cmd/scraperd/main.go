package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/scraper"
	"github.com/fwojciec/scraper/article"
	"github.com/fwojciec/scraper/colly"
	"github.com/fwojciec/scraper/gemini"
	"github.com/fwojciec/scraper/goquery"
	"github.com/fwojciec/scraper/htmltomarkdown"
	scraperhttp "github.com/fwojciec/scraper/http"
	"github.com/fwojciec/scraper/nlp"
	"github.com/fwojciec/scraper/readability"
	"github.com/fwojciec/scraper/rod"
	scraperslog "github.com/fwojciec/scraper/slog"
	"github.com/fwojciec/scraper/throttle"
	"github.com/fwojciec/scraper/trafilatura"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)
	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration parsed by Run.
	Config Config

	// Fetcher used by the article service. Closed when Run returns.
	Fetcher scraper.Fetcher

	// HTTP server for the article API.
	Server *scraperhttp.Server
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{Server: scraperhttp.NewServer()}
}

// Close releases the fetcher.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run parses configuration, starts the HTTP server, and blocks until ctx is
// canceled or the server fails.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	parser, err := kong.New(&m.Config,
		kong.Name("scraperd"),
		kong.Description("HTTP service extracting article content from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"user_agent": scraperhttp.DefaultUserAgent},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if slices.ContainsFunc(args, func(a string) bool { return a == "--help" || a == "-h" }) {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if err := m.Config.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: m.Config.LogLevel()}))
	logger.Debug("configuration",
		"language", m.Config.Language,
		"user_agent", m.Config.UserAgent,
		"content_format", m.Config.ContentFormat,
		"fetch_timeout", m.Config.FetchTimeout,
		"max_body_size", m.Config.MaxBodySize,
		"rate_limit", m.Config.RateLimit,
		"cors_origins", m.Config.CORSOrigins,
	)

	fetcher, err := newFetcher(&m.Config)
	if err != nil {
		if m.Config.Fetcher == "rod" {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		}
		return fmt.Errorf("failed to start fetcher: %w", err)
	}
	m.Fetcher = scraperslog.NewLoggingFetcher(fetcher, logger)
	defer m.Close()

	summarizer, err := newSummarizer(ctx, &m.Config)
	if err != nil {
		return fmt.Errorf("failed to create summarizer: %w", err)
	}

	service := &article.Service{
		Fetcher:       m.Fetcher,
		Extractor:     newExtractor(&m.Config),
		Metadata:      goquery.NewMetadataExtractor(),
		Summarizer:    summarizer,
		ContentFormat: scraper.ContentFormat(m.Config.ContentFormat),
		Language:      m.Config.Language,
	}
	if service.ContentFormat == scraper.ContentFormatMarkdown {
		service.Converter = htmltomarkdown.NewConverter()
	}
	if m.Config.RateLimit > 0 {
		service.Limiter = throttle.NewDomainLimiter(m.Config.RateLimit)
	}

	m.Server.Addr = m.Config.Addr()
	m.Server.Logger = logger
	m.Server.ArticleService = scraperslog.NewLoggingArticleService(service, logger)
	m.Server.Info = m.Config.ServiceInfo()
	m.Server.CORSOrigins = m.Config.CORSOrigins
	m.Server.ShutdownTimeout = m.Config.ShutdownTimeout

	if err := m.Server.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", m.Server.Addr, err)
	}
	logger.Info("server listening",
		"url", m.Server.URL(),
		"fetcher", m.Config.Fetcher,
		"extractor", m.Config.Extractor,
		"summarizer", m.Config.Summarizer,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(m.Server.Serve)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return m.Server.Close()
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

func newFetcher(c *Config) (scraper.Fetcher, error) {
	switch c.Fetcher {
	case "colly":
		return colly.NewFetcher(
			colly.WithUserAgent(c.UserAgent),
			colly.WithTimeout(c.FetchTimeout),
			colly.WithMaxBodySize(int(c.MaxBodySize)),
		), nil
	case "rod":
		return rod.NewFetcher(
			rod.WithUserAgent(c.UserAgent),
			rod.WithFetchTimeout(c.FetchTimeout),
		)
	default:
		return scraperhttp.NewFetcher(
			scraperhttp.WithUserAgent(c.UserAgent),
			scraperhttp.WithTimeout(c.FetchTimeout),
			scraperhttp.WithMaxBodySize(c.MaxBodySize),
		), nil
	}
}

func newExtractor(c *Config) scraper.Extractor {
	if c.Extractor == "readability" {
		return readability.NewExtractor()
	}
	return trafilatura.NewExtractor()
}

// newSummarizer returns nil when summaries are disabled.
func newSummarizer(ctx context.Context, c *Config) (scraper.Summarizer, error) {
	switch c.Summarizer {
	case "local":
		return nlp.NewSummarizer(c.Language), nil
	case "gemini":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		var opts []gemini.Option
		if c.GeminiMaxTokens > 0 {
			tc, err := gemini.NewTokenCounter(c.GeminiModel)
			if err != nil {
				return nil, fmt.Errorf("failed to create token counter: %w", err)
			}
			opts = append(opts, gemini.WithTokenLimit(tc, c.GeminiMaxTokens))
		}
		return gemini.NewSummarizer(client, c.GeminiModel, c.Language, opts...), nil
	default:
		return nil, nil
	}
}
