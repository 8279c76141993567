package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/fwojciec/scraper"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DefaultShutdownTimeout bounds graceful shutdown when none is configured.
const DefaultShutdownTimeout = 10 * time.Second

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-ID"

// ServiceInfo is the service metadata reported by GET /.
type ServiceInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// Server serves the article extraction API.
type Server struct {
	ln     net.Listener
	server *http.Server
	engine *gin.Engine

	corsOnce    sync.Once
	corsHandler gin.HandlerFunc

	// Bind address for the listener, e.g. "0.0.0.0:8000".
	Addr string

	Logger          *slog.Logger
	ArticleService  scraper.ArticleService
	Info            ServiceInfo
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// NewServer returns a new Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		engine:          gin.New(),
		Logger:          slog.New(slog.DiscardHandler),
		CORSOrigins:     []string{"*"},
		ShutdownTimeout: DefaultShutdownTimeout,
	}
	s.server = &http.Server{Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}

	s.engine.HandleMethodNotAllowed = true
	s.engine.Use(
		gin.CustomRecovery(s.handlePanic),
		s.requestID,
		s.accessLog,
		s.cors,
	)

	s.engine.GET("/", s.handleInfo)
	s.engine.GET("/health", s.handleHealth)
	s.engine.POST("/fetch-article", s.handleFetchArticle)

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Not Found"})
	})
	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Detail: "Method Not Allowed"})
	})

	return s
}

// Open binds the listener. Bind errors are returned immediately.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	return nil
}

// Serve handles requests until Close is called. Returns nil after a
// graceful close.
func (s *Server) Serve() error {
	if s.ln == nil {
		return fmt.Errorf("server not opened")
	}
	if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server, waiting at most ShutdownTimeout
// for in-flight requests.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the TCP port of the bound listener, or 0 if not open.
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	host, _, _ := net.SplitHostPort(s.Addr)
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, fmt.Sprint(s.Port())))
}

// ServeHTTP routes a request through the gin engine.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// handlePanic reports a panicking handler as a 500.
func (s *Server) handlePanic(c *gin.Context, v any) {
	s.Logger.Error("panic serving request", "path", c.Request.URL.Path, "panic", v)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Detail: fmt.Sprintf("An unexpected error occurred: %v", v),
	})
}

// requestID echoes the caller's request ID or assigns a new one.
func (s *Server) requestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("request_id", id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

func (s *Server) accessLog(c *gin.Context) {
	begin := time.Now()
	c.Next()
	s.Logger.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"request_id", c.GetString("request_id"),
		"duration", time.Since(begin),
	)
}

// cors applies the CORS policy built from CORSOrigins on first use.
func (s *Server) cors(c *gin.Context) {
	s.corsOnce.Do(func() {
		s.corsHandler = cors.New(s.corsConfig())
	})
	s.corsHandler(c)
}

func (s *Server) corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", RequestIDHeader}
	config.ExposeHeaders = []string{RequestIDHeader, "ETag"}
	if len(s.CORSOrigins) == 0 || slices.Contains(s.CORSOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = s.CORSOrigins
	}
	return config
}
