package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/scraper"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ArticleRequest is the body of POST /fetch-article.
type ArticleRequest struct {
	URL string `json:"url" binding:"required,http_url"`
}

// ArticleResponse is the body of a successful POST /fetch-article.
type ArticleResponse struct {
	URL            string                  `json:"url"`
	Title          string                  `json:"title"`
	Content        string                  `json:"content"`
	TopImage       *string                 `json:"top_image"`
	Authors        []string                `json:"authors"`
	Images         []string                `json:"images"`
	Movies         []string                `json:"movies"`
	AdditionalData ArticleMetadataResponse `json:"additional_data"`
}

// ArticleMetadataResponse is the additional_data object of ArticleResponse.
type ArticleMetadataResponse struct {
	PublishDate     string   `json:"publish_date"`
	Keywords        []string `json:"keywords"`
	Summary         string   `json:"summary"`
	MetaDescription string   `json:"meta_description"`
	MetaKeywords    []string `json:"meta_keywords"`
	MetaLang        string   `json:"meta_lang"`
	MetaFavicon     string   `json:"meta_favicon"`
	CanonicalLink   string   `json:"canonical_link"`
	Tags            []string `json:"tags"`
	SourceURL       string   `json:"source_url"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// NewArticleResponse converts a domain article into its wire representation.
// Lists are never nil and an empty top image is reported as null.
func NewArticleResponse(a *scraper.Article) ArticleResponse {
	var topImage *string
	if a.TopImage != nil && strings.TrimSpace(*a.TopImage) != "" {
		v := *a.TopImage
		topImage = &v
	}
	return ArticleResponse{
		URL:      a.URL,
		Title:    a.Title,
		Content:  a.Content,
		TopImage: topImage,
		Authors:  nonNil(a.Authors),
		Images:   nonNil(a.Images),
		Movies:   nonNil(a.Movies),
		AdditionalData: ArticleMetadataResponse{
			PublishDate:     a.Metadata.PublishDate,
			Keywords:        nonNil(a.Metadata.Keywords),
			Summary:         a.Metadata.Summary,
			MetaDescription: a.Metadata.MetaDescription,
			MetaKeywords:    nonNil(a.Metadata.MetaKeywords),
			MetaLang:        a.Metadata.MetaLang,
			MetaFavicon:     a.Metadata.MetaFavicon,
			CanonicalLink:   a.Metadata.CanonicalLink,
			Tags:            nonNil(a.Metadata.Tags),
			SourceURL:       a.Metadata.SourceURL,
		},
	}
}

// handleFetchArticle handles POST /fetch-article.
func (s *Server) handleFetchArticle(c *gin.Context) {
	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail := bindErrorDetail(err)
		s.Logger.Error("invalid request", "err", detail, "status", http.StatusUnprocessableEntity)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: detail})
		return
	}

	s.Logger.Info("fetching article", "url", req.URL)

	// Extraction runs to completion even if the client disconnects; fetch
	// timeouts still bound it.
	ctx := context.WithoutCancel(c.Request.Context())
	article, err := s.ArticleService.ExtractArticle(ctx, req.URL)
	if err != nil {
		s.Error(c, req.URL, err)
		return
	}

	body, err := json.Marshal(NewArticleResponse(article))
	if err != nil {
		s.Error(c, req.URL, err)
		return
	}

	c.Header("ETag", `"`+strconv.FormatUint(xxhash.Sum64(body), 16)+`"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// handleInfo handles GET /.
func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.Info)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Error writes err as a JSON error response, choosing the status from its
// error code, and logs it with the requested URL.
func (s *Server) Error(c *gin.Context, url string, err error) {
	code, detail := scraper.ErrorCode(err), scraper.ErrorMessage(err)
	status := ErrorStatusCode(code)
	if status == http.StatusInternalServerError {
		detail = "An unexpected error occurred: " + err.Error()
	}

	s.Logger.Error("article extraction failed", "url", url, "err", err, "status", status)
	c.AbortWithStatusJSON(status, ErrorResponse{Detail: detail})
}

// codes maps error codes to HTTP status codes.
var codes = map[string]int{
	scraper.EINVALID:       http.StatusUnprocessableEntity,
	scraper.EUNPROCESSABLE: http.StatusUnprocessableEntity,
	scraper.ENOTFOUND:      http.StatusNotFound,
	scraper.EINTERNAL:      http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// bindErrorDetail renders a request binding failure as a single message.
func bindErrorDetail(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				msgs = append(msgs, field+": field required")
			case "http_url":
				msgs = append(msgs, field+": invalid or missing URL scheme")
			default:
				msgs = append(msgs, fmt.Sprintf("%s: failed %s validation", field, fe.Tag()))
			}
		}
		return strings.Join(msgs, "; ")
	}
	if errors.Is(err, io.EOF) {
		return "request body required"
	}
	return "invalid request body: " + err.Error()
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
