// Package gemini implements scraper.Summarizer with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/scraper"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Summarizer implements scraper.Summarizer at compile time.
var _ scraper.Summarizer = (*Summarizer)(nil)

// Summarizer asks Gemini for a summary and keywords of an article.
type Summarizer struct {
	client    *genai.Client
	model     string
	language  string
	tokens    *TokenCounter
	maxTokens int
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithTokenLimit truncates article text to at most max tokens, as counted
// by tc, before it is sent.
func WithTokenLimit(tc *TokenCounter, max int) Option {
	return func(s *Summarizer) {
		s.tokens = tc
		s.maxTokens = max
	}
}

// NewSummarizer creates a Summarizer answering in lang, an ISO 639-1 code.
func NewSummarizer(client *genai.Client, model, lang string, opts ...Option) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	s := &Summarizer{client: client, model: model, language: lang}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns the summary and keywords of an article.
func (s *Summarizer) Summarize(ctx context.Context, title, text string) (*scraper.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, scraper.Errorf(scraper.EINVALID, "empty text")
	}

	if s.tokens != nil && s.maxTokens > 0 {
		var err error
		if text, err = s.tokens.Truncate(ctx, text, s.maxTokens); err != nil {
			return nil, err
		}
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(title, text)}},
		}},
		BuildConfig(s.language),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, scraper.Errorf(scraper.EINTERNAL, "gemini returned nil result")
	}

	return ParseSummary(result.Text())
}

// BuildConfig returns the GenerateContentConfig for a summary in lang.
// The response is constrained to a JSON object with summary and keywords.
func BuildConfig(lang string) *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: fmt.Sprintf("You summarize news articles. Write a summary of at most five sentences "+
					"and list up to ten keywords. Use only facts stated in the article. Respond in %s.", languageName(lang)),
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"summary":  {Type: genai.TypeString},
				"keywords": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"summary", "keywords"},
		},
	}
}

// BuildUserPrompt builds the user prompt containing the article.
func BuildUserPrompt(title, text string) string {
	var sb strings.Builder
	sb.WriteString("<article>\n")
	if title != "" {
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	}
	fmt.Fprintf(&sb, "<content>%s</content>\n", text)
	sb.WriteString("</article>")
	return sb.String()
}

// ParseSummary decodes a JSON response produced under BuildConfig.
func ParseSummary(raw string) (*scraper.Summary, error) {
	var resp struct {
		Summary  string   `json:"summary"`
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, scraper.Errorf(scraper.EINTERNAL, "invalid summary response: %v", err)
	}

	keywords := make([]string, 0, len(resp.Keywords))
	for _, k := range resp.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return &scraper.Summary{
		Keywords: keywords,
		Text:     strings.TrimSpace(resp.Summary),
	}, nil
}

// languageName returns the English name of an ISO 639-1 code, falling
// back to English.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil || tag == language.Und {
		return "English"
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return "English"
}
