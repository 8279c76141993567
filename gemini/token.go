package gemini

import (
	"context"
	"strings"
	"unicode"

	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// TokenCounter counts tokens using the Gemini tokenizer.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, "user"),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}

// Truncate shortens text to at most max tokens, cutting at a word boundary.
// Text already within the limit is returned unchanged.
func (tc *TokenCounter) Truncate(ctx context.Context, text string, max int) (string, error) {
	count, err := tc.CountTokens(ctx, text)
	if err != nil {
		return "", err
	}
	if count <= max {
		return text, nil
	}

	runes := []rune(text)
	for count > max {
		keep := len(runes) * max / count
		for keep > 0 && !unicode.IsSpace(runes[keep-1]) {
			keep--
		}
		runes = []rune(strings.TrimSpace(string(runes[:keep])))
		if len(runes) == 0 {
			return "", nil
		}
		if count, err = tc.CountTokens(ctx, string(runes)); err != nil {
			return "", err
		}
	}
	return string(runes), nil
}
