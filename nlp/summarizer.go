// Package nlp implements scraper.Summarizer with word-frequency heuristics:
// keywords are the most frequent non-stopwords, and the summary is the
// highest scoring sentences in their original order.
package nlp

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/fwojciec/scraper"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// sentenceTokenizer loads the Punkt model once. Tokenize only reads it.
var sentenceTokenizer = sync.OnceValues(func() (*sentences.DefaultSentenceTokenizer, error) {
	return english.NewSentenceTokenizer(nil)
})

// Defaults for Summarizer.
const (
	DefaultMaxKeywords  = 10
	DefaultMaxSentences = 5
)

// Ensure Summarizer implements scraper.Summarizer at compile time.
var _ scraper.Summarizer = (*Summarizer)(nil)

// Summarizer extracts keywords and a summary without external services.
type Summarizer struct {
	tag          language.Tag
	stopwords    map[string]struct{}
	maxKeywords  int
	maxSentences int
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithMaxKeywords sets the number of keywords returned.
func WithMaxKeywords(n int) Option {
	return func(s *Summarizer) {
		s.maxKeywords = n
	}
}

// WithMaxSentences sets the number of sentences in the summary.
func WithMaxSentences(n int) Option {
	return func(s *Summarizer) {
		s.maxSentences = n
	}
}

// NewSummarizer creates a Summarizer for lang, an ISO 639-1 code. Languages
// without a stopword list only drop words shorter than three letters.
func NewSummarizer(lang string, opts ...Option) *Summarizer {
	tag := language.Make(lang)
	base, _ := tag.Base()

	s := &Summarizer{
		tag:          tag,
		stopwords:    stopwords[base.String()],
		maxKeywords:  DefaultMaxKeywords,
		maxSentences: DefaultMaxSentences,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns the keywords and summary of text. title words weigh
// sentence selection.
func (s *Summarizer) Summarize(_ context.Context, title, text string) (*scraper.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, scraper.Errorf(scraper.EINVALID, "empty text")
	}

	tokenizer, err := sentenceTokenizer()
	if err != nil {
		return nil, scraper.Errorf(scraper.EINTERNAL, "failed to load sentence tokenizer: %v", err)
	}

	// Casers carry state and are not safe for concurrent use.
	c := &counter{Summarizer: s, caser: cases.Lower(s.tag)}
	freq := c.frequencies(text)
	keywords := topKeywords(freq, s.maxKeywords)

	return &scraper.Summary{
		Keywords: keywords,
		Text:     c.summary(title, splitSentences(tokenizer, text), freq, keywords),
	}, nil
}

// counter tokenizes text for a single Summarize call.
type counter struct {
	*Summarizer
	caser cases.Caser
}

// words returns the lower-cased words of text with stopwords removed.
func (s *counter) words(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(s.caser.String(f), "'")
		if len([]rune(w)) < 3 || isNumber(w) {
			continue
		}
		if _, stop := s.stopwords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (s *counter) frequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, w := range s.words(text) {
		freq[w]++
	}
	return freq
}

// topKeywords returns up to n words by descending frequency. Ties keep
// alphabetical order so results are stable.
func topKeywords(freq map[string]int, n int) []string {
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if n >= 0 && len(words) > n {
		words = words[:n]
	}
	return words
}

// summary picks the maxSentences best sentences and joins them in the
// order they appear in text.
func (s *counter) summary(title string, sentences []string, freq map[string]int, keywords []string) string {
	if len(sentences) <= s.maxSentences {
		return strings.Join(sentences, " ")
	}

	titleWords := make(map[string]struct{})
	for _, w := range s.words(title) {
		titleWords[w] = struct{}{}
	}
	keywordSet := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		keywordSet[k] = struct{}{}
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, sentence := range sentences {
		ranked[i] = scored{index: i, score: s.score(sentence, i, len(sentences), titleWords, keywordSet, freq)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	picked := ranked[:s.maxSentences]
	sort.Slice(picked, func(i, j int) bool {
		return picked[i].index < picked[j].index
	})

	out := make([]string, len(picked))
	for i, p := range picked {
		out[i] = sentences[p.index]
	}
	return strings.Join(out, " ")
}

// score rates a sentence by title overlap, keyword density, length, and
// position. Early sentences in news copy carry the lede.
func (s *counter) score(sentence string, index, total int, title, keywords map[string]struct{}, freq map[string]int) float64 {
	words := s.words(sentence)
	if len(words) == 0 {
		return 0
	}

	var titleHits, keywordScore float64
	for _, w := range words {
		if _, ok := title[w]; ok {
			titleHits++
		}
		if _, ok := keywords[w]; ok {
			keywordScore += float64(freq[w])
		}
	}

	titleScore := 0.0
	if len(title) > 0 {
		titleScore = titleHits / float64(len(title))
	}
	density := keywordScore / float64(len(words))
	position := 1 - float64(index)/float64(total)
	length := 1 - abs(float64(len(words))-20)/20
	if length < 0 {
		length = 0
	}

	return 3*titleScore + density + 0.5*position + 0.5*length
}

// splitSentences breaks text into trimmed sentences. Abbreviations such as
// "Mr." and "U.S." do not end a sentence.
func splitSentences(tokenizer *sentences.DefaultSentenceTokenizer, text string) []string {
	var out []string
	for _, sentence := range tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(sentence.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func isNumber(w string) bool {
	for _, r := range w {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
