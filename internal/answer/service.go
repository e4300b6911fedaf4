// Package answer orchestrates the question-to-cited-answer pipeline: source
// selection, prompt construction, generation, citation parsing, confidence
// aggregation, and cost attribution.
package answer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"

	"github.com/sells-group/citation-cli/internal/citation"
	"github.com/sells-group/citation-cli/internal/config"
	"github.com/sells-group/citation-cli/internal/cost"
	"github.com/sells-group/citation-cli/internal/llm"
	"github.com/sells-group/citation-cli/internal/model"
)

// Service answers questions with cited responses. Safe for concurrent use.
type Service struct {
	gen     llm.Generator
	parser  *citation.Parser
	corpus  *Corpus
	calc    *cost.Calculator
	limiter *rate.Limiter
	cache   *gocache.Cache
	history *History
	cfg     config.AnswerConfig
	topK    int
}

// NewService wires an answer Service from its collaborators.
func NewService(gen llm.Generator, parser *citation.Parser, corpus *Corpus, calc *cost.Calculator, cfg config.AnswerConfig, topK int) *Service {
	ttl := time.Duration(cfg.CacheTTLMins) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Service{
		gen:     gen,
		parser:  parser,
		corpus:  corpus,
		calc:    calc,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		cache:   gocache.New(ttl, 2*ttl),
		history: NewHistory(cfg.HistoryLimit),
		cfg:     cfg,
		topK:    topK,
	}
}

// Ask answers a query with a cited response. Repeated queries are served
// from cache for the configured TTL; fresh calls are rate limited.
func (s *Service) Ask(ctx context.Context, query string) (*model.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, eris.New("answer: empty query")
	}

	key := strings.ToLower(query)
	if v, ok := s.cache.Get(key); ok {
		cached := v.(model.Answer)
		cached.Cached = true
		zap.L().Debug("answer cache hit", zap.String("query", query))
		return &cached, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "answer: rate limit wait")
	}

	sources := s.corpus.Select(query, s.topK)
	temp := s.cfg.Temperature
	resp, err := s.gen.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      BuildPrompt(query, sources),
		Temperature: &temp,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, eris.Wrap(err, "answer: generate")
	}

	// Normalize before parsing so marker spans and anchors compare bytewise.
	text := norm.NFC.String(resp.Text)
	res := s.parser.Parse(text)

	conf := aggregateConfidence(resp.Confidence, res.Citations)
	usd := s.calc.Completion(s.gen.Name(), resp.Model, resp.Usage)
	s.calc.LogCompletion(s.gen.Name(), resp.Model, resp.Usage)

	ans := model.Answer{
		Query:        query,
		Text:         res.Text,
		Segments:     res.Segments,
		Citations:    res.Citations,
		Bibliography: FormatBibliography(res.Citations),
		Confidence:   conf,
		Model:        resp.Model,
		Usage:        resp.Usage,
		CostUSD:      usd,
	}

	s.history.Add(model.Discovery{
		ID:         uuid.NewString(),
		Query:      query,
		Timestamp:  time.Now(),
		Results:    res.Citations,
		Confidence: conf,
		Context:    consultedLine(sources),
	})
	s.cache.Set(key, ans, gocache.DefaultExpiration)

	zap.L().Info("answered query",
		zap.String("query", query),
		zap.Int("citations", len(res.Citations)),
		zap.Float64("confidence", conf),
		zap.Float64("cost_usd", usd),
	)
	return &ans, nil
}

// ParseText runs the citation parser over already-generated text.
func (s *Service) ParseText(text string) *citation.Result {
	return s.parser.Parse(norm.NFC.String(text))
}

// History returns up to limit past discoveries, newest first.
func (s *Service) History(limit int) []model.Discovery {
	return s.history.List(limit)
}

// Sources returns the full corpus.
func (s *Service) Sources() []Source {
	return s.corpus.All()
}

// aggregateConfidence blends the provider's safety-derived confidence with
// the mean citation confidence. Without citations the safety value stands
// alone.
func aggregateConfidence(safety float64, citations []model.Citation) float64 {
	if len(citations) == 0 {
		return model.Clamp01(safety)
	}
	sum := 0.0
	for _, c := range citations {
		sum += c.Confidence
	}
	mean := sum / float64(len(citations))
	return model.Clamp01((safety + mean) / 2)
}

func consultedLine(sources []Source) string {
	titles := make([]string, len(sources))
	for i, s := range sources {
		titles[i] = s.Title
	}
	return "Consulted: " + strings.Join(titles, "; ")
}
