package main

import (
	"go.uber.org/zap"

	"github.com/sells-group/citation-cli/internal/answer"
	"github.com/sells-group/citation-cli/internal/citation"
	"github.com/sells-group/citation-cli/internal/cost"
	"github.com/sells-group/citation-cli/internal/llm"
)

// initService builds the generation provider, parser, corpus, and answer
// service used by the ask/batch/serve commands.
func initService() (*answer.Service, error) {
	gen, err := llm.New(cfg)
	if err != nil {
		return nil, err
	}

	corpus := answer.DefaultCorpus()
	if cfg.Sources.File != "" {
		corpus, err = answer.LoadCorpus(cfg.Sources.File)
		if err != nil {
			return nil, err
		}
		zap.L().Info("loaded source corpus",
			zap.String("file", cfg.Sources.File),
			zap.Int("sources", len(corpus.All())),
		)
	}

	parser := newParser()
	calc := cost.NewCalculator(cfg.Pricing)

	return answer.NewService(gen, parser, corpus, calc, cfg.Answer, cfg.Sources.TopK), nil
}

// newParser builds the citation parser from config. It has no remote
// dependencies, so commands that only parse skip provider setup entirely.
func newParser() *citation.Parser {
	return citation.NewParser(citation.Params{
		MinQuality:   cfg.Parser.MinQuality,
		MaxCitations: cfg.Parser.MaxCitations,
		Dedupe:       cfg.Parser.Dedupe,
	})
}
