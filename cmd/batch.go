package main

import (
	"bufio"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/citation-cli/internal/model"
)

var batchFile string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Answer a file of questions concurrently",
	Long:  "Reads one question per line from --file, answers them with bounded concurrency, and prints one answer JSON object per line in input order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		queries, err := readQueries(batchFile)
		if err != nil {
			return err
		}
		if len(queries) == 0 {
			zap.L().Info("no questions found", zap.String("file", batchFile))
			return nil
		}

		svc, err := initService()
		if err != nil {
			return err
		}

		concurrency := cfg.Batch.MaxConcurrent
		if concurrency <= 0 {
			concurrency = 1
		}

		zap.L().Info("processing batch",
			zap.Int("questions", len(queries)),
			zap.Int("concurrency", concurrency),
		)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)

		var succeeded, failed atomic.Int64
		var mu sync.Mutex
		answers := make([]*model.Answer, len(queries))

		for i, q := range queries {
			g.Go(func() error {
				log := zap.L().With(zap.String("query", q))

				ans, err := svc.Ask(gctx, q)
				if err != nil {
					failed.Add(1)
					log.Error("answer failed", zap.Error(err))
					return nil // don't abort the batch on individual failure
				}

				succeeded.Add(1)
				log.Info("answer complete",
					zap.Int("citations", len(ans.Citations)),
					zap.Float64("confidence", ans.Confidence),
				)

				mu.Lock()
				answers[i] = ans
				mu.Unlock()
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "batch processing")
		}

		zap.L().Info("batch complete",
			zap.Int64("succeeded", succeeded.Load()),
			zap.Int64("failed", failed.Load()),
		)

		// JSONL in input order; failed questions are dropped from the output.
		enc := json.NewEncoder(os.Stdout)
		for _, a := range answers {
			if a == nil {
				continue
			}
			if err := enc.Encode(a); err != nil {
				return eris.Wrap(err, "encode answer")
			}
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "file with one question per line (required)")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

// readQueries loads one trimmed question per line, skipping blanks and
// lines starting with '#'.
func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "open questions file")
	}
	defer f.Close()

	var queries []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "read questions file")
	}
	return queries, nil
}
