package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/citation-cli/internal/model"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question and get a cited answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if cfg.Answer.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Answer.RequestTimeout)*time.Second)
			defer cancel()
		}

		svc, err := initService()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		ans, err := svc.Ask(ctx, query)
		if err != nil {
			return err
		}

		if askJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(ans)
		}

		renderAnswer(os.Stdout, ans)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full answer as JSON")
	rootCmd.AddCommand(askCmd)
}

// renderAnswer prints the answer with bracketed bibliography references
// after each cited span, then the source list.
func renderAnswer(w io.Writer, ans *model.Answer) {
	index := make(map[string]int, len(ans.Citations))
	for i, c := range ans.Citations {
		index[c.ID] = i + 1
	}

	for _, seg := range ans.Segments {
		fmt.Fprint(w, seg.Text)
		if seg.Highlighted {
			if n, ok := index[seg.CitationID]; ok {
				fmt.Fprintf(w, " [%d]", n)
			}
		}
	}
	fmt.Fprintln(w)

	if ans.Bibliography != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Sources:")
		fmt.Fprintln(w, ans.Bibliography)
	}

	zap.L().Info("answer rendered",
		zap.String("model", ans.Model),
		zap.Float64("confidence", ans.Confidence),
		zap.Float64("cost_usd", ans.CostUSD),
		zap.Bool("cached", ans.Cached),
	)
}
