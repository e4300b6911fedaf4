package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

var parseFile string

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse citation markers out of existing text",
	Long:  "Reads already-generated text from --file or stdin, extracts citation markers, and prints the segment partition and ranked citation list as JSON. No LLM provider is needed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if parseFile != "" {
			data, err = os.ReadFile(parseFile)
			if err != nil {
				return eris.Wrap(err, "read input file")
			}
		} else {
			data, err = io.ReadAll(os.Stdin)
			if err != nil {
				return eris.Wrap(err, "read stdin")
			}
		}

		res := newParser().Parse(norm.NFC.String(string(data)))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseFile, "file", "", "input file (default stdin)")
	rootCmd.AddCommand(parseCmd)
}
