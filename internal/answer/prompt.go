package answer

import (
	"fmt"
	"strings"
)

// systemPrompt keeps the model grounded on the supplied material.
const systemPrompt = `You are a careful research assistant. Answer using ONLY the numbered sources provided in the user message. Every factual claim must be wrapped in the citation markers described there. If the sources do not cover the question, say so plainly instead of guessing.`

const promptTemplate = `Answer the question below using only the sources listed.

Sources:
%s

Question: %s

Format requirements:
- Wrap each cited statement as [CITE:n]statement[/CITE:n], where n is the number of the supporting source.
- Do not cite sources you did not use.
- After the answer, list each source you cited on its own line, exactly in this form:
  [Source:n] Title - URL (Date)`

// BuildPrompt renders the user prompt for a query and its selected sources.
func BuildPrompt(query string, sources []Source) string {
	return fmt.Sprintf(promptTemplate, formatSources(sources), strings.TrimSpace(query))
}

func formatSources(sources []Source) string {
	var b strings.Builder
	for i, s := range sources {
		fmt.Fprintf(&b, "[%d] %s - %s", i+1, s.Title, s.URL)
		if s.Date != "" {
			fmt.Fprintf(&b, " (%s)", s.Date)
		}
		if s.Snippet != "" {
			fmt.Fprintf(&b, "\n    %s", s.Snippet)
		}
		if i < len(sources)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
