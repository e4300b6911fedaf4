package answer

import (
	"fmt"
	"strings"

	"github.com/sells-group/citation-cli/internal/model"
)

// FormatBibliography renders the ranked citation list as numbered display
// lines, one per citation, in ranked order.
func FormatBibliography(citations []model.Citation) string {
	if len(citations) == 0 {
		return ""
	}

	var b strings.Builder
	for i, c := range citations {
		fmt.Fprintf(&b, "[%d] %s", i+1, c.Source)
		if c.URL != "" {
			fmt.Fprintf(&b, " - %s", c.URL)
		}
		detail := string(c.Type)
		if c.Timestamp != nil {
			detail += ", " + c.Timestamp.Format("2006-01-02")
		}
		fmt.Fprintf(&b, " (%s)", detail)
		if i < len(citations)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
