package citation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/citation-cli/internal/model"
)

// Builder converts extracted markers into citation records. Malformed marker
// fields degrade to defaults; building never fails.
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// Build produces one citation per match, in match order.
func (b *Builder) Build(ext *Extraction) []model.Citation {
	cits := make([]model.Citation, 0, len(ext.Matches))
	for _, m := range ext.Matches {
		cits = append(cits, b.build(ext, m))
	}
	return cits
}

func (b *Builder) build(ext *Extraction, m Match) model.Citation {
	c := model.Citation{ID: uuid.NewString()}
	dateParsed := false

	switch m.Dialect {
	case DialectWrapped:
		if def, ok := ext.Defs[m.Ref]; ok {
			c.Source = def.Title
			c.URL = def.URL
			c.Timestamp, dateParsed = b.parseDate(def.Date)
		} else {
			c.Source = fmt.Sprintf("Source %d", m.Ref)
		}
		c.Content = m.Inner
		c.HighlightedText = m.Inner

	case DialectNumbered, DialectLegacy:
		c.Source = strings.TrimSpace(m.Source)
		c.URL = strings.TrimSpace(m.URL)
		c.Timestamp, dateParsed = b.parseDate(m.Date)
		c.Content = "Information from " + c.Source

	case DialectBare:
		c.Source = fmt.Sprintf("Source %d", m.Ref)
		c.Content = "Information from " + c.Source
	}

	c.Relevance = RelevanceFor(m.Label)
	c.Confidence = confidenceFor(m.Label, c.URL != "", dateParsed)
	c.Type = SourceTypeFor(c.URL)
	c.Quality = QualityFor(c.URL)
	return c
}

// dateLayouts are tried in order when parsing marker dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"01/02/2006",
	"2006",
}

// parseDate returns the parsed date and whether parsing succeeded. An empty
// field yields nil; an unparseable one substitutes the current time.
func (b *Builder) parseDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	now := b.now()
	zap.L().Debug("unparseable citation date, substituting current time",
		zap.String("date", s),
	)
	return &now, false
}

// RelevanceFor maps a textual confidence label to a relevance score.
// Unrecognized or missing labels default to 0.6.
func RelevanceFor(label string) float64 {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "high":
		return 0.9
	case "medium":
		return 0.7
	case "low":
		return 0.5
	default:
		return 0.6
	}
}

// confidenceFor scores a citation's confidence from its label plus small
// bonuses for carrying a URL and a well-formed date.
func confidenceFor(label string, hasURL, hasDate bool) float64 {
	score := RelevanceFor(label)
	if hasURL {
		score += 0.05
	}
	if hasDate {
		score += 0.05
	}
	return model.Clamp01(score)
}

var (
	videoHosts = []string{"youtube.com", "youtu.be", "vimeo.com", "dailymotion.com", "twitch.tv"}
	audioHosts = []string{"soundcloud.com", "spotify.com", "podcasts.apple.com", "anchor.fm"}
	imageHints = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", "imgur.com", "flickr.com"}
	docHosts   = []string{
		"arxiv.org", "scholar.google", "jstor.org", "pubmed", "doi.org",
		"researchgate.net", "semanticscholar.org", "docs.google.com", "notion.so",
	}
)

// SourceTypeFor infers a citation's source type from its URL. Rules are
// applied in a fixed order; the first match wins, and anything unrecognized
// is a web source.
func SourceTypeFor(url string) model.SourceType {
	lower := strings.ToLower(url)
	switch {
	case containsAny(lower, videoHosts):
		return model.SourceVideo
	case strings.Contains(lower, ".pdf"):
		return model.SourcePDF
	case containsAny(lower, audioHosts):
		return model.SourceAudio
	case containsAny(lower, imageHints):
		return model.SourceImage
	case containsAny(lower, docHosts):
		return model.SourceDocument
	default:
		return model.SourceWeb
	}
}

var (
	academicHosts = []string{
		"arxiv.org", "scholar.google", "jstor.org", "pubmed", "doi.org",
		"researchgate.net", "semanticscholar.org",
	}
	encyclopediaHosts = []string{"wikipedia.org", "britannica.com"}
)

// QualityFor scores a citation's source quality from its URL: 0.5 base, with
// fixed bonuses for academic, government/education, and encyclopedia domains,
// clamped to 1.0.
func QualityFor(url string) float64 {
	score := 0.5
	lower := strings.ToLower(url)
	if containsAny(lower, academicHosts) {
		score += 0.3
	}
	if strings.Contains(lower, ".gov") || strings.Contains(lower, ".edu") {
		score += 0.2
	}
	if containsAny(lower, encyclopediaHosts) {
		score += 0.1
	}
	return model.Clamp01(score)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
