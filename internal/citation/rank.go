package citation

import (
	"math"
	"sort"
	"strings"

	"github.com/sells-group/citation-cli/internal/model"
)

// relevanceEpsilon is the band within which two relevance scores are treated
// as equal, letting quality decide the order.
const relevanceEpsilon = 0.05

// FilterAndRank drops citations below minQuality, sorts the rest descending
// by relevance (quality as tiebreak inside the epsilon band), and truncates
// to maxCount. A maxCount of zero or less means unlimited.
func FilterAndRank(cits []model.Citation, minQuality float64, maxCount int) []model.Citation {
	out := make([]model.Citation, 0, len(cits))
	for _, c := range cits {
		if c.Quality >= minQuality {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if math.Abs(a.Relevance-b.Relevance) <= relevanceEpsilon {
			return a.Quality > b.Quality
		}
		return a.Relevance > b.Relevance
	})

	if maxCount > 0 && len(out) > maxCount {
		out = out[:maxCount]
	}
	return out
}

// Dedupe removes citations that share a URL or a source name
// (case-insensitive), keeping the first occurrence. The alias map points each
// dropped citation's ID at the citation that replaced it, so highlights can
// be remapped.
func Dedupe(cits []model.Citation) ([]model.Citation, map[string]string) {
	keyToID := map[string]string{}
	alias := map[string]string{}
	out := make([]model.Citation, 0, len(cits))

	for _, c := range cits {
		var keys []string
		if c.URL != "" {
			keys = append(keys, "url:"+strings.ToLower(c.URL))
		}
		if c.Source != "" {
			keys = append(keys, "src:"+strings.ToLower(c.Source))
		}

		kept := ""
		for _, k := range keys {
			if id, ok := keyToID[k]; ok {
				kept = id
				break
			}
		}
		if kept != "" {
			alias[c.ID] = kept
			continue
		}

		for _, k := range keys {
			keyToID[k] = c.ID
		}
		out = append(out, c)
	}
	return out, alias
}
