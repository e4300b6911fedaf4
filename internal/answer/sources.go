package answer

import (
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Source is one entry of the simulated retrieval corpus. Retrieval here is
// presentation-only: sources are selected by term overlap and injected into
// the prompt, standing in for a real grounding system.
type Source struct {
	Title   string   `yaml:"title" json:"title"`
	URL     string   `yaml:"url" json:"url"`
	Date    string   `yaml:"date,omitempty" json:"date,omitempty"`
	Snippet string   `yaml:"snippet,omitempty" json:"snippet,omitempty"`
	Tags    []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Corpus holds the source pool queries are answered from.
type Corpus struct {
	sources []Source
}

// defaultSources ship with the binary so the demo works without any setup.
var defaultSources = []Source{
	{
		Title:   "The Go Programming Language Specification",
		URL:     "https://go.dev/ref/spec",
		Date:    "2024-12-01",
		Snippet: "Go is a general-purpose language designed with systems programming in mind. It is strongly typed and garbage-collected and has explicit support for concurrent programming.",
		Tags:    []string{"go", "language", "specification", "concurrency"},
	},
	{
		Title:   "Effective Go",
		URL:     "https://go.dev/doc/effective_go",
		Date:    "2024-06-15",
		Snippet: "Goroutines are multiplexed onto multiple OS threads so if one should block, such as while waiting for I/O, others continue to run. Channels combine communication with synchronization.",
		Tags:    []string{"go", "goroutines", "channels", "style"},
	},
	{
		Title:   "Attention Is All You Need",
		URL:     "https://arxiv.org/abs/1706.03762",
		Date:    "2017-06-12",
		Snippet: "We propose a new simple network architecture, the Transformer, based solely on attention mechanisms, dispensing with recurrence and convolutions entirely.",
		Tags:    []string{"transformer", "attention", "neural", "machine", "learning"},
	},
	{
		Title:   "Climate Change: Global Sea Level",
		URL:     "https://www.climate.gov/news-features/understanding-climate/climate-change-global-sea-level",
		Date:    "2023-08-22",
		Snippet: "Global mean sea level has risen about 8-9 inches since 1880, and the rate is accelerating: 0.14 inches per year from 2006 to 2015.",
		Tags:    []string{"climate", "sea", "level", "ocean", "warming"},
	},
	{
		Title:   "Photosynthesis",
		URL:     "https://en.wikipedia.org/wiki/Photosynthesis",
		Date:    "2024-02-10",
		Snippet: "Photosynthesis is a system of biological processes by which photosynthetic organisms convert light energy into the chemical energy necessary to fuel their metabolism.",
		Tags:    []string{"photosynthesis", "biology", "plants", "energy"},
	},
	{
		Title:   "Introduction to Quantum Computing (Lecture)",
		URL:     "https://www.youtube.com/watch?v=F_Riqjdh2oM",
		Date:    "2021-03-18",
		Snippet: "Quantum computers use qubits, which unlike classical bits can exist in superpositions of states, enabling certain computations to scale differently.",
		Tags:    []string{"quantum", "computing", "qubits", "physics"},
	},
	{
		Title:   "Dietary Guidelines for Americans",
		URL:     "https://www.dietaryguidelines.gov/sites/default/files/2020-12/DGA_2020-2025.pdf",
		Date:    "2020-12-29",
		Snippet: "A healthy dietary pattern consists of nutrient-dense forms of foods and beverages across all food groups, in recommended amounts, and within calorie limits.",
		Tags:    []string{"nutrition", "diet", "health", "food"},
	},
	{
		Title:   "The Sounds of Mars",
		URL:     "https://soundcloud.com/nasa/sets/sounds-of-mars",
		Date:    "2022-05-04",
		Snippet: "Recordings from the Perseverance rover capture Martian wind, laser zaps, and the Ingenuity helicopter in flight, revealing how sound propagates in the thin atmosphere.",
		Tags:    []string{"mars", "nasa", "space", "audio"},
	},
}

// DefaultCorpus returns the built-in mock corpus.
func DefaultCorpus() *Corpus {
	return &Corpus{sources: defaultSources}
}

// LoadCorpus reads a YAML source list from path.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "answer: read sources file")
	}

	var sources []Source
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, eris.Wrap(err, "answer: unmarshal sources file")
	}
	if len(sources) == 0 {
		return nil, eris.New("answer: sources file is empty")
	}
	return &Corpus{sources: sources}, nil
}

// All returns every source in the corpus.
func (c *Corpus) All() []Source {
	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// Select returns the k sources with the highest term overlap against the
// query, in corpus order on ties. With no overlap at all, the first k
// sources are returned so the prompt always carries material.
func (c *Corpus) Select(query string, k int) []Source {
	if k <= 0 || k > len(c.sources) {
		k = len(c.sources)
	}

	terms := queryTerms(query)
	type scored struct {
		idx   int
		score int
	}
	ranked := make([]scored, len(c.sources))
	for i, s := range c.sources {
		ranked[i] = scored{idx: i, score: overlap(terms, s)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	out := make([]Source, 0, k)
	for _, r := range ranked[:k] {
		out = append(out, c.sources[r.idx])
	}
	return out
}

// stopwords are skipped when tokenizing queries.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "what": true,
	"how": true, "why": true, "does": true, "can": true, "with": true,
	"about": true, "is": true, "a": true, "an": true, "of": true,
	"in": true, "to": true, "do": true,
}

func queryTerms(query string) []string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if len(w) < 3 || stopwords[w] {
			continue
		}
		terms = append(terms, w)
	}
	return terms
}

func overlap(terms []string, s Source) int {
	haystack := strings.ToLower(s.Title + " " + s.Snippet + " " + strings.Join(s.Tags, " "))
	score := 0
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			score++
		}
	}
	return score
}
