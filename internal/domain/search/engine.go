package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

const (
	// DefaultMinResults triggers correction when a query finds nothing
	DefaultMinResults = 1
	// DefaultMaxDistance is the largest edit distance a suggestion may have
	DefaultMaxDistance = 2

	minTermLength = 3
)

// Suggestion is a corrected query offered for an under-matching search
type Suggestion struct {
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
}

// Result is the outcome of one search
type Result struct {
	Records    []types.ContentRecord `json:"results"`
	Suggestion *Suggestion           `json:"suggestion,omitempty"`
}

// Options tunes a single search call
type Options struct {
	// SkipSuggestion disables correction. Set when the user clicked a suggestion.
	SkipSuggestion bool
}

// Config holds engine tuning
type Config struct {
	MinResults  int
	MaxDistance int
}

// DefaultConfig returns the standard tuning
func DefaultConfig() Config {
	return Config{
		MinResults:  DefaultMinResults,
		MaxDistance: DefaultMaxDistance,
	}
}

// Engine runs searches. It holds no state besides its configuration.
type Engine struct {
	minResults  int
	maxDistance int
}

// NewEngine creates a search engine
func NewEngine(cfg Config) *Engine {
	if cfg.MinResults < 1 {
		cfg.MinResults = DefaultMinResults
	}
	if cfg.MaxDistance < 1 {
		cfg.MaxDistance = DefaultMaxDistance
	}
	return &Engine{minResults: cfg.MinResults, maxDistance: cfg.MaxDistance}
}

// Search matches query against records
func (e *Engine) Search(records []types.ContentRecord, query string, opts Options) Result {
	query = strings.TrimSpace(query)
	primary := Match(records, query)
	if opts.SkipSuggestion || len(primary) >= e.minResults || query == "" {
		return Result{Records: primary}
	}

	corrector := NewCorrector(Vocabulary(records), e.maxDistance)
	corrected, changed := corrector.Correct(query)
	if !changed {
		return Result{Records: primary}
	}

	alternative := Match(records, corrected)
	if len(alternative) == 0 {
		return Result{Records: primary}
	}

	return Result{
		Records:    alternative,
		Suggestion: &Suggestion{Original: query, Suggested: corrected},
	}
}

// Match returns records matching every term of query, best first
func Match(records []types.ContentRecord, query string) []types.ContentRecord {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}

	type scored struct {
		rec   types.ContentRecord
		score int
		order int
	}

	var hits []scored
	for i, rec := range records {
		if score, ok := scoreRecord(rec, terms); ok {
			hits = append(hits, scored{rec: rec, score: score, order: i})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]types.ContentRecord, len(hits))
	for i, h := range hits {
		out[i] = h.rec
	}
	return out
}

// scoreRecord weights title hits over keyword hits over description hits
func scoreRecord(rec types.ContentRecord, terms []string) (int, bool) {
	title := strings.ToLower(rec.Title)
	description := strings.ToLower(rec.Description)
	keywords := make([]string, len(rec.Keywords))
	for i, k := range rec.Keywords {
		keywords[i] = strings.ToLower(k)
	}

	total := 0
	for _, term := range terms {
		score := 0
		if strings.Contains(title, term) {
			score += 3
		}
		for _, k := range keywords {
			if strings.Contains(k, term) {
				score += 2
				break
			}
		}
		if strings.Contains(description, term) {
			score++
		}
		if score == 0 {
			return 0, false
		}
		total += score
	}
	return total, true
}

// Vocabulary counts known terms across record keywords and title words
func Vocabulary(records []types.ContentRecord) map[string]int {
	vocab := make(map[string]int)
	for _, rec := range records {
		for _, k := range rec.Keywords {
			ws := words(k)
			for _, w := range ws {
				vocab[w]++
			}
			if len(ws) > 1 {
				vocab[strings.Join(ws, " ")]++
			}
		}
		for _, w := range words(rec.Title) {
			vocab[w]++
		}
	}
	return vocab
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
