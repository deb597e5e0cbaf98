package search

import "strings"

// Corrector proposes vocabulary terms for misspelled query terms
type Corrector struct {
	terms       map[string]int
	maxDistance int
}

type candidate struct {
	term      string
	distance  int
	frequency int
}

// NewCorrector creates a corrector over terms (term -> frequency)
func NewCorrector(terms map[string]int, maxDistance int) *Corrector {
	normalized := make(map[string]int, len(terms))
	for term, freq := range terms {
		normalized[strings.ToLower(term)] += freq
	}
	return &Corrector{terms: normalized, maxDistance: maxDistance}
}

// Correct rewrites each unknown term of query to its best match.
// changed is false when no term was rewritten.
func (c *Corrector) Correct(query string) (corrected string, changed bool) {
	fields := strings.Fields(strings.ToLower(query))
	for i, word := range fields {
		if len([]rune(word)) < minTermLength {
			continue
		}
		if _, known := c.terms[word]; known {
			continue
		}
		if best, ok := c.bestMatch(word); ok {
			fields[i] = best.term
			changed = true
		}
	}
	return strings.Join(fields, " "), changed
}

// bestMatch prefers lower distance, then higher frequency, then lexical order
func (c *Corrector) bestMatch(word string) (candidate, bool) {
	var best candidate
	found := false
	wordLen := len([]rune(word))

	for term, freq := range c.terms {
		if abs(len([]rune(term))-wordLen) > c.maxDistance {
			continue
		}
		dist := Levenshtein(word, term)
		if dist == 0 || dist > c.maxDistance {
			continue
		}

		cand := candidate{term: term, distance: dist, frequency: freq}
		if !found || better(cand, best) {
			best = cand
			found = true
		}
	}
	return best, found
}

func better(a, b candidate) bool {
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	if a.frequency != b.frequency {
		return a.frequency > b.frequency
	}
	return a.term < b.term
}

// Levenshtein returns the edit distance between a and b, counted in runes
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
