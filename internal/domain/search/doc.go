// Package search matches queries against cached content records and
// proposes corrected queries for likely typos.
//
// Matching is case-insensitive. Every whitespace-separated query term has to
// appear in a record's title, description or one of its keywords.
//
// # Suggestions
//
// When a query under-matches (fewer than MinResults hits) each unknown term
// of three or more runes is replaced with the closest vocabulary term by
// Levenshtein distance, up to MaxDistance edits. The vocabulary is built from
// record keywords and title words. Ties go to the more frequent term, then
// to the lexicographically smaller one, so results are deterministic.
//
// A suggestion is only returned when the corrected query differs from the
// original and actually finds something. Accepting a suggestion is a new
// search with SkipSuggestion set, which never corrects again.
package search
