// Package fuzzy bridges region names that two datasets spell differently.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matcher picks the most similar candidate at or above Floor.
type Matcher struct {
	Floor float64
}

func NewMatcher(floor float64) *Matcher {
	return &Matcher{Floor: floor}
}

// Normalize lowercases and strips diacritics ("Skåne län" -> "skane lan").
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.Join(strings.Fields(out), " ")
}

// Similarity is the sequence-matcher ratio of the normalized strings, in [0, 1].
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1
	}
	m := difflib.NewMatcher(split(na), split(nb))
	return m.Ratio()
}

// Match returns the best candidate for query. Candidates are scored in sorted
// order and only a strictly higher score replaces the current best.
func (m *Matcher) Match(query string, candidates []string) (string, bool) {
	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	var (
		best      string
		bestScore = -1.0
	)
	for _, c := range sorted {
		if c == query {
			return c, true
		}
		if s := Similarity(query, c); s > bestScore {
			best, bestScore = c, s
		}
	}

	if bestScore < m.Floor || best == "" {
		return "", false
	}
	return best, true
}

func split(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
