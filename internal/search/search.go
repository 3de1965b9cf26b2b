package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/mmcdole/cinelist/internal/domain"
)

// Result is a filtered movie with match metadata for highlighting
type Result struct {
	Movie          domain.Movie
	MatchedIndexes []int
	Score          int
}

// movieSource implements sahilm/fuzzy.Source over movie titles
type movieSource []domain.Movie

func (s movieSource) String(i int) string { return strings.ToLower(s[i].Title) }
func (s movieSource) Len() int            { return len(s) }

// FilterMovies returns the movies whose titles fuzzy-match query, best first.
// An empty query returns every movie in its original order.
func FilterMovies(query string, movies []domain.Movie) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		results := make([]Result, len(movies))
		for i, m := range movies {
			results[i] = Result{Movie: m}
		}
		return results
	}

	matches := sfuzzy.FindFrom(query, movieSource(movies))
	results := make([]Result, len(matches))
	for i, match := range matches {
		results[i] = Result{
			Movie:          movies[match.Index],
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}
	return results
}

// ResolveGenre maps free-form input (a CLI flag, a typo) to the closest known
// genre name. Exact case-insensitive matches win; otherwise the fuzzy match
// with the smallest edit distance is returned.
func ResolveGenre(input string, genres []domain.Genre) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", true
	}

	names := make([]string, len(genres))
	for i, g := range genres {
		if strings.EqualFold(g.Name, input) {
			return g.Name, true
		}
		names[i] = g.Name
	}

	ranks := fuzzy.RankFindFold(input, names)
	if len(ranks) == 0 {
		return closestByDistance(input, names)
	}
	sort.Sort(ranks)
	return ranks[0].Target, true
}

// closestByDistance tolerates typos that break subsequence matching, such as
// a doubled letter ("dramma").
func closestByDistance(input string, names []string) (string, bool) {
	const maxDistance = 2

	best, bestDist := "", maxDistance+1
	lower := strings.ToLower(input)
	for _, n := range names {
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(n))
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, best != ""
}
