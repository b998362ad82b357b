package link

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	// DefaultMinSimilarity is the lowest score a fuzzy language match may have
	DefaultMinSimilarity = 0.6

	prefixScore      = 0.9
	subsequenceScore = 0.75
)

// Match is a scored candidate language
type Match struct {
	Language string
	Score    float64
}

// similarity is 1 - normalised edit distance, case-insensitive
func similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// rankLanguages scores token against every candidate, best first. Candidates
// must be sorted so equal scores keep lexical order.
func rankLanguages(token string, candidates []string) []Match {
	subsequences := make(map[string]bool)
	for _, r := range fuzzy.RankFindNormalizedFold(token, candidates) {
		subsequences[r.Target] = true
	}

	lowered := strings.ToLower(token)
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		score := similarity(token, c)
		if subsequences[c] && score < subsequenceScore {
			score = subsequenceScore
		}
		if lowered != "" && strings.HasPrefix(strings.ToLower(c), lowered) && score < prefixScore {
			score = prefixScore
		}
		if strings.EqualFold(token, c) {
			score = 1
		}
		matches = append(matches, Match{Language: c, Score: score})
	}

	// insertion sort keeps it stable and candidate lists are tiny
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].Score > matches[j-1].Score; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
	return matches
}
