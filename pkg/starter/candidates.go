package starter

import (
	"github.com/bastiangx/openers/pkg/letters"
)

// Candidate is a word eligible for the group search at one slack value.
type Candidate struct {
	Word    string
	Letters letters.Set
	Score   int
}

// AllowedAlphabetSize is wordLength*k + slack, capped at the alphabet size.
func AllowedAlphabetSize(wordLength, k, slack int) int {
	return min(wordLength*k+slack, letters.AlphabetSize)
}

// Candidates returns, in corpus order, the words made of wordLength distinct
// letters drawn only from the most frequent AllowedAlphabetSize letters.
func Candidates(model *letters.Model, words []string, k, slack int) []Candidate {
	wordLength := model.WordLength()
	allowed := model.TopLetters(AllowedAlphabetSize(wordLength, k, slack))

	var out []Candidate
	for _, w := range words {
		set := letters.SetOf(w)
		// repeated letters would waste alphabet the disjointness check counts on
		if set.Len() != wordLength || !set.SubsetOf(allowed) {
			continue
		}
		out = append(out, Candidate{
			Word:    w,
			Letters: set,
			Score:   model.PositionScore(w),
		})
	}
	return out
}
